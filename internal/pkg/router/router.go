package router

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/MichValwin/JWT-listing/internal/pkg/config"
	"github.com/MichValwin/JWT-listing/internal/pkg/goerror"
	"github.com/MichValwin/JWT-listing/internal/pkg/instrument"
	"github.com/MichValwin/JWT-listing/internal/pkg/jwt"
	"github.com/MichValwin/JWT-listing/internal/pkg/uid"
	"github.com/MichValwin/JWT-listing/internal/pkg/validator"
)

type errorResponse struct {
	Message string            `json:"message" example:"Invalid or expired token"`
	Error   map[string]string `json:"error,omitempty"`
}

type successResponse struct {
	Message string         `json:"message" example:"request has been successfully"`
	Data    any            `json:"data" swaggertype:"object"`
	Meta    map[string]any `json:"meta,omitempty" swaggertype:"object"`
}

// Handler is the application-style handler used by this router.
//
// It returns a response payload (that will be JSON encoded) or an error.
type Handler func(r *Request) (any, error)

// Config holds dependencies required to build a Router.
type Config struct {
	// Config provides runtime configuration values.
	Config config.Config
	// UUID generates request correlation IDs.
	UUID uid.StringID
	// Verifier checks bearer tokens on guarded endpoints.
	Verifier jwt.Verifier
	// Instrument provides tracing and metrics helpers.
	Instrument instrument.Instrumentation
	// Public lists "METHOD /path" routes that skip authentication, next to
	// "/" and "/health".
	Public []string
	// Welcome is the message served at "/".
	Welcome string
}

// Router is an http.Handler that wraps httprouter and a middleware chain.
type Router struct {
	hr         *httprouter.Router
	errorCodec func(ctx context.Context, w http.ResponseWriter, err error)
	encoder    func(ctx context.Context, w http.ResponseWriter, resp any)
	mws        []Middleware
}

// NewRouter builds the application router with the standard middleware chain:
// recover, client ip, correlation id, observability, authentication.
func NewRouter(cfg Config) *Router {
	hr := &httprouter.Router{
		RedirectTrailingSlash:  true,
		RedirectFixedPath:      true,
		HandleMethodNotAllowed: true,
		HandleOPTIONS:          true,
		SaveMatchedRoutePath:   true,
		NotFound: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, errorResponse{Message: "endpoint not found"}, http.StatusNotFound)
		}),
		MethodNotAllowed: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, errorResponse{Message: "method not allowed"}, http.StatusMethodNotAllowed)
		}),
	}

	welcome := cfg.Welcome
	if welcome == "" {
		welcome = "Welcome to API"
	}
	hr.GET("/", serveWelcome(welcome))
	hr.GET("/health", serveHealth)

	ins := cfg.Instrument
	if ins == nil {
		ins = instrument.NewNoop()
	}

	return &Router{
		hr:         hr,
		errorCodec: encodeError,
		encoder:    encodeSuccess,
		mws: []Middleware{
			middlewareRecoverer,
			middlewareIP,
			middlewareCorrelationID(cfg.UUID),
			middlewareObservability(cfg.Config, ins),
			middlewareAuthentication(cfg.Verifier, publicEndpoints(cfg.Public)),
		},
	}
}

type welcomeResponse struct {
	Message string `json:"message" example:"Welcome to API"`
}

type healthResponse struct {
	Status string `json:"status" example:"ok"`
}

// serveWelcome godoc
// @Summary Welcome message
// @Description Answers with the configured welcome message. Needs no token.
// @Tags System
// @Produce json
// @Success 200 {object} router.welcomeResponse "Welcome message"
// @Router / [get]
func serveWelcome(msg string) httprouter.Handle {
	return func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		writeJSON(w, welcomeResponse{Message: msg}, http.StatusOK)
	}
}

// serveHealth godoc
// @Summary Liveness check
// @Tags System
// @Produce json
// @Success 200 {object} router.healthResponse "Service is up"
// @Router /health [get]
func serveHealth(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, healthResponse{Status: "ok"}, http.StatusOK)
}

func publicEndpoints(routes []string) map[string]map[string]struct{} {
	out := map[string]map[string]struct{}{
		http.MethodGet: {"/": {}, "/health": {}},
	}

	for _, route := range routes {
		method, path, ok := strings.Cut(strings.TrimSpace(route), " ")
		if !ok {
			slog.Warn("router: ignoring public route without method", "route", route)
			continue
		}
		method = strings.ToUpper(method)
		if out[method] == nil {
			out[method] = map[string]struct{}{}
		}
		out[method][strings.TrimSpace(path)] = struct{}{}
	}

	return out
}

func encodeError(_ context.Context, w http.ResponseWriter, err error) {
	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
		return
	}

	resp := errorResponse{Message: gerr.Msg()}

	var errValidate validator.V10ValidationError
	if errors.As(err, &errValidate) {
		resp.Error = errValidate.Values()
	} else if len(gerr.Fields()) > 0 {
		resp.Error = gerr.Fields()
	}

	writeJSON(w, resp, gerr.StatusCode())
}

func encodeSuccess(_ context.Context, w http.ResponseWriter, resp any) {
	code := http.StatusOK
	if sc, ok := resp.(interface{ StatusCode() int }); ok {
		code = sc.StatusCode()
	}

	if code == http.StatusNoContent || resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	msg := "request has been successfully"
	if m, ok := resp.(interface{ Message() string }); ok {
		msg = m.Message()
	}

	var meta map[string]any
	if m, ok := resp.(interface{ Meta() map[string]any }); ok {
		meta = m.Meta()
	}

	writeJSON(w, successResponse{Message: msg, Data: resp, Meta: meta}, code)
}

// GET registers a GET endpoint using the application Handler signature.
func (r *Router) GET(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodGet, path, h, mws...)
}

// GETRaw registers a GET endpoint that writes directly to the response writer.
func (r *Router) GETRaw(path string, h http.Handler, mws ...Middleware) {
	r.hr.Handler(http.MethodGet, path, Chain(h, append(r.mws, mws...)...))
}

// POST registers a POST endpoint using the application Handler signature.
func (r *Router) POST(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodPost, path, h, mws...)
}

func (r *Router) endpoint(method, path string, h Handler, mws ...Middleware) {
	r.hr.Handler(method, path, Chain(http.HandlerFunc(func(w http.ResponseWriter, re *http.Request) {
		resp, err := h(&Request{Request: re})
		if err != nil {
			if setter, ok := w.(interface{ SetError(error) }); ok {
				setter.SetError(err)
			}
			r.errorCodec(re.Context(), w, err)
			return
		}
		r.encoder(re.Context(), w, resp)
	}), append(r.mws, mws...)...))
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.hr.ServeHTTP(w, req)
}

func writeJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("server: failed to encode data to json", "error", err)
	}
}
