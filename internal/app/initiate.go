package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/rs/cors"

	"github.com/MichValwin/JWT-listing/internal/pkg/apidoc"
	"github.com/MichValwin/JWT-listing/internal/pkg/clock"
	"github.com/MichValwin/JWT-listing/internal/pkg/config"
	"github.com/MichValwin/JWT-listing/internal/pkg/goroutine"
	"github.com/MichValwin/JWT-listing/internal/pkg/instrument"
	"github.com/MichValwin/JWT-listing/internal/pkg/jwt"
	"github.com/MichValwin/JWT-listing/internal/pkg/router"
	"github.com/MichValwin/JWT-listing/internal/pkg/uid"
	"github.com/MichValwin/JWT-listing/internal/pkg/validator"
	"github.com/MichValwin/JWT-listing/internal/tokenlist"
)

const defaultHTTPAddress = ":2000"

func (a *App) initConfig() {
	cfg, err := config.NewViper(config.Path())
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	if tz := cfg.GetString("app.tz"); tz != "" {
		//nolint:errcheck,gosec // ignore error
		os.Setenv("TZ", tz)
	}

	a.config = cfg
}

func (a *App) initInstrument() {
	ins, err := instrument.New(a.ctx, &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
	})
	if err != nil {
		slog.Error("failed to init instrumentation", "error", err)
		os.Exit(1)
	}
	a.ins = ins
}

func (a *App) initLibraries() {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.goroutine = goroutine.NewManager(a.config.GetInt("app.server.max_goroutine"))

	validator, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		os.Exit(1)
	}
	a.validator = validator
}

func (a *App) initJWT() {
	symmetric, err := jwt.NewSymmetric(jwt.Config{
		Secret:    []byte(a.config.GetString("jwt.secret")),
		Algorithm: jwt.Algorithm(strings.ToUpper(strings.TrimSpace(a.config.GetString("jwt.algorithm")))),
		TTL:       a.config.GetSecond("jwt.ttl_seconds"),
		Clock:     a.clock,
		Meter:     a.ins.Meter("jwt"),
	})
	if err != nil {
		slog.Error("failed to init jwt token", "error", err)
		os.Exit(1)
	}
	a.jwt = symmetric
	a.inspector = jwt.NewIntrospector(a.clock)

	slog.Info("jwt signer ready", "algorithm", string(symmetric.Algorithm()), "ttl", symmetric.TTL().String())
}

func (a *App) initHTTPServer() {
	public := append([]string{"GET " + apidoc.PathUI, "GET " + apidoc.PathDoc}, tokenlist.PublicRoutes...)

	a.router = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		Verifier:   a.jwt,
		Instrument: a.ins,
		Public:     public,
		Welcome:    a.config.GetString("app.welcome"),
	})

	routerWithCORS := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("app.server.cors"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(a.router)

	addr := a.config.GetString("app.server.http.address")
	if addr == "" {
		addr = defaultHTTPAddress
	}

	a.httpServer = &http.Server{
		Addr:              addr,
		Handler:           routerWithCORS,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}
}

func (a *App) initClosers() {
	a.closers = []struct {
		name string
		fn   func(context.Context) error
	}{
		{
			name: "Instrument",
			fn: func(ctx context.Context) error {
				return a.ins.Shutdown(ctx)
			},
		},
		{
			name: "Config",
			fn: func(context.Context) error {
				return a.config.Close()
			},
		},
	}
}
