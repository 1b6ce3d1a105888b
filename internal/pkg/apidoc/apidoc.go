package apidoc

import (
	_ "embed"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-openapi/spec"
	"github.com/swaggo/swag/v2"

	"github.com/MichValwin/JWT-listing/internal/pkg/apidoc/docs"
	"github.com/MichValwin/JWT-listing/internal/pkg/jwt"
	"github.com/MichValwin/JWT-listing/internal/pkg/router"
)

// ExtensionTokens is the vendor extension carrying the demo tokens.
const ExtensionTokens = "x-custom-tokens"

// Routes served by Docs.
const (
	PathUI  = "/docs"
	PathDoc = "/docs/doc.json"
)

//go:embed swagger.html
var swaggerHTML []byte

// TokenSource provides the tokens listed in the document.
type TokenSource interface {
	Tokens() []jwt.NamedToken
}

// Docs renders the registered API document with the current demo tokens.
type Docs struct {
	source TokenSource
}

// New returns Docs listing the tokens of source.
func New(source TokenSource) *Docs {
	return &Docs{source: source}
}

// Document returns the Swagger 2 document with the token extension attached.
// The extension is always present, as an empty list when there are no tokens.
func (d *Docs) Document() ([]byte, error) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		return nil, err
	}

	var doc spec.Swagger
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, err
	}

	tokens := []jwt.NamedToken{}
	if d.source != nil {
		tokens = append(tokens, d.source.Tokens()...)
	}
	doc.AddExtension(ExtensionTokens, tokens)

	return json.Marshal(&doc)
}

// Register mounts the document and the UI page on r.
func (d *Docs) Register(r *router.Router) {
	r.GETRaw(PathDoc, http.HandlerFunc(d.serveDocument))
	r.GETRaw(PathUI, http.HandlerFunc(serveUI))
}

func (d *Docs) serveDocument(w http.ResponseWriter, r *http.Request) {
	body, err := d.Document()
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to build api document", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	//nolint:errcheck // client went away
	w.Write(body)
}

func serveUI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	//nolint:errcheck // client went away
	w.Write(swaggerHTML)
}
