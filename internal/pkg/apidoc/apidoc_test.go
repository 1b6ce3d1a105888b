package apidoc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MichValwin/JWT-listing/internal/pkg/jwt"
	"github.com/MichValwin/JWT-listing/internal/pkg/router"
)

type staticTokens []jwt.NamedToken

func (s staticTokens) Tokens() []jwt.NamedToken { return s }

func TestDocsDocument(t *testing.T) {
	t.Run("CarriesTokensAndBearerScheme", func(t *testing.T) {
		docs := New(staticTokens{{Name: "Admin", Token: "a.b.c"}, {Name: "User", Token: "d.e.f"}})

		raw, err := docs.Document()
		require.NoError(t, err)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(raw, &doc))

		assert.Equal(t, "2.0", doc["swagger"])
		info := doc["info"].(map[string]any)
		assert.Equal(t, "JWTListingExample", info["title"])
		assert.Equal(t, "MIT", info["license"].(map[string]any)["name"])

		tokens, ok := doc[ExtensionTokens].([]any)
		require.True(t, ok, "extension missing: %s", raw)
		require.Len(t, tokens, 2)
		assert.Equal(t, map[string]any{"name": "Admin", "token": "a.b.c"}, tokens[0])
		assert.Equal(t, "User", tokens[1].(map[string]any)["name"])

		secDefs := doc["securityDefinitions"].(map[string]any)
		bearer := secDefs["BearerAuth"].(map[string]any)
		assert.Equal(t, "apiKey", bearer["type"])
		assert.Equal(t, "Authorization", bearer["name"])

		paths := doc["paths"].(map[string]any)
		assert.Contains(t, paths, "/Hello")
		assert.Contains(t, paths, "/api/v1/tokens/inspect")
		assert.Contains(t, paths, "/health")
		hello := paths["/Hello"].(map[string]any)["get"].(map[string]any)
		assert.Equal(t, []any{"Greeting"}, hello["tags"])
	})

	t.Run("EmptyListWithoutSource", func(t *testing.T) {
		raw, err := New(nil).Document()
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"x-custom-tokens":[]`)
	})
}

func TestDocsRegister(t *testing.T) {
	r := router.NewRouter(router.Config{Public: []string{"GET " + PathUI, "GET " + PathDoc}})
	New(staticTokens{{Name: "Admin", Token: "a.b.c"}}).Register(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, PathDoc, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"name":"Admin"`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, PathUI, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, rec.Body.String(), "/docs/doc.json")
}
