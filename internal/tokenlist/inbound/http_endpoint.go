package inbound

import (
	"github.com/samber/lo"

	"github.com/MichValwin/JWT-listing/internal/pkg/jwt"
	"github.com/MichValwin/JWT-listing/internal/pkg/router"
	"github.com/MichValwin/JWT-listing/internal/tokenlist/usecase"
)

// HTTPEndpoint exposes the demo token roster and the token panel.
type HTTPEndpoint struct {
	uc uc
}

// ListTokens returns the demo tokens minted at startup.
// @Summary List demo tokens
// @Description Returns the configured identities with a freshly signed token each.
// @Tags Tokens
// @Produce json
// @Success 200 {object} router.successResponse{data=ListTokensResponse} "Demo tokens"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/tokens [get]
func (h *HTTPEndpoint) ListTokens(r *router.Request) (any, error) {
	out, err := h.uc.ListTokens(r.Context())
	if err != nil {
		return nil, err
	}

	return ListTokensResponse(lo.Map(out.Tokens, func(t jwt.NamedToken, _ int) TokenItem {
		return TokenItem{Name: t.Name, Token: t.Token}
	})), nil
}

// Inspect decodes a token for display next to the roster buttons.
// @Summary Decode a token
// @Description Decodes the payload without checking the signature. Never use the result for authorization.
// @Tags Tokens
// @Accept json
// @Produce json
// @Param request body InspectRequest true "Token to decode, empty for the buttons only"
// @Success 200 {object} router.successResponse{data=InspectResponse} "Token panel"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Token is not displayable"
// @Router /api/v1/tokens/inspect [post]
func (h *HTTPEndpoint) Inspect(r *router.Request) (any, error) {
	var req InspectRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	panel, err := h.uc.Inspect(r.Context(), usecase.InspectInput{Token: req.Token})
	if err != nil {
		return nil, err
	}

	return InspectResponse{Panel: *panel}, nil
}
