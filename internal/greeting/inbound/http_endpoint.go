package inbound

import (
	"github.com/MichValwin/JWT-listing/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// Hello godoc
// @Summary Hello world
// @Description Answers "Hello world" to a caller holding a valid bearer token.
// @Tags Greeting
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse{data=HelloResponse} "Hello world"
// @Failure 401 {object} router.errorResponse "Missing, invalid or expired token"
// @Router /Hello [get]
func (h *HTTPEndpoint) Hello(r *router.Request) (any, error) {
	out, err := h.uc.Hello(r.Context())
	if err != nil {
		return nil, err
	}

	name, _ := out.Claims["name"].(string)
	role, _ := out.Claims["role"].(string)

	return HelloResponse{Name: name, Role: role}, nil
}
