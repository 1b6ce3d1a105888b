package inbound

import (
	"context"

	"github.com/MichValwin/JWT-listing/internal/pkg/router"
	"github.com/MichValwin/JWT-listing/internal/tokenlist/entity"
	"github.com/MichValwin/JWT-listing/internal/tokenlist/usecase"
)

// Routes served by the module. Both are public.
const (
	PathTokens  = "/api/v1/tokens"
	PathInspect = "/api/v1/tokens/inspect"
)

type uc interface {
	ListTokens(ctx context.Context) (*usecase.ListTokensOutput, error)
	Inspect(ctx context.Context, in usecase.InspectInput) (*entity.Panel, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET(PathTokens, end.ListTokens)
	r.POST(PathInspect, end.Inspect)
}
