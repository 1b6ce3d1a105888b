package inbound

import (
	"context"

	"github.com/MichValwin/JWT-listing/internal/greeting/usecase"
	"github.com/MichValwin/JWT-listing/internal/pkg/router"
)

const PathHello = "/Hello"

type uc interface {
	Hello(ctx context.Context) (*usecase.HelloOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET(PathHello, end.Hello)
}
