package usecase

import (
	"context"
	"log/slog"

	"github.com/MichValwin/JWT-listing/internal/pkg/goerror"
	"github.com/MichValwin/JWT-listing/internal/pkg/instrument"
	"github.com/MichValwin/JWT-listing/internal/pkg/jwt"
)

type Usecase struct {
	ins instrument.Instrumentation
}

type Dependency struct {
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{ins: dep.Instrument}
}

type HelloOutput struct {
	Claims jwt.Claims
}

// Hello greets the caller whose verified claims sit in ctx.
func (s *Usecase) Hello(ctx context.Context) (*HelloOutput, error) {
	ctx, span := s.ins.Tracer("greeting.usecase").Start(ctx, "Hello")
	defer span.End()

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		slog.WarnContext(ctx, "hello called without verified claims")
		return nil, goerror.NewUnauthorized(nil, "Authentication required")
	}

	slog.InfoContext(ctx, "hello", "name", claims["name"])

	return &HelloOutput{Claims: claims}, nil
}
