package usecase

import (
	"context"
	"slices"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/MichValwin/JWT-listing/internal/pkg/instrument"
	"github.com/MichValwin/JWT-listing/internal/pkg/jwt"
	"github.com/MichValwin/JWT-listing/internal/pkg/validator"
)

type Usecase struct {
	issuer     jwt.Issuer
	inspector  jwt.Inspector
	validator  validator.Validator
	ins        instrument.Instrumentation
	identities []jwt.Identity

	mu     sync.RWMutex
	roster []jwt.NamedToken
}

type Dependency struct {
	Issuer     jwt.Issuer
	Inspector  jwt.Inspector
	Validator  validator.Validator
	Instrument instrument.Instrumentation
	Identities []jwt.Identity
}

// New mints the roster once. Startup fails if any identity cannot be signed.
func New(ctx context.Context, dep Dependency) (*Usecase, error) {
	s := &Usecase{
		issuer:     dep.Issuer,
		inspector:  dep.Inspector,
		validator:  dep.Validator,
		ins:        dep.Instrument,
		identities: dep.Identities,
	}

	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// Tokens returns a copy of the current roster.
func (s *Usecase) Tokens() []jwt.NamedToken {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.roster)
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("tokenlist.usecase").Start(ctx, name)
}
