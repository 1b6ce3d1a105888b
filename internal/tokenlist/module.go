package tokenlist

import (
	"context"
	"log/slog"

	"github.com/MichValwin/JWT-listing/internal/pkg/config"
	"github.com/MichValwin/JWT-listing/internal/pkg/goroutine"
	"github.com/MichValwin/JWT-listing/internal/pkg/instrument"
	"github.com/MichValwin/JWT-listing/internal/pkg/jwt"
	"github.com/MichValwin/JWT-listing/internal/pkg/router"
	"github.com/MichValwin/JWT-listing/internal/pkg/validator"
	"github.com/MichValwin/JWT-listing/internal/tokenlist/entity"
	"github.com/MichValwin/JWT-listing/internal/tokenlist/inbound"
	"github.com/MichValwin/JWT-listing/internal/tokenlist/usecase"
)

// PublicRoutes lists the routes of this module that skip authentication.
var PublicRoutes = []string{
	"GET " + inbound.PathTokens,
	"POST " + inbound.PathInspect,
}

type Dependency struct {
	Ctx        context.Context            `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	Issuer     jwt.Issuer                 `validate:"required"`
	Inspector  jwt.Inspector              `validate:"required"`
}

// Module is the wired token list. It is the token source of the API docs.
type Module struct {
	uc *usecase.Usecase
}

// Tokens returns the current demo roster.
func (m *Module) Tokens() []jwt.NamedToken {
	return m.uc.Tokens()
}

func New(dep Dependency) (*Module, error) {
	if err := dep.Validator.Validate(dep); err != nil {
		return nil, err
	}

	identities, err := LoadRoster(dep.Config)
	if err != nil {
		return nil, err
	}

	uc, err := usecase.New(dep.Ctx, usecase.Dependency{
		Issuer:     dep.Issuer,
		Inspector:  dep.Inspector,
		Validator:  dep.Validator,
		Instrument: dep.Instrument,
		Identities: identities,
	})
	if err != nil {
		return nil, err
	}

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	if every := dep.Config.GetSecond("jwt.roster_refresh_seconds"); every > 0 {
		if err := dep.Goroutine.Go(dep.Ctx, "tokenlist.refresher", func(ctx context.Context) error {
			return uc.RunRefresher(ctx, every)
		}); err != nil {
			return nil, err
		}
		slog.Info("token roster refresher started", "interval", every.String())
	}

	return &Module{uc: uc}, nil
}

// LoadRoster reads jwt.roster, falling back to the Admin/User pair.
func LoadRoster(cfg config.Config) ([]jwt.Identity, error) {
	var ids []jwt.Identity
	if err := cfg.UnmarshalKey("jwt.roster", &ids); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		ids = entity.DefaultRoster()
	}

	return entity.NormalizeRoster(ids), nil
}
