package app

import (
	"log/slog"
	"os"

	"github.com/MichValwin/JWT-listing/internal/greeting"
	"github.com/MichValwin/JWT-listing/internal/pkg/apidoc"
	"github.com/MichValwin/JWT-listing/internal/tokenlist"
)

func (a *App) initModules() {
	if err := greeting.New(greeting.Dependency{
		Router:     a.router,
		Instrument: a.ins,
		Validator:  a.validator,
	}); err != nil {
		slog.Error("failed to init module greeting", "error", err)
		os.Exit(1)
	}

	tokens, err := tokenlist.New(tokenlist.Dependency{
		Ctx:        a.ctx,
		Router:     a.router,
		Goroutine:  a.goroutine,
		Config:     a.config,
		Instrument: a.ins,
		Validator:  a.validator,
		Issuer:     a.jwt,
		Inspector:  a.inspector,
	})
	if err != nil {
		slog.Error("failed to init module tokenlist", "error", err)
		os.Exit(1)
	}

	a.docs = apidoc.New(tokens)
	a.docs.Register(a.router)
}
