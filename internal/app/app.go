package app

import (
	"context"
	"net/http"

	"github.com/MichValwin/JWT-listing/internal/pkg/apidoc"
	"github.com/MichValwin/JWT-listing/internal/pkg/clock"
	"github.com/MichValwin/JWT-listing/internal/pkg/config"
	"github.com/MichValwin/JWT-listing/internal/pkg/goroutine"
	"github.com/MichValwin/JWT-listing/internal/pkg/instrument"
	"github.com/MichValwin/JWT-listing/internal/pkg/jwt"
	"github.com/MichValwin/JWT-listing/internal/pkg/router"
	"github.com/MichValwin/JWT-listing/internal/pkg/uid"
	"github.com/MichValwin/JWT-listing/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	uuid      uid.StringID
	jwt       *jwt.Symmetric
	inspector *jwt.Introspector

	// server
	router     *router.Router
	docs       *apidoc.Docs
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
