package greeting

import (
	"github.com/MichValwin/JWT-listing/internal/greeting/inbound"
	"github.com/MichValwin/JWT-listing/internal/greeting/usecase"
	"github.com/MichValwin/JWT-listing/internal/pkg/instrument"
	"github.com/MichValwin/JWT-listing/internal/pkg/router"
	"github.com/MichValwin/JWT-listing/internal/pkg/validator"
)

type Dependency struct {
	Router     *router.Router             `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{Instrument: dep.Instrument})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
