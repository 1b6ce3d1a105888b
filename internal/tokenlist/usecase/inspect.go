package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/MichValwin/JWT-listing/internal/pkg/goerror"
	"github.com/MichValwin/JWT-listing/internal/tokenlist/entity"
)

type InspectInput struct {
	Token string `json:"token" validate:"max=8192"`
}

// Inspect builds the panel for the given token. An empty token yields the
// roster buttons alone; a token that cannot be decoded is rejected.
func (s *Usecase) Inspect(ctx context.Context, in InspectInput) (*entity.Panel, error) {
	ctx, span := s.startSpan(ctx, "Inspect")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	token := strings.TrimSpace(in.Token)
	panel := entity.BuildPanel(s.Tokens(), token, s.inspector)

	if token != "" && panel.Current == nil {
		slog.InfoContext(ctx, "token is not displayable")
		return nil, goerror.NewBusiness("token is not displayable", goerror.CodeInvalidInput)
	}

	return &panel, nil
}
