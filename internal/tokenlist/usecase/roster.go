package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/MichValwin/JWT-listing/internal/pkg/goerror"
	"github.com/MichValwin/JWT-listing/internal/pkg/jwt"
)

type ListTokensOutput struct {
	Tokens []jwt.NamedToken
}

func (s *Usecase) ListTokens(ctx context.Context) (*ListTokensOutput, error) {
	_, span := s.startSpan(ctx, "ListTokens")
	defer span.End()

	return &ListTokensOutput{Tokens: s.Tokens()}, nil
}

// Refresh signs every configured identity again and swaps the roster in one
// step. On failure the previous roster stays in place.
func (s *Usecase) Refresh(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Refresh")
	defer span.End()

	roster, err := s.issuer.IssueBatch(s.identities)
	if err != nil {
		slog.ErrorContext(ctx, "failed to mint token roster", "error", err)
		span.RecordError(err)
		return goerror.NewServer(err)
	}

	s.mu.Lock()
	s.roster = roster
	s.mu.Unlock()

	slog.InfoContext(ctx, "token roster minted", "count", len(roster))

	return nil
}

// RunRefresher re-mints the roster every interval until ctx is done.
func (s *Usecase) RunRefresher(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				slog.WarnContext(ctx, "keeping previous token roster", "error", err)
			}
		}
	}
}
