package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/MichValwin/JWT-listing/internal/pkg/clock"
	"github.com/MichValwin/JWT-listing/internal/pkg/goerror"
	"github.com/MichValwin/JWT-listing/internal/pkg/instrument"
	"github.com/MichValwin/JWT-listing/internal/pkg/jwt"
	"github.com/MichValwin/JWT-listing/internal/pkg/validator"
	"github.com/MichValwin/JWT-listing/internal/tokenlist/entity"
)

const issuedAt = 1_700_000_000

type flakyIssuer struct {
	jwt.Issuer
	calls     atomic.Int32
	failAfter int32
}

func (f *flakyIssuer) IssueBatch(ids []jwt.Identity) ([]jwt.NamedToken, error) {
	if f.calls.Inc() > f.failAfter {
		return nil, errors.New("signer unavailable")
	}
	return f.Issuer.IssueBatch(ids)
}

func newUsecase(t *testing.T, clk clock.Clocker, issuer jwt.Issuer) (*Usecase, error) {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	if issuer == nil {
		s, err := jwt.NewSymmetric(jwt.Config{Secret: []byte("usecase-secret"), Clock: clk})
		require.NoError(t, err)
		issuer = s
	}

	return New(t.Context(), Dependency{
		Issuer:     issuer,
		Inspector:  jwt.NewIntrospector(clk),
		Validator:  v,
		Instrument: instrument.NewNoop(),
		Identities: entity.NormalizeRoster(entity.DefaultRoster()),
	})
}

func statusOf(t *testing.T, err error) int {
	t.Helper()

	var gerr *goerror.Error
	require.True(t, errors.As(err, &gerr), "expected goerror, got %T", err)
	return gerr.StatusCode()
}

func TestNewMintsRoster(t *testing.T) {
	uc, err := newUsecase(t, clock.NewFixed(time.Unix(issuedAt, 0)), nil)
	require.NoError(t, err)

	out, err := uc.ListTokens(t.Context())
	require.NoError(t, err)
	require.Len(t, out.Tokens, 2)
	assert.Equal(t, "Admin", out.Tokens[0].Name)
	assert.Equal(t, "User", out.Tokens[1].Name)

	verifier, err := jwt.NewSymmetric(jwt.Config{
		Secret: []byte("usecase-secret"),
		Clock:  clock.NewFixed(time.Unix(issuedAt+1, 0)),
	})
	require.NoError(t, err)

	claims, err := verifier.Verify(out.Tokens[0].Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "Admin", claims["name"])
}

func TestNewFailsWhenSigningFails(t *testing.T) {
	base, err := jwt.NewSymmetric(jwt.Config{Secret: []byte("s")})
	require.NoError(t, err)

	_, err = newUsecase(t, clock.New(), &flakyIssuer{Issuer: base, failAfter: 0})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
}

func TestRefreshKeepsPreviousRosterOnFailure(t *testing.T) {
	base, err := jwt.NewSymmetric(jwt.Config{Secret: []byte("s")})
	require.NoError(t, err)

	uc, err := newUsecase(t, clock.New(), &flakyIssuer{Issuer: base, failAfter: 1})
	require.NoError(t, err)
	before := uc.Tokens()

	require.Error(t, uc.Refresh(t.Context()))
	assert.Equal(t, before, uc.Tokens())
}

func TestRunRefresher(t *testing.T) {
	clk := clock.NewFixed(time.Unix(issuedAt, 0))
	uc, err := newUsecase(t, clk, nil)
	require.NoError(t, err)
	first := uc.Tokens()[0].Token

	clk.Advance(time.Minute)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- uc.RunRefresher(ctx, 10*time.Millisecond) }()

	require.Eventually(t, func() bool {
		return uc.Tokens()[0].Token != first
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestInspect(t *testing.T) {
	clk := clock.NewFixed(time.Unix(issuedAt, 0))
	uc, err := newUsecase(t, clk, nil)
	require.NoError(t, err)
	admin := uc.Tokens()[0].Token

	t.Run("EmptyTokenListsButtons", func(t *testing.T) {
		p, err := uc.Inspect(t.Context(), InspectInput{})
		require.NoError(t, err)
		assert.Len(t, p.Buttons, 2)
		assert.Equal(t, entity.StatusNone, p.Status)
	})

	t.Run("RosterToken", func(t *testing.T) {
		p, err := uc.Inspect(t.Context(), InspectInput{Token: "  " + admin + " "})
		require.NoError(t, err)
		assert.True(t, p.Buttons[0].Active)
		assert.Equal(t, entity.StatusValid, p.Status)
		assert.Equal(t, "name:Admin, role:admin", p.Summary)
	})

	t.Run("Undecodable", func(t *testing.T) {
		_, err := uc.Inspect(t.Context(), InspectInput{Token: "not.a.valid.jwt.x"})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))
	})

	t.Run("TooLong", func(t *testing.T) {
		_, err := uc.Inspect(t.Context(), InspectInput{Token: strings.Repeat("a", 8193)})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))
	})
}
