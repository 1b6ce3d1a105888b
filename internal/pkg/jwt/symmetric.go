package jwt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"time"

	libJWT "github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/MichValwin/JWT-listing/internal/pkg/clock"
)

// Symmetric implements token issuance and verification with a shared HMAC secret.
type Symmetric struct {
	secret []byte
	alg    Algorithm
	ttl    time.Duration
	clock  clock.Clocker
	issued metric.Int64Counter
}

// NewSymmetric validates cfg and builds a Symmetric implementation.
func NewSymmetric(cfg Config) (*Symmetric, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrInvalidSecret
	}

	alg := cfg.Algorithm
	if alg == "" {
		alg = HS256
	}
	if _, err := signingMethod(alg); err != nil {
		return nil, err
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	if ttl < time.Second {
		return nil, ErrInvalidTTL
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	meter := cfg.Meter
	if meter == nil {
		meter = noop.NewMeterProvider().Meter("jwt")
	}

	issued, err := meter.Int64Counter(
		"jwt.tokens.issued",
		metric.WithDescription("Number of signed tokens issued"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, err
	}

	return &Symmetric{
		secret: cfg.Secret,
		alg:    alg,
		ttl:    ttl,
		clock:  clk,
		issued: issued,
	}, nil
}

// Algorithm reports the configured signing algorithm.
func (s *Symmetric) Algorithm() Algorithm {
	return s.alg
}

// TTL reports the default time-to-live.
func (s *Symmetric) TTL() time.Duration {
	return s.ttl
}

// Issue signs claims with the default TTL.
func (s *Symmetric) Issue(claims Claims) (string, error) {
	return s.IssueWithTTL(claims, s.ttl)
}

// IssueWithTTL signs claims, stamping iat with the current second and exp with
// iat plus ttl. The caller's map is left untouched.
func (s *Symmetric) IssueWithTTL(claims Claims, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrInvalidSecret
	}
	if ttl < time.Second {
		return "", ErrInvalidTTL
	}

	method, err := signingMethod(s.alg)
	if err != nil {
		return "", err
	}

	payload := make(libJWT.MapClaims, len(claims)+2)
	maps.Copy(payload, claims)

	iat := clock.UnixSeconds(s.clock)
	payload[ClaimIssuedAt] = iat
	payload[ClaimExpiresAt] = iat + int64(ttl/time.Second)

	if _, err := json.Marshal(payload); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidClaims, err)
	}

	token, err := libJWT.NewWithClaims(method, payload).SignedString(s.secret)
	if err != nil {
		return "", err
	}

	if s.issued != nil {
		s.issued.Add(context.Background(), 1, metric.WithAttributes(attribute.String("alg", string(s.alg))))
	}

	return token, nil
}

// IssueBatch signs every identity in order. The first failure aborts the batch.
func (s *Symmetric) IssueBatch(ids []Identity) ([]NamedToken, error) {
	out := make([]NamedToken, 0, len(ids))
	for i, id := range ids {
		token, err := s.Issue(id.Claims)
		if err != nil {
			return nil, fmt.Errorf("issue token %d (%s): %w", i, id.Name, err)
		}
		out = append(out, NamedToken{Name: id.Name, Token: token})
	}

	return out, nil
}

// Verify checks structure, signature and expiry, in that order, and returns
// the token claims.
func (s *Symmetric) Verify(tokenStr string) (Claims, error) {
	if len(s.secret) == 0 {
		return nil, ErrInvalidSecret
	}

	// Expiry is compared in whole seconds: exp < now is expired, exp == now is
	// still valid. The one second leeway against a truncated clock gives that.
	parser := libJWT.NewParser(
		libJWT.WithValidMethods([]string{string(s.alg)}),
		libJWT.WithExpirationRequired(),
		libJWT.WithJSONNumber(),
		libJWT.WithLeeway(time.Second),
		libJWT.WithTimeFunc(func() time.Time {
			return s.clock.Now().Truncate(time.Second)
		}),
	)

	claims := libJWT.MapClaims{}
	token, err := parser.ParseWithClaims(tokenStr, claims, func(*libJWT.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, mapVerifyError(err)
	}

	if !token.Valid {
		return nil, ErrMalformedToken
	}

	return Claims(claims), nil
}

func mapVerifyError(err error) error {
	switch {
	case errors.Is(err, libJWT.ErrTokenMalformed),
		errors.Is(err, libJWT.ErrTokenUnverifiable),
		errors.Is(err, libJWT.ErrTokenRequiredClaimMissing):
		return fmt.Errorf("%w: %w", ErrMalformedToken, err)
	case errors.Is(err, libJWT.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrSignatureInvalid, err)
	case errors.Is(err, libJWT.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
}

func signingMethod(alg Algorithm) (*libJWT.SigningMethodHMAC, error) {
	switch alg {
	case HS256:
		return libJWT.SigningMethodHS256, nil
	case HS384:
		return libJWT.SigningMethodHS384, nil
	case HS512:
		return libJWT.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidAlgorithm, alg)
	}
}
