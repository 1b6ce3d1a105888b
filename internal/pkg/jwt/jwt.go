package jwt

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/MichValwin/JWT-listing/internal/pkg/clock"
)

var (
	// ErrInvalidSecret is returned when the signing secret is empty.
	ErrInvalidSecret = errors.New("jwt: signing secret is empty")

	// ErrInvalidClaims is returned when the claims set cannot be serialized to JSON.
	ErrInvalidClaims = errors.New("jwt: claims are not JSON serializable")

	// ErrInvalidTTL is returned when the time-to-live is shorter than one second.
	ErrInvalidTTL = errors.New("jwt: ttl must be at least one second")

	// ErrInvalidAlgorithm is returned when the configured algorithm is not an HMAC one.
	ErrInvalidAlgorithm = errors.New("jwt: unsupported signing algorithm")

	// ErrMalformedToken is returned when the token structure or encoding is broken,
	// or a required claim is missing.
	ErrMalformedToken = errors.New("jwt: malformed token")

	// ErrSignatureInvalid is returned when the signature does not match or the
	// algorithm is not the expected one.
	ErrSignatureInvalid = errors.New("jwt: signature is invalid")

	// ErrTokenExpired is returned when exp lies before the current second.
	ErrTokenExpired = errors.New("jwt: token has expired")
)

const (
	// ClaimIssuedAt is the reserved issued-at claim, set by the issuer.
	ClaimIssuedAt = "iat"
	// ClaimExpiresAt is the reserved expiry claim, set by the issuer.
	ClaimExpiresAt = "exp"
)

// Algorithm names an HMAC signing algorithm.
type Algorithm string

// Supported HMAC algorithms.
const (
	HS256 Algorithm = "HS256"
	HS384 Algorithm = "HS384"
	HS512 Algorithm = "HS512"
)

// DefaultTTL is used when Config.TTL is zero.
const DefaultTTL = 300 * time.Second

// Claims is an arbitrary claims set. Values must be JSON serializable.
type Claims map[string]any

// Identity is a named claims set to be signed as part of a batch.
type Identity struct {
	Name   string `yaml:"name" mapstructure:"name" json:"name"`
	Claims Claims `yaml:"claims" mapstructure:"claims" json:"claims"`
}

// NamedToken pairs a display name with its signed token.
type NamedToken struct {
	Name  string `json:"name"`
	Token string `json:"token"`
}

// Issuer signs claims sets.
type Issuer interface {
	Issue(claims Claims) (string, error)
	IssueBatch(ids []Identity) ([]NamedToken, error)
}

// Verifier checks a token and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// Inspector decodes a token without checking its signature.
type Inspector interface {
	Introspect(token string) *Introspection
}

// Config defines the inputs for building a Symmetric implementation.
type Config struct {
	// Secret is the HMAC signing key.
	Secret []byte
	// Algorithm defaults to HS256.
	Algorithm Algorithm
	// TTL is the default token time-to-live. Zero means DefaultTTL.
	TTL time.Duration
	// Clock provides the current time source. Nil means the system clock.
	Clock clock.Clocker
	// Meter records the jwt.tokens.issued counter. Nil disables it.
	Meter metric.Meter
}

type jwtContextKey struct{}

// GetAuth returns the verified claims stored in the context, if any.
func GetAuth(ctx context.Context) Claims {
	clm, ok := ctx.Value(jwtContextKey{}).(Claims)
	if !ok {
		return nil
	}

	return clm
}

// SetAuth stores verified claims in the context.
func SetAuth(ctx context.Context, clm Claims) context.Context {
	return context.WithValue(ctx, jwtContextKey{}, clm)
}

// Issue signs claims with secret using HS256 and the system clock.
func Issue(claims Claims, secret []byte, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", ErrInvalidSecret
	}

	s := &Symmetric{secret: secret, alg: HS256, ttl: ttl, clock: clock.New()}
	return s.IssueWithTTL(claims, ttl)
}

// Verify checks an HS256 token against secret using the system clock.
func Verify(token string, secret []byte) (Claims, error) {
	if len(secret) == 0 {
		return nil, ErrInvalidSecret
	}

	s := &Symmetric{secret: secret, alg: HS256, ttl: DefaultTTL, clock: clock.New()}
	return s.Verify(token)
}

// Introspect decodes token against the system clock. It returns nil when the
// token cannot be decoded.
func Introspect(token string) *Introspection {
	return NewIntrospector(nil).Introspect(token)
}
