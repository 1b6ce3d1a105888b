package jwt

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"maps"
	"math"
	"strings"
	"time"

	libJWT "github.com/golang-jwt/jwt/v5"

	"github.com/MichValwin/JWT-listing/internal/pkg/clock"
)

// IssuedAtLayout renders iat as ISO-8601 UTC with millisecond precision.
const IssuedAtLayout = "2006-01-02T15:04:05.000Z"

// Derived field names added next to the claims when an Introspection is encoded.
const (
	FieldIsExpired = "isExpired"
	FieldExpiresIn = "expiresIn"
	FieldIssuedAt  = "issuedAt"
)

// Introspection is the decoded payload of a token plus facts derived at the
// moment it was computed. It is never cached.
type Introspection struct {
	// Claims are the decoded payload claims, as found in the token.
	Claims Claims
	// IsExpired is true when exp is present and lies before now.
	IsExpired bool
	// ExpiresIn is exp minus now in seconds, zero when expired or without exp.
	ExpiresIn int64
	// IssuedAt is iat rendered with IssuedAtLayout, empty without iat or when
	// iat falls outside years 0000 to 9999.
	IssuedAt string
}

// MarshalJSON flattens the claims and the derived fields into one object.
func (in Introspection) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(in.Claims)+3)
	maps.Copy(out, in.Claims)
	out[FieldIsExpired] = in.IsExpired
	out[FieldExpiresIn] = in.ExpiresIn
	out[FieldIssuedAt] = in.IssuedAt

	return json.Marshal(out)
}

// Introspector decodes tokens without verifying them.
type Introspector struct {
	clock  clock.Clocker
	parser *libJWT.Parser
}

// NewIntrospector returns an Introspector reading time from clk, or the system
// clock when clk is nil.
func NewIntrospector(clk clock.Clocker) *Introspector {
	if clk == nil {
		clk = clock.New()
	}

	return &Introspector{
		clock:  clk,
		parser: libJWT.NewParser(libJWT.WithPaddingAllowed()),
	}
}

// Introspect decodes the payload segment of token. It does not check the
// signature and returns nil for anything that is not three segments with a
// base64url JSON object, and nothing after it, in the middle.
func (i *Introspector) Introspect(token string) *Introspection {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil
	}

	raw, err := i.parser.DecodeSegment(parts[1])
	if err != nil {
		return nil
	}

	var claims Claims
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&claims); err != nil || claims == nil {
		return nil
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil
	}

	now := float64(clock.UnixSeconds(i.clock))
	result := &Introspection{Claims: claims}

	// Non-numeric exp or iat are treated as absent.
	if exp, ok := numericClaim(claims, ClaimExpiresAt); ok {
		result.IsExpired = exp < now
		if !result.IsExpired {
			result.ExpiresIn = clampSeconds(exp - now)
		}
	}

	if iat, ok := numericClaim(claims, ClaimIssuedAt); ok {
		result.IssuedAt = formatIssuedAt(iat)
	}

	return result
}

// Bounds of a four digit ISO-8601 year, in milliseconds since the epoch.
const (
	minISOMillis = -62_167_219_200_000 // 0000-01-01T00:00:00.000Z
	maxISOMillis = 253_402_300_799_999 // 9999-12-31T23:59:59.999Z
)

// numericClaim reads key as a finite JSON number.
func numericClaim(claims Claims, key string) (float64, bool) {
	n, ok := claims[key].(json.Number)
	if !ok {
		return 0, false
	}

	f, err := n.Float64()
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}

	return f, true
}

func clampSeconds(d float64) int64 {
	if d >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(d)
}

// formatIssuedAt renders iat seconds, fractions included, at millisecond
// precision. Instants outside a four digit year render empty.
func formatIssuedAt(iat float64) string {
	ms := math.Trunc(iat * 1000)
	if ms < minISOMillis || ms > maxISOMillis {
		return ""
	}

	return time.UnixMilli(int64(ms)).UTC().Format(IssuedAtLayout)
}
