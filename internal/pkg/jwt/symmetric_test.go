package jwt

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	libJWT "github.com/golang-jwt/jwt/v5"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/MichValwin/JWT-listing/internal/pkg/clock"
)

var testSecret = []byte("test-secret-for-unit-tests")

func fixedAt(sec int64) *clock.Fixed {
	return clock.NewFixed(time.Unix(sec, 0))
}

func newTestSymmetric(t *testing.T, clk clock.Clocker, alg Algorithm) *Symmetric {
	t.Helper()

	s, err := NewSymmetric(Config{Secret: testSecret, Algorithm: alg, TTL: 300 * time.Second, Clock: clk})
	if err != nil {
		t.Fatalf("NewSymmetric: %v", err)
	}
	return s
}

func decodePayload(t *testing.T, token string) map[string]any {
	t.Helper()

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(parts))
	}
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	return out
}

func TestNewSymmetric(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "EmptySecret", cfg: Config{}, wantErr: ErrInvalidSecret},
		{name: "UnknownAlgorithm", cfg: Config{Secret: testSecret, Algorithm: "RS256"}, wantErr: ErrInvalidAlgorithm},
		{name: "SubSecondTTL", cfg: Config{Secret: testSecret, TTL: 500 * time.Millisecond}, wantErr: ErrInvalidTTL},
		{name: "Defaults", cfg: Config{Secret: testSecret}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSymmetric(tt.cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr != nil {
				return
			}
			if s.Algorithm() != HS256 {
				t.Fatalf("expected HS256 default, got %s", s.Algorithm())
			}
			if s.TTL() != DefaultTTL {
				t.Fatalf("expected default ttl, got %s", s.TTL())
			}
		})
	}
}

func TestSymmetricIssue(t *testing.T) {
	const now = 1_700_000_000

	t.Run("StampsIatAndExp", func(t *testing.T) {
		s := newTestSymmetric(t, fixedAt(now), HS256)

		token, err := s.Issue(Claims{"name": "Admin", "role": "admin"})
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}

		payload := decodePayload(t, token)
		if payload["iat"] != float64(now) {
			t.Fatalf("unexpected iat: %v", payload["iat"])
		}
		if payload["exp"] != float64(now+300) {
			t.Fatalf("unexpected exp: %v", payload["exp"])
		}
		if payload["role"] != "admin" || payload["name"] != "Admin" {
			t.Fatalf("custom claims not carried: %v", payload)
		}
	})

	t.Run("HeaderNamesAlgorithm", func(t *testing.T) {
		s := newTestSymmetric(t, fixedAt(now), HS384)

		token, err := s.Issue(Claims{})
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}

		raw, err := base64.RawURLEncoding.DecodeString(strings.Split(token, ".")[0])
		if err != nil {
			t.Fatalf("decode header: %v", err)
		}
		var header map[string]string
		if err := json.Unmarshal(raw, &header); err != nil {
			t.Fatalf("unmarshal header: %v", err)
		}
		if header["alg"] != "HS384" || header["typ"] != "JWT" {
			t.Fatalf("unexpected header: %v", header)
		}
	})

	t.Run("OverwritesCallerIatWithoutMutatingInput", func(t *testing.T) {
		s := newTestSymmetric(t, fixedAt(now), HS256)
		in := Claims{"iat": 1, "role": "user"}

		token, err := s.Issue(in)
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}

		if decodePayload(t, token)["iat"] != float64(now) {
			t.Fatalf("iat was not overwritten")
		}
		if len(in) != 2 || in["iat"] != 1 {
			t.Fatalf("caller map mutated: %v", in)
		}
	})

	t.Run("FloorsTTLToSeconds", func(t *testing.T) {
		s := newTestSymmetric(t, fixedAt(now), HS256)

		token, err := s.IssueWithTTL(Claims{}, 2500*time.Millisecond)
		if err != nil {
			t.Fatalf("IssueWithTTL: %v", err)
		}
		if decodePayload(t, token)["exp"] != float64(now+2) {
			t.Fatalf("expected exp floored to whole seconds")
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		s := newTestSymmetric(t, fixedAt(now), HS256)

		a, errA := s.Issue(Claims{"role": "admin", "name": "Admin"})
		b, errB := s.Issue(Claims{"name": "Admin", "role": "admin"})
		if errA != nil || errB != nil {
			t.Fatalf("Issue: %v %v", errA, errB)
		}
		if a != b {
			t.Fatalf("expected identical tokens for identical input at the same instant")
		}
	})

	t.Run("Errors", func(t *testing.T) {
		s := newTestSymmetric(t, fixedAt(now), HS256)

		if _, err := s.IssueWithTTL(Claims{}, 0); !errors.Is(err, ErrInvalidTTL) {
			t.Fatalf("expected ErrInvalidTTL, got %v", err)
		}
		if _, err := s.Issue(Claims{"bad": make(chan int)}); !errors.Is(err, ErrInvalidClaims) {
			t.Fatalf("expected ErrInvalidClaims, got %v", err)
		}
		if _, err := Issue(Claims{}, nil, time.Minute); !errors.Is(err, ErrInvalidSecret) {
			t.Fatalf("expected ErrInvalidSecret, got %v", err)
		}
	})
}

func TestSymmetricIssueBatch(t *testing.T) {
	s := newTestSymmetric(t, fixedAt(1_700_000_000), HS256)

	t.Run("KeepsOrder", func(t *testing.T) {
		out, err := s.IssueBatch([]Identity{
			{Name: "Admin", Claims: Claims{"role": "admin"}},
			{Name: "User", Claims: Claims{"role": "user"}},
		})
		if err != nil {
			t.Fatalf("IssueBatch: %v", err)
		}
		if len(out) != 2 || out[0].Name != "Admin" || out[1].Name != "User" {
			t.Fatalf("unexpected batch: %+v", out)
		}
		if decodePayload(t, out[1].Token)["role"] != "user" {
			t.Fatalf("token does not match its identity")
		}
	})

	t.Run("FailureNamesIndex", func(t *testing.T) {
		_, err := s.IssueBatch([]Identity{
			{Name: "Admin", Claims: Claims{}},
			{Name: "Broken", Claims: Claims{"fn": func() {}}},
		})
		if !errors.Is(err, ErrInvalidClaims) {
			t.Fatalf("expected ErrInvalidClaims, got %v", err)
		}
		if !strings.Contains(err.Error(), "issue token 1 (Broken)") {
			t.Fatalf("error should name the failing entry: %v", err)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		out, err := s.IssueBatch(nil)
		if err != nil || len(out) != 0 {
			t.Fatalf("expected empty batch, got %v %v", out, err)
		}
	})
}

func TestSymmetricVerify(t *testing.T) {
	const now = 1_700_000_000
	clk := fixedAt(now)
	s := newTestSymmetric(t, clk, HS256)

	valid, err := s.Issue(Claims{"name": "Admin", "role": "admin"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	t.Run("Valid", func(t *testing.T) {
		claims, err := s.Verify(valid)
		if err != nil {
			t.Fatalf("Verify: %v", err)
		}
		if claims["role"] != "admin" {
			t.Fatalf("unexpected claims: %v", claims)
		}
	})

	t.Run("ValidAtExactExpiry", func(t *testing.T) {
		at := fixedAt(now + 300)
		if _, err := newTestSymmetric(t, at, HS256).Verify(valid); err != nil {
			t.Fatalf("exp == now must still verify, got %v", err)
		}
	})

	t.Run("ExpiredOneSecondLater", func(t *testing.T) {
		at := fixedAt(now + 301)
		if _, err := newTestSymmetric(t, at, HS256).Verify(valid); !errors.Is(err, ErrTokenExpired) {
			t.Fatalf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("TamperedPayload", func(t *testing.T) {
		parts := strings.Split(valid, ".")
		forged, _ := json.Marshal(map[string]any{"exp": now + 300, "iat": now, "name": "Admin", "role": "root"})
		parts[1] = base64.RawURLEncoding.EncodeToString(forged)

		if _, err := s.Verify(strings.Join(parts, ".")); !errors.Is(err, ErrSignatureInvalid) {
			t.Fatalf("expected ErrSignatureInvalid, got %v", err)
		}
	})

	t.Run("WrongSecret", func(t *testing.T) {
		if _, err := Verify(valid, []byte("another-secret")); !errors.Is(err, ErrSignatureInvalid) {
			t.Fatalf("expected ErrSignatureInvalid, got %v", err)
		}
	})

	t.Run("UnexpectedAlgorithm", func(t *testing.T) {
		other, err := newTestSymmetric(t, clk, HS512).Issue(Claims{})
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}
		if _, err := s.Verify(other); !errors.Is(err, ErrSignatureInvalid) {
			t.Fatalf("expected ErrSignatureInvalid, got %v", err)
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		for _, tok := range []string{"", "abc", "a.b", "not.a.valid.jwt.x", "!!.??.##"} {
			if _, err := s.Verify(tok); !errors.Is(err, ErrMalformedToken) {
				t.Fatalf("%q: expected ErrMalformedToken, got %v", tok, err)
			}
		}
	})

	t.Run("MissingExp", func(t *testing.T) {
		tok, err := libJWT.NewWithClaims(libJWT.SigningMethodHS256, libJWT.MapClaims{"role": "admin"}).SignedString(testSecret)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		if _, err := s.Verify(tok); !errors.Is(err, ErrMalformedToken) {
			t.Fatalf("expected ErrMalformedToken, got %v", err)
		}
	})

	t.Run("EmptySecret", func(t *testing.T) {
		if _, err := Verify(valid, nil); !errors.Is(err, ErrInvalidSecret) {
			t.Fatalf("expected ErrInvalidSecret, got %v", err)
		}
	})

	t.Run("Concurrent", func(t *testing.T) {
		var wg sync.WaitGroup
		errs := make(chan error, 16)
		for range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := s.Verify(valid); err != nil {
					errs <- err
				}
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Fatalf("concurrent Verify: %v", err)
		}
	})
}

func TestAuthContext(t *testing.T) {
	ctx := SetAuth(t.Context(), Claims{"role": "admin"})
	if GetAuth(ctx)["role"] != "admin" {
		t.Fatalf("claims not stored in context")
	}
	if GetAuth(t.Context()) != nil {
		t.Fatalf("expected nil claims on bare context")
	}
}

func TestSymmetricCountsIssuedTokens(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	s, err := NewSymmetric(Config{Secret: testSecret, Algorithm: HS384, Meter: provider.Meter("jwt")})
	if err != nil {
		t.Fatalf("NewSymmetric: %v", err)
	}

	if _, err := s.Issue(Claims{"role": "admin"}); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := s.IssueBatch([]Identity{{Name: "A", Claims: Claims{}}, {Name: "B", Claims: Claims{}}}); err != nil {
		t.Fatalf("IssueBatch: %v", err)
	}
	if _, err := s.Issue(Claims{"bad": make(chan int)}); err == nil {
		t.Fatalf("expected claims error")
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(t.Context(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "jwt.tokens.issued" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("unexpected data type %T", m.Data)
			}
			for _, dp := range sum.DataPoints {
				if alg, _ := dp.Attributes.Value("alg"); alg.AsString() != "HS384" {
					t.Fatalf("unexpected alg attribute: %v", alg.AsString())
				}
				total += dp.Value
			}
		}
	}
	if total != 3 {
		t.Fatalf("jwt.tokens.issued = %d, want 3", total)
	}
}
