package entity

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/MichValwin/JWT-listing/internal/pkg/jwt"
)

// Status describes the current token of a Panel.
type Status string

const (
	StatusNone    Status = ""
	StatusValid   Status = "valid"
	StatusExpired Status = "expired"
)

// hiddenKeys never appear in a Panel summary.
var hiddenKeys = []string{
	jwt.ClaimIssuedAt,
	jwt.ClaimExpiresAt,
	jwt.FieldExpiresIn,
	jwt.FieldIsExpired,
	jwt.FieldIssuedAt,
}

// Button selects one roster token.
type Button struct {
	Label  string `json:"label"`
	Token  string `json:"token"`
	Active bool   `json:"active"`
}

// Panel is the display model of the token picker. It carries no markup;
// hosts render it as they see fit.
type Panel struct {
	Buttons []Button           `json:"buttons"`
	Current *jwt.Introspection `json:"current,omitempty" swaggertype:"object"`
	Summary string             `json:"summary"`
	Status  Status             `json:"status"`
	Expiry  string             `json:"expiry"`
}

// BuildPanel lays out one button per roster entry and describes current.
// An empty or undecodable current token yields a Panel with StatusNone.
func BuildPanel(roster []jwt.NamedToken, current string, inspector jwt.Inspector) Panel {
	p := Panel{
		Buttons: lo.Map(roster, func(t jwt.NamedToken, _ int) Button {
			return Button{Label: t.Name, Token: t.Token, Active: current != "" && t.Token == current}
		}),
	}

	if current == "" || inspector == nil {
		return p
	}

	in := inspector.Introspect(current)
	if in == nil {
		return p
	}

	p.Current = in
	p.Summary = Summary(in.Claims)
	p.Status = lo.Ternary(in.IsExpired, StatusExpired, StatusValid)
	p.Expiry = Expiry(in)

	return p
}

// Summary renders claims as "key:value" pairs joined by ", ", keys sorted,
// without the time claims.
func Summary(claims jwt.Claims) string {
	visible := lo.OmitByKeys(claims, hiddenKeys)
	keys := lo.Keys(map[string]any(visible))
	slices.Sort(keys)

	return strings.Join(lo.Map(keys, func(k string, _ int) string {
		return k + ":" + formatValue(visible[k])
	}), ", ")
}

// Expiry renders the time facts of an introspection on one line.
func Expiry(in *jwt.Introspection) string {
	return fmt.Sprintf("Expiration time: %d, isExpired: %t, issuedAt: %s", in.ExpiresIn, in.IsExpired, in.IssuedAt)
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case json.Number:
		return val.String()
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}
