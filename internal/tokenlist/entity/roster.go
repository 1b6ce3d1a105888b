package entity

import (
	"maps"
	"strings"

	"github.com/MichValwin/JWT-listing/internal/pkg/jwt"
)

// DefaultRoster is used when no roster is configured.
func DefaultRoster() []jwt.Identity {
	return []jwt.Identity{
		{Name: "Admin", Claims: jwt.Claims{"role": "admin"}},
		{Name: "User", Claims: jwt.Claims{"role": "user"}},
	}
}

// NormalizeRoster drops unnamed entries and makes sure every claims set
// carries its display name under "name". Inputs are not modified.
func NormalizeRoster(ids []jwt.Identity) []jwt.Identity {
	out := make([]jwt.Identity, 0, len(ids))
	for _, id := range ids {
		name := strings.TrimSpace(id.Name)
		if name == "" {
			continue
		}

		claims := make(jwt.Claims, len(id.Claims)+1)
		maps.Copy(claims, id.Claims)
		if _, ok := claims["name"]; !ok {
			claims["name"] = name
		}

		out = append(out, jwt.Identity{Name: name, Claims: claims})
	}
	return out
}
