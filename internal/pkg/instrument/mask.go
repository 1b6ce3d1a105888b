package instrument

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Masked replaces sensitive values in logs.
const Masked = "***"

// reToken matches compact JWS strings. The signature segment is what turns a
// decoded payload into a usable credential, so only that part is dropped.
var reToken = regexp.MustCompile(`\b([A-Za-z0-9_-]{8,})\.([A-Za-z0-9_-]{8,})\.([A-Za-z0-9_-]{16,})\b`)

// MaskKeys normalizes field names into a lookup set.
func MaskKeys(fields []string) map[string]struct{} {
	keys := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			keys[f] = struct{}{}
		}
	}
	return keys
}

// RedactTokens strips the signature of every token found in s.
func RedactTokens(s string) string {
	return reToken.ReplaceAllString(s, "$1.$2."+Masked)
}

// Mask walks decoded JSON-like data, replacing values of masked keys and
// redacting token signatures in strings.
func Mask(v any, keys map[string]struct{}) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, v2 := range val {
			if _, found := keys[strings.ToLower(k)]; found {
				out[k] = Masked
				continue
			}
			out[k] = Mask(v2, keys)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(val))
		for k, v2 := range val {
			out[k] = v2
		}
		return Mask(out, keys)
	case []any:
		out := make([]any, len(val))
		for i, v2 := range val {
			out[i] = Mask(v2, keys)
		}
		return out
	case string:
		return RedactTokens(val)
	default:
		return v
	}
}

// MaskJSON masks a JSON document. ok is false when b is not JSON.
func MaskJSON(b []byte, keys map[string]struct{}) (string, bool) {
	if len(b) == 0 || (b[0] != '{' && b[0] != '[') {
		return "", false
	}

	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return "", false
	}

	out, err := json.Marshal(Mask(doc, keys))
	if err != nil {
		return "", false
	}
	return string(out), true
}
