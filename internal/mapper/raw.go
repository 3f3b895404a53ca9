package mapper

import (
	"fmt"
	"strconv"
	"strings"
)

// Raw is one source record after decoding, before normalization. Keys are
// lower-cased and trimmed on the way in so every downstream lookup is
// case-insensitive.
type Raw map[string]interface{}

// NewRaw builds a Raw from arbitrary decoded keys/values, normalizing keys.
func NewRaw(in map[string]interface{}) Raw {
	r := make(Raw, len(in))
	for k, v := range in {
		r[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return r
}

// Str returns the first non-empty string value among the given keys.
// Missing and nil values read as "".
func (r Raw) Str(keys ...string) string {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		s := strings.TrimSpace(fmt.Sprintf("%v", v))
		if s != "" {
			return s
		}
	}
	return ""
}

// Num returns the first parsable numeric value among the given keys.
// Unparsable and missing values read as 0.
func (r Raw) Num(keys ...string) float64 {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		case string:
			if f, ok := parseDecimal(n); ok {
				return f
			}
		}
	}
	return 0
}

// Has reports whether any of the keys is present, regardless of value.
func (r Raw) Has(keys ...string) bool {
	for _, k := range keys {
		if _, ok := r[k]; ok {
			return true
		}
	}
	return false
}

// parseDecimal is the lenient numeric parse shared by every source format:
// comma or dot decimal separator, surrounding whitespace tolerated.
func parseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// clampQty enforces the whole non-negative quantity invariant: negatives
// clamp to zero, fractions truncate.
func clampQty(q float64) int {
	if q < 0 {
		return 0
	}
	return int(q)
}
