package listing

import (
	"net/url"
	"strings"
)

// Query-string keys of a listing URL.
const (
	KeySearch        = "q"
	KeyCategories    = "c"
	KeyNeighborhoods = "n"
	KeyPriceTiers    = "p"
)

const separator = ","

// tokenEscaper keeps the separator out of individual values so ids that
// contain a comma survive a round trip. '%' is escaped first-class so the
// encoding stays reversible.
var tokenEscaper = strings.NewReplacer("%", "%25", ",", "%2C")

// Encode renders the lock-enforced state as query values. Empty dimensions
// are omitted, and so are the category and neighborhood dimensions while they
// equal the locked defaults.
func Encode(s State, l Locked) url.Values {
	s = EnforceLocked(s, l)
	v := url.Values{}
	if s.Search != "" {
		v.Set(KeySearch, s.Search)
	}
	if len(s.Categories) > 0 && !sameSet(s.Categories, l.Categories) {
		v.Set(KeyCategories, joinTokens(s.Categories))
	}
	if len(s.Neighborhoods) > 0 && !sameSet(s.Neighborhoods, l.Neighborhoods) {
		v.Set(KeyNeighborhoods, joinTokens(s.Neighborhoods))
	}
	if len(s.PriceTiers) > 0 {
		v.Set(KeyPriceTiers, joinTokens(s.PriceTiers))
	}
	return v
}

// EncodeQuery is Encode as a raw query string without the leading '?'.
func EncodeQuery(s State, l Locked) string {
	return Encode(s, l).Encode()
}

// Decode reads a state from query values. Absent or unusable dimensions fall
// back to the locked defaults, unknown keys are ignored and the result always
// contains the locked values.
func Decode(v url.Values, l Locked) State {
	defaults := l.Defaults()
	s := State{
		Categories:    defaults.Categories,
		Neighborhoods: defaults.Neighborhoods,
	}
	if q, ok := v[KeySearch]; ok && len(q) > 0 {
		s.Search = q[0]
	}
	if c := splitTokens[string](v[KeyCategories]); len(c) > 0 {
		s.Categories = c
	}
	if n := splitTokens[string](v[KeyNeighborhoods]); len(n) > 0 {
		s.Neighborhoods = n
	}
	if p := splitTokens[PriceTier](v[KeyPriceTiers]); len(p) > 0 {
		s.PriceTiers = p
	}
	return EnforceLocked(s, l)
}

// DecodeQuery parses raw and decodes it. Whatever url.ParseQuery recovers
// before a malformed pair is kept.
func DecodeQuery(raw string, l Locked) State {
	v, _ := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	return Decode(v, l)
}

func joinTokens[T ~string](vals []T) string {
	parts := make([]string, len(vals))
	for i, val := range vals {
		parts[i] = tokenEscaper.Replace(string(val))
	}
	return strings.Join(parts, separator)
}

// splitTokens accepts repeated keys as well as comma-joined values.
func splitTokens[T ~string](values []string) []T {
	var out []T
	for _, raw := range values {
		for _, tok := range strings.Split(raw, separator) {
			if tok == "" {
				continue
			}
			val, err := url.PathUnescape(tok)
			if err != nil || val == "" {
				continue
			}
			out = append(out, T(val))
		}
	}
	return normalize(out)
}
