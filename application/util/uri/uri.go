// Package uri handles the request-target: splitting it into path and query,
// and decoding the query string into ordered multi-values.
//
// Only origin-form targets ("/path?query") are understood; that is the only
// form clients of this server send. The path component is passed through
// as-is; no percent-decoding beyond what the query decoder does.
package uri

import "strings"

// Values maps a query parameter name to its values, in order of appearance.
type Values map[string][]string

// First returns the first value for key.
func (v Values) First(key string) (string, bool) {
	vals, ok := v[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// SplitTarget cuts an origin-form target into path and raw query.
// A trailing #fragment is discarded.
func SplitTarget(target string) (path, rawQuery string) {
	target, _, _ = strings.Cut(target, "#")
	path, rawQuery, _ = strings.Cut(target, "?")
	return path, rawQuery
}

// ParseQuery decodes a raw query string. Repeated names accumulate values in
// order of appearance. Pairs with an empty value ("key=", or a bare "key")
// are dropped, as are empty pairs from runs of '&'. Decoding is permissive:
// a '+' becomes a space and invalid percent escapes are kept literally.
func ParseQuery(rawQuery string) Values {
	values := make(Values)

	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}

		name, value, _ := strings.Cut(pair, "=")
		if value == "" {
			continue
		}

		name = unescape(name)
		values[name] = append(values[name], unescape(value))
	}

	return values
}

// unescape percent-decodes s, treating '+' as space. It never fails: an
// invalid or truncated escape stays in the output untouched.
func unescape(s string) string {
	if !strings.ContainsAny(s, "%+") {
		return s
	}

	b := new(strings.Builder)
	b.Grow(len(s))

	for idx := 0; idx < len(s); idx++ {
		switch c := s[idx]; {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && idx+2 < len(s) && isHex(s[idx+1]) && isHex(s[idx+2]):
			b.WriteByte(unhex(s[idx+1])<<4 | unhex(s[idx+2]))
			idx += 2
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

func isHex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
