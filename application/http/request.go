package http

import (
	"bytes"
	"strings"

	"mini-server/application/util/uri"

	"github.com/pkg/errors"
)

// Request is one parsed HTTP request. It is created once per connection and
// never mutated afterwards.
type Request struct {
	Method string // uppercased token
	Path   string // target path, before any '?'
	Query  uri.Values
	// Headers maps lowercased, trimmed names to trimmed values.
	// The last occurrence of a duplicated name wins.
	Headers map[string]string
	Body    []byte
}

// ErrMissingSeparator means the framed bytes never contained a header/body
// boundary, so there is no request line to speak of.
var ErrMissingSeparator = errors.New("Malformed HTTP request (missing header/body separator)")

// ParseRequest decodes one framed HTTP message into a [Request].
//
// The grammar is deliberately loose where the wire reality is loose: header
// lines without a colon are skipped rather than rejected, and text that
// isn't valid UTF-8 is decoded with replacement rather than failing.
func ParseRequest(raw []byte) (*Request, error) {
	head, body, found := bytes.Cut(raw, separator)
	if !found {
		return nil, ErrMissingSeparator
	}

	lines := bytes.Split(head, []byte("\r\n"))

	requestLine := decodeText(lines[0])
	parts := strings.Fields(requestLine)
	if len(parts) != 3 {
		return nil, errors.Errorf("Bad request line: %s", requestLine)
	}

	method, target, version := parts[0], parts[1], parts[2]
	if !strings.HasPrefix(version, "HTTP/") {
		return nil, errors.Errorf("Bad HTTP version: %s", version)
	}

	headers := make(map[string]string)
	for _, line := range lines[1:] {
		name, value, ok := strings.Cut(decodeText(line), ":")
		if !ok {
			continue
		}
		headers[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(value)
	}

	path, rawQuery := uri.SplitTarget(target)

	return &Request{
		Method:  strings.ToUpper(method),
		Path:    path,
		Query:   uri.ParseQuery(rawQuery),
		Headers: headers,
		Body:    body,
	}, nil
}

// decodeText converts raw header bytes to a string, replacing invalid UTF-8
// sequences instead of failing.
func decodeText(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}
