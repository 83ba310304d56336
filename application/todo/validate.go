package todo

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidJSON means the body could not be parsed at all: a payload
// error (400), as opposed to a field-level validation error (422).
var ErrInvalidJSON = errors.New("Invalid JSON")

// FieldError reports one invalid payload field.
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("Field '%s' %s", e.Field, e.Reason)
}

// payload is a presence-aware decode of a create/patch body: a nil pointer
// means the field wasn't in the payload, which is how partial updates leave
// fields untouched.
type payload struct {
	Text *string
	Done *bool
}

// decodeObject parses body as a JSON object. An absent or empty body is
// coerced to {} first. Valid JSON that isn't an object yields no fields
// rather than an error.
func decodeObject(body []byte) (map[string]any, error) {
	if len(body) == 0 {
		body = []byte("{}")
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, ErrInvalidJSON
	}

	m, _ := v.(map[string]any)
	return m, nil
}

// decodeCreate validates a create body: text is mandatory and must trim to
// something non-empty. Absent, null, and wrong-typed text all count as
// missing.
func decodeCreate(body []byte) (string, error) {
	m, err := decodeObject(body)
	if err != nil {
		return "", err
	}

	text, _ := m["text"].(string)
	text = strings.TrimSpace(text)
	if text == "" {
		return "", FieldError{Field: "text", Reason: "is required"}
	}

	return text, nil
}

// decodePatch validates a patch body: both fields are optional, but a
// present text must trim to non-empty and a present done must be a boolean.
func decodePatch(body []byte) (payload, error) {
	m, err := decodeObject(body)
	if err != nil {
		return payload{}, err
	}

	var p payload

	if raw, ok := m["text"]; ok {
		text, _ := raw.(string)
		text = strings.TrimSpace(text)
		if text == "" {
			return payload{}, FieldError{Field: "text", Reason: "cannot be empty"}
		}
		p.Text = &text
	}

	if raw, ok := m["done"]; ok {
		done, isBool := raw.(bool)
		if !isBool {
			return payload{}, FieldError{Field: "done", Reason: "must be boolean"}
		}
		p.Done = &done
	}

	return p, nil
}
