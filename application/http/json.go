package http

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// JSONResponse builds a response with v serialized as indented UTF-8 JSON.
// Two-space indentation with HTML escaping off is a format guarantee:
// response bytes must stay byte-for-byte stable for golden tests.
func JSONResponse(status int, v any) *Response {
	body, err := marshalJSON(v)
	if err != nil {
		// All payload types in this codebase marshal cleanly; reaching this
		// is a programming error and surfaces as a 500 via the dispatcher's
		// recover.
		panic(errors.Wrap(err, "encoding json response"))
	}

	return &Response{
		Status:  status,
		Headers: Headers{{Name: "Content-Type", Value: "application/json; charset=utf-8"}},
		Body:    body,
	}
}

func marshalJSON(v any) ([]byte, error) {
	buf := bytes.NewBuffer(nil)

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	// Encode appends a newline the wire format doesn't want.
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// errorBody is the shape of every error payload. A struct, not a map, so
// key order on the wire is fixed.
type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// ErrorResponse builds the standard {"error": ...} payload.
func ErrorResponse(status int, message string) *Response {
	return JSONResponse(status, errorBody{Error: message})
}

// InternalErrorResponse is the 500 sent for any transport-layer or handler
// fault: a generic message for the client plus the fault's own text.
func InternalErrorResponse(detail string) *Response {
	return JSONResponse(StatusInternalServerError, errorBody{
		Error:  "Internal server error",
		Detail: detail,
	})
}
