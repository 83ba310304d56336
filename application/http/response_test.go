package http

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, res *Response) []byte {
	t.Helper()

	buf := bytes.NewBuffer(nil)
	require.NoError(t, NewResponseEncoder(buf).Encode(res))
	return buf.Bytes()
}

func TestEncodePlainBody(t *testing.T) {
	got := encode(t, &Response{Status: StatusOK, Body: []byte("hello")})

	expected := "HTTP/1.1 200 OK\r\n" +
		"Server: mini-server\r\n" +
		"Connection: close\r\n" +
		"Content-Length: 5\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"hello"
	assert.Equal(t, expected, string(got))
}

func TestEncodeEmptyBodyHasNoContentType(t *testing.T) {
	got := encode(t, &Response{Status: StatusNoContent})

	expected := "HTTP/1.1 204 No Content\r\n" +
		"Server: mini-server\r\n" +
		"Connection: close\r\n" +
		"Content-Length: 0\r\n" +
		"\r\n"
	assert.Equal(t, expected, string(got))
}

func TestEncodeCallerContentTypeWins(t *testing.T) {
	got := encode(t, &Response{
		Status:  StatusOK,
		Headers: Headers{{Name: "Content-Type", Value: "text/html; charset=utf-8"}},
		Body:    []byte("<p>hi</p>"),
	})

	expected := "HTTP/1.1 200 OK\r\n" +
		"Server: mini-server\r\n" +
		"Connection: close\r\n" +
		"Content-Length: 9\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<p>hi</p>"
	assert.Equal(t, expected, string(got))
}

func TestEncodeCallerOverridesMandatoryField(t *testing.T) {
	got := encode(t, &Response{
		Status:  StatusOK,
		Headers: Headers{{Name: "server", Value: "custom"}},
		Body:    []byte("x"),
	})

	// Override lands in place, so Server stays the first field.
	assert.True(t, bytes.HasPrefix(got, []byte("HTTP/1.1 200 OK\r\nServer: custom\r\n")))
	assert.Equal(t, 1, bytes.Count(got, []byte("erver:")))
}

func TestEncodeContentLengthMatchesBody(t *testing.T) {
	bodies := [][]byte{nil, []byte("a"), []byte("✅ unicode"), bytes.Repeat([]byte("x"), 4096)}

	for _, body := range bodies {
		got := encode(t, &Response{Status: StatusOK, Body: body})

		head, rest, found := bytes.Cut(got, []byte("\r\n\r\n"))
		require.True(t, found)
		assert.Equal(t, body, rest, "wire body must be untouched")
		assert.Contains(t, string(head), "Content-Length: "+strconv.Itoa(len(body)))
	}
}

func TestReasonPhrase(t *testing.T) {
	testcases := []struct {
		code     int
		expected string
	}{
		{StatusOK, "OK"},
		{StatusCreated, "Created"},
		{StatusNoContent, "No Content"},
		{StatusBadRequest, "Bad Request"},
		{StatusNotFound, "Not Found"},
		{StatusMethodNotAllowed, "Method Not Allowed"},
		{StatusUnprocessableEntity, "Unprocessable Entity"},
		{StatusInternalServerError, "Internal Server Error"},
		{418, "OK"}, // outside the table
	}
	for _, tc := range testcases {
		assert.Equal(t, tc.expected, ReasonPhrase(tc.code))
	}
}

func TestHeadersSetAndGet(t *testing.T) {
	h := Headers{}
	h.Set("Content-Type", "text/plain")
	h.Set("content-type", "application/json")
	h.Set("X-Other", "1")

	assert.Equal(t, Headers{
		{Name: "Content-Type", Value: "application/json"},
		{Name: "X-Other", Value: "1"},
	}, h)

	v, ok := h.Get("CONTENT-TYPE")
	assert.True(t, ok)
	assert.Equal(t, "application/json", v)

	_, ok = h.Get("missing")
	assert.False(t, ok)
}

func TestJSONResponse(t *testing.T) {
	res := JSONResponse(StatusCreated, map[string]string{"text": "ship ✅ <it>"})

	ct, ok := res.Headers.Get("Content-Type")
	require.True(t, ok)
	assert.Equal(t, "application/json; charset=utf-8", ct)

	// Two-space indent, UTF-8 passthrough, no HTML escaping, no trailing
	// newline.
	assert.Equal(t, "{\n  \"text\": \"ship ✅ <it>\"\n}", string(res.Body))
}

func TestErrorResponse(t *testing.T) {
	res := ErrorResponse(StatusNotFound, "Not found")
	assert.Equal(t, StatusNotFound, res.Status)
	assert.Equal(t, "{\n  \"error\": \"Not found\"\n}", string(res.Body))
}

func TestInternalErrorResponse(t *testing.T) {
	res := InternalErrorResponse("Bad request line: oops")
	assert.Equal(t, StatusInternalServerError, res.Status)
	assert.Equal(t,
		"{\n  \"error\": \"Internal server error\",\n  \"detail\": \"Bad request line: oops\"\n}",
		string(res.Body))
}
