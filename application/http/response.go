package http

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ServerName is the value of the Server header on every response.
const ServerName = "mini-server"

type Field struct{ Name, Value string }

// Headers is an ordered list of fields. Insertion order is what hits the
// wire, which keeps response bytes deterministic.
type Headers []Field

// Set overrides an existing field in place (name compared case-insensitively)
// or appends a new one.
func (h *Headers) Set(name, value string) {
	for i, f := range *h {
		if strings.EqualFold(f.Name, name) {
			(*h)[i].Value = value
			return
		}
	}
	*h = append(*h, Field{Name: name, Value: value})
}

func (h Headers) Get(name string) (string, bool) {
	for _, f := range h {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}
	return "", false
}

// Response is what a handler produces: a status, caller-chosen headers, and
// a body. Framing headers are not the caller's business; the encoder
// injects them.
type Response struct {
	Status  int
	Headers Headers
	Body    []byte
}

// ResponseEncoder serializes responses onto a stream.
type ResponseEncoder struct {
	bw *bufio.Writer
}

func NewResponseEncoder(w io.Writer) *ResponseEncoder {
	return &ResponseEncoder{bw: bufio.NewWriter(w)}
}

// Encode writes res in wire format. Mandatory headers (Server,
// Connection: close, Content-Length from the actual body length) come
// first; Content-Type defaults to text/plain only when there is a body and
// the caller supplied no type; caller headers then override in place.
func (re *ResponseEncoder) Encode(res *Response) error {
	fields := Headers{
		{Name: "Server", Value: ServerName},
		{Name: "Connection", Value: "close"},
		{Name: "Content-Length", Value: strconv.Itoa(len(res.Body))},
	}
	if len(res.Body) > 0 {
		if _, ok := res.Headers.Get("Content-Type"); !ok {
			fields = append(fields, Field{Name: "Content-Type", Value: "text/plain; charset=utf-8"})
		}
	}
	for _, f := range res.Headers {
		fields.Set(f.Name, f.Value)
	}

	statusLine := "HTTP/1.1 " + strconv.Itoa(res.Status) + " " + ReasonPhrase(res.Status)
	if err := re.writeLine(statusLine); err != nil {
		return errors.Wrap(err, "writing status line")
	}

	for _, f := range fields {
		if err := re.writeLine(f.Name + ": " + f.Value); err != nil {
			return errors.Wrap(err, "writing header field")
		}
	}
	if err := re.writeLine(""); err != nil {
		return errors.Wrap(err, "writing header terminator")
	}

	if _, err := re.bw.Write(res.Body); err != nil {
		return errors.Wrap(err, "writing body")
	}

	return errors.Wrap(re.bw.Flush(), "flushing response")
}

func (re *ResponseEncoder) writeLine(line string) error {
	if _, err := re.bw.WriteString(line); err != nil {
		return err
	}
	_, err := re.bw.WriteString("\r\n")
	return err
}
