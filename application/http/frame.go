package http

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	iolib "mini-server/lib/io"

	"github.com/pkg/errors"
)

// DefaultMaxFrameBytes caps how much a sender can buffer while we scan for
// the header separator. It bounds memory against a peer that never
// terminates its headers.
const DefaultMaxFrameBytes = 2_000_000

// separator ends the header block of an HTTP/1.1 message.
var separator = []byte("\r\n\r\n")

var (
	ErrRequestTooLarge      = errors.New("Request too large")
	ErrInvalidContentLength = errors.New("Invalid Content-Length")
)

// ReadFrame reads the complete bytes of one HTTP request off r: everything
// up to the header separator, plus however many body bytes Content-Length
// declares. A stream that ends before the separator yields the partial bytes
// without error; the parser is the layer that rejects those. A declared
// body that ends short is likewise taken as-is.
func ReadFrame(r io.Reader, maxBytes uint) ([]byte, error) {
	buf, found, err := iolib.ReadUntil(r, separator, maxBytes)
	if err != nil {
		if errors.Is(err, iolib.ErrLimitExceeded) {
			return nil, ErrRequestTooLarge
		}
		return nil, err
	}
	if !found {
		return buf, nil
	}

	head, rest, _ := bytes.Cut(buf, separator)

	// Only content-length matters here. The full header parse happens later;
	// doing a cheap second scan keeps the framing layer self-contained.
	value, ok := scanContentLength(head)
	if !ok {
		return buf, nil
	}

	length, err := strconv.Atoi(value)
	if err != nil {
		return nil, ErrInvalidContentLength
	}

	missing := length - len(rest)
	if missing <= 0 {
		return buf, nil
	}

	body, err := iolib.ReadAtMost(r, missing)
	buf = append(buf, body...)
	if err != nil {
		return nil, err
	}

	return buf, nil
}

// scanContentLength finds the content-length value in a raw header block,
// skipping the request line. Last occurrence wins, same as the full parser.
func scanContentLength(head []byte) (string, bool) {
	value, found := "", false

	lines := bytes.Split(head, []byte("\r\n"))
	for _, line := range lines[1:] {
		name, val, ok := bytes.Cut(line, []byte{':'})
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(string(name)), "content-length") {
			value, found = strings.TrimSpace(string(val)), true
		}
	}

	return value, found
}
