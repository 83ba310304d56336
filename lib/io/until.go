package iolib

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// chunkSize is the read granularity for [ReadUntil] and [ReadAtMost].
const chunkSize = 4096

var ErrZeroLenDelim = errors.New("delim has zero length")

// ErrLimitExceeded is returned by [ReadUntil] when the accumulated buffer
// grows past the given limit before delim was seen.
var ErrLimitExceeded = errors.New("read limit exceeded")

// ReadUntil reads from r in chunks until delim appears somewhere in the
// accumulated buffer, and returns everything read so far, including any
// bytes that arrived after delim in the same chunk. The limit is checked
// after each chunk and before looking for delim, so a buffer that crosses
// the limit fails even if the same chunk completed the delimiter.
//
// An end-of-stream before delim is not an error: the partial buffer is
// returned with found == false and callers decide what to make of it.
func ReadUntil(r io.Reader, delim []byte, limit uint) (buf []byte, found bool, err error) {
	if len(delim) == 0 {
		return nil, false, ErrZeroLenDelim
	}

	temp := make([]byte, chunkSize)
	for {
		n, err := r.Read(temp)
		buf = append(buf, temp[:n]...)

		if limit > 0 && uint(len(buf)) > limit {
			return nil, false, ErrLimitExceeded
		}
		if bytes.Contains(buf, delim) {
			return buf, true, nil
		}

		if err != nil {
			if err == io.EOF {
				return buf, false, nil
			}
			return buf, false, errors.Wrap(err, "reading until delim")
		}
	}
}

// ReadAtMost reads up to n bytes from r, stopping early only when the
// stream ends. A short result is not an error.
func ReadAtMost(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, 0, min(n, chunkSize))

	remaining := n
	temp := make([]byte, chunkSize)
	for remaining > 0 {
		read, err := r.Read(temp[:min(remaining, chunkSize)])
		buf = append(buf, temp[:read]...)
		remaining -= read

		if err != nil {
			if err == io.EOF {
				break
			}
			return buf, errors.Wrap(err, "reading body bytes")
		}
	}

	return buf, nil
}
