// Package transport abstracts the stream transports the HTTP layer is
// served over, so the server can run on real TCP sockets or on in-memory
// pipes in tests.
package transport

import (
	"context"
	"io"
	"net"
	"time"

	"github.com/pkg/errors"
)

// ErrClosed is returned by Accept after the listener was closed.
var ErrClosed = errors.New("listener closed")

// Conn is a bidirectional byte stream. [net.Conn] satisfies it.
type Conn interface {
	io.ReadWriteCloser

	RemoteAddr() net.Addr
	SetReadDeadline(t time.Time) error
}

// ConnListener accepts inbound connections.
type ConnListener interface {
	// Accept blocks until a connection arrives, the listener is closed
	// (ErrClosed), or ctx is done (ctx.Err()).
	Accept(ctx context.Context) (Conn, error)

	Addr() net.Addr
	Close() error
}
