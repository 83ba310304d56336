// Package tcp provides the real-socket implementation of
// [transport.ConnListener] on top of the net package.
package tcp

import (
	"context"
	"net"

	"mini-server/transport"

	"github.com/pkg/errors"
)

type Listener struct {
	inner net.Listener
}

var _ transport.ConnListener = (*Listener)(nil)

// Listen binds addr (host:port) on TCP.
func Listen(addr string) (*Listener, error) {
	inner, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listening on %s", addr)
	}

	return &Listener{inner: inner}, nil
}

type accepted struct {
	conn net.Conn
	err  error
}

func (l *Listener) Accept(ctx context.Context) (transport.Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ch := make(chan accepted)
	go func() {
		conn, err := l.inner.Accept()
		select {
		case ch <- accepted{conn, err}:
		case <-ctx.Done():
			// Caller is gone. Don't strand a connection nobody owns.
			if conn != nil {
				conn.Close()
			}
		}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case a := <-ch:
		if a.err != nil {
			if errors.Is(a.err, net.ErrClosed) {
				return nil, transport.ErrClosed
			}
			return nil, errors.Wrap(a.err, "accepting connection")
		}
		return a.conn, nil
	}
}

func (l *Listener) Addr() net.Addr { return l.inner.Addr() }

func (l *Listener) Close() error { return l.inner.Close() }
