// Package pipe is an in-memory transport used by tests: dialing hands one
// end of a [net.Pipe] to the listener's accept queue.
package pipe

import (
	"context"
	"net"
	"sync"

	"mini-server/transport"

	"github.com/pkg/errors"
)

// ErrUnreachable is returned by Dial when nothing listens on the name.
var ErrUnreachable = errors.New("no listener on address")

type Transport struct {
	listeners map[string]*Listener

	mu sync.Mutex
}

func NewTransport() *Transport {
	return &Transport{listeners: make(map[string]*Listener)}
}

func (t *Transport) Listen(name string) (*Listener, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.listeners[name]; ok {
		return nil, errors.Errorf("address already in use: %s", name)
	}

	l := &Listener{
		transport: t,
		name:      name,
		pending:   make(chan net.Conn),
		closed:    make(chan struct{}),
	}
	t.listeners[name] = l
	return l, nil
}

func (t *Transport) Dial(ctx context.Context, name string) (transport.Conn, error) {
	t.mu.Lock()
	l, ok := t.listeners[name]
	t.mu.Unlock()

	if !ok {
		return nil, ErrUnreachable
	}

	local, remote := net.Pipe()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-l.closed:
		return nil, ErrUnreachable
	case l.pending <- remote:
		return local, nil
	}
}

type Listener struct {
	transport *Transport
	name      string

	pending chan net.Conn
	closed  chan struct{}

	closeOnce sync.Once
}

var _ transport.ConnListener = (*Listener)(nil)

func (l *Listener) Accept(ctx context.Context) (transport.Conn, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-l.closed:
		return nil, transport.ErrClosed
	case conn := <-l.pending:
		return conn, nil
	}
}

type addr struct{ name string }

func (a addr) Network() string { return "pipe" }
func (a addr) String() string  { return a.name }

func (l *Listener) Addr() net.Addr { return addr{name: l.name} }

func (l *Listener) Close() error {
	l.closeOnce.Do(func() {
		close(l.closed)

		l.transport.mu.Lock()
		delete(l.transport.listeners, l.name)
		l.transport.mu.Unlock()
	})
	return nil
}
