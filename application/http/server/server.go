// Package server owns the accept loop and the per-connection dispatch:
// read one request frame, parse it, route it, invoke the handler, write one
// response, close. A failing connection never takes down a neighbor or the
// listener.
package server

import (
	"context"
	"log/slog"
	"sync"

	"mini-server/application/router"
	"mini-server/transport"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

type Server struct {
	l transport.ConnListener

	closeListener func()
	wg            sync.WaitGroup

	router *router.Router
	logger *slog.Logger
	clock  clock.Clock
	opts   Options
}

func New(
	l transport.ConnListener,
	logger *slog.Logger,
	clock clock.Clock,
	router *router.Router,
	opts Options,
) *Server {
	return &Server{
		l:      l,
		logger: logger,
		clock:  clock,
		router: router,
		opts:   opts.withDefaults(),
	}
}

// Start launches the accept loop. One goroutine per accepted connection,
// unbounded. Admission control is the OS backlog.
func (s *Server) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.closeListener = cancel

	go func() {
		for {
			conn, err := s.acceptConn(ctx)
			if err != nil {
				if !errors.Is(err, context.Canceled) && !errors.Is(err, transport.ErrClosed) {
					s.logger.Error(
						"unexpected error when accepting connection",
						"error", err.Error(),
					)
				}
				return
			}

			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				conn.serve()
			}()
		}
	}()
}

func (s *Server) acceptConn(ctx context.Context) (*conn, error) {
	con, err := s.l.Accept(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listening for connection")
	}

	return &conn{
		con:    con,
		router: s.router,
		logger: s.logger.With("conn", con.RemoteAddr()),
		clock:  s.clock,
		opts:   s.opts,
	}, nil
}

// Close stops accepting and waits for in-flight connections to finish their
// single request/response exchange.
func (s *Server) Close() error {
	s.closeListener()
	if err := s.l.Close(); err != nil {
		return errors.Wrap(err, "closing listener")
	}
	s.wg.Wait()
	return nil
}
