package server

import (
	"fmt"
	"log/slog"

	"mini-server/application/http"
	"mini-server/application/router"
	"mini-server/transport"

	"github.com/benbjohnson/clock"
)

// conn drives one connection through its states: read frame, parse, route,
// invoke, write, close. Any failure short-circuits into an error response;
// the close always happens.
type conn struct {
	con transport.Conn

	router *router.Router
	logger *slog.Logger
	clock  clock.Clock
	opts   Options
}

func (c *conn) serve() {
	defer func() {
		if err := c.con.Close(); err != nil {
			// Nothing sensible left to do with a connection that won't
			// close; the response was already attempted.
			c.logger.Debug("error when closing connection", "error", err)
		}
	}()

	if c.opts.ReadTimeout > 0 {
		if err := c.con.SetReadDeadline(c.clock.Now().Add(c.opts.ReadTimeout)); err != nil {
			c.logger.Error("setting read deadline", "error", err)
		}
	}

	res := c.dispatch()

	if err := http.NewResponseEncoder(c.con).Encode(res); err != nil {
		c.logger.Error("writing response", "error", err)
	}
}

func (c *conn) dispatch() *http.Response {
	raw, err := http.ReadFrame(c.con, c.opts.MaxFrameBytes)
	if err != nil {
		c.logger.Error("framing request", "error", err)
		return http.InternalErrorResponse(err.Error())
	}

	request, err := http.ParseRequest(raw)
	if err != nil {
		c.logger.Error("parsing request", "error", err)
		return http.InternalErrorResponse(err.Error())
	}

	match := c.router.Route(request.Method, request.Path)
	switch match.Outcome {
	case router.NotFound:
		return http.ErrorResponse(http.StatusNotFound, "Not found")
	case router.MethodNotAllowed:
		return http.ErrorResponse(http.StatusMethodNotAllowed, "Method not allowed")
	}

	return c.invoke(match, request)
}

// invoke runs the matched handler with fault containment: a panic becomes a
// logged 500, never a dead dispatcher.
func (c *conn) invoke(match router.Match, request *http.Request) (res *http.Response) {
	defer func() {
		if e := recover(); e != nil {
			c.logger.Error("handler panicked",
				"method", request.Method,
				"path", request.Path,
				"panic", fmt.Sprint(e),
			)
			res = http.InternalErrorResponse(fmt.Sprint(e))
		}
	}()

	res = match.Handler(request, match.Params)
	if res == nil {
		c.logger.Error("handler returned nil response",
			"method", request.Method,
			"path", request.Path,
		)
		res = http.InternalErrorResponse("nil response from handler")
	}

	return res
}
