// Package router classifies (method, path) pairs before any handler runs.
//
// The distinction between its two failure outcomes is load-bearing: a path
// nobody serves is NotFound, a served path hit with the wrong method is
// MethodNotAllowed, and the two must never blur into each other.
package router

import (
	"strconv"
	"strings"

	"mini-server/application/http"
)

// Params carries data extracted from a dynamic path segment at match time.
type Params struct {
	// ID is the numeric resource id from an id-family path. Zero value for
	// static routes.
	ID int
}

// Handler turns a parsed request into a response. Handlers signal domain
// outcomes through the response status, never by failing the dispatcher.
type Handler func(req *http.Request, params Params) *http.Response

type Outcome uint8

const (
	Matched Outcome = iota
	NotFound
	MethodNotAllowed
)

// Match is the routing verdict for one request.
type Match struct {
	Outcome Outcome

	// Set only when Outcome == Matched.
	Handler Handler
	Params  Params
}

// Router is a fixed dispatch table: static exact-match paths plus prefix
// families whose trailing segment must parse as an integer id. Routing is
// pure and stateless: it looks at nothing but (method, path).
type Router struct {
	static   map[string]map[string]Handler // path -> method -> handler
	idFamily map[string]map[string]Handler // prefix -> method -> handler
}

func New() *Router {
	return &Router{
		static:   make(map[string]map[string]Handler),
		idFamily: make(map[string]map[string]Handler),
	}
}

// Handle registers a static exact-match route.
func (r *Router) Handle(method, path string, h Handler) {
	if r.static[path] == nil {
		r.static[path] = make(map[string]Handler)
	}
	r.static[path][method] = h
}

// HandleID registers a route for prefix + <integer id>. The prefix must end
// with a slash, e.g. "/todos/".
func (r *Router) HandleID(method, prefix string, h Handler) {
	if r.idFamily[prefix] == nil {
		r.idFamily[prefix] = make(map[string]Handler)
	}
	r.idFamily[prefix][method] = h
}

// Route returns the verdict for (method, path). A non-integer trailing
// segment on an id family is NotFound, not an error: a malformed id
// addresses a resource space that cannot exist.
func (r *Router) Route(method, path string) Match {
	if methods, ok := r.static[path]; ok {
		return matchMethod(methods, method, Params{})
	}

	for prefix, methods := range r.idFamily {
		if !strings.HasPrefix(path, prefix) {
			continue
		}

		id, err := strconv.Atoi(path[len(prefix):])
		if err != nil {
			return Match{Outcome: NotFound}
		}

		return matchMethod(methods, method, Params{ID: id})
	}

	return Match{Outcome: NotFound}
}

func matchMethod(methods map[string]Handler, method string, params Params) Match {
	h, ok := methods[method]
	if !ok {
		return Match{Outcome: MethodNotAllowed}
	}

	return Match{Outcome: Matched, Handler: h, Params: params}
}
