package router

import (
	"testing"

	"mini-server/application/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func named(name string) Handler {
	return func(req *http.Request, params Params) *http.Response {
		return &http.Response{Status: http.StatusOK, Body: []byte(name)}
	}
}

func newTestRouter() *Router {
	r := New()
	r.Handle("GET", "/", named("home"))
	r.Handle("GET", "/health", named("health"))
	r.Handle("GET", "/todos", named("list"))
	r.Handle("POST", "/todos", named("create"))
	r.HandleID("PATCH", "/todos/", named("patch"))
	r.HandleID("DELETE", "/todos/", named("delete"))
	return r
}

func TestRoute(t *testing.T) {
	testcases := []struct {
		desc    string
		method  string
		path    string
		outcome Outcome
		handler string
		id      int
	}{
		{desc: "home", method: "GET", path: "/", outcome: Matched, handler: "home"},
		{desc: "health", method: "GET", path: "/health", outcome: Matched, handler: "health"},
		{desc: "list", method: "GET", path: "/todos", outcome: Matched, handler: "list"},
		{desc: "create", method: "POST", path: "/todos", outcome: Matched, handler: "create"},
		{desc: "patch with id", method: "PATCH", path: "/todos/7", outcome: Matched, handler: "patch", id: 7},
		{desc: "delete with id", method: "DELETE", path: "/todos/12", outcome: Matched, handler: "delete", id: 12},

		{desc: "wrong method on home", method: "POST", path: "/", outcome: MethodNotAllowed},
		{desc: "wrong method on health", method: "DELETE", path: "/health", outcome: MethodNotAllowed},
		{desc: "put on todos is 405 not 404", method: "PUT", path: "/todos", outcome: MethodNotAllowed},
		{desc: "get on id family", method: "GET", path: "/todos/7", outcome: MethodNotAllowed},

		{desc: "unknown path", method: "GET", path: "/nope", outcome: NotFound},
		{desc: "non-integer id", method: "PATCH", path: "/todos/abc", outcome: NotFound},
		{desc: "empty id segment", method: "PATCH", path: "/todos/", outcome: NotFound},
		{desc: "nested segment", method: "DELETE", path: "/todos/7/extra", outcome: NotFound},
		{desc: "float id", method: "PATCH", path: "/todos/1.5", outcome: NotFound},
	}
	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			r := newTestRouter()

			m := r.Route(tc.method, tc.path)
			assert.Equal(t, tc.outcome, m.Outcome)

			if tc.outcome != Matched {
				assert.Nil(t, m.Handler)
				return
			}

			require.NotNil(t, m.Handler)
			assert.Equal(t, tc.id, m.Params.ID)

			res := m.Handler(nil, m.Params)
			assert.Equal(t, tc.handler, string(res.Body))
		})
	}
}

func TestRouteIsCaseSensitiveOnMethod(t *testing.T) {
	// The parser uppercases methods before routing; the table itself does
	// no folding.
	r := newTestRouter()
	assert.Equal(t, MethodNotAllowed, r.Route("get", "/").Outcome)
}

func TestRouteNegativeID(t *testing.T) {
	r := newTestRouter()

	m := r.Route("DELETE", "/todos/-3")
	assert.Equal(t, Matched, m.Outcome)
	assert.Equal(t, -3, m.Params.ID)
}
