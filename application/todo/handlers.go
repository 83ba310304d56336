package todo

import (
	"fmt"
	"math"
	"strings"
	"time"

	"mini-server/application/http"
	"mini-server/application/router"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

// Handlers is the full handler set over one shared store. Each handler is a
// pure function of (request, params); domain outcomes travel in the
// response status, never as errors past the dispatcher boundary.
type Handlers struct {
	store *Store
	clock clock.Clock

	addr      string
	startedAt time.Time
}

func NewHandlers(store *Store, clk clock.Clock, addr string) *Handlers {
	return &Handlers{
		store:     store,
		clock:     clk,
		addr:      addr,
		startedAt: clk.Now(),
	}
}

// Register wires every route into r. The method/path matrix lives here and
// nowhere else.
func (h *Handlers) Register(r *router.Router) {
	r.Handle("GET", "/", h.Home)
	r.Handle("GET", "/health", h.Health)
	r.Handle("GET", "/todos", h.List)
	r.Handle("POST", "/todos", h.Create)
	r.HandleID("PATCH", "/todos/", h.Patch)
	r.HandleID("DELETE", "/todos/", h.Delete)
}

func (h *Handlers) Home(req *http.Request, _ router.Params) *http.Response {
	body := fmt.Sprintf(homePage, h.addr, h.addr, h.addr, h.addr, h.addr)

	return &http.Response{
		Status:  http.StatusOK,
		Headers: http.Headers{{Name: "Content-Type", Value: "text/html; charset=utf-8"}},
		Body:    []byte(body),
	}
}

type healthBody struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Todos         int     `json:"todos"`
}

func (h *Handlers) Health(req *http.Request, _ router.Params) *http.Response {
	uptime := h.clock.Since(h.startedAt).Seconds()

	return http.JSONResponse(http.StatusOK, healthBody{
		Status:        "ok",
		UptimeSeconds: math.Round(uptime*100) / 100,
		Todos:         h.store.Len(),
	})
}

type listBody struct {
	Todos []Todo `json:"todos"`
}

func (h *Handlers) List(req *http.Request, _ router.Params) *http.Response {
	todos := h.store.List()

	// Optional ?done= filter, first value only. Anything outside the two
	// recognized sets means no filtering.
	if val, ok := req.Query.First("done"); ok {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			todos = filterDone(todos, true)
		case "false", "0", "no":
			todos = filterDone(todos, false)
		}
	}

	return http.JSONResponse(http.StatusOK, listBody{Todos: todos})
}

func filterDone(todos []Todo, done bool) []Todo {
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if t.Done == done {
			out = append(out, t)
		}
	}
	return out
}

func (h *Handlers) Create(req *http.Request, _ router.Params) *http.Response {
	if !hasJSONContentType(req) {
		return http.ErrorResponse(http.StatusUnprocessableEntity, "Expected Content-Type: application/json")
	}

	text, err := decodeCreate(req.Body)
	if err != nil {
		return payloadErrorResponse(err)
	}

	return http.JSONResponse(http.StatusCreated, h.store.Create(text))
}

func (h *Handlers) Patch(req *http.Request, params router.Params) *http.Response {
	if !hasJSONContentType(req) {
		return http.ErrorResponse(http.StatusUnprocessableEntity, "Expected Content-Type: application/json")
	}

	// Existence is checked before the body is even parsed; an unknown id is
	// 404 regardless of what the payload looks like.
	if !h.store.Exists(params.ID) {
		return http.ErrorResponse(http.StatusNotFound, "Todo not found")
	}

	p, err := decodePatch(req.Body)
	if err != nil {
		return payloadErrorResponse(err)
	}

	updated, ok := h.store.Update(params.ID, p.Text, p.Done)
	if !ok {
		// Deleted between the existence check and the update.
		return http.ErrorResponse(http.StatusNotFound, "Todo not found")
	}

	return http.JSONResponse(http.StatusOK, updated)
}

func (h *Handlers) Delete(req *http.Request, params router.Params) *http.Response {
	if !h.store.Delete(params.ID) {
		return http.ErrorResponse(http.StatusNotFound, "Todo not found")
	}

	return &http.Response{Status: http.StatusNoContent}
}

func hasJSONContentType(req *http.Request) bool {
	return strings.HasPrefix(req.Headers["content-type"], "application/json")
}

func payloadErrorResponse(err error) *http.Response {
	if errors.Is(err, ErrInvalidJSON) {
		return http.ErrorResponse(http.StatusBadRequest, "Invalid JSON")
	}
	return http.ErrorResponse(http.StatusUnprocessableEntity, err.Error())
}

const homePage = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>Mini Server</title></head>
<body style="font-family: system-ui; max-width: 720px; margin: 40px auto;">
  <h1>Mini HTTP Server ✅</h1>
  <p>This is a tiny HTTP server built on raw TCP sockets + a small router.</p>

  <h2>Endpoints</h2>
  <ul>
    <li><code>GET /health</code></li>
    <li><code>GET /todos</code></li>
    <li><code>POST /todos</code> JSON: <code>{"text":"..."}</code></li>
    <li><code>PATCH /todos/&lt;id&gt;</code> JSON: <code>{"text"?: "...", "done"?: true}</code></li>
    <li><code>DELETE /todos/&lt;id&gt;</code></li>
  </ul>

  <h2>Try quickly</h2>
  <pre>
curl http://%s/health
curl http://%s/todos
curl -X POST http://%s/todos -H "Content-Type: application/json" -d '{"text":"ship it"}'
curl -X PATCH http://%s/todos/1 -H "Content-Type: application/json" -d '{"done":true}'
curl -X DELETE http://%s/todos/1
  </pre>
</body>
</html>`
