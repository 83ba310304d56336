// Package todo is the domain side of the server: the in-memory collection
// and the handlers the router dispatches to. Everything here speaks in
// parsed requests and response values; no wire concerns.
package todo

import "time"

// Todo is the single entity this service manages. CreatedAt is float
// seconds since epoch on the wire.
type Todo struct {
	ID        int     `json:"id"`
	Text      string  `json:"text"`
	Done      bool    `json:"done"`
	CreatedAt float64 `json:"created_at"`
}

func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
