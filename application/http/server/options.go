package server

import (
	"time"

	"mini-server/application/http"
)

type Options struct {
	// MaxFrameBytes caps the accumulated buffer while scanning for the
	// header separator. Zero means [http.DefaultMaxFrameBytes].
	MaxFrameBytes uint

	// ReadTimeout bounds how long a connection may take to deliver its
	// request. Zero disables the deadline, which matches the externally
	// observed behavior: a stalled sender simply occupies its goroutine.
	ReadTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxFrameBytes == 0 {
		o.MaxFrameBytes = http.DefaultMaxFrameBytes
	}
	return o
}
