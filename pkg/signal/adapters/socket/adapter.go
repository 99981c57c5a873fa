// Package socket implements the transport port over a unix domain socket
// speaking newline-delimited JSON with the signald daemon.
package socket

import (
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"sync"

	"github.com/lintfly/signalbridge/pkg/signal/ports"
)

const defaultMaxBufferSize = 1024 * 1024 // 1MB

// Adapter implements ports.Transport over a unix socket.
type Adapter struct {
	path          string
	maxBufferSize int
	logger        *slog.Logger
	conn          net.Conn
	ready         bool
	mu            sync.RWMutex
}

// Verify interface compliance at compile time.
var _ ports.Transport = (*Adapter)(nil)

// Option configures the adapter.
type Option func(*Adapter)

// WithMaxBufferSize bounds the size of a single inbound frame.
func WithMaxBufferSize(size int) Option {
	return func(a *Adapter) {
		if size > 0 {
			a.maxBufferSize = size
		}
	}
}

// WithLogger sets the adapter logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// NewAdapter creates a socket transport. An empty path probes the default
// signald socket locations on Connect.
func NewAdapter(path string, opts ...Option) *Adapter {
	a := &Adapter{
		path:          path,
		maxBufferSize: defaultMaxBufferSize,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// candidatePaths returns the socket locations to try, in order. A
// configured path is authoritative; otherwise the per-user runtime socket
// is preferred over the system one.
func (a *Adapter) candidatePaths() []string {
	if a.path != "" {
		return []string{a.path}
	}

	var paths []string
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		paths = append(paths, filepath.Join(runtimeDir, "signald", "signald.sock"))
	}

	return append(paths, "/var/run/signald/signald.sock")
}
