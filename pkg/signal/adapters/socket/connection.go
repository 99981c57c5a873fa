package socket

import (
	"context"
	"net"

	"github.com/lintfly/signalbridge/pkg/sigerrs"
)

// Connect implements ports.Transport. It dials the candidate socket paths
// in order, keeping the first that answers and logging each fallback. The
// final failure is returned when no candidate answers.
func (a *Adapter) Connect(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ready {
		return sigerrs.ErrAlreadyConnected
	}

	paths := a.candidatePaths()

	var (
		conn net.Conn
		err  error
	)
	dialer := &net.Dialer{}
	for i, path := range paths {
		conn, err = dialer.DialContext(ctx, "unix", path)
		if err == nil {
			break
		}
		if i < len(paths)-1 {
			a.logger.Warn("failed to open socket", "path", path, "error", err)
		}
	}
	if conn == nil {
		return sigerrs.NewTransportError(
			sigerrs.ErrCodeConnectionFailed,
			"all socket candidates failed",
			err,
		).WithPath(paths[len(paths)-1])
	}

	a.conn = conn
	a.ready = true

	return nil
}

// Close implements ports.Transport. Closing the socket unblocks the read
// loop; calling Close on a closed adapter is a no-op.
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.ready = false
	if a.conn == nil {
		return nil
	}

	conn := a.conn
	a.conn = nil

	return conn.Close()
}

// IsReady implements ports.Transport.
func (a *Adapter) IsReady() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.ready
}
