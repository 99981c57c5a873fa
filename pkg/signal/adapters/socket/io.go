package socket

import (
	"bufio"
	"context"
	"errors"
	"net"

	"github.com/lintfly/signalbridge/pkg/sigerrs"
)

// Write implements ports.Transport. The newline terminator is appended
// here so callers hand over exactly one frame.
func (a *Adapter) Write(_ context.Context, line []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.ready || a.conn == nil {
		return sigerrs.ErrNotConnected
	}

	framed := make([]byte, 0, len(line)+1)
	framed = append(framed, line...)
	framed = append(framed, '\n')

	if _, err := a.conn.Write(framed); err != nil {
		return sigerrs.NewTransportError(
			sigerrs.ErrCodeWriteFailed,
			"write frame",
			err,
		)
	}

	return nil
}

// ReadLines implements ports.Transport. One goroutine scans the socket for
// newline-delimited frames until the peer closes or the context ends. A
// partial final read is the connection-closed signal, not an error.
func (a *Adapter) ReadLines(ctx context.Context) (<-chan []byte, <-chan error) {
	lineCh := make(chan []byte)
	errCh := make(chan error, 1)

	a.mu.RLock()
	conn := a.conn
	a.mu.RUnlock()

	go func() {
		defer close(lineCh)
		defer close(errCh)
		defer a.markClosed()

		if conn == nil {
			errCh <- sigerrs.ErrNotConnected

			return
		}

		scanner := bufio.NewScanner(conn)
		scanner.Buffer(make([]byte, 64*1024), a.maxBufferSize)

		for scanner.Scan() {
			line := make([]byte, len(scanner.Bytes()))
			copy(line, scanner.Bytes())

			select {
			case lineCh <- line:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
			errCh <- sigerrs.NewTransportError(
				sigerrs.ErrCodeReadFailed,
				"read frame",
				err,
			)
		}
	}()

	return lineCh, errCh
}

// markClosed flips the ready flag when the read loop exits.
func (a *Adapter) markClosed() {
	a.mu.Lock()
	a.ready = false
	a.mu.Unlock()
}
