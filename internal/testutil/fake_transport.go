// Package testutil provides shared fakes for hermetic tests.
package testutil

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/lintfly/signalbridge/pkg/signal/ports"
)

// FakeTransport simulates the daemon socket for hermetic testing. It
// queues inbound frames and tracks write history without opening sockets.
type FakeTransport struct {
	mu            sync.Mutex
	lines         [][]byte
	writes        []map[string]any
	connected     bool
	simulateError error
	feed          chan []byte
	onWrite       func(payload map[string]any)
}

// Verify interface compliance at compile time.
var _ ports.Transport = (*FakeTransport)(nil)

// NewFakeTransport creates a fake transport.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{feed: make(chan []byte, 64)}
}

// QueueFrame adds an inbound frame to be delivered by ReadLines. Frames
// queued before Connect are delivered first, in order.
func (f *FakeTransport) QueueFrame(frame map[string]any) {
	line, err := json.Marshal(frame)
	if err != nil {
		panic(err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = append(f.lines, line)
}

// Deliver pushes one frame to the most recent read loop.
func (f *FakeTransport) Deliver(frame map[string]any) {
	line, err := json.Marshal(frame)
	if err != nil {
		panic(err)
	}

	f.mu.Lock()
	feed := f.feed
	f.mu.Unlock()

	feed <- line
}

// EndStream simulates the peer closing the connection.
func (f *FakeTransport) EndStream() {
	f.mu.Lock()
	feed := f.feed
	f.mu.Unlock()

	close(feed)
}

// SimulateError causes subsequent operations to fail.
func (f *FakeTransport) SimulateError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.simulateError = err
}

// OnWrite installs a hook invoked with each decoded payload after it is
// recorded, letting tests answer requests as they are written.
func (f *FakeTransport) OnWrite(hook func(payload map[string]any)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onWrite = hook
}

// Writes returns the decoded payloads written so far.
func (f *FakeTransport) Writes() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]map[string]any, len(f.writes))
	copy(out, f.writes)

	return out
}

// Connect implements ports.Transport.
func (f *FakeTransport) Connect(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.simulateError != nil {
		return f.simulateError
	}
	f.connected = true

	return nil
}

// Write implements ports.Transport, recording the decoded payload.
func (f *FakeTransport) Write(_ context.Context, line []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.simulateError != nil {
		return f.simulateError
	}

	var payload map[string]any
	if err := json.Unmarshal(line, &payload); err != nil {
		return err
	}
	f.writes = append(f.writes, payload)
	hook := f.onWrite

	if hook != nil {
		go hook(payload)
	}

	return nil
}

// ReadLines implements ports.Transport. Queued frames are delivered first,
// then frames pushed via Deliver until EndStream.
func (f *FakeTransport) ReadLines(ctx context.Context) (<-chan []byte, <-chan error) {
	lineCh := make(chan []byte)
	errCh := make(chan error, 1)

	// Each read loop gets its own feed so frames delivered after a
	// reconnect never race against a previous loop that is still
	// winding down.
	f.mu.Lock()
	queued := f.lines
	f.lines = nil
	f.feed = make(chan []byte, 64)
	feed := f.feed
	f.mu.Unlock()

	go func() {
		defer close(lineCh)
		defer close(errCh)

		for _, line := range queued {
			select {
			case lineCh <- line:
			case <-ctx.Done():
				return
			}
		}

		for {
			select {
			case line, ok := <-feed:
				if !ok {
					return
				}
				select {
				case lineCh <- line:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return lineCh, errCh
}

// Close implements ports.Transport.
func (f *FakeTransport) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = false

	return nil
}

// IsReady implements ports.Transport.
func (f *FakeTransport) IsReady() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.connected
}
