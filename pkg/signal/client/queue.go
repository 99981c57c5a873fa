package client

import (
	"context"
	"sync"

	"github.com/lintfly/signalbridge/pkg/sigerrs"
)

// notifyQueue is an unbounded FIFO of notification frames with exactly one
// producer (the read loop) and one sequential consumer.
type notifyQueue struct {
	mu     sync.Mutex
	items  []map[string]any
	signal chan struct{}
	closed bool
}

func newNotifyQueue() *notifyQueue {
	return &notifyQueue{signal: make(chan struct{}, 1)}
}

// push appends a frame and wakes the consumer.
func (q *notifyQueue) push(frame map[string]any) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()

		return
	}
	q.items = append(q.items, frame)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// close marks the end of the stream; queued frames remain consumable.
func (q *notifyQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// pop blocks until a frame is available, the queue is drained after close,
// or the context ends.
func (q *notifyQueue) pop(ctx context.Context) (map[string]any, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			frame := q.items[0]
			q.items = q.items[1:]
			q.mu.Unlock()

			return frame, nil
		}
		closed := q.closed
		q.mu.Unlock()

		if closed {
			return nil, sigerrs.ErrConnectionClosed
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.signal:
		}
	}
}
