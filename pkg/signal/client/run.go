package client

import (
	"context"
	"encoding/json"

	"github.com/lintfly/signalbridge/pkg/sigerrs"
)

// run continuously drains the transport, routing each frame to its waiter
// or onto the notification queue. On exit it fails every pending request
// and closes the queue; a closed transport alone never resolves waiters,
// so this is the only place that guarantee is enforced.
func (c *Client) run(ctx context.Context, done chan struct{}, queue *notifyQueue, lines <-chan []byte, errs <-chan error) {
	defer func() {
		c.failPending(sigerrs.ErrConnectionClosed)

		// Only clear the shared handle if a reconnect has not already
		// replaced it with a newer connection's.
		c.mu.Lock()
		if c.done == done {
			c.done = nil
		}
		c.mu.Unlock()

		queue.close()
		close(done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			c.handleLine(line, queue)
		case err, ok := <-errs:
			if !ok {
				return
			}
			if err != nil {
				c.logger.Warn("transport read failed", "error", err)

				return
			}
		}
	}
}

// handleLine decodes one frame and dispatches it. Malformed frames are
// logged and dropped so the read loop stays available.
func (c *Client) handleLine(line []byte, queue *notifyQueue) {
	var frame map[string]any
	if err := json.Unmarshal(line, &frame); err != nil {
		c.logger.Warn("dropping malformed frame", "error", err)

		return
	}

	c.dispatch(frame, queue)
}

// dispatch routes a frame to the waiter matching its correlation id, or
// onto the notification queue when no waiter matches. An error marker on a
// matched frame fails the waiter instead of fulfilling it; the two
// outcomes are mutually exclusive.
func (c *Client) dispatch(frame map[string]any, queue *notifyQueue) {
	id, _ := frame["id"].(string)

	c.mu.Lock()
	resCh, matched := c.pending[id]
	if matched {
		delete(c.pending, id)
		c.metrics.RequestsInFlight.Dec()
	}
	c.mu.Unlock()

	if !matched {
		c.metrics.FramesRouted.WithLabelValues("notification").Inc()
		queue.push(frame)

		return
	}

	c.metrics.FramesRouted.WithLabelValues("response").Inc()
	if _, isErr := frame["error_type"]; isErr {
		c.metrics.DaemonErrors.Inc()
		resCh <- result{err: sigerrs.NewDaemonError(frame)}

		return
	}
	resCh <- result{payload: frame}
}

// failPending resolves every outstanding waiter with the given error.
func (c *Client) failPending(err error) {
	c.mu.Lock()
	pending := c.pending
	c.pending = make(map[string]chan result)
	c.mu.Unlock()

	for id, resCh := range pending {
		c.metrics.RequestsInFlight.Dec()
		resCh <- result{err: sigerrs.NewProtocolError(
			sigerrs.ErrCodeRequestFailed,
			"request failed",
			err,
		).WithRequestID(id)}
	}
}
