package client

import (
	"context"
	"encoding/json"
	"maps"

	"github.com/lintfly/signalbridge/pkg/sigerrs"
)

// requiredFields must appear in every outbound payload; the daemon rejects
// frames without them.
var requiredFields = []string{"type", "version"}

// Send implements ports.DaemonClient. It validates the discriminant
// fields, serializes the payload to one line, and writes it.
func (c *Client) Send(ctx context.Context, payload map[string]any) error {
	for _, name := range requiredFields {
		if _, ok := payload[name]; !ok {
			return sigerrs.NewValidationError(
				sigerrs.ErrCodeMissingField,
				"payload missing required field",
				nil,
				name,
			)
		}
	}

	line, err := json.Marshal(payload)
	if err != nil {
		return sigerrs.NewProtocolError(
			sigerrs.ErrCodeInvalidFrame,
			"marshal payload",
			err,
		)
	}

	return c.transport.Write(ctx, line)
}

// Request implements ports.DaemonClient. It ensures the payload carries a
// correlation id, registers a waiter, sends, and awaits resolution. The
// waiter entry is removed on every exit path.
func (c *Client) Request(
	ctx context.Context,
	payload map[string]any,
) (map[string]any, error) {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done == nil {
		return nil, sigerrs.ErrNotConnected
	}

	id, resCh, payload := c.registerWaiter(payload)
	defer c.removeWaiter(id)

	if err := c.Send(ctx, payload); err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-done:
		// A response that raced the shutdown may already be resolved;
		// prefer it over reporting the connection closed.
		select {
		case res := <-resCh:
			return unpack(res)
		default:
			return nil, sigerrs.ErrConnectionClosed
		}
	case res := <-resCh:
		return unpack(res)
	}
}

// unpack splits a waiter resolution into the Request return values.
func unpack(res result) (map[string]any, error) {
	if res.err != nil {
		return nil, res.err
	}

	return res.payload, nil
}

// Next implements ports.DaemonClient. Frames are yielded in wire arrival
// order; after the connection ends and the queue drains it returns
// sigerrs.ErrConnectionClosed. Reconnecting starts a fresh stream.
func (c *Client) Next(ctx context.Context) (map[string]any, error) {
	c.mu.Lock()
	queue := c.queue
	c.mu.Unlock()

	return queue.pop(ctx)
}

// registerWaiter assigns the correlation id and installs the waiter under
// the lock. A caller-supplied id is kept unless it is empty or already
// pending; either case gets a fresh generated id on a copied payload so
// the caller's map is never mutated.
func (c *Client) registerWaiter(
	payload map[string]any,
) (string, chan result, map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, _ := payload["id"].(string)
	if _, pending := c.pending[id]; id == "" || pending {
		id = c.generate()
		for _, taken := c.pending[id]; taken; _, taken = c.pending[id] {
			id = c.generate()
		}
		payload = maps.Clone(payload)
		payload["id"] = id
	}

	resCh := make(chan result, 1)
	c.pending[id] = resCh
	c.metrics.RequestsInFlight.Inc()

	return id, resCh, payload
}

// removeWaiter deletes the waiter entry when present.
func (c *Client) removeWaiter(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.pending[id]; ok {
		delete(c.pending, id)
		c.metrics.RequestsInFlight.Dec()
	}
}
