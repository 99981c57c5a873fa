package connector

import (
	"context"
	"errors"

	"github.com/lintfly/signalbridge/pkg/sigerrs"
	"github.com/lintfly/signalbridge/pkg/signal/events"
	"github.com/lintfly/signalbridge/pkg/signal/schema"
)

// Listen subscribes the bot account and dispatches normalized events to
// the handler until the connection closes or the context ends. Handler and
// parse failures are logged and contained; the loop stays up.
func (c *Connector) Listen(ctx context.Context, handler Handler) error {
	if _, err := c.daemon.Request(ctx, schema.SubscribeRequest(c.opts.BotNumber)); err != nil {
		return err
	}
	c.logger.Info("subscribed", "account", c.opts.BotNumber)

	for {
		frame, err := c.daemon.Next(ctx)
		if errors.Is(err, sigerrs.ErrConnectionClosed) {
			return nil
		}
		if err != nil {
			return err
		}

		c.handleFrame(ctx, frame, handler)
	}
}

// handleFrame consumes one notification frame. Housekeeping frames are
// logged; incoming message envelopes fan out through the parser.
func (c *Connector) handleFrame(
	ctx context.Context,
	frame map[string]any,
	handler Handler,
) {
	frameType, _ := frame["type"].(string)
	switch frameType {
	case schema.TypeVersion:
		if data, ok := frame["data"].(map[string]any); ok {
			c.logger.Info("signald version", "version", data["version"])
		}
	case schema.TypeWebSocketState:
		if data, ok := frame["data"].(map[string]any); ok {
			if socket, _ := data["socket"].(string); socket == "IDENTIFIED" {
				c.logger.Info("signald service state", "state", data["state"])
			}
		}
	case schema.TypeListenerState:
		// Keepalive, nothing to do.
	default:
		c.dispatchEvents(ctx, frame, handler)
	}
}

// dispatchEvents parses an envelope and hands each record to the handler,
// acknowledging at most one mark-read-flagged record per batch.
func (c *Connector) dispatchEvents(
	ctx context.Context,
	frame map[string]any,
	handler Handler,
) {
	markedRead := false
	for _, event := range c.parser.Parse(frame) {
		if event.MarkRead() && !markedRead {
			c.markRead(ctx, event)
			markedRead = true
		}

		if err := handler(ctx, event); err != nil {
			c.logger.Warn("event handler failed", "error", err)
		}
	}
}

// markRead acknowledges one event to its source. Failures are logged; a
// missed receipt must not take the read loop down.
func (c *Connector) markRead(ctx context.Context, event events.Event) {
	meta := event.Meta()
	c.logger.Info("mark as read", "event_id", meta.EventID, "target", meta.Target)

	_, err := c.daemon.Request(ctx, schema.MarkReadRequest(
		c.opts.BotNumber,
		&schema.Address{Number: meta.UserID},
		[]int64{meta.EventID},
	))
	if err != nil {
		c.logger.Warn("mark read failed", "event_id", meta.EventID, "error", err)
	}
}
