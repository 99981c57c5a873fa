// Package ports defines the interfaces the connector core needs from its
// infrastructure. These are contracts stated by domain needs, not by the
// external systems behind them.
package ports

import (
	"context"

	"github.com/lintfly/signalbridge/pkg/signal/events"
)

// Transport owns one bidirectional byte stream to the daemon and frames it
// into newline-delimited lines.
type Transport interface {
	// Connect opens the underlying stream. Calling Connect on a live
	// transport is a programmer error.
	Connect(ctx context.Context) error

	// Write sends one line to the daemon. The line terminator is appended
	// by the transport.
	Write(ctx context.Context, line []byte) error

	// ReadLines returns channels yielding complete inbound lines and read
	// errors. Peer close ends the line channel without an error.
	ReadLines(ctx context.Context) (<-chan []byte, <-chan error)

	// Close tears down the stream. Safe to call when already closed.
	Close() error

	// IsReady reports whether the transport can send and receive.
	IsReady() bool
}

// DaemonClient multiplexes request/response pairs and async notifications
// over one transport.
type DaemonClient interface {
	// Connect opens the transport and starts the background read loop.
	Connect(ctx context.Context) error

	// Send writes a fire-and-forget request.
	Send(ctx context.Context, payload map[string]any) error

	// Request sends a correlated request and waits for its response.
	Request(ctx context.Context, payload map[string]any) (map[string]any, error)

	// Next yields the next unmatched notification frame in arrival order.
	Next(ctx context.Context) (map[string]any, error)

	// Close disconnects and fails all pending requests.
	Close() error
}

// EventParser classifies one inbound notification frame into zero or more
// normalized events.
type EventParser interface {
	Parse(frame map[string]any) []events.Event
}
