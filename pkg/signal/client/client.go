// Package client multiplexes request/response pairs and async notifications
// over one transport connection to the signald daemon.
//
// One background goroutine drains the transport and routes each inbound
// frame either to the pending request matching its correlation id or, when
// unmatched, onto an unbounded ordered notification queue. At most one
// waiter exists per correlation id; a pending request always observes a
// resolution, including connection-closed when the transport goes away.
package client

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/lintfly/signalbridge/pkg/signal/metric"
	"github.com/lintfly/signalbridge/pkg/signal/ports"
)

// result is the single-resolution outcome of one request.
type result struct {
	payload map[string]any
	err     error
}

// Client implements ports.DaemonClient.
type Client struct {
	transport ports.Transport
	logger    *slog.Logger
	metrics   *metric.Metrics
	generate  func() string

	mu      sync.Mutex
	pending map[string]chan result
	queue   *notifyQueue
	cancel  context.CancelFunc
	done    chan struct{}
}

// Verify interface compliance at compile time.
var _ ports.DaemonClient = (*Client)(nil)

// Option configures the client.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics shares a metrics instance with the client.
func WithMetrics(m *metric.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithIDGenerator substitutes the correlation id generator. Tests use a
// deterministic generator; the default is a random UUID.
func WithIDGenerator(generate func() string) Option {
	return func(c *Client) {
		c.generate = generate
	}
}

// New creates a client over the given transport.
func New(transport ports.Transport, opts ...Option) *Client {
	c := &Client{
		transport: transport,
		logger:    slog.Default(),
		metrics:   metric.NewMetrics(),
		generate:  uuid.NewString,
		pending:   make(map[string]chan result),
		queue:     newNotifyQueue(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Metrics exposes the client metrics for registration.
func (c *Client) Metrics() *metric.Metrics {
	return c.metrics
}

// Connect opens the transport and starts the background read loop. Each
// connection gets a fresh notification queue; frames from an earlier
// connection that were never consumed do not carry over.
func (c *Client) Connect(ctx context.Context) error {
	if err := c.transport.Connect(ctx); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	queue := newNotifyQueue()
	lines, errs := c.transport.ReadLines(runCtx)

	c.mu.Lock()
	c.cancel = cancel
	c.done = done
	c.queue = queue
	c.mu.Unlock()

	go c.run(runCtx, done, queue, lines, errs)

	return nil
}

// Close implements ports.DaemonClient. It cancels the read loop, closes
// the transport, and fails every pending request so none hangs.
func (c *Client) Close() error {
	c.mu.Lock()
	cancel := c.cancel
	done := c.done
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	err := c.transport.Close()
	if done != nil {
		<-done
	}

	return err
}
