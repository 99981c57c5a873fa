// Package connector bridges the signald daemon to a bot-side event sink.
// It wires the transport, multiplexer, identity resolver, and parser, runs
// the receive loop with read-receipt side effects, and translates outgoing
// events back into daemon requests.
package connector

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lintfly/signalbridge/pkg/signal/adapters/parse"
	"github.com/lintfly/signalbridge/pkg/signal/adapters/socket"
	"github.com/lintfly/signalbridge/pkg/signal/client"
	"github.com/lintfly/signalbridge/pkg/signal/events"
	"github.com/lintfly/signalbridge/pkg/signal/identity"
	"github.com/lintfly/signalbridge/pkg/signal/metric"
	"github.com/lintfly/signalbridge/pkg/signal/options"
	"github.com/lintfly/signalbridge/pkg/signal/ports"
)

// Handler receives each normalized event from the listen loop.
type Handler func(ctx context.Context, event events.Event) error

// Connector is the public entry point.
type Connector struct {
	opts     *options.Options
	resolver *identity.Resolver
	logger   *slog.Logger
	metrics  *metric.Metrics

	transport ports.Transport
	daemon    ports.DaemonClient
	parser    ports.EventParser
}

// Option configures the connector.
type Option func(*Connector)

// WithLogger sets the connector logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Connector) {
		c.logger = logger
	}
}

// WithTransport substitutes the transport, used by tests.
func WithTransport(transport ports.Transport) Option {
	return func(c *Connector) {
		c.transport = transport
	}
}

// WithDaemonClient substitutes the multiplexer client, used by tests.
func WithDaemonClient(daemon ports.DaemonClient) Option {
	return func(c *Connector) {
		c.daemon = daemon
	}
}

// New creates a connector from validated options.
func New(opts *options.Options, copts ...Option) *Connector {
	c := &Connector{
		opts:     opts,
		resolver: identity.NewResolver(opts.Rooms),
		logger:   slog.Default(),
		metrics:  metric.NewMetrics(),
	}
	for _, opt := range copts {
		opt(c)
	}

	if c.transport == nil {
		c.transport = socket.NewAdapter(
			opts.SocketPath,
			socket.WithMaxBufferSize(opts.MaxBufferSize),
			socket.WithLogger(c.logger),
		)
	}
	if c.daemon == nil {
		c.daemon = client.New(
			c.transport,
			client.WithLogger(c.logger),
			client.WithMetrics(c.metrics),
		)
	}
	c.parser = parse.NewParser(
		opts.Whitelist(),
		c.resolver,
		parse.WithLogger(c.logger),
		parse.WithMetrics(c.metrics),
	)

	return c
}

// RegisterMetrics registers the connector metrics with the given
// registerer.
func (c *Connector) RegisterMetrics(reg prometheus.Registerer) error {
	return c.metrics.Register(reg)
}

// Connect opens the daemon connection and starts the background read loop.
func (c *Connector) Connect(ctx context.Context) error {
	return c.daemon.Connect(ctx)
}

// Disconnect closes the daemon connection. Pending requests observe a
// connection-closed failure.
func (c *Connector) Disconnect() error {
	return c.daemon.Close()
}
