// Package parse classifies inbound notification frames into normalized
// chat events. One envelope yields zero events (unknown or filtered), one
// (typical text or typing), or several (one per attachment).
package parse

import (
	"log/slog"
	"os"

	"github.com/lintfly/signalbridge/pkg/signal/events"
	"github.com/lintfly/signalbridge/pkg/signal/identity"
	"github.com/lintfly/signalbridge/pkg/signal/metric"
	"github.com/lintfly/signalbridge/pkg/signal/ports"
	"github.com/lintfly/signalbridge/pkg/signal/schema"
)

// Parser implements ports.EventParser. It keeps no state across envelopes
// beyond configuration.
type Parser struct {
	whitelist map[string]struct{}
	resolver  *identity.Resolver
	logger    *slog.Logger
	metrics   *metric.Metrics
	readFile  func(name string) ([]byte, error)
}

// Verify interface compliance at compile time.
var _ ports.EventParser = (*Parser)(nil)

// Option configures the parser.
type Option func(*Parser)

// WithLogger sets the parser logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithMetrics shares a metrics instance with the parser.
func WithMetrics(m *metric.Metrics) Option {
	return func(p *Parser) {
		p.metrics = m
	}
}

// WithFileReader substitutes attachment byte retrieval, used by tests to
// avoid touching the daemon's attachment store.
func WithFileReader(readFile func(name string) ([]byte, error)) Option {
	return func(p *Parser) {
		p.readFile = readFile
	}
}

// NewParser creates a parser. An empty whitelist admits every source; a
// non-empty one admits only the listed raw identifiers (resolve aliases
// before handing the list in, see options.Options.Whitelist).
func NewParser(whitelist []string, resolver *identity.Resolver, opts ...Option) *Parser {
	p := &Parser{
		resolver: resolver,
		logger:   slog.Default(),
		metrics:  metric.NewMetrics(),
		readFile: os.ReadFile,
	}
	if len(whitelist) > 0 {
		p.whitelist = make(map[string]struct{}, len(whitelist))
		for _, entry := range whitelist {
			p.whitelist[entry] = struct{}{}
		}
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Parse implements ports.EventParser. Frames other than incoming message
// envelopes yield nothing.
func (p *Parser) Parse(frame map[string]any) []events.Event {
	frameType, _ := frame["type"].(string)
	if frameType != schema.TypeIncomingMessage {
		return nil
	}

	env, err := schema.DecodeIncoming(frame)
	if err != nil {
		p.logger.Warn("dropping undecodable envelope", "error", err)
		p.metrics.EnvelopesDropped.WithLabelValues("decode").Inc()

		return nil
	}

	return p.parseEnvelope(env)
}
