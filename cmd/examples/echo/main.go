// Command echo is a minimal bot that echoes every text message back to its
// conversation.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lintfly/signalbridge/pkg/signal/connector"
	"github.com/lintfly/signalbridge/pkg/signal/events"
	"github.com/lintfly/signalbridge/pkg/signal/options"
)

func main() {
	configPath := flag.String("config", "signalbridge.yaml", "path to the connector config")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	opts, err := options.Load(*configPath)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn := connector.New(opts, connector.WithLogger(logger))
	if err := conn.RegisterMetrics(prometheus.DefaultRegisterer); err != nil {
		logger.Error("register metrics", "error", err)
		os.Exit(1)
	}

	if err := conn.Connect(ctx); err != nil {
		logger.Error("connect", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := conn.Disconnect(); err != nil {
			logger.Warn("disconnect", "error", err)
		}
	}()

	err = conn.Listen(ctx, func(ctx context.Context, event events.Event) error {
		text, ok := event.(events.Text)
		if !ok {
			return nil
		}

		return conn.SendText(ctx, text.Target, text.Text)
	})
	if err != nil && ctx.Err() == nil {
		logger.Error("listen", "error", err)
		os.Exit(1)
	}
}
