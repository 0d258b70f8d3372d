// Command euler-server runs the standalone Euler-circuit text server: each
// connection may submit multiple adjacency-matrix requests before
// disconnecting.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"graphsuite/internal/eulerserver"
	"graphsuite/pkg/config"
	"graphsuite/pkg/logger"
	"graphsuite/pkg/metrics"
)

func main() {
	os.Exit(run())
}

func run() int {
	port := flag.Int("port", 0, "listening port (overrides config/default 3492 if > 0)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "euler-server: failed to load config: %v\n", err)
		return 1
	}
	if *port > 0 {
		cfg.Euler.Port = *port
	}

	logger.InitWithConfig(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	metrics.InitMetrics(cfg.Metrics.Namespace, cfg.Metrics.Subsystem)
	metrics.Get().SetServiceInfo(cfg.App.Version, cfg.App.Environment)

	if cfg.Metrics.Enabled {
		go func() {
			if err := metrics.StartMetricsServer(cfg.Metrics.Port); err != nil {
				logger.Warn("metrics server stopped", "error", err)
			}
		}()
	}

	srv := eulerserver.New(cfg.Euler)
	if _, err := srv.Listen(); err != nil {
		logger.Error("euler-server: failed to bind listener", "port", cfg.Euler.Port, "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve() }()

	select {
	case <-ctx.Done():
		logger.Info("euler-server: shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			logger.Error("euler-server: serve failed", "error", err)
			return 1
		}
	}

	srv.Shutdown()
	srv.Wait()
	return 0
}
