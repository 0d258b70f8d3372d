// Command pipeline-server runs the staged pipeline server (§4.7): a bounded
// four-stage MST -> MaxFlow -> MaxClique -> CliqueCount pipeline behind a
// single accept loop.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"graphsuite/internal/pipeline"
	"graphsuite/pkg/config"
	"graphsuite/pkg/logger"
	"graphsuite/pkg/metrics"
)

func main() {
	os.Exit(run())
}

func run() int {
	port := flag.Int("port", 0, "listening port (overrides config/default 3490 if > 0)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pipeline-server: failed to load config: %v\n", err)
		return 1
	}
	if *port > 0 {
		cfg.Pipeline.Port = *port
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

	srv := pipeline.New(cfg.Pipeline)
	if _, err := srv.Listen(); err != nil {
		logger.Error("pipeline-server: failed to bind listener", "port", cfg.Pipeline.Port, "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve() }()

	select {
	case <-ctx.Done():
		logger.Info("pipeline-server: shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			logger.Error("pipeline-server: serve failed", "error", err)
			return 1
		}
	}

	srv.Shutdown()
	srv.Wait()
	return 0
}
