// Command leaderfollower-server runs the leader/follower thread-pool server
// (§4.8): a fixed worker pool takes turns owning the shared listening
// socket, dispatching each accepted connection's single request through the
// strategy factory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"graphsuite/internal/leaderfollower"
	"graphsuite/pkg/config"
	"graphsuite/pkg/logger"
	"graphsuite/pkg/metrics"
)

func main() {
	os.Exit(run())
}

func run() int {
	port := flag.Int("port", 0, "listening port (overrides config/default 3491 if > 0)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "leaderfollower-server: failed to load config: %v\n", err)
		return 1
	}
	if *port > 0 {
		cfg.LeaderFollower.Port = *port
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

	srv := leaderfollower.New(cfg.LeaderFollower)
	if _, err := srv.Listen(); err != nil {
		logger.Error("leaderfollower-server: failed to bind listener", "port", cfg.LeaderFollower.Port, "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve() }()

	select {
	case <-ctx.Done():
		logger.Info("leaderfollower-server: shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			logger.Error("leaderfollower-server: serve failed", "error", err)
			return 1
		}
	}

	srv.Shutdown()
	srv.Wait()
	return 0
}
