// pkg/config/config.go
package config

import (
	"fmt"
	"strings"
)

// Config is the top-level configuration shared by every graphsuite binary.
// Each server binary reads only the sub-config it needs.
type Config struct {
	App            AppConfig            `koanf:"app"`
	Log            LogConfig            `koanf:"log"`
	Metrics        MetricsConfig        `koanf:"metrics"`
	Pipeline       PipelineConfig       `koanf:"pipeline"`
	LeaderFollower LeaderFollowerConfig `koanf:"leader_follower"`
	Euler          EulerConfig          `koanf:"euler"`
}

// AppConfig carries general application identity.
type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"` // development, staging, production
	Debug       bool   `koanf:"debug"`
}

// LogConfig controls structured logging (pkg/logger).
type LogConfig struct {
	Level      string `koanf:"level"`       // debug, info, warn, error
	Format     string `koanf:"format"`      // json, text
	Output     string `koanf:"output"`      // stdout, stderr, file
	FilePath   string `koanf:"file_path"`
	MaxSize    int    `koanf:"max_size"`    // MB
	MaxBackups int    `koanf:"max_backups"`
	MaxAge     int    `koanf:"max_age"`     // days
	Compress   bool   `koanf:"compress"`
}

// MetricsConfig controls the Prometheus /metrics endpoint each server exposes.
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Port      int    `koanf:"port"`
	Path      string `koanf:"path"`
	Namespace string `koanf:"namespace"`
	Subsystem string `koanf:"subsystem"`
}

// PipelineConfig configures the staged pipeline server (§4.7).
type PipelineConfig struct {
	Port          int `koanf:"port"`
	QueueCapacity int `koanf:"queue_capacity"` // MAX_QUEUE
	MaxEdges      int `koanf:"max_edges"`
	MaxVertices   int `koanf:"max_vertices"`
}

// LeaderFollowerConfig configures the leader/follower server (§4.8).
type LeaderFollowerConfig struct {
	Port        int `koanf:"port"`
	PoolSize    int `koanf:"pool_size"` // THREAD_POOL_SIZE
	MaxVertices int `koanf:"max_vertices"`
}

// EulerConfig configures the standalone Euler text server.
type EulerConfig struct {
	Port        int `koanf:"port"`
	MaxVertices int `koanf:"max_vertices"`
	Backlog     int `koanf:"backlog"`
}

// Validate checks the configuration for internally consistent values.
func (c *Config) Validate() error {
	var errs []string

	if c.App.Name == "" {
		errs = append(errs, "app.name is required")
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level must be one of: debug, info, warn, error, got %s", c.Log.Level))
	}

	if c.Pipeline.QueueCapacity <= 0 {
		errs = append(errs, "pipeline.queue_capacity must be positive")
	}
	if c.Pipeline.MaxVertices <= 0 {
		errs = append(errs, "pipeline.max_vertices must be positive")
	}
	if c.LeaderFollower.PoolSize <= 0 {
		errs = append(errs, "leader_follower.pool_size must be positive")
	}
	if c.LeaderFollower.MaxVertices <= 0 {
		errs = append(errs, "leader_follower.max_vertices must be positive")
	}
	if c.Euler.MaxVertices <= 0 {
		errs = append(errs, "euler.max_vertices must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}

// IsDevelopment reports whether App.Environment names a development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development" || c.App.Environment == "dev"
}

// IsProduction reports whether App.Environment names a production mode.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production" || c.App.Environment == "prod"
}
