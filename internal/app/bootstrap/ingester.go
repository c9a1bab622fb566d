// Package bootstrap provides application startup utilities for the ingester service.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/specvital/reporter/internal/app"
	"github.com/specvital/reporter/internal/infra/config"
	"github.com/specvital/reporter/internal/infra/db"
	infraqueue "github.com/specvital/reporter/internal/infra/queue"
	"github.com/specvital/reporter/pkg/report"
	"github.com/specvital/reporter/pkg/writer/queue"
)

// IngesterConfig holds configuration for the ingester service.
type IngesterConfig struct {
	ServiceName     string
	DatabaseURL     string
	RunID           report.UUID
	QueueName       string
	Concurrency     int
	ShutdownTimeout time.Duration
	S3              config.S3Config
}

// Validate checks that required ingester configuration fields are set.
func (c *IngesterConfig) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service name is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("database URL is required")
	}
	return nil
}

func (c *IngesterConfig) applyDefaults() {
	if c.QueueName == "" {
		c.QueueName = queue.QueueArtifacts
	}
	if c.Concurrency <= 0 {
		c.Concurrency = defaultConcurrency
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = infraqueue.DefaultShutdownTimeout
	}
	if c.RunID == report.NilUUID {
		c.RunID = report.NewUUID()
	}
}

// StartIngester runs River workers that persist queued report artifacts
// until SIGTERM or SIGINT. Multiple ingesters may share one queue.
func StartIngester(cfg IngesterConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg.applyDefaults()

	slog.Info("starting service", "name", cfg.ServiceName)
	slog.Info("config loaded",
		"database_url", maskURL(cfg.DatabaseURL),
		"run_id", cfg.RunID.String(),
		"queue", cfg.QueueName,
		"s3_bucket", cfg.S3.Bucket,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.Concurrency)
	if err != nil {
		return fmt.Errorf("database connection: %w", err)
	}
	defer pool.Close()

	slog.Info("postgres connected")

	container, err := app.NewIngesterContainer(ctx, app.ContainerConfig{
		Pool:  pool,
		RunID: cfg.RunID,
		S3:    cfg.S3,
	})
	if err != nil {
		return fmt.Errorf("container: %w", err)
	}

	srv, err := infraqueue.NewServer(ctx, infraqueue.ServerConfig{
		Pool:            pool,
		Queues:          []infraqueue.QueueAllocation{{Name: cfg.QueueName, MaxWorkers: cfg.Concurrency}},
		ShutdownTimeout: cfg.ShutdownTimeout,
		Workers:         container.Workers,
		Logger:          slog.Default(),
	})
	if err != nil {
		return fmt.Errorf("queue server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("ingester starting", "concurrency", cfg.Concurrency)
		if err := srv.Start(gctx); err != nil {
			return fmt.Errorf("start server: %w", err)
		}
		slog.Info("ingester ready", "concurrency", cfg.Concurrency)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down", "cause", context.Cause(gctx))

		// The signal context is already cancelled; stopping needs a fresh one.
		if err := srv.Stop(context.WithoutCancel(gctx)); err != nil {
			slog.Error("queue server stop error", "error", err)
		}
		slog.Info("queue server stopped")
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("service shutdown complete", "name", cfg.ServiceName)
	return nil
}

// RunFromEnv loads configuration and starts the ingester.
func RunFromEnv(serviceName string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	return StartIngester(IngesterConfig{
		ServiceName:     serviceName,
		DatabaseURL:     cfg.DatabaseURL,
		RunID:           cfg.RunID,
		QueueName:       cfg.Queue.Name,
		Concurrency:     cfg.Queue.Workers,
		ShutdownTimeout: cfg.ShutdownTimeout,
		S3:              cfg.S3,
	})
}
