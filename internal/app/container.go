// Package app wires the ingester's dependencies.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"

	"github.com/specvital/reporter/internal/infra/config"
	"github.com/specvital/reporter/pkg/report"
	"github.com/specvital/reporter/pkg/writer/postgres"
	"github.com/specvital/reporter/pkg/writer/queue"
	"github.com/specvital/reporter/pkg/writer/s3"
)

// ContainerConfig holds configuration for the ingester container.
type ContainerConfig struct {
	Pool  *pgxpool.Pool
	RunID report.UUID
	S3    config.S3Config
}

// Validate checks that required configuration fields are set.
func (c ContainerConfig) Validate() error {
	if c.Pool == nil {
		return fmt.Errorf("pool is required")
	}
	return nil
}

// IngesterContainer holds dependencies for the ingester service.
type IngesterContainer struct {
	Store   *postgres.Writer
	Writer  report.Writer
	Worker  *queue.Worker
	Workers *river.Workers
}

// NewIngesterContainer builds the downstream writer chain and the River
// worker that drains queued artifacts into it. Artifacts always land in
// PostgreSQL and are mirrored to S3 when a bucket is configured.
func NewIngesterContainer(ctx context.Context, cfg ContainerConfig) (*IngesterContainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid container config: %w", err)
	}

	store := postgres.NewWriter(cfg.Pool, postgres.Config{RunID: cfg.RunID})
	if err := store.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure report schema: %w", err)
	}

	var writer report.Writer = store
	if cfg.S3.Enabled() {
		mirror, err := s3.NewFromConfig(ctx, s3.Config{
			Bucket:            cfg.S3.Bucket,
			Prefix:            cfg.S3.Prefix,
			Region:            cfg.S3.Region,
			Endpoint:          cfg.S3.Endpoint,
			PathStyle:         cfg.S3.PathStyle,
			RequestsPerSecond: cfg.S3.RequestsPerSecond,
		})
		if err != nil {
			return nil, fmt.Errorf("create s3 writer: %w", err)
		}
		writer = report.MultiWriter(store, mirror)
	}

	worker := queue.NewWorker(writer)
	workers := river.NewWorkers()
	if err := queue.Register(workers, worker); err != nil {
		return nil, fmt.Errorf("register artifact worker: %w", err)
	}

	return &IngesterContainer{
		Store:   store,
		Writer:  writer,
		Worker:  worker,
		Workers: workers,
	}, nil
}
