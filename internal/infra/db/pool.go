package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	// Pool size: (workers * 2) + buffer
	connsPerWorker  = 2
	connBuffer      = 4
	defaultMinConns = 2
)

// NewPool connects and pings. The pool is sized for workers concurrent
// River jobs, each holding a writer transaction plus River's own fetch.
func NewPool(ctx context.Context, databaseURL string, workers int) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	config.MaxConns = maxConns(workers)
	config.MinConns = min(defaultMinConns, config.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

func maxConns(workers int) int32 {
	if workers <= 0 {
		workers = 1
	}
	return int32(workers*connsPerWorker + connBuffer)
}
