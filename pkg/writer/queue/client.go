package queue

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
)

var _ Inserter = (*river.Client[pgx.Tx])(nil)

// NewInsertClient returns an insert-only River client for Writer. It runs no
// workers, so it needs neither Start nor Stop.
func NewInsertClient(pool *pgxpool.Pool) (*river.Client[pgx.Tx], error) {
	return river.NewClient(riverpgxv5.New(pool), &river.Config{})
}

// Register adds the artifact worker to workers.
func Register(workers *river.Workers, worker *Worker) error {
	return river.AddWorkerSafely(workers, worker)
}
