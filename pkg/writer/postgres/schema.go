package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"hash/fnv"

	"github.com/jackc/pgx/v5"
)

//go:embed schema.sql
var schema string

const schemaLockKey = "report:schema:migrate"

// Schema returns the DDL for the report tables. Every statement is
// idempotent.
func Schema() string {
	return schema
}

// EnsureSchema creates the report tables when they do not exist. A
// transaction-scoped advisory lock serializes concurrent callers, since
// CREATE TABLE IF NOT EXISTS can still race on the catalog.
func (w *Writer) EnsureSchema(ctx context.Context) error {
	return w.inTx(ctx, "EnsureSchema", func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", lockID(schemaLockKey)); err != nil {
			return fmt.Errorf("acquire schema lock: %w", err)
		}
		if _, err := tx.Exec(ctx, schema); err != nil {
			return fmt.Errorf("apply report schema: %w", err)
		}
		return nil
	})
}

func lockID(key string) int64 {
	h := fnv.New64a()
	h.Write([]byte(key))
	return int64(h.Sum64())
}
