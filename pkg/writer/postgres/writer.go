// Package postgres provides a report.Writer backed by PostgreSQL. Every
// artifact belongs to a run, so one database can hold many test runs.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/specvital/reporter/pkg/report"
)

var _ report.Writer = (*Writer)(nil)

var ErrNotFound = errors.New("not found")

type Config struct {
	// RunID scopes attachments, environment and categories. A new id is
	// generated when it is zero.
	RunID report.UUID
}

type Writer struct {
	pool  *pgxpool.Pool
	runID report.UUID
}

func NewWriter(pool *pgxpool.Pool, cfg Config) *Writer {
	runID := cfg.RunID
	if runID == report.NilUUID {
		runID = report.NewUUID()
	}
	return &Writer{pool: pool, runID: runID}
}

func (w *Writer) RunID() report.UUID { return w.runID }

func (w *Writer) WriteResult(ctx context.Context, result *report.TestResult) error {
	id, err := report.ParseUUID(result.UUID)
	if err != nil {
		return fmt.Errorf("%w: result uuid %q", report.ErrInvalidInput, result.UUID)
	}
	doc, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	return w.inTx(ctx, "WriteResult", func(tx pgx.Tx) error {
		pgID := toPgUUID(id)
		if _, err := tx.Exec(ctx, upsertResult,
			pgID,
			toPgUUID(w.runID),
			toPgText(result.HistoryID),
			result.Name,
			toPgText(result.FullName),
			string(result.Status),
			toPgText(string(result.Stage)),
			toPgTimestamp(result.Start),
			toPgTimestamp(result.Stop),
			doc,
		); err != nil {
			return fmt.Errorf("upsert result: %w", err)
		}

		if _, err := tx.Exec(ctx, deleteResultLabels, pgID); err != nil {
			return fmt.Errorf("delete labels: %w", err)
		}
		if len(result.Labels) == 0 {
			return nil
		}

		rows := make([][]any, len(result.Labels))
		for i, l := range result.Labels {
			rows[i] = []any{pgID, int32(i), l.Name, l.Value}
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"report_result_labels"}, resultLabelCopyColumns, pgx.CopyFromRows(rows)); err != nil {
			return fmt.Errorf("copy labels: %w", err)
		}
		return nil
	})
}

func (w *Writer) WriteGroup(ctx context.Context, container *report.TestResultContainer) error {
	id, err := report.ParseUUID(container.UUID)
	if err != nil {
		return fmt.Errorf("%w: container uuid %q", report.ErrInvalidInput, container.UUID)
	}
	doc, err := json.Marshal(container)
	if err != nil {
		return fmt.Errorf("marshal container: %w", err)
	}

	return w.inTx(ctx, "WriteGroup", func(tx pgx.Tx) error {
		pgID := toPgUUID(id)
		if _, err := tx.Exec(ctx, upsertContainer,
			pgID,
			toPgUUID(w.runID),
			toPgText(container.Name),
			toPgTimestamp(container.Start),
			toPgTimestamp(container.Stop),
			doc,
		); err != nil {
			return fmt.Errorf("upsert container: %w", err)
		}
		if _, err := tx.Exec(ctx, deleteContainerChildren, pgID); err != nil {
			return fmt.Errorf("delete children: %w", err)
		}

		batch := &pgx.Batch{}
		for i, child := range container.Children {
			batch.Queue(insertContainerChildBatch, pgID, childKindTest, int32(i), child)
		}
		for i, child := range container.Groups {
			batch.Queue(insertContainerChildBatch, pgID, childKindGroup, int32(i), child)
		}
		return execBatch(ctx, tx, batch, "insert children")
	})
}

func (w *Writer) WriteAttachment(ctx context.Context, name string, content []byte) error {
	if name == "" {
		return fmt.Errorf("%w: attachment name is required", report.ErrInvalidInput)
	}
	if content == nil {
		content = []byte{}
	}
	if _, err := w.pool.Exec(ctx, upsertAttachment, toPgUUID(w.runID), name, content); err != nil {
		return fmt.Errorf("upsert attachment: %w", err)
	}
	return nil
}

// WriteEnvironmentInfo replaces the run's environment.
func (w *Writer) WriteEnvironmentInfo(ctx context.Context, info map[string]string) error {
	return w.inTx(ctx, "WriteEnvironmentInfo", func(tx pgx.Tx) error {
		runID := toPgUUID(w.runID)
		if _, err := tx.Exec(ctx, deleteEnvironment, runID); err != nil {
			return fmt.Errorf("delete environment: %w", err)
		}
		batch := &pgx.Batch{}
		for k, v := range info {
			batch.Queue(insertEnvironmentBatch, runID, k, v)
		}
		return execBatch(ctx, tx, batch, "insert environment")
	})
}

// WriteCategoriesDefinitions replaces the run's categories.
func (w *Writer) WriteCategoriesDefinitions(ctx context.Context, categories []report.CategoryDefinition) error {
	docs := make([][]byte, len(categories))
	for i, c := range categories {
		b, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshal category %q: %w", c.Name, err)
		}
		docs[i] = b
	}

	return w.inTx(ctx, "WriteCategoriesDefinitions", func(tx pgx.Tx) error {
		runID := toPgUUID(w.runID)
		if _, err := tx.Exec(ctx, deleteCategories, runID); err != nil {
			return fmt.Errorf("delete categories: %w", err)
		}
		batch := &pgx.Batch{}
		for i, c := range categories {
			batch.Queue(insertCategoryBatch, runID, int32(i), c.Name, docs[i])
		}
		return execBatch(ctx, tx, batch, "insert categories")
	})
}

// FindResult loads a written result by uuid.
func (w *Writer) FindResult(ctx context.Context, uuid string) (*report.TestResult, error) {
	var result report.TestResult
	if err := w.findDocument(ctx, selectResultDocument, uuid, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FindContainer loads a written container by uuid.
func (w *Writer) FindContainer(ctx context.Context, uuid string) (*report.TestResultContainer, error) {
	var container report.TestResultContainer
	if err := w.findDocument(ctx, selectContainerDocument, uuid, &container); err != nil {
		return nil, err
	}
	return &container, nil
}

// FindAttachment loads attachment content of this writer's run.
func (w *Writer) FindAttachment(ctx context.Context, name string) ([]byte, error) {
	var content []byte
	err := w.pool.QueryRow(ctx, selectAttachment, toPgUUID(w.runID), name).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: attachment %q", ErrNotFound, name)
		}
		return nil, fmt.Errorf("find attachment: %w", err)
	}
	return content, nil
}

func (w *Writer) findDocument(ctx context.Context, query, uuid string, dst any) error {
	id, err := report.ParseUUID(uuid)
	if err != nil {
		return fmt.Errorf("%w: invalid uuid %q", report.ErrInvalidInput, uuid)
	}
	var doc []byte
	if err := w.pool.QueryRow(ctx, query, toPgUUID(id)).Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrNotFound, uuid)
		}
		return fmt.Errorf("query document: %w", err)
	}
	if err := json.Unmarshal(doc, dst); err != nil {
		return fmt.Errorf("unmarshal document %s: %w", uuid, err)
	}
	return nil
}

func (w *Writer) inTx(ctx context.Context, operation string, fn func(tx pgx.Tx) error) error {
	tx, err := w.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback transaction",
				"operation", operation,
				"error", rbErr,
				"run_id", w.runID,
			)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func execBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch, what string) error {
	if batch.Len() == 0 {
		return nil
	}
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("%s: %w", what, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}
