// Package allure records test executions as groups, tests and steps and
// writes them out through a pluggable report.Writer.
package allure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/specvital/reporter/pkg/report"
	"github.com/specvital/reporter/pkg/writer/memory"
)

// ResultMapper transforms a finished result before it is written. Returning
// nil drops the result.
type ResultMapper func(result *report.TestResult) *report.TestResult

type Config struct {
	Writer     report.Writer // defaults to an in-memory writer
	TestMapper ResultMapper
	// OnDrop is called for every result the mapper drops.
	OnDrop  func(ctx context.Context, result *report.TestResult)
	Metrics *Metrics
	Logger  *slog.Logger
}

// Runtime owns one Writer for its lifetime. It holds no locks: use one
// Runtime per process or isolated worker.
type Runtime struct {
	writer  report.Writer
	mapper  ResultMapper
	onDrop  func(ctx context.Context, result *report.TestResult)
	metrics *Metrics
	logger  *slog.Logger
}

func NewRuntime(cfg Config) *Runtime {
	writer := cfg.Writer
	if writer == nil {
		writer = memory.NewWriter()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runtime{
		writer:  writer,
		mapper:  cfg.TestMapper,
		onDrop:  cfg.OnDrop,
		metrics: cfg.Metrics,
		logger:  logger,
	}
}

func (r *Runtime) Writer() report.Writer { return r.writer }

// StartGroup starts a top-level group, named "Unnamed" when name is empty.
func (r *Runtime) StartGroup(name string) *Group {
	return newGroup(r, name)
}

// WriteResult applies the configured mapper and writes the outcome.
// Results the mapper reduces to nil are dropped without error.
func (r *Runtime) WriteResult(ctx context.Context, result *report.TestResult) error {
	mapped := result
	if r.mapper != nil {
		mapped = r.mapper(result)
	}
	if mapped == nil {
		r.logger.DebugContext(ctx, "result dropped by mapper",
			"uuid", result.UUID,
			"name", result.Name,
		)
		r.metrics.resultDropped()
		if r.onDrop != nil {
			r.onDrop(ctx, result)
		}
		return nil
	}

	if err := r.writer.WriteResult(ctx, mapped); err != nil {
		return r.writeFailed(ctx, kindResult, mapped.UUID, err)
	}
	r.metrics.artifactWritten(kindResult)
	return nil
}

func (r *Runtime) WriteGroup(ctx context.Context, container *report.TestResultContainer) error {
	if err := r.writer.WriteGroup(ctx, container); err != nil {
		return r.writeFailed(ctx, kindContainer, container.UUID, err)
	}
	r.metrics.artifactWritten(kindContainer)
	return nil
}

// WriteAttachment stores content under a fresh "<uuid>-attachment.<ext>"
// name and returns that name for use as the attachment source.
func (r *Runtime) WriteAttachment(ctx context.Context, content []byte, spec report.AttachmentSpec) (string, error) {
	var opts report.AttachmentOptions
	if spec != nil {
		opts = spec.AttachmentOptions()
	}
	name := report.AttachmentFileName(report.Extension(opts))

	if err := r.writer.WriteAttachment(ctx, name, content); err != nil {
		return "", r.writeFailed(ctx, kindAttachment, name, err)
	}
	r.metrics.artifactWritten(kindAttachment)
	return name, nil
}

// WriteEnvironmentInfo writes info, or a snapshot of the process
// environment when info is nil.
func (r *Runtime) WriteEnvironmentInfo(ctx context.Context, info map[string]string) error {
	if info == nil {
		info = processEnvironment()
	}
	if err := r.writer.WriteEnvironmentInfo(ctx, info); err != nil {
		return r.writeFailed(ctx, kindEnvironment, report.EnvironmentFileName, err)
	}
	r.metrics.artifactWritten(kindEnvironment)
	return nil
}

// WriteCategoriesDefinitions renders every pattern to its textual source
// before handing the categories to the writer. The input is not modified.
func (r *Runtime) WriteCategoriesDefinitions(ctx context.Context, categories []report.Category) error {
	defs := make([]report.CategoryDefinition, 0, len(categories))
	for _, c := range categories {
		defs = append(defs, c.Definition())
	}
	if err := r.writer.WriteCategoriesDefinitions(ctx, defs); err != nil {
		return r.writeFailed(ctx, kindCategories, report.CategoriesFileName, err)
	}
	r.metrics.artifactWritten(kindCategories)
	return nil
}

func (r *Runtime) writeFailed(ctx context.Context, kind, name string, err error) error {
	r.metrics.writeFailed(kind)
	r.logger.ErrorContext(ctx, "failed to write report artifact",
		"kind", kind,
		"name", name,
		"error", err,
	)
	return fmt.Errorf("write %s %s: %w", kind, name, err)
}

func processEnvironment() map[string]string {
	env := os.Environ()
	info := make(map[string]string, len(env))
	for _, kv := range env {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		info[k] = v
	}
	return info
}
