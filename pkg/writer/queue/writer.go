package queue

import (
	"context"
	"fmt"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"

	"github.com/specvital/reporter/pkg/report"
)

var _ report.Writer = (*Writer)(nil)

// Inserter is satisfied by *river.Client.
type Inserter interface {
	Insert(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (*rivertype.JobInsertResult, error)
}

// Writer enqueues one job per artifact. Delivery to storage happens in Worker.
type Writer struct {
	inserter Inserter
	queue    string
}

type Option func(*Writer)

// WithQueue overrides the queue jobs are inserted into.
func WithQueue(name string) Option {
	return func(w *Writer) {
		if name != "" {
			w.queue = name
		}
	}
}

func NewWriter(inserter Inserter, opts ...Option) *Writer {
	w := &Writer{inserter: inserter, queue: QueueArtifacts}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Writer) WriteResult(ctx context.Context, result *report.TestResult) error {
	return w.enqueue(ctx, ArtifactArgs{Artifact: ArtifactResult, Name: result.UUID, Result: result})
}

func (w *Writer) WriteGroup(ctx context.Context, container *report.TestResultContainer) error {
	return w.enqueue(ctx, ArtifactArgs{Artifact: ArtifactContainer, Name: container.UUID, Container: container})
}

func (w *Writer) WriteAttachment(ctx context.Context, name string, content []byte) error {
	return w.enqueue(ctx, ArtifactArgs{Artifact: ArtifactAttachment, Name: name, Content: content})
}

func (w *Writer) WriteEnvironmentInfo(ctx context.Context, info map[string]string) error {
	return w.enqueue(ctx, ArtifactArgs{Artifact: ArtifactEnvironment, Environment: info})
}

func (w *Writer) WriteCategoriesDefinitions(ctx context.Context, categories []report.CategoryDefinition) error {
	return w.enqueue(ctx, ArtifactArgs{Artifact: ArtifactCategories, Categories: categories})
}

func (w *Writer) enqueue(ctx context.Context, args ArtifactArgs) error {
	opts := args.InsertOpts()
	opts.Queue = w.queue
	if _, err := w.inserter.Insert(ctx, args, &opts); err != nil {
		return fmt.Errorf("enqueue %s artifact: %w", args.Artifact, err)
	}
	return nil
}
