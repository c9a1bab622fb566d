package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/riverqueue/river"

	"github.com/specvital/reporter/pkg/report"
)

var ErrUnknownArtifact = errors.New("unknown artifact kind")

// Worker persists queued artifacts through a downstream writer.
type Worker struct {
	river.WorkerDefaults[ArtifactArgs]
	writer report.Writer
}

func NewWorker(writer report.Writer) *Worker {
	return &Worker{writer: writer}
}

func (w *Worker) Timeout(job *river.Job[ArtifactArgs]) time.Duration {
	return time.Minute
}

// Quadratic backoff: 1st retry +1s, 2nd +4s, 3rd +9s
func (w *Worker) NextRetry(job *river.Job[ArtifactArgs]) time.Time {
	attempt := job.Attempt
	backoff := time.Duration(attempt*attempt) * time.Second
	return time.Now().Add(backoff)
}

func (w *Worker) Work(ctx context.Context, job *river.Job[ArtifactArgs]) error {
	args := job.Args

	if err := w.write(ctx, args); err != nil {
		if errors.Is(err, ErrUnknownArtifact) || errors.Is(err, report.ErrInvalidInput) {
			slog.WarnContext(ctx, "discarding undeliverable artifact",
				"job_id", job.ID,
				"artifact", args.Artifact,
				"name", args.Name,
				"error", err,
			)
			return river.JobCancel(err)
		}

		slog.ErrorContext(ctx, "artifact write failed",
			"job_id", job.ID,
			"artifact", args.Artifact,
			"name", args.Name,
			"attempt", job.Attempt,
			"error", err,
		)
		return err
	}

	slog.DebugContext(ctx, "artifact written",
		"job_id", job.ID,
		"artifact", args.Artifact,
		"name", args.Name,
	)
	return nil
}

func (w *Worker) write(ctx context.Context, args ArtifactArgs) error {
	switch args.Artifact {
	case ArtifactResult:
		if args.Result == nil {
			return fmt.Errorf("%w: result payload missing", report.ErrInvalidInput)
		}
		return w.writer.WriteResult(ctx, args.Result)
	case ArtifactContainer:
		if args.Container == nil {
			return fmt.Errorf("%w: container payload missing", report.ErrInvalidInput)
		}
		return w.writer.WriteGroup(ctx, args.Container)
	case ArtifactAttachment:
		return w.writer.WriteAttachment(ctx, args.Name, args.Content)
	case ArtifactEnvironment:
		return w.writer.WriteEnvironmentInfo(ctx, args.Environment)
	case ArtifactCategories:
		return w.writer.WriteCategoriesDefinitions(ctx, args.Categories)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownArtifact, args.Artifact)
	}
}
