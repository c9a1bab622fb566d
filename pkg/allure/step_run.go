package allure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/specvital/reporter/pkg/report"
)

const goexitMessage = "step body exited without returning"

// StepContext is the restricted view a step body gets of its own step.
type StepContext interface {
	Parameter(name, value string)
	Name(name string)
}

type stepContext struct {
	step *Step
}

func (c stepContext) Parameter(name, value string) { c.step.AddParameter(name, value) }

func (c stepContext) Name(name string) { c.step.SetName(name) }

// StepBody is the work recorded by a step. ctx carries the step, so facade
// calls made with it apply to the step. Returning an awaitable value (see
// Awaitable) keeps the step running until the value settles.
type StepBody func(ctx context.Context, s StepContext) (any, error)

// AssertionFailure is implemented by errors that represent an expected
// test failure.
type AssertionFailure interface {
	AssertionFailure() bool
}

// IsAssertion reports whether err is an expected failure: it wraps
// report.ErrAssertion or an error whose AssertionFailure returns true.
func IsAssertion(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, report.ErrAssertion) {
		return true
	}
	var af AssertionFailure
	return errors.As(err, &af) && af.AssertionFailure()
}

// StatusForError classifies a body outcome: nil is passed, assertion
// failures are failed, anything else is broken.
func StatusForError(err error) report.Status {
	switch {
	case err == nil:
		return report.StatusPassed
	case IsAssertion(err):
		return report.StatusFailed
	default:
		return report.StatusBroken
	}
}

// Step runs body as a nested step of the current executable. The step is
// finalized with the body's outcome, and that outcome is always handed back
// to the caller: errors are returned and panics are re-raised after the
// step is closed.
func (f *Facade) Step(ctx context.Context, name string, body StepBody) (any, error) {
	parent, err := f.resolver.CurrentExecutable(ctx)
	if err != nil {
		return nil, err
	}
	step := parent.StartStep(name)
	return runStep(ContextWithStep(ctx, step), step, body, f.runtime.logger)
}

func runStep(ctx context.Context, step *Step, body StepBody, logger *slog.Logger) (value any, err error) {
	returned := false
	defer func() {
		if returned {
			return
		}
		// Either a panic or runtime.Goexit (t.FailNow, t.SkipNow) is
		// unwinding through the body.
		p := recover()
		if p == nil {
			step.SetStatus(report.StatusFailed)
			step.SetStatusDetails(report.StatusDetails{Message: goexitMessage})
		} else {
			step.SetStatus(report.StatusBroken)
			step.SetStatusDetails(report.StatusDetails{
				Message: fmt.Sprint(p),
				Trace:   string(debug.Stack()),
			})
		}
		if endErr := step.End(); endErr != nil {
			logger.ErrorContext(ctx, "failed to end step", "step", step.Name(), "error", endErr)
		}
		if p != nil {
			panic(p)
		}
	}()

	value, err = body(ctx, stepContext{step: step})
	if err == nil {
		if wait, ok := Awaitable(value); ok {
			err = wait(ctx)
		}
	}
	returned = true

	step.SetStatus(StatusForError(err))
	if err != nil {
		step.SetStatusDetails(report.StatusDetails{Message: err.Error()})
	}
	if endErr := step.End(); endErr != nil {
		return value, errors.Join(err, endErr)
	}
	return value, err
}

// RunStep is Step with a typed result.
func RunStep[T any](ctx context.Context, f *Facade, name string, body func(ctx context.Context, s StepContext) (T, error)) (T, error) {
	v, err := f.Step(ctx, name, func(ctx context.Context, s StepContext) (any, error) {
		out, err := body(ctx, s)
		return out, err
	})
	out, _ := v.(T)
	return out, err
}
