package allure

import (
	"context"
	"errors"
	"testing"

	"github.com/specvital/reporter/pkg/report"
	"github.com/specvital/reporter/pkg/writer/memory"
)

// countingWriter records how often each write method is called.
type countingWriter struct {
	*memory.Writer
	results     int
	groups      int
	attachments int
	writeErr    error
}

func newCountingWriter() *countingWriter {
	return &countingWriter{Writer: memory.NewWriter()}
}

func (w *countingWriter) WriteResult(ctx context.Context, result *report.TestResult) error {
	w.results++
	if w.writeErr != nil {
		return w.writeErr
	}
	return w.Writer.WriteResult(ctx, result)
}

func (w *countingWriter) WriteGroup(ctx context.Context, container *report.TestResultContainer) error {
	w.groups++
	if w.writeErr != nil {
		return w.writeErr
	}
	return w.Writer.WriteGroup(ctx, container)
}

func (w *countingWriter) WriteAttachment(ctx context.Context, name string, content []byte) error {
	w.attachments++
	if w.writeErr != nil {
		return w.writeErr
	}
	return w.Writer.WriteAttachment(ctx, name, content)
}

type assertionError struct{ msg string }

func (e assertionError) Error() string { return e.msg }

func (assertionError) AssertionFailure() bool { return true }

var errBoom = errors.New("boom")

// fixedClock makes now return successive values starting at start.
func fixedClock(t *testing.T, start int64) {
	t.Helper()
	prev := now
	next := start
	now = func() int64 {
		v := next
		next++
		return v
	}
	t.Cleanup(func() { now = prev })
}

func newTestFacade(t *testing.T) (*Facade, *Test, *memory.Writer) {
	t.Helper()
	writer := memory.NewWriter()
	rt := NewRuntime(Config{Writer: writer})
	test, err := rt.StartGroup("Suite A").StartTest("should work")
	if err != nil {
		t.Fatalf("start test: %v", err)
	}
	return NewFacade(rt, TestResolver{Test: test}), test, writer
}
