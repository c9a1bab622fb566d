package allure

import (
	"context"
	"fmt"

	"github.com/specvital/reporter/pkg/report"
)

// Test wraps a TestResult while the test is running.
type Test struct {
	executable
	runtime *Runtime
	result  *report.TestResult
}

func newTest(runtime *Runtime, name string) *Test {
	result := report.NewTestResult(name)
	result.Start = now()
	result.Stage = report.StageRunning
	return &Test{
		executable: executable{item: &result.ExecutableItem},
		runtime:    runtime,
		result:     result,
	}
}

func (t *Test) UUID() string { return t.result.UUID }

func (t *Test) Result() *report.TestResult { return t.result }

func (t *Test) SetFullName(fullName string) {
	if t.finished() {
		return
	}
	t.result.FullName = fullName
}

func (t *Test) SetHistoryID(id string) {
	if t.finished() {
		return
	}
	t.result.HistoryID = id
}

func (t *Test) SetTestCaseID(id string) {
	if t.finished() {
		return
	}
	t.result.TestCaseID = id
}

// AddLabel appends; duplicate labels are legal and preserved in order.
func (t *Test) AddLabel(name, value string) {
	if t.finished() {
		return
	}
	t.result.Labels = append(t.result.Labels, report.Label{Name: name, Value: value})
}

// AddLink appends a link. Empty name and type are omitted from output.
func (t *Test) AddLink(url, name, linkType string) {
	if t.finished() {
		return
	}
	t.result.Links = append(t.result.Links, report.Link{URL: url, Name: name, Type: linkType})
}

// CalculateHistoryID computes the history id from the full name (or name
// when no full name is set) and the current parameters.
func (t *Test) CalculateHistoryID() string {
	fullName := t.result.FullName
	if fullName == "" {
		fullName = t.result.Name
	}
	return report.HistoryID(fullName, t.result.Parameters)
}

// End freezes status and timing and writes the result through the runtime.
// A test without a status is recorded as unknown. When the write fails the
// test stays running and End may be called again.
func (t *Test) End(ctx context.Context) error {
	if t.finished() {
		return fmt.Errorf("%w: test %q", ErrAlreadyFinished, t.result.Name)
	}
	if err := t.checkSteps(); err != nil {
		return err
	}
	if t.result.Status == "" {
		t.result.Status = report.StatusUnknown
	}
	if t.result.HistoryID == "" {
		t.result.HistoryID = t.CalculateHistoryID()
	}
	t.finish()
	if err := t.runtime.WriteResult(ctx, t.result); err != nil {
		t.reopen()
		return err
	}
	return nil
}
