package allure

import (
	"fmt"
	"time"

	"github.com/specvital/reporter/pkg/report"
)

var now = func() int64 { return time.Now().UnixMilli() }

// Executable is the mutation surface shared by tests, steps and fixtures.
// Once an item has ended its setters are no-ops.
type Executable interface {
	Name() string
	SetName(name string)
	AddParameter(name, value string)
	SetDescription(markdown string)
	SetDescriptionHTML(html string)
	AddAttachment(name, source string, contentType report.ContentType)
	SetStatus(status report.Status)
	SetStatusDetails(details report.StatusDetails)
	StartStep(name string) *Step
}

type executable struct {
	item *report.ExecutableItem
}

func (e *executable) Name() string { return e.item.Name }

func (e *executable) SetName(name string) {
	if e.finished() {
		return
	}
	e.item.Name = name
}

func (e *executable) Status() report.Status { return e.item.Status }

func (e *executable) SetStatus(status report.Status) {
	if e.finished() {
		return
	}
	e.item.Status = status
}

func (e *executable) SetStatusDetails(details report.StatusDetails) {
	if e.finished() {
		return
	}
	e.item.StatusDetails = details
}

func (e *executable) SetStage(stage report.Stage) {
	if e.finished() {
		return
	}
	e.item.Stage = stage
}

func (e *executable) SetDescription(markdown string) {
	if e.finished() {
		return
	}
	e.item.Description = markdown
}

func (e *executable) SetDescriptionHTML(html string) {
	if e.finished() {
		return
	}
	e.item.DescriptionHTML = html
}

// AddParameter appends; repeated names are kept.
func (e *executable) AddParameter(name, value string) {
	if e.finished() {
		return
	}
	e.item.Parameters = append(e.item.Parameters, report.Parameter{Name: name, Value: value})
}

func (e *executable) AddAttachment(name, source string, contentType report.ContentType) {
	if e.finished() {
		return
	}
	e.item.Attachments = append(e.item.Attachments, report.Attachment{
		Name:   name,
		Source: source,
		Type:   string(contentType),
	})
}

// StartStep appends a running child step. The caller must End it before
// ending this item. A step started on a finished item is detached: it can
// be used and ended but is not recorded.
func (e *executable) StartStep(name string) *Step {
	result := &report.StepResult{ExecutableItem: report.NewExecutableItem(name)}
	result.Start = now()
	result.Stage = report.StageRunning
	if !e.finished() {
		e.item.Steps = append(e.item.Steps, result)
	}
	return &Step{executable: executable{item: &result.ExecutableItem}, result: result}
}

func (e *executable) finished() bool { return e.item.Stage == report.StageFinished }

func (e *executable) checkSteps() error {
	for _, s := range e.item.Steps {
		if s.Stage != report.StageFinished {
			return fmt.Errorf("%w: %q inside %q", ErrUnfinishedStep, s.Name, e.item.Name)
		}
	}
	return nil
}

func (e *executable) finish() {
	stop := now()
	if stop < e.item.Start {
		stop = e.item.Start
	}
	e.item.Stop = stop
	e.item.Stage = report.StageFinished
}

// reopen undoes finish so End can be retried.
func (e *executable) reopen() {
	e.item.Stop = 0
	e.item.Stage = report.StageRunning
}
