package allure

import (
	"fmt"

	"github.com/specvital/reporter/pkg/report"
)

// Fixture is a before/after hook recorded on its group's container.
type Fixture struct {
	executable
	result *report.FixtureResult
}

func newFixture(name string) *Fixture {
	result := &report.FixtureResult{ExecutableItem: report.NewExecutableItem(name)}
	result.Start = now()
	result.Stage = report.StageRunning
	return &Fixture{executable: executable{item: &result.ExecutableItem}, result: result}
}

func (f *Fixture) Result() *report.FixtureResult { return f.result }

// End closes the fixture with the same rules as Step.End.
func (f *Fixture) End() error {
	if f.finished() {
		return fmt.Errorf("%w: fixture %q", ErrAlreadyFinished, f.result.Name)
	}
	if err := f.checkSteps(); err != nil {
		return err
	}
	if f.result.Status == "" {
		f.result.Status = report.StatusBroken
		if f.result.StatusDetails.Message == "" {
			f.result.StatusDetails.Message = missingStatusMessage
		}
	}
	f.finish()
	return nil
}
