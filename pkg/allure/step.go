package allure

import (
	"fmt"

	"github.com/specvital/reporter/pkg/report"
)

const missingStatusMessage = "step finished without status"

// Step is a node in an executable's step tree.
type Step struct {
	executable
	result *report.StepResult
}

func (s *Step) Result() *report.StepResult { return s.result }

// End closes the step. A step ended without a status is reported as broken.
// Ending a step whose children are still open is an error and leaves the
// step running.
func (s *Step) End() error {
	if s.finished() {
		return fmt.Errorf("%w: step %q", ErrAlreadyFinished, s.result.Name)
	}
	if err := s.checkSteps(); err != nil {
		return err
	}
	if s.result.Status == "" {
		s.result.Status = report.StatusBroken
		if s.result.StatusDetails.Message == "" {
			s.result.StatusDetails.Message = missingStatusMessage
		}
	}
	s.finish()
	return nil
}
