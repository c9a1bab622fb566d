package report

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrAssertion marks an expected test failure as opposed to an unexpected
	// error. Wrap it to have a step or test reported as failed, not broken.
	ErrAssertion = errors.New("assertion failed")
)
