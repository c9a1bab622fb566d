package allure

import "errors"

var (
	ErrAlreadyFinished     = errors.New("already finished")
	ErrUnfinishedStep      = errors.New("step not finished")
	ErrUnfinishedFixture   = errors.New("fixture not finished")
	ErrGroupFinished       = errors.New("group already finished")
	ErrNoCurrentTest       = errors.New("no current test")
	ErrNoCurrentExecutable = errors.New("no current test or step")
)
