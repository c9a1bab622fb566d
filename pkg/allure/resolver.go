package allure

import "context"

// Resolver locates what facade calls apply to. Within a step body the
// context carries the running step, and every resolver prefers it as the
// current executable.
type Resolver interface {
	CurrentTest(ctx context.Context) (*Test, error)
	CurrentExecutable(ctx context.Context) (Executable, error)
}

// TestResolver binds a facade to one test.
type TestResolver struct {
	Test *Test
}

func (r TestResolver) CurrentTest(context.Context) (*Test, error) {
	if r.Test == nil {
		return nil, ErrNoCurrentTest
	}
	return r.Test, nil
}

func (r TestResolver) CurrentExecutable(ctx context.Context) (Executable, error) {
	if s, ok := StepFromContext(ctx); ok {
		return s, nil
	}
	if r.Test == nil {
		return nil, ErrNoCurrentExecutable
	}
	return r.Test, nil
}

// StepResolver binds a facade to a step of a test, so parameters,
// attachments and nested steps land on the step while labels and links
// still go to the test.
type StepResolver struct {
	Test *Test
	Step *Step
}

func (r StepResolver) CurrentTest(context.Context) (*Test, error) {
	if r.Test == nil {
		return nil, ErrNoCurrentTest
	}
	return r.Test, nil
}

func (r StepResolver) CurrentExecutable(ctx context.Context) (Executable, error) {
	if s, ok := StepFromContext(ctx); ok {
		return s, nil
	}
	if r.Step == nil {
		return nil, ErrNoCurrentExecutable
	}
	return r.Step, nil
}

// ContextResolver reads the current test from the context, for adapters
// that propagate a context built with ContextWithTest.
type ContextResolver struct{}

func (ContextResolver) CurrentTest(ctx context.Context) (*Test, error) {
	if t, ok := TestFromContext(ctx); ok {
		return t, nil
	}
	return nil, ErrNoCurrentTest
}

func (ContextResolver) CurrentExecutable(ctx context.Context) (Executable, error) {
	if s, ok := StepFromContext(ctx); ok {
		return s, nil
	}
	if t, ok := TestFromContext(ctx); ok {
		return t, nil
	}
	return nil, ErrNoCurrentExecutable
}
