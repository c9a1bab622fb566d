package allure

import "context"

type ctxKey int

const (
	testKey ctxKey = iota
	stepKey
)

// ContextWithTest returns a context carrying t as the current test.
func ContextWithTest(ctx context.Context, t *Test) context.Context {
	return context.WithValue(ctx, testKey, t)
}

func TestFromContext(ctx context.Context) (*Test, bool) {
	t, ok := ctx.Value(testKey).(*Test)
	return t, ok && t != nil
}

// ContextWithStep returns a context carrying s as the current step. Step
// bodies run with such a context.
func ContextWithStep(ctx context.Context, s *Step) context.Context {
	return context.WithValue(ctx, stepKey, s)
}

func StepFromContext(ctx context.Context) (*Step, bool) {
	s, ok := ctx.Value(stepKey).(*Step)
	return s, ok && s != nil
}
