package allure

import "context"

// Waiter is a pending outcome that settles when Wait returns.
// *errgroup.Group satisfies it.
type Waiter interface {
	Wait() error
}

// ContextWaiter is a pending outcome whose Wait takes a context.
type ContextWaiter interface {
	Wait(ctx context.Context) error
}

// Awaitable reports whether v is a pending asynchronous outcome. It is a
// structural check: any value with a Wait() error or Wait(ctx) error
// method, or an error channel, qualifies regardless of its concrete type.
// The returned function blocks until the outcome settles or ctx is done
// and yields the outcome's error or ctx.Err(). A closed channel settles
// with nil; a nil channel can never settle and does not qualify.
//
// sync.WaitGroup does not qualify since its Wait reports no outcome.
func Awaitable(v any) (func(ctx context.Context) error, bool) {
	switch w := v.(type) {
	case nil:
		return nil, false
	case ContextWaiter:
		return w.Wait, true
	case Waiter:
		return func(context.Context) error { return w.Wait() }, true
	case <-chan error:
		if w == nil {
			return nil, false
		}
		return receive(w), true
	case chan error:
		if w == nil {
			return nil, false
		}
		return receive(w), true
	}
	return nil, false
}

func receive(ch <-chan error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		select {
		case err := <-ch:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
