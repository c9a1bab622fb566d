package allure

import (
	"context"
	"fmt"

	"github.com/specvital/reporter/pkg/report"
)

// CreateStep wraps fn so that each call runs it as a step named name,
// forwarding the call's arguments unchanged.
//
// Deprecated: Use Step. CreateStep will be removed in the next major version.
func (f *Facade) CreateStep(name string, fn func(args ...any) (any, error)) func(ctx context.Context, args ...any) (any, error) {
	return func(ctx context.Context, args ...any) (any, error) {
		return f.Step(ctx, name, func(context.Context, StepContext) (any, error) {
			return fn(args...)
		})
	}
}

// CreateAttachment attaches content right away when it is []byte or
// string. When content is a func(args ...any) []byte or
// func(args ...any) string it returns a function that produces and attaches
// the content on each call instead.
//
// Deprecated: Use Attachment. CreateAttachment will be removed in the next
// major version.
func (f *Facade) CreateAttachment(ctx context.Context, name string, content any, contentType report.ContentType) (func(ctx context.Context, args ...any) error, error) {
	switch c := content.(type) {
	case []byte:
		return nil, f.Attachment(ctx, name, c, contentType)
	case string:
		return nil, f.Attachment(ctx, name, []byte(c), contentType)
	case func(args ...any) []byte:
		return func(ctx context.Context, args ...any) error {
			return f.Attachment(ctx, name, c(args...), contentType)
		}, nil
	case func(args ...any) string:
		return func(ctx context.Context, args ...any) error {
			return f.Attachment(ctx, name, []byte(c(args...)), contentType)
		}, nil
	}
	return nil, fmt.Errorf("%w: unsupported attachment content %T", report.ErrInvalidInput, content)
}
