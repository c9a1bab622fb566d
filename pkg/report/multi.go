package report

import (
	"context"
	"errors"
)

type multiWriter struct {
	writers []Writer
}

// MultiWriter duplicates every write to all writers in order. All writers
// are attempted; their errors are joined.
func MultiWriter(writers ...Writer) Writer {
	all := make([]Writer, 0, len(writers))
	for _, w := range writers {
		if mw, ok := w.(*multiWriter); ok {
			all = append(all, mw.writers...)
			continue
		}
		if w != nil {
			all = append(all, w)
		}
	}
	return &multiWriter{writers: all}
}

func (m *multiWriter) each(fn func(Writer) error) error {
	var errs []error
	for _, w := range m.writers {
		if err := fn(w); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *multiWriter) WriteResult(ctx context.Context, result *TestResult) error {
	return m.each(func(w Writer) error { return w.WriteResult(ctx, result) })
}

func (m *multiWriter) WriteGroup(ctx context.Context, container *TestResultContainer) error {
	return m.each(func(w Writer) error { return w.WriteGroup(ctx, container) })
}

func (m *multiWriter) WriteAttachment(ctx context.Context, name string, content []byte) error {
	return m.each(func(w Writer) error { return w.WriteAttachment(ctx, name, content) })
}

func (m *multiWriter) WriteEnvironmentInfo(ctx context.Context, info map[string]string) error {
	return m.each(func(w Writer) error { return w.WriteEnvironmentInfo(ctx, info) })
}

func (m *multiWriter) WriteCategoriesDefinitions(ctx context.Context, categories []CategoryDefinition) error {
	return m.each(func(w Writer) error { return w.WriteCategoriesDefinitions(ctx, categories) })
}
