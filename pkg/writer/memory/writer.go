// Package memory provides a report.Writer that keeps every artifact in
// memory, for tests and for tools that inspect results in-process.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/specvital/reporter/pkg/report"
)

var _ report.Writer = (*Writer)(nil)

// AttachmentEntry is one attachment write.
type AttachmentEntry struct {
	Name    string
	Content []byte
}

// Writer accumulates writes in call order. It is safe for concurrent use.
// Results and containers are deep-copied on write and on read, so stored
// artifacts reflect the value at write time.
type Writer struct {
	mu          sync.Mutex
	results     []*report.TestResult
	groups      []*report.TestResultContainer
	attachments []AttachmentEntry
	environment map[string]string
	categories  []report.CategoryDefinition
}

func NewWriter() *Writer {
	return &Writer{
		results:     make([]*report.TestResult, 0, 16),
		groups:      make([]*report.TestResultContainer, 0, 16),
		attachments: make([]AttachmentEntry, 0, 16),
	}
}

func (w *Writer) WriteResult(_ context.Context, result *report.TestResult) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.results = append(w.results, result.Clone())
	return nil
}

func (w *Writer) WriteGroup(_ context.Context, container *report.TestResultContainer) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.groups = append(w.groups, container.Clone())
	return nil
}

func (w *Writer) WriteAttachment(_ context.Context, name string, content []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.attachments = append(w.attachments, AttachmentEntry{Name: name, Content: slices.Clone(content)})
	return nil
}

func (w *Writer) WriteEnvironmentInfo(_ context.Context, info map[string]string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.environment = maps.Clone(info)
	return nil
}

func (w *Writer) WriteCategoriesDefinitions(_ context.Context, categories []report.CategoryDefinition) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.categories = cloneCategories(categories)
	return nil
}

// Results returns the written results in write order.
func (w *Writer) Results() []*report.TestResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]*report.TestResult, len(w.results))
	for i, r := range w.results {
		out[i] = r.Clone()
	}
	return out
}

// Groups returns the written containers in write order.
func (w *Writer) Groups() []*report.TestResultContainer {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]*report.TestResultContainer, len(w.groups))
	for i, g := range w.groups {
		out[i] = g.Clone()
	}
	return out
}

func (w *Writer) Attachments() []AttachmentEntry {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.attachments)
}

// Attachment returns the content most recently written under name.
func (w *Writer) Attachment(name string) ([]byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := len(w.attachments) - 1; i >= 0; i-- {
		if w.attachments[i].Name == name {
			return slices.Clone(w.attachments[i].Content), true
		}
	}
	return nil, false
}

// EnvironmentInfo returns the last environment written, or nil.
func (w *Writer) EnvironmentInfo() map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return maps.Clone(w.environment)
}

// Categories returns the last categories written, or nil.
func (w *Writer) Categories() []report.CategoryDefinition {
	w.mu.Lock()
	defer w.mu.Unlock()
	return cloneCategories(w.categories)
}

func cloneCategories(categories []report.CategoryDefinition) []report.CategoryDefinition {
	if categories == nil {
		return nil
	}
	out := make([]report.CategoryDefinition, len(categories))
	for i, c := range categories {
		out[i] = c.Clone()
	}
	return out
}

// Reset discards everything written so far.
func (w *Writer) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.results = w.results[:0]
	w.groups = w.groups[:0]
	w.attachments = w.attachments[:0]
	w.environment = nil
	w.categories = nil
}
