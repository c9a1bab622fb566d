package report

import "context"

// Writer persists finished report artifacts. Each call is one complete
// artifact; implementations must not mutate their inputs.
type Writer interface {
	WriteResult(ctx context.Context, result *TestResult) error
	WriteGroup(ctx context.Context, container *TestResultContainer) error
	WriteAttachment(ctx context.Context, name string, content []byte) error
	WriteEnvironmentInfo(ctx context.Context, info map[string]string) error
	WriteCategoriesDefinitions(ctx context.Context, categories []CategoryDefinition) error
}
