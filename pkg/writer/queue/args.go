// Package queue defers report artifact writes to River jobs so that test
// processes only pay for an insert and a worker persists the artifact.
package queue

import (
	"github.com/riverqueue/river"

	"github.com/specvital/reporter/pkg/report"
)

const (
	// River disallows colons in queue names.
	QueueArtifacts = "report_artifacts"

	maxRetryAttempts = 5
)

type ArtifactKind string

const (
	ArtifactResult      ArtifactKind = "result"
	ArtifactContainer   ArtifactKind = "container"
	ArtifactAttachment  ArtifactKind = "attachment"
	ArtifactEnvironment ArtifactKind = "environment"
	ArtifactCategories  ArtifactKind = "categories"
)

// ArtifactArgs carries exactly one artifact; the populated field is
// selected by Artifact.
type ArtifactArgs struct {
	Artifact    ArtifactKind                `json:"artifact"`
	Name        string                      `json:"name,omitempty"`
	Result      *report.TestResult          `json:"result,omitempty"`
	Container   *report.TestResultContainer `json:"container,omitempty"`
	Content     []byte                      `json:"content,omitempty"`
	Environment map[string]string           `json:"environment,omitempty"`
	Categories  []report.CategoryDefinition `json:"categories,omitempty"`
}

func (ArtifactArgs) Kind() string { return "report:artifact" }

func (ArtifactArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		Queue:       QueueArtifacts,
		MaxAttempts: maxRetryAttempts,
	}
}
