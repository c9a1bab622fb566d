// Package report defines the result model written to an Allure-compatible
// results directory and the Writer boundary that persists it.
package report

type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusBroken  Status = "broken"
	StatusSkipped Status = "skipped"
	StatusUnknown Status = "unknown"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPassed, StatusFailed, StatusBroken, StatusSkipped, StatusUnknown:
		return true
	}
	return false
}

type Stage string

const (
	StageScheduled   Stage = "scheduled"
	StageRunning     Stage = "running"
	StageFinished    Stage = "finished"
	StagePending     Stage = "pending"
	StageInterrupted Stage = "interrupted"
)

// Well-known label names understood by the report viewer.
const (
	LabelEpic        = "epic"
	LabelFeature     = "feature"
	LabelStory       = "story"
	LabelSuite       = "suite"
	LabelParentSuite = "parentSuite"
	LabelSubSuite    = "subSuite"
	LabelOwner       = "owner"
	LabelSeverity    = "severity"
	LabelTag         = "tag"
	LabelHost        = "host"
	LabelThread      = "thread"
	LabelFramework   = "framework"
	LabelLanguage    = "language"
	LabelPackage     = "package"
	LabelTestClass   = "testClass"
	LabelTestMethod  = "testMethod"
	LabelAllureID    = "AS_ID"
)

const (
	SeverityBlocker  = "blocker"
	SeverityCritical = "critical"
	SeverityNormal   = "normal"
	SeverityMinor    = "minor"
	SeverityTrivial  = "trivial"
)

// Link types are an open set; these are the ones the viewer renders specially.
const (
	LinkTypeIssue  = "issue"
	LinkTypeTMS    = "tms"
	LinkTypeCustom = "custom"
)

type Label struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Link struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url"`
	Type string `json:"type,omitempty"`
}

type ParameterMode string

const (
	ParameterModeDefault ParameterMode = "default"
	ParameterModeHidden  ParameterMode = "hidden"
	ParameterModeMasked  ParameterMode = "masked"
)

type Parameter struct {
	Name     string        `json:"name"`
	Value    string        `json:"value"`
	Excluded bool          `json:"excluded,omitempty"`
	Mode     ParameterMode `json:"mode,omitempty"`
}

// Attachment references a blob persisted by a Writer under Source.
type Attachment struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Type   string `json:"type,omitempty"`
}

type StatusDetails struct {
	Message string `json:"message,omitempty"`
	Trace   string `json:"trace,omitempty"`
	Known   bool   `json:"known,omitempty"`
	Muted   bool   `json:"muted,omitempty"`
	Flaky   bool   `json:"flaky,omitempty"`
}

// ExecutableItem is the shared record of anything that runs: tests, steps
// and fixtures. Start and Stop are epoch milliseconds.
type ExecutableItem struct {
	Name            string        `json:"name,omitempty"`
	Status          Status        `json:"status,omitempty"`
	StatusDetails   StatusDetails `json:"statusDetails"`
	Stage           Stage         `json:"stage,omitempty"`
	Description     string        `json:"description,omitempty"`
	DescriptionHTML string        `json:"descriptionHtml,omitempty"`
	Steps           []*StepResult `json:"steps"`
	Attachments     []Attachment  `json:"attachments"`
	Parameters      []Parameter   `json:"parameters"`
	Start           int64         `json:"start,omitempty"`
	Stop            int64         `json:"stop,omitempty"`
}

func NewExecutableItem(name string) ExecutableItem {
	return ExecutableItem{
		Name:        name,
		Stage:       StageScheduled,
		Steps:       []*StepResult{},
		Attachments: []Attachment{},
		Parameters:  []Parameter{},
	}
}

type StepResult struct {
	ExecutableItem
}

type FixtureResult struct {
	ExecutableItem
}

type TestResult struct {
	UUID       string  `json:"uuid"`
	HistoryID  string  `json:"historyId,omitempty"`
	TestCaseID string  `json:"testCaseId,omitempty"`
	FullName   string  `json:"fullName,omitempty"`
	Labels     []Label `json:"labels"`
	Links      []Link  `json:"links"`
	ExecutableItem
}

func NewTestResult(name string) *TestResult {
	return &TestResult{
		UUID:           NewUUID().String(),
		Labels:         []Label{},
		Links:          []Link{},
		ExecutableItem: NewExecutableItem(name),
	}
}

// TestResultContainer is the persisted membership record of a group.
// Children lists owned test result ids; Groups lists owned child group ids.
type TestResultContainer struct {
	UUID            string           `json:"uuid"`
	Name            string           `json:"name,omitempty"`
	Children        []string         `json:"children"`
	Groups          []string         `json:"groups,omitempty"`
	Description     string           `json:"description,omitempty"`
	DescriptionHTML string           `json:"descriptionHtml,omitempty"`
	Befores         []*FixtureResult `json:"befores"`
	Afters          []*FixtureResult `json:"afters"`
	Links           []Link           `json:"links"`
	Start           int64            `json:"start,omitempty"`
	Stop            int64            `json:"stop,omitempty"`
}

func NewTestResultContainer(name string) *TestResultContainer {
	return &TestResultContainer{
		UUID:     NewUUID().String(),
		Name:     name,
		Children: []string{},
		Befores:  []*FixtureResult{},
		Afters:   []*FixtureResult{},
		Links:    []Link{},
	}
}

// EnvironmentInfo is rendered as a properties file by file-based writers.
type EnvironmentInfo = map[string]string
