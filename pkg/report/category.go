package report

import "regexp"

// Pattern is a category matcher given either as text or as a compiled
// *regexp.Regexp. Only its textual source is ever persisted.
type Pattern interface {
	String() string
}

// TextPattern is a regular expression kept in source form.
type TextPattern string

func (p TextPattern) String() string { return string(p) }

var _ Pattern = (*regexp.Regexp)(nil)

// Category is a failure classification rule supplied by callers.
type Category struct {
	Name            string
	Description     string
	MatchedStatuses []Status
	MessageRegex    Pattern
	TraceRegex      Pattern
	Flaky           bool
	Muted           bool
}

// CategoryDefinition is the serializable form handed to writers.
type CategoryDefinition struct {
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	MatchedStatuses []Status `json:"matchedStatuses,omitempty"`
	MessageRegex    string   `json:"messageRegex,omitempty"`
	TraceRegex      string   `json:"traceRegex,omitempty"`
	Flaky           bool     `json:"flaky,omitempty"`
	Muted           bool     `json:"muted,omitempty"`
}

// Definition renders c without mutating it.
func (c Category) Definition() CategoryDefinition {
	statuses := make([]Status, len(c.MatchedStatuses))
	copy(statuses, c.MatchedStatuses)
	return CategoryDefinition{
		Name:            c.Name,
		Description:     c.Description,
		MatchedStatuses: statuses,
		MessageRegex:    patternSource(c.MessageRegex),
		TraceRegex:      patternSource(c.TraceRegex),
		Flaky:           c.Flaky,
		Muted:           c.Muted,
	}
}

func patternSource(p Pattern) string {
	switch v := p.(type) {
	case nil:
		return ""
	case *regexp.Regexp:
		if v == nil {
			return ""
		}
		return v.String()
	default:
		return v.String()
	}
}
