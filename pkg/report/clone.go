package report

import "slices"

// Clone returns a deep copy of the item and its step tree.
func (e ExecutableItem) Clone() ExecutableItem {
	c := e
	c.Attachments = slices.Clone(e.Attachments)
	c.Parameters = slices.Clone(e.Parameters)
	if e.Steps != nil {
		c.Steps = make([]*StepResult, len(e.Steps))
		for i, s := range e.Steps {
			if s != nil {
				c.Steps[i] = &StepResult{ExecutableItem: s.ExecutableItem.Clone()}
			}
		}
	}
	return c
}

func (r *TestResult) Clone() *TestResult {
	if r == nil {
		return nil
	}
	c := *r
	c.Labels = slices.Clone(r.Labels)
	c.Links = slices.Clone(r.Links)
	c.ExecutableItem = r.ExecutableItem.Clone()
	return &c
}

func (c *TestResultContainer) Clone() *TestResultContainer {
	if c == nil {
		return nil
	}
	out := *c
	out.Children = slices.Clone(c.Children)
	out.Groups = slices.Clone(c.Groups)
	out.Links = slices.Clone(c.Links)
	out.Befores = cloneFixtures(c.Befores)
	out.Afters = cloneFixtures(c.Afters)
	return &out
}

func cloneFixtures(fixtures []*FixtureResult) []*FixtureResult {
	if fixtures == nil {
		return nil
	}
	out := make([]*FixtureResult, len(fixtures))
	for i, f := range fixtures {
		if f != nil {
			out[i] = &FixtureResult{ExecutableItem: f.ExecutableItem.Clone()}
		}
	}
	return out
}

func (d CategoryDefinition) Clone() CategoryDefinition {
	d.MatchedStatuses = slices.Clone(d.MatchedStatuses)
	return d
}
