package allure

import (
	"context"
	"fmt"
	"slices"

	"github.com/specvital/reporter/pkg/report"
)

const defaultGroupName = "Unnamed"

// Group models a suite scope. It owns the ids of the tests and groups it
// started; each of those is written on its own when it ends, so groups and
// tests may finish in any order.
type Group struct {
	runtime   *Runtime
	container *report.TestResultContainer
	befores   []*Fixture
	afters    []*Fixture
	finished  bool
}

func newGroup(runtime *Runtime, name string) *Group {
	if name == "" {
		name = defaultGroupName
	}
	container := report.NewTestResultContainer(name)
	container.Start = now()
	return &Group{runtime: runtime, container: container}
}

func (g *Group) UUID() string { return g.container.UUID }

func (g *Group) Name() string { return g.container.Name }

// SetName and the description setters are no-ops once the group has ended.
func (g *Group) SetName(name string) {
	if g.finished {
		return
	}
	g.container.Name = name
}

func (g *Group) SetDescription(markdown string) {
	if g.finished {
		return
	}
	g.container.Description = markdown
}

func (g *Group) SetDescriptionHTML(html string) {
	if g.finished {
		return
	}
	g.container.DescriptionHTML = html
}

func (g *Group) Container() *report.TestResultContainer { return g.container }

func (g *Group) StartGroup(name string) (*Group, error) {
	if g.finished {
		return nil, fmt.Errorf("%w: %q", ErrGroupFinished, g.container.Name)
	}
	child := newGroup(g.runtime, name)
	g.container.Groups = append(g.container.Groups, child.UUID())
	return child, nil
}

func (g *Group) StartTest(name string) (*Test, error) {
	if g.finished {
		return nil, fmt.Errorf("%w: %q", ErrGroupFinished, g.container.Name)
	}
	test := newTest(g.runtime, name)
	g.container.Children = append(g.container.Children, test.UUID())
	return test, nil
}

// AddBefore starts a setup fixture recorded on this group.
func (g *Group) AddBefore(name string) (*Fixture, error) {
	if g.finished {
		return nil, fmt.Errorf("%w: %q", ErrGroupFinished, g.container.Name)
	}
	f := newFixture(name)
	g.befores = append(g.befores, f)
	g.container.Befores = append(g.container.Befores, f.result)
	return f, nil
}

// AddAfter starts a teardown fixture recorded on this group.
func (g *Group) AddAfter(name string) (*Fixture, error) {
	if g.finished {
		return nil, fmt.Errorf("%w: %q", ErrGroupFinished, g.container.Name)
	}
	f := newFixture(name)
	g.afters = append(g.afters, f)
	g.container.Afters = append(g.container.Afters, f.result)
	return f, nil
}

// End writes the group's container and marks it finished. Children are not
// written here. A failed write leaves the group open so End can be retried.
func (g *Group) End(ctx context.Context) error {
	if g.finished {
		return fmt.Errorf("%w: %q", ErrGroupFinished, g.container.Name)
	}
	for _, f := range slices.Concat(g.befores, g.afters) {
		if !f.finished() {
			return fmt.Errorf("%w: %q in group %q", ErrUnfinishedFixture, f.result.Name, g.container.Name)
		}
	}
	stop := now()
	if stop < g.container.Start {
		stop = g.container.Start
	}
	g.container.Stop = stop
	if err := g.runtime.WriteGroup(ctx, g.container); err != nil {
		g.container.Stop = 0
		return err
	}
	g.finished = true
	return nil
}
