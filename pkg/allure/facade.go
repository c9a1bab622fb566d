package allure

import (
	"context"

	"github.com/specvital/reporter/pkg/report"
)

// Facade is the reporting vocabulary test-framework adapters call during a
// test. What each call applies to is decided by its Resolver.
type Facade struct {
	runtime  *Runtime
	resolver Resolver
}

func NewFacade(runtime *Runtime, resolver Resolver) *Facade {
	return &Facade{runtime: runtime, resolver: resolver}
}

func (f *Facade) Runtime() *Runtime { return f.runtime }

func (f *Facade) Label(ctx context.Context, name, value string) error {
	t, err := f.resolver.CurrentTest(ctx)
	if err != nil {
		return err
	}
	t.AddLabel(name, value)
	return nil
}

func (f *Facade) Epic(ctx context.Context, epic string) error {
	return f.Label(ctx, report.LabelEpic, epic)
}

func (f *Facade) Feature(ctx context.Context, feature string) error {
	return f.Label(ctx, report.LabelFeature, feature)
}

func (f *Facade) Story(ctx context.Context, story string) error {
	return f.Label(ctx, report.LabelStory, story)
}

func (f *Facade) Suite(ctx context.Context, name string) error {
	return f.Label(ctx, report.LabelSuite, name)
}

func (f *Facade) ParentSuite(ctx context.Context, name string) error {
	return f.Label(ctx, report.LabelParentSuite, name)
}

func (f *Facade) SubSuite(ctx context.Context, name string) error {
	return f.Label(ctx, report.LabelSubSuite, name)
}

func (f *Facade) Owner(ctx context.Context, owner string) error {
	return f.Label(ctx, report.LabelOwner, owner)
}

func (f *Facade) Severity(ctx context.Context, severity string) error {
	return f.Label(ctx, report.LabelSeverity, severity)
}

func (f *Facade) Tag(ctx context.Context, tag string) error {
	return f.Label(ctx, report.LabelTag, tag)
}

func (f *Facade) Parameter(ctx context.Context, name, value string) error {
	e, err := f.resolver.CurrentExecutable(ctx)
	if err != nil {
		return err
	}
	e.AddParameter(name, value)
	return nil
}

func (f *Facade) Link(ctx context.Context, url, name, linkType string) error {
	t, err := f.resolver.CurrentTest(ctx)
	if err != nil {
		return err
	}
	t.AddLink(url, name, linkType)
	return nil
}

func (f *Facade) Issue(ctx context.Context, name, url string) error {
	return f.Link(ctx, url, name, report.LinkTypeIssue)
}

func (f *Facade) TMS(ctx context.Context, name, url string) error {
	return f.Link(ctx, url, name, report.LinkTypeTMS)
}

func (f *Facade) Description(ctx context.Context, markdown string) error {
	e, err := f.resolver.CurrentExecutable(ctx)
	if err != nil {
		return err
	}
	e.SetDescription(markdown)
	return nil
}

func (f *Facade) DescriptionHTML(ctx context.Context, html string) error {
	e, err := f.resolver.CurrentExecutable(ctx)
	if err != nil {
		return err
	}
	e.SetDescriptionHTML(html)
	return nil
}

// Attachment persists content through the runtime and references it from
// the current test or step.
func (f *Facade) Attachment(ctx context.Context, name string, content []byte, spec report.AttachmentSpec) error {
	e, err := f.resolver.CurrentExecutable(ctx)
	if err != nil {
		return err
	}
	source, err := f.runtime.WriteAttachment(ctx, content, spec)
	if err != nil {
		return err
	}
	var contentType report.ContentType
	if spec != nil {
		contentType = spec.AttachmentOptions().ContentType
	}
	e.AddAttachment(name, source, contentType)
	return nil
}

// LogStep records an already completed step. An empty status means passed.
func (f *Facade) LogStep(ctx context.Context, name string, status report.Status) error {
	e, err := f.resolver.CurrentExecutable(ctx)
	if err != nil {
		return err
	}
	if status == "" {
		status = report.StatusPassed
	}
	s := e.StartStep(name)
	s.SetStatus(status)
	return s.End()
}

func (f *Facade) WriteEnvironmentInfo(ctx context.Context, info map[string]string) error {
	return f.runtime.WriteEnvironmentInfo(ctx, info)
}

func (f *Facade) WriteCategoriesDefinitions(ctx context.Context, categories []report.Category) error {
	return f.runtime.WriteCategoriesDefinitions(ctx, categories)
}
