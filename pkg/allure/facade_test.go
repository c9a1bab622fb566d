package allure

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/reporter/pkg/report"
	"github.com/specvital/reporter/pkg/writer/memory"
)

func TestFacade_EndToEnd(t *testing.T) {
	writer := memory.NewWriter()
	rt := NewRuntime(Config{Writer: writer})
	ctx := context.Background()

	group := rt.StartGroup("Suite A")
	test, err := group.StartTest("should work")
	require.NoError(t, err)
	f := NewFacade(rt, TestResolver{Test: test})

	require.NoError(t, f.Severity(ctx, report.SeverityCritical))
	_, err = f.Step(ctx, "do thing", func(ctx context.Context, s StepContext) (any, error) {
		s.Parameter("x", "1")
		return nil, nil
	})
	require.NoError(t, err)
	test.SetStatus(report.StatusPassed)
	require.NoError(t, test.End(ctx))
	require.NoError(t, group.End(ctx))

	require.Len(t, writer.Results(), 1)
	result := writer.Results()[0]
	assert.Equal(t, "should work", result.Name)
	assert.Equal(t, report.StatusPassed, result.Status)
	assert.Equal(t, []report.Label{{Name: report.LabelSeverity, Value: "critical"}}, result.Labels)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, "do thing", result.Steps[0].Name)
	assert.Equal(t, report.StatusPassed, result.Steps[0].Status)
	assert.Equal(t, []report.Parameter{{Name: "x", Value: "1"}}, result.Steps[0].Parameters)

	require.Len(t, writer.Groups(), 1)
	container := writer.Groups()[0]
	assert.Equal(t, "Suite A", container.Name)
	assert.Equal(t, []string{result.UUID}, container.Children)
}

func TestFacade_Labels(t *testing.T) {
	f, test, _ := newTestFacade(t)
	ctx := context.Background()

	require.NoError(t, f.Epic(ctx, "e"))
	require.NoError(t, f.Feature(ctx, "f"))
	require.NoError(t, f.Story(ctx, "s"))
	require.NoError(t, f.ParentSuite(ctx, "ps"))
	require.NoError(t, f.Suite(ctx, "su"))
	require.NoError(t, f.SubSuite(ctx, "ss"))
	require.NoError(t, f.Owner(ctx, "o"))
	require.NoError(t, f.Tag(ctx, "t1"))
	require.NoError(t, f.Tag(ctx, "t1"))
	require.NoError(t, f.Label(ctx, report.LabelAllureID, "42"))

	var names []string
	for _, l := range test.Result().Labels {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{
		report.LabelEpic, report.LabelFeature, report.LabelStory,
		report.LabelParentSuite, report.LabelSuite, report.LabelSubSuite,
		report.LabelOwner, report.LabelTag, report.LabelTag, "AS_ID",
	}, names)
}

func TestFacade_Links(t *testing.T) {
	f, test, _ := newTestFacade(t)
	ctx := context.Background()

	require.NoError(t, f.Link(ctx, "https://example.com", "", ""))
	require.NoError(t, f.Issue(ctx, "BUG-1", "https://tracker/BUG-1"))
	require.NoError(t, f.TMS(ctx, "TC-7", "https://tms/TC-7"))

	assert.Equal(t, []report.Link{
		{URL: "https://example.com"},
		{URL: "https://tracker/BUG-1", Name: "BUG-1", Type: report.LinkTypeIssue},
		{URL: "https://tms/TC-7", Name: "TC-7", Type: report.LinkTypeTMS},
	}, test.Result().Links)
}

func TestFacade_Descriptions(t *testing.T) {
	f, test, _ := newTestFacade(t)
	ctx := context.Background()

	require.NoError(t, f.Description(ctx, "**md**"))
	require.NoError(t, f.DescriptionHTML(ctx, "<b>html</b>"))

	assert.Equal(t, "**md**", test.Result().Description)
	assert.Equal(t, "<b>html</b>", test.Result().DescriptionHTML)
}

func TestFacade_Attachment(t *testing.T) {
	f, test, writer := newTestFacade(t)
	ctx := context.Background()

	require.NoError(t, f.Attachment(ctx, "log", []byte("hello"), report.ContentTypeText))
	_, err := f.Step(ctx, "with screenshot", func(ctx context.Context, _ StepContext) (any, error) {
		return nil, f.Attachment(ctx, "shot", []byte{0x89}, report.ContentTypePNG)
	})
	require.NoError(t, err)

	require.Len(t, test.Result().Attachments, 1)
	att := test.Result().Attachments[0]
	assert.Equal(t, "log", att.Name)
	assert.Equal(t, string(report.ContentTypeText), att.Type)
	assert.True(t, strings.HasSuffix(att.Source, "-attachment.txt"))
	content, ok := writer.Attachment(att.Source)
	require.True(t, ok)
	assert.Equal(t, []byte("hello"), content)

	stepAtt := test.Result().Steps[0].Attachments
	require.Len(t, stepAtt, 1)
	assert.True(t, strings.HasSuffix(stepAtt[0].Source, "-attachment.png"))
}

func TestFacade_AttachmentWriteError(t *testing.T) {
	writer := newCountingWriter()
	writer.writeErr = errBoom
	rt := NewRuntime(Config{Writer: writer})
	test, err := rt.StartGroup("g").StartTest("t")
	require.NoError(t, err)
	f := NewFacade(rt, TestResolver{Test: test})

	err = f.Attachment(context.Background(), "log", []byte("x"), report.ContentTypeText)

	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, test.Result().Attachments)
}

func TestFacade_LogStep(t *testing.T) {
	f, test, _ := newTestFacade(t)
	ctx := context.Background()

	require.NoError(t, f.LogStep(ctx, "implicit", ""))
	require.NoError(t, f.LogStep(ctx, "explicit", report.StatusSkipped))

	steps := test.Result().Steps
	require.Len(t, steps, 2)
	assert.Equal(t, report.StatusPassed, steps[0].Status)
	assert.Equal(t, report.StatusSkipped, steps[1].Status)
	assert.Equal(t, report.StageFinished, steps[1].Stage)
}

func TestResolvers(t *testing.T) {
	ctx := context.Background()
	rt := NewRuntime(Config{})
	test, err := rt.StartGroup("g").StartTest("t")
	require.NoError(t, err)

	t.Run("test resolver without test", func(t *testing.T) {
		f := NewFacade(rt, TestResolver{})
		assert.ErrorIs(t, f.Tag(ctx, "x"), ErrNoCurrentTest)
		assert.ErrorIs(t, f.Parameter(ctx, "x", "1"), ErrNoCurrentExecutable)
	})

	t.Run("step resolver splits test and step", func(t *testing.T) {
		step := test.StartStep("bound")
		f := NewFacade(rt, StepResolver{Test: test, Step: step})

		require.NoError(t, f.Tag(ctx, "on-test"))
		require.NoError(t, f.Parameter(ctx, "on", "step"))

		assert.Equal(t, "on-test", test.Result().Labels[len(test.Result().Labels)-1].Value)
		assert.Equal(t, []report.Parameter{{Name: "on", Value: "step"}}, step.Result().Parameters)
		step.SetStatus(report.StatusPassed)
		require.NoError(t, step.End())
	})

	t.Run("context resolver", func(t *testing.T) {
		f := NewFacade(rt, ContextResolver{})

		assert.ErrorIs(t, f.Owner(ctx, "nobody"), ErrNoCurrentTest)

		tctx := ContextWithTest(ctx, test)
		require.NoError(t, f.Owner(tctx, "qa"))
		require.NoError(t, f.Description(tctx, "from context"))

		assert.Equal(t, "from context", test.Result().Description)
		got, ok := TestFromContext(tctx)
		require.True(t, ok)
		assert.Same(t, test, got)
	})
}

func TestFacade_Deprecated(t *testing.T) {
	t.Run("CreateStep forwards arguments", func(t *testing.T) {
		f, test, _ := newTestFacade(t)
		sum := f.CreateStep("sum", func(args ...any) (any, error) {
			return args[0].(int) + args[1].(int), nil
		})

		v, err := sum(context.Background(), 2, 3)

		require.NoError(t, err)
		assert.Equal(t, 5, v)
		assert.Equal(t, "sum", test.Result().Steps[0].Name)
	})

	t.Run("CreateAttachment with immediate content", func(t *testing.T) {
		f, test, _ := newTestFacade(t)

		fn, err := f.CreateAttachment(context.Background(), "now", "text", report.ContentTypeText)

		require.NoError(t, err)
		assert.Nil(t, fn)
		assert.Len(t, test.Result().Attachments, 1)
	})

	t.Run("CreateAttachment with producer", func(t *testing.T) {
		f, test, writer := newTestFacade(t)

		fn, err := f.CreateAttachment(context.Background(), "later", func(args ...any) string {
			return strings.Repeat("x", args[0].(int))
		}, report.ContentTypeText)
		require.NoError(t, err)
		require.NotNil(t, fn)
		assert.Empty(t, test.Result().Attachments)

		require.NoError(t, fn(context.Background(), 3))

		require.Len(t, test.Result().Attachments, 1)
		content, ok := writer.Attachment(test.Result().Attachments[0].Source)
		require.True(t, ok)
		assert.Equal(t, []byte("xxx"), content)
	})

	t.Run("CreateAttachment rejects other content", func(t *testing.T) {
		f, _, _ := newTestFacade(t)

		_, err := f.CreateAttachment(context.Background(), "bad", 42, report.ContentTypeText)

		assert.ErrorIs(t, err, report.ErrInvalidInput)
	})
}

func TestFacade_EnvironmentAndCategories(t *testing.T) {
	f, _, writer := newTestFacade(t)
	ctx := context.Background()

	require.NoError(t, f.WriteEnvironmentInfo(ctx, map[string]string{"go": "1.24"}))
	require.NoError(t, f.WriteCategoriesDefinitions(ctx, []report.Category{{Name: "Ignored", MatchedStatuses: []report.Status{report.StatusSkipped}}}))

	assert.Equal(t, "1.24", writer.EnvironmentInfo()["go"])
	require.Len(t, writer.Categories(), 1)
	assert.Equal(t, "Ignored", writer.Categories()[0].Name)
	assert.Same(t, f.Runtime().Writer(), report.Writer(writer))
}
