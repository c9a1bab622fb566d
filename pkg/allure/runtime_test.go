package allure

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/reporter/pkg/report"
	"github.com/specvital/reporter/pkg/writer/memory"
)

func TestNewRuntime_DefaultsToMemoryWriter(t *testing.T) {
	rt := NewRuntime(Config{})

	_, ok := rt.Writer().(*memory.Writer)
	assert.True(t, ok, "expected *memory.Writer, got %T", rt.Writer())
}

func TestRuntime_WriteResult(t *testing.T) {
	t.Run("without mapper writes the result as is", func(t *testing.T) {
		writer := newCountingWriter()
		rt := NewRuntime(Config{Writer: writer})
		result := report.NewTestResult("t")

		require.NoError(t, rt.WriteResult(context.Background(), result))

		assert.Equal(t, 1, writer.results)
		assert.Equal(t, result.UUID, writer.Results()[0].UUID)
	})

	t.Run("mapper returning nil drops the result", func(t *testing.T) {
		writer := newCountingWriter()
		var dropped []*report.TestResult
		rt := NewRuntime(Config{
			Writer:     writer,
			TestMapper: func(*report.TestResult) *report.TestResult { return nil },
			OnDrop: func(_ context.Context, r *report.TestResult) {
				dropped = append(dropped, r)
			},
		})
		result := report.NewTestResult("t")

		require.NoError(t, rt.WriteResult(context.Background(), result))

		assert.Equal(t, 0, writer.results)
		require.Len(t, dropped, 1)
		assert.Same(t, result, dropped[0])
	})

	t.Run("mapper output is what gets written", func(t *testing.T) {
		var seen *report.TestResult
		mapped := report.NewTestResult("mapped")
		writer := &recordingWriter{Writer: memory.NewWriter(), onResult: func(r *report.TestResult) { seen = r }}
		rt := NewRuntime(Config{
			Writer: writer,
			TestMapper: func(r *report.TestResult) *report.TestResult {
				mapped.Labels = append(mapped.Labels, report.Label{Name: "from", Value: r.Name})
				return mapped
			},
		})

		require.NoError(t, rt.WriteResult(context.Background(), report.NewTestResult("original")))

		assert.Same(t, mapped, seen)
		assert.Equal(t, []report.Label{{Name: "from", Value: "original"}}, seen.Labels)
	})

	t.Run("writer error is wrapped", func(t *testing.T) {
		writer := newCountingWriter()
		writer.writeErr = errBoom
		rt := NewRuntime(Config{Writer: writer})

		err := rt.WriteResult(context.Background(), report.NewTestResult("t"))

		assert.ErrorIs(t, err, errBoom)
		assert.Contains(t, err.Error(), "write result")
	})
}

type recordingWriter struct {
	*memory.Writer
	onResult func(*report.TestResult)
}

func (w *recordingWriter) WriteResult(ctx context.Context, result *report.TestResult) error {
	w.onResult(result)
	return w.Writer.WriteResult(ctx, result)
}

func TestRuntime_WriteAttachment(t *testing.T) {
	writer := memory.NewWriter()
	rt := NewRuntime(Config{Writer: writer})
	ctx := context.Background()

	first, err := rt.WriteAttachment(ctx, []byte("a"), report.ContentTypeText)
	require.NoError(t, err)
	second, err := rt.WriteAttachment(ctx, []byte("b"), report.ContentTypeText)
	require.NoError(t, err)
	custom, err := rt.WriteAttachment(ctx, []byte("c"), report.AttachmentOptions{ContentType: report.ContentTypeText, FileExtension: ".log"})
	require.NoError(t, err)
	unknown, err := rt.WriteAttachment(ctx, []byte("d"), report.ContentType("application/x-made-up"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasSuffix(first, "-attachment.txt"), first)
	assert.True(t, strings.HasSuffix(custom, "-attachment.log"), custom)
	assert.True(t, strings.HasSuffix(unknown, "-attachment.attach"), unknown)

	content, ok := writer.Attachment(second)
	require.True(t, ok)
	assert.Equal(t, []byte("b"), content)
}

func TestRuntime_WriteEnvironmentInfo(t *testing.T) {
	t.Run("explicit info", func(t *testing.T) {
		writer := memory.NewWriter()
		rt := NewRuntime(Config{Writer: writer})

		require.NoError(t, rt.WriteEnvironmentInfo(context.Background(), map[string]string{"os": "linux"}))

		assert.Equal(t, map[string]string{"os": "linux"}, writer.EnvironmentInfo())
	})

	t.Run("nil info snapshots the process environment", func(t *testing.T) {
		t.Setenv("REPORT_TEST_ENV_MARKER", "a=b")
		writer := memory.NewWriter()
		rt := NewRuntime(Config{Writer: writer})

		require.NoError(t, rt.WriteEnvironmentInfo(context.Background(), nil))

		assert.Equal(t, "a=b", writer.EnvironmentInfo()["REPORT_TEST_ENV_MARKER"])
	})
}

func TestRuntime_WriteCategoriesDefinitions(t *testing.T) {
	writer := memory.NewWriter()
	rt := NewRuntime(Config{Writer: writer})
	re := regexp.MustCompile("foo.*bar")
	categories := []report.Category{
		{Name: "Timeouts", MessageRegex: re, MatchedStatuses: []report.Status{report.StatusBroken}},
		{Name: "Text", TraceRegex: report.TextPattern(`at .*Test`)},
	}

	require.NoError(t, rt.WriteCategoriesDefinitions(context.Background(), categories))

	defs := writer.Categories()
	require.Len(t, defs, 2)
	assert.Equal(t, "foo.*bar", defs[0].MessageRegex)
	assert.Equal(t, `at .*Test`, defs[1].TraceRegex)
	assert.Same(t, re, categories[0].MessageRegex)
}

func TestRuntime_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)

	writer := newCountingWriter()
	rt := NewRuntime(Config{
		Writer:     writer,
		Metrics:    metrics,
		TestMapper: func(r *report.TestResult) *report.TestResult { return nil },
	})
	ctx := context.Background()

	require.NoError(t, rt.WriteResult(ctx, report.NewTestResult("dropped")))
	require.NoError(t, rt.WriteGroup(ctx, report.NewTestResultContainer("g")))
	writer.writeErr = errBoom
	_, err = rt.WriteAttachment(ctx, []byte("x"), report.ContentTypeText)
	require.Error(t, err)

	values := gatherCounters(t, reg)
	assert.Equal(t, 1.0, values["report_results_dropped_total"])
	assert.Equal(t, 1.0, values["report_artifacts_written_total/container"])
	assert.Equal(t, 1.0, values["report_write_errors_total/attachment"])
}

func TestNewMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewMetrics(reg)
	require.NoError(t, err)

	second, err := NewMetrics(reg)
	require.NoError(t, err)

	assert.Same(t, first.ArtifactsWritten, second.ArtifactsWritten)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.artifactWritten(kindResult)
		m.writeFailed(kindResult)
		m.resultDropped()
	})
}

// gatherCounters flattens counters to "name" or "name/kind" keys.
func gatherCounters(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, lp := range m.GetLabel() {
				if lp.GetName() == labelKind {
					key += "/" + lp.GetValue()
				}
			}
			values[key] = m.GetCounter().GetValue()
		}
	}
	return values
}
