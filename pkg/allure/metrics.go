package allure

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	kindResult      = "result"
	kindContainer   = "container"
	kindAttachment  = "attachment"
	kindEnvironment = "environment"
	kindCategories  = "categories"

	labelKind = "kind"
)

// Metrics counts runtime write activity. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	ArtifactsWritten *prometheus.CounterVec
	WriteErrors      *prometheus.CounterVec
	ResultsDropped   prometheus.Counter
}

// NewMetrics creates the runtime collectors and registers them with reg
// when reg is non-nil. Collectors already registered are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		ArtifactsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "report_artifacts_written_total",
			Help: "The number of report artifacts handed to the writer",
		}, []string{labelKind}),
		WriteErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "report_write_errors_total",
			Help: "The number of report artifacts the writer failed to persist",
		}, []string{labelKind}),
		ResultsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "report_results_dropped_total",
			Help: "The number of test results dropped by the result mapper",
		}),
	}
	if reg == nil {
		return m, nil
	}

	var err error
	if m.ArtifactsWritten, err = register(reg, m.ArtifactsWritten); err != nil {
		return nil, err
	}
	if m.WriteErrors, err = register(reg, m.WriteErrors); err != nil {
		return nil, err
	}
	if m.ResultsDropped, err = register(reg, m.ResultsDropped); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *Metrics) artifactWritten(kind string) {
	if m == nil {
		return
	}
	m.ArtifactsWritten.WithLabelValues(kind).Inc()
}

func (m *Metrics) writeFailed(kind string) {
	if m == nil {
		return
	}
	m.WriteErrors.WithLabelValues(kind).Inc()
}

func (m *Metrics) resultDropped() {
	if m == nil {
		return
	}
	m.ResultsDropped.Inc()
}
