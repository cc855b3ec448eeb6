// Package metrics counts profiling outcomes with Prometheus collectors.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Veraticus/risk-profiler/internal/model"
)

const namespace = "riskprof"

// Recorder exports profiling counters to a Prometheus registry.
type Recorder struct {
	gatherer    prometheus.Gatherer
	submissions *prometheus.CounterVec
	overrides   *prometheus.CounterVec
	divergent   prometheus.Counter
	exportFails *prometheus.CounterVec
}

// NewRecorder registers the profiling counters on reg. A nil reg gets a
// private registry, which keeps repeated CLI runs and tests independent.
func NewRecorder(reg *prometheus.Registry) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	r := &Recorder{
		gatherer: reg,
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Finalized questionnaire submissions by assigned profile.",
		}, []string{"profile"}),
		overrides: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guardrail_overrides_total",
			Help:      "Classifications changed by the financial capacity guardrail.",
		}, []string{"kind"}),
		divergent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "divergent_gaps_total",
			Help:      "Reports whose desired profile differs from the calculated one.",
		}),
		exportFails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "export_failures_total",
			Help:      "Failed report deliveries by target.",
		}, []string{"target"}),
	}

	var err error
	if r.submissions, err = register(reg, r.submissions); err != nil {
		return nil, err
	}
	if r.overrides, err = register(reg, r.overrides); err != nil {
		return nil, err
	}
	if r.divergent, err = register(reg, r.divergent); err != nil {
		return nil, err
	}
	if r.exportFails, err = register(reg, r.exportFails); err != nil {
		return nil, err
	}
	return r, nil
}

// register adds c to reg, reusing an identical collector that is already registered.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("register metric: %w", err)
	}
	return c, nil
}

// ObserveReport counts a finalized report.
func (r *Recorder) ObserveReport(report model.ClientReport) {
	if r == nil {
		return
	}
	c := report.Classification
	r.submissions.WithLabelValues(c.FinalProfileName).Inc()
	if c.Overridden() {
		r.overrides.WithLabelValues(string(c.Guardrail)).Inc()
	}
	if !report.Gap.IsAligned {
		r.divergent.Inc()
	}
}

// ObserveExportFailure counts a failed delivery to target.
func (r *Recorder) ObserveExportFailure(target string) {
	if r == nil {
		return
	}
	r.exportFails.WithLabelValues(target).Inc()
}

// WriteTextfile writes all counters in the node exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.gatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
