package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/risk-profiler/internal/catalog"
	"github.com/Veraticus/risk-profiler/internal/common"
	"github.com/Veraticus/risk-profiler/internal/model"
	"github.com/Veraticus/risk-profiler/internal/report"
	"github.com/Veraticus/risk-profiler/internal/service"
)

// ProfilingEngine collects a submission, classifies it and hands the
// finalized report to history and exporters.
type ProfilingEngine struct {
	prompter  Prompter
	history   service.HistoryStore
	recorder  Recorder
	now       func() time.Time
	exporters []service.ReportExporter
}

// Option configures a ProfilingEngine.
type Option func(*ProfilingEngine)

// WithHistory appends every finalized report to store.
func WithHistory(store service.HistoryStore) Option {
	return func(e *ProfilingEngine) {
		e.history = store
	}
}

// WithExporters registers report exporters, run in order.
func WithExporters(exporters ...service.ReportExporter) Option {
	return func(e *ProfilingEngine) {
		e.exporters = append(e.exporters, exporters...)
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(recorder Recorder) Option {
	return func(e *ProfilingEngine) {
		if recorder != nil {
			e.recorder = recorder
		}
	}
}

// WithNow overrides the clock used for report timestamps.
func WithNow(now func() time.Time) Option {
	return func(e *ProfilingEngine) {
		e.now = now
	}
}

// New creates a profiling engine that collects input through prompter.
func New(prompter Prompter, opts ...Option) *ProfilingEngine {
	e := &ProfilingEngine{
		prompter: prompter,
		recorder: nopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the outcome of a profiling run. Report and Data are always set
// when Run returns a nil error, even if history or exports failed.
type Result struct {
	Record      *model.HistoryRecord
	DeliveryErr error
	Report      model.ClientReport
	Data        model.ReportExportData
}

// Run drives one submission through the workflow and finalizes it.
func (e *ProfilingEngine) Run(ctx context.Context) (*Result, error) {
	if e.prompter == nil {
		return nil, fmt.Errorf("%w: no prompter configured", common.ErrMissingConfig)
	}

	name, err := e.prompter.AskClientName(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read client name: %w", err)
	}

	answers, err := e.prompter.AskAnswers(ctx, catalog.Questions())
	if err != nil {
		return nil, fmt.Errorf("failed to read answers: %w", err)
	}

	desired, err := e.prompter.AskDesiredProfile(ctx, catalog.Bands(), catalog.DefaultDesiredProfile)
	if err != nil {
		return nil, fmt.Errorf("failed to read desired profile: %w", err)
	}

	wf := NewWorkflow(name, WithClock(e.now))
	state, err := wf.Submit(answers, desired)
	if err != nil {
		return nil, err
	}

	if state == StateAwaitingJustification {
		classification, _ := wf.Classification()
		slog.Info("Calculated profile differs from desired profile",
			"calculated", classification.FinalProfileName,
			"desired", desired)

		text, askErr := e.prompter.AskJustification(ctx, classification, desired)
		if askErr != nil {
			wf.Abandon()
			return nil, fmt.Errorf("failed to read justification: %w", askErr)
		}
		if err := wf.Justify(text); err != nil {
			return nil, err
		}
	}

	clientReport, err := wf.Report()
	if err != nil {
		return nil, err
	}

	return e.Finalize(ctx, clientReport), nil
}

// Finalize builds the export data for a finalized report, records it and
// delivers it to history and exporters. Delivery failures are collected in
// Result.DeliveryErr and never discard the report.
func (e *ProfilingEngine) Finalize(ctx context.Context, clientReport model.ClientReport) *Result {
	result := &Result{
		Report: clientReport,
		Data:   report.Build(clientReport),
	}

	e.recorder.ObserveReport(clientReport)

	var errs []error

	if e.history != nil {
		record, err := e.history.AppendReport(ctx, clientReport)
		if err != nil {
			slog.Warn("Failed to append report to history", "client", clientReport.ClientName, "error", err)
			e.recorder.ObserveExportFailure("history")
			errs = append(errs, fmt.Errorf("%w: %w", common.ErrHistoryStorage, err))
		} else {
			result.Record = &record
		}
	}

	for _, exporter := range e.exporters {
		if err := exporter.Export(ctx, clientReport, result.Data); err != nil {
			slog.Warn("Report export failed", "target", exporter.Name(), "error", err)
			e.recorder.ObserveExportFailure(exporter.Name())
			errs = append(errs, fmt.Errorf("%w: %s: %w", common.ErrExportFailed, exporter.Name(), err))
			continue
		}
		slog.Debug("Report exported", "target", exporter.Name())
	}

	result.DeliveryErr = errors.Join(errs...)

	slog.Info("Profiling completed",
		"client", clientReport.ClientName,
		"profile", clientReport.Classification.FinalProfileName,
		"total", clientReport.Classification.TotalScore,
		"aligned", clientReport.Gap.IsAligned)

	return result
}
