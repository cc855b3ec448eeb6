// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/risk-profiler/internal/model"
)

// HistoryStore persists finalized reports as flat history records.
// Implementations must serialize writes; the profiling core never reads
// history to make decisions.
type HistoryStore interface {
	AppendReport(ctx context.Context, report model.ClientReport) (model.HistoryRecord, error)
	ListRecords(ctx context.Context, limit int) ([]model.HistoryRecord, error)
	CountRecords(ctx context.Context) (int, error)
	Migrate(ctx context.Context) error
	Close() error
}

// ReportExporter renders a finalized report to an external destination.
type ReportExporter interface {
	Name() string
	Export(ctx context.Context, report model.ClientReport, data model.ReportExportData) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	// ShouldRetry decides whether an error is transient. Nil retries every error.
	ShouldRetry func(error) bool
	// Throttled reports rate-limit errors, which wait MaxDelay before retrying.
	Throttled    func(error) bool
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
