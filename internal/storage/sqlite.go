// Package storage provides the client history persistence layer.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/risk-profiler/internal/model"
	"github.com/Veraticus/risk-profiler/internal/report"
	"github.com/Veraticus/risk-profiler/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements service.HistoryStore using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	newID  func() string
	dbPath string
	// writeMu serializes appends; history has a single writer.
	writeMu sync.Mutex
}

// NewSQLiteStorage opens (or creates) the history database at dbPath.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dsn := dbPath
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = dbPath + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections, and an in-memory
	// database only exists on the connection that created it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
		newID:  uuid.NewString,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// AppendReport stores the flat history record of a finalized report.
func (s *SQLiteStorage) AppendReport(ctx context.Context, r model.ClientReport) (model.HistoryRecord, error) {
	if err := validateContext(ctx); err != nil {
		return model.HistoryRecord{}, err
	}
	if err := validateReport(r); err != nil {
		return model.HistoryRecord{}, err
	}

	rec := report.Record(r)
	rec.ID = s.newID()

	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO client_history (
			id, recorded_at, timestamp, client_name, total_score,
			assigned_profile, raw_profile, desired_profile, suggested_allocation,
			justification, guardrail, is_aligned,
			score_financial_capacity, score_knowledge, score_time_horizon, score_psychological
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		createdAt.UTC(),
		rec.Timestamp,
		rec.ClientName,
		rec.TotalScore,
		rec.AssignedProfile,
		r.Classification.RawBand.Name,
		rec.DesiredProfile,
		rec.SuggestedAllocation,
		rec.Justification,
		string(r.Classification.Guardrail),
		r.Gap.IsAligned,
		rec.FinancialCapacityScore,
		rec.KnowledgeScore,
		rec.TimeHorizonScore,
		rec.PsychologicalScore,
	)
	if err != nil {
		return model.HistoryRecord{}, fmt.Errorf("failed to insert history record: %w", err)
	}

	return rec, nil
}

// ListRecords returns history records in insertion order. A non-positive
// limit returns every record; otherwise the most recent limit records.
func (s *SQLiteStorage) ListRecords(ctx context.Context, limit int) ([]model.HistoryRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var args []any
	if limit > 0 {
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, selectRecords(limit), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.HistoryRecord
	for rows.Next() {
		var rec model.HistoryRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Timestamp,
			&rec.ClientName,
			&rec.TotalScore,
			&rec.AssignedProfile,
			&rec.DesiredProfile,
			&rec.SuggestedAllocation,
			&rec.Justification,
			&rec.FinancialCapacityScore,
			&rec.KnowledgeScore,
			&rec.TimeHorizonScore,
			&rec.PsychologicalScore,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}

	return records, nil
}

// CountRecords returns the number of stored history records.
func (s *SQLiteStorage) CountRecords(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM client_history`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return count, nil
}

const recordColumns = `id, timestamp, client_name, total_score, assigned_profile, desired_profile,
	suggested_allocation, justification,
	score_financial_capacity, score_knowledge, score_time_horizon, score_psychological`

func selectRecords(limit int) string {
	if limit > 0 {
		return `SELECT ` + recordColumns + ` FROM (
			SELECT * FROM client_history ORDER BY seq DESC LIMIT ?
		) ORDER BY seq`
	}
	return `SELECT ` + recordColumns + ` FROM client_history ORDER BY seq`
}

var _ service.HistoryStore = (*SQLiteStorage)(nil)
