package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/risk-profiler/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history", "test.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testReport(name string, total int) model.ClientReport {
	created := time.Date(2025, 11, 7, 18, 45, 16, 0, time.UTC)
	return model.ClientReport{
		ClientName: name,
		CreatedAt:  created,
		Timestamp:  created.Format(model.TimestampLayout),
		Classification: model.ClassificationResult{
			TotalScore:       total,
			RawBand:          model.ProfileBand{Name: "4. Dinamico"},
			FinalProfileName: "2. Moderato",
			FinalAllocation:  "Obbligazioni: 60% / Azioni: 40%",
			Guardrail:        model.GuardrailDemoted,
			Breakdown: model.ScoreBreakdown{
				model.AreaFinancialCapacity:      10,
				model.AreaKnowledge:              20,
				model.AreaTimeHorizon:            20,
				model.AreaPsychologicalTolerance: total - 50,
			},
		},
		Gap: model.GapAssessment{
			DesiredProfileName: "4. Dinamico",
			Justification:      model.MissingJustification,
		},
	}
}

func TestSQLiteStorage_AppendAndList(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	rec, err := store.AppendReport(ctx, testReport("Mario Rossi", 80))
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "Mario Rossi", rec.ClientName)

	_, err = store.AppendReport(ctx, testReport("Anna Bianchi", 70))
	require.NoError(t, err)

	records, err := store.ListRecords(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, rec.ID, first.ID)
	assert.Equal(t, "2025-11-07 18:45:16.000000", first.Timestamp)
	assert.Equal(t, 80, first.TotalScore)
	assert.Equal(t, "2. Moderato", first.AssignedProfile)
	assert.Equal(t, "4. Dinamico", first.DesiredProfile)
	assert.Equal(t, "Obbligazioni: 60% / Azioni: 40%", first.SuggestedAllocation)
	assert.Equal(t, model.MissingJustification, first.Justification)
	assert.Equal(t, 10, first.FinancialCapacityScore)
	assert.Equal(t, 20, first.KnowledgeScore)
	assert.Equal(t, 20, first.TimeHorizonScore)
	assert.Equal(t, 30, first.PsychologicalScore)
	assert.Equal(t, "Anna Bianchi", records[1].ClientName)

	count, err := store.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSQLiteStorage_ListLimitKeepsMostRecent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.AppendReport(ctx, testReport(fmt.Sprintf("Cliente %d", i), 60+i))
		require.NoError(t, err)
	}

	records, err := store.ListRecords(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Cliente 3", records[0].ClientName)
	assert.Equal(t, "Cliente 4", records[1].ClientName)
}

func TestSQLiteStorage_RejectsUnfinalizedReport(t *testing.T) {
	store := createTestStorage(t)

	tests := []struct {
		mutate func(*model.ClientReport)
		name   string
	}{
		{name: "no timestamp", mutate: func(r *model.ClientReport) { r.Timestamp = "" }},
		{name: "no profile", mutate: func(r *model.ClientReport) { r.Classification.FinalProfileName = "" }},
		{name: "no desired profile", mutate: func(r *model.ClientReport) { r.Gap.DesiredProfileName = "" }},
		{name: "no justification", mutate: func(r *model.ClientReport) { r.Gap.Justification = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testReport("x", 60)
			tt.mutate(&r)

			_, err := store.AppendReport(context.Background(), r)
			assert.ErrorIs(t, err, ErrInvalidReport)
		})
	}

	count, err := store.CountRecords(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSQLiteStorage_ConcurrentAppendsAreSerialized(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.AppendReport(ctx, testReport(fmt.Sprintf("c%d", i), 70))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	count, err := store.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, count)
}

func TestSQLiteStorage_InMemory(t *testing.T) {
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Migrate(context.Background()))
	_, err = store.AppendReport(context.Background(), testReport("x", 70))
	require.NoError(t, err)
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	assert.ErrorIs(t, err, ErrEmptyString)
}
