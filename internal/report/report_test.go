package report

import (
	"math"
	"testing"
	"time"

	"github.com/Veraticus/risk-profiler/internal/catalog"
	"github.com/Veraticus/risk-profiler/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport() model.ClientReport {
	created := time.Date(2025, 11, 7, 18, 45, 16, 123456000, time.UTC)
	return model.ClientReport{
		ClientName: "Mario Rossi",
		CreatedAt:  created,
		Timestamp:  created.Format(model.TimestampLayout),
		Classification: model.ClassificationResult{
			TotalScore: 80,
			RawBand: model.ProfileBand{
				Name:        catalog.ProfileDynamic,
				Description: "Predominanza di opportunità di crescita, Rischio Elevato.",
			},
			FinalProfileName: catalog.ProfileModerate,
			FinalAllocation:  "Obbligazioni: 60% / Azioni: 40%",
			FinalDescription: "Predominanza di opportunità di crescita, Rischio Elevato. [⚠ Declassato]",
			Guardrail:        model.GuardrailDemoted,
			Breakdown: model.ScoreBreakdown{
				model.AreaFinancialCapacity:      10,
				model.AreaKnowledge:              20,
				model.AreaTimeHorizon:            20,
				model.AreaPsychologicalTolerance: 30,
			},
		},
		Gap: model.GapAssessment{
			DesiredProfileName: catalog.ProfileBalanced,
			Justification:      "Cliente informato del rischio.",
		},
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		score int
		limit int
		want  float64
	}{
		{score: 10, limit: 30, want: 33.3},
		{score: 20, limit: 30, want: 66.7},
		{score: 5, limit: 20, want: 25.0},
		{score: 30, limit: 30, want: 100.0},
		{score: 0, limit: 30, want: 0.0},
		{score: 25, limit: 30, want: 83.3},
		{score: 15, limit: 30, want: 50.0},
		{score: 1, limit: 0, want: 0.0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, Percentage(tt.score, tt.limit), 1e-9, "%d/%d", tt.score, tt.limit)
	}
}

func TestPercentage_AllReachableAreaScores(t *testing.T) {
	for _, area := range catalog.Areas() {
		limit := catalog.AreaMax(area)
		for score := 0; score <= limit; score++ {
			pct := Percentage(score, limit)
			assert.GreaterOrEqual(t, pct, 0.0)
			assert.LessOrEqual(t, pct, 100.0)
			want := math.Round(float64(score)/float64(limit)*1000) / 10
			assert.InDelta(t, want, pct, 1e-9, "%s %d/%d", area, score, limit)
		}
	}
}

func TestBuild(t *testing.T) {
	data := Build(testReport())

	assert.Equal(t, "Mario Rossi", data.ClientName)
	assert.Equal(t, "2025-11-07 18:45:16.123456", data.Timestamp)
	assert.Equal(t, 80, data.TotalScore)
	assert.Equal(t, 100, data.MaxScore)
	assert.Equal(t, catalog.ProfileModerate, data.CalculatedProfile)
	assert.Equal(t, catalog.ProfileDynamic, data.RawProfile)
	assert.Equal(t, catalog.ProfileBalanced, data.DesiredProfile)
	assert.Equal(t, model.GapDivergent, data.GapLabel)
	assert.False(t, data.Aligned)
	assert.Equal(t, "DEMOTED", data.Guardrail)

	require.Len(t, data.Areas, 4)
	wantMax := []int{30, 20, 20, 30}
	wantPct := []float64{33.3, 100, 100, 100}
	for i, area := range data.Areas {
		assert.Equal(t, wantMax[i], area.Max)
		assert.InDelta(t, wantPct[i], area.Percentage, 1e-9)
	}
	assert.Equal(t, "Capacità Finanziaria", data.Areas[0].Label)
	assert.Equal(t, "Tolleranza Psicologica", data.Areas[3].Label)
}

func TestRecord(t *testing.T) {
	rec := Record(testReport())

	assert.Empty(t, rec.ID)
	assert.Equal(t, "Mario Rossi", rec.ClientName)
	assert.Equal(t, 80, rec.TotalScore)
	assert.Equal(t, catalog.ProfileModerate, rec.AssignedProfile)
	assert.Equal(t, catalog.ProfileBalanced, rec.DesiredProfile)
	assert.Equal(t, "Obbligazioni: 60% / Azioni: 40%", rec.SuggestedAllocation)
	assert.Equal(t, "Cliente informato del rischio.", rec.Justification)
	assert.Equal(t, 10, rec.FinancialCapacityScore)
	assert.Equal(t, 20, rec.KnowledgeScore)
	assert.Equal(t, 20, rec.TimeHorizonScore)
	assert.Equal(t, 30, rec.PsychologicalScore)

	row := Row(rec)
	require.Len(t, row, len(HistoryHeader))
	assert.Equal(t, "Mario Rossi", row[1])
	assert.Equal(t, 30, row[10])
}
