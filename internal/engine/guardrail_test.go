package engine

import (
	"testing"

	"github.com/Veraticus/risk-profiler/internal/catalog"
	"github.com/Veraticus/risk-profiler/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classification(t *testing.T, total, capacity int) model.ClassificationResult {
	t.Helper()
	raw, err := catalog.ClassifyBand(total)
	require.NoError(t, err)
	return model.ClassificationResult{
		TotalScore: total,
		RawBand:    raw,
		Breakdown: model.ScoreBreakdown{
			model.AreaFinancialCapacity:      capacity,
			model.AreaKnowledge:              0,
			model.AreaTimeHorizon:            0,
			model.AreaPsychologicalTolerance: total - capacity,
		},
	}
}

func TestApplyGuardrail(t *testing.T) {
	tests := []struct {
		name       string
		wantName   string
		wantNote   string
		wantAction model.GuardrailAction
		total      int
		capacity   int
	}{
		{name: "aggressive with capacity 10 demoted", total: 85, capacity: 10, wantName: catalog.ProfileModerate, wantNote: DemotedNote, wantAction: model.GuardrailDemoted},
		{name: "dynamic with capacity 10 demoted", total: 70, capacity: 10, wantName: catalog.ProfileModerate, wantNote: DemotedNote, wantAction: model.GuardrailDemoted},
		{name: "aggressive with capacity 15 downsized", total: 85, capacity: 15, wantName: catalog.ProfileBalanced, wantNote: DownsizedNote, wantAction: model.GuardrailDownsized},
		{name: "aggressive with capacity 11 downsized", total: 90, capacity: 11, wantName: catalog.ProfileBalanced, wantNote: DownsizedNote, wantAction: model.GuardrailDownsized},
		{name: "dynamic with capacity 15 unchanged", total: 65, capacity: 15, wantName: catalog.ProfileDynamic, wantAction: model.GuardrailNone},
		{name: "dynamic with capacity 11 unchanged", total: 75, capacity: 11, wantName: catalog.ProfileDynamic, wantAction: model.GuardrailNone},
		{name: "aggressive with capacity 16 unchanged", total: 95, capacity: 16, wantName: catalog.ProfileAggressive, wantAction: model.GuardrailNone},
		{name: "dynamic with capacity 20 unchanged", total: 75, capacity: 20, wantName: catalog.ProfileDynamic, wantAction: model.GuardrailNone},
		{name: "balanced with capacity 5 unchanged", total: 50, capacity: 5, wantName: catalog.ProfileBalanced, wantAction: model.GuardrailNone},
		{name: "conservative with capacity 0 unchanged", total: 10, capacity: 0, wantName: catalog.ProfileConservative, wantAction: model.GuardrailNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := classification(t, tt.total, tt.capacity)
			out := ApplyGuardrail(in)

			assert.Equal(t, tt.wantName, out.FinalProfileName)
			assert.Equal(t, tt.wantAction, out.Guardrail)
			assert.Equal(t, in.RawBand, out.RawBand, "raw band is kept for audit")

			target, ok := catalog.BandByName(tt.wantName)
			require.True(t, ok)
			assert.Equal(t, target.SuggestedAllocation, out.FinalAllocation)
			assert.Equal(t, in.RawBand.Description+tt.wantNote, out.FinalDescription)
			assert.Equal(t, tt.wantAction != model.GuardrailNone, out.Overridden())
		})
	}
}

func TestApplyGuardrail_DynamicAsymmetry(t *testing.T) {
	// Capacity 11-15 only ever downsizes Aggressivo; Dinamico keeps its band.
	for capacity := 11; capacity <= 15; capacity++ {
		dynamic := ApplyGuardrail(classification(t, 70, capacity))
		aggressive := ApplyGuardrail(classification(t, 90, capacity))

		assert.Equal(t, catalog.ProfileDynamic, dynamic.FinalProfileName, "capacity %d", capacity)
		assert.Equal(t, model.GuardrailNone, dynamic.Guardrail)
		assert.Equal(t, catalog.ProfileBalanced, aggressive.FinalProfileName, "capacity %d", capacity)
	}
}

func TestApplyGuardrail_Idempotent(t *testing.T) {
	for _, answers := range allAnswerSets() {
		once, err := Score(answers)
		require.NoError(t, err)

		twice := ApplyGuardrail(once)
		assert.Equal(t, once, twice)
	}
}

func TestApplyGuardrail_DoesNotShareBreakdown(t *testing.T) {
	in := classification(t, 85, 10)
	out := ApplyGuardrail(in)

	out.Breakdown[model.AreaFinancialCapacity] = 30
	assert.Equal(t, 10, in.Breakdown[model.AreaFinancialCapacity])
}
