package engine

import (
	"strings"

	"github.com/Veraticus/risk-profiler/internal/catalog"
	"github.com/Veraticus/risk-profiler/internal/model"
)

// Description suffixes appended when the guardrail overrides a profile.
const (
	DemotedNote   = " [⚠ Declassato per Bassa Capacità Finanziaria (<=10/30)]."
	DownsizedNote = " [⚠ Ridimensionato per Capacità Finanziaria Media/Bassa (<=15/30)]."
)

// Financial-capacity thresholds (out of 30).
const (
	demoteCapacityLimit   = 10
	downsizeCapacityLimit = 15
)

// ApplyGuardrail derives the final profile from the raw band and the
// financial-capacity sub-score. It always starts from RawBand, so applying it
// to an already guarded result yields the same result.
//
// Only raw profiles naming "Aggressivo" or "Dinamico" are considered:
//   - capacity <= 10 demotes either of them to Moderato;
//   - capacity <= 15 downsizes Aggressivo (never Dinamico) to Bilanciato.
//
// A Dinamico profile with capacity 11-15 is left untouched.
func ApplyGuardrail(result model.ClassificationResult) model.ClassificationResult {
	raw := result.RawBand
	result.Breakdown = result.Breakdown.Clone()
	result.FinalProfileName = raw.Name
	result.FinalAllocation = raw.SuggestedAllocation
	result.FinalDescription = raw.Description
	result.Guardrail = model.GuardrailNone

	capacity := result.Breakdown[model.AreaFinancialCapacity]
	aggressive := strings.Contains(raw.Name, "Aggressivo")
	dynamic := strings.Contains(raw.Name, "Dinamico")

	if capacity > downsizeCapacityLimit || (!aggressive && !dynamic) {
		return result
	}

	switch {
	case capacity <= demoteCapacityLimit:
		override(&result, catalog.ModerateBand(), DemotedNote, model.GuardrailDemoted)
	case aggressive:
		override(&result, catalog.BalancedBand(), DownsizedNote, model.GuardrailDownsized)
	}

	return result
}

func override(result *model.ClassificationResult, target model.ProfileBand, note string, action model.GuardrailAction) {
	result.FinalProfileName = target.Name
	result.FinalAllocation = target.SuggestedAllocation
	result.FinalDescription = result.RawBand.Description + note
	result.Guardrail = action
}
