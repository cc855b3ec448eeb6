package model

// ProfileBand maps an inclusive score range to a named risk profile.
type ProfileBand struct {
	Name                string
	Description         string
	SuggestedAllocation string
	MinScore            int
	MaxScore            int
}

// Contains reports whether score falls inside the band's inclusive range.
func (b ProfileBand) Contains(score int) bool {
	return score >= b.MinScore && score <= b.MaxScore
}

// GuardrailAction records which financial-capacity override was applied.
type GuardrailAction string

// Guardrail actions.
const (
	GuardrailNone      GuardrailAction = "NONE"
	GuardrailDemoted   GuardrailAction = "DEMOTED"
	GuardrailDownsized GuardrailAction = "DOWNSIZED"
)

// ScoreBreakdown holds the sub-score of every questionnaire area.
type ScoreBreakdown map[AreaTag]int

// Total sums all area sub-scores.
func (b ScoreBreakdown) Total() int {
	total := 0
	for _, score := range b {
		total += score
	}
	return total
}

// Clone returns an independent copy of b.
func (b ScoreBreakdown) Clone() ScoreBreakdown {
	out := make(ScoreBreakdown, len(b))
	for area, score := range b {
		out[area] = score
	}
	return out
}

// ClassificationResult is the outcome of scoring a single submission.
// RawBand is kept for audit; the Final* fields reflect the guardrail.
type ClassificationResult struct {
	Breakdown        ScoreBreakdown
	RawBand          ProfileBand
	FinalProfileName string
	FinalAllocation  string
	FinalDescription string
	Guardrail        GuardrailAction
	TotalScore       int
}

// Overridden reports whether the guardrail changed the raw classification.
func (c ClassificationResult) Overridden() bool {
	return c.Guardrail != "" && c.Guardrail != GuardrailNone
}
