package catalog

import (
	"fmt"

	"github.com/Veraticus/risk-profiler/internal/common"
	"github.com/Veraticus/risk-profiler/internal/model"
)

// Profile names, as shown to clients and stored in history.
const (
	ProfileConservative = "1. Conservatore"
	ProfileModerate     = "2. Moderato"
	ProfileBalanced     = "3. Bilanciato"
	ProfileDynamic      = "4. Dinamico"
	ProfileAggressive   = "5. Aggressivo"
)

// DefaultDesiredProfile is preselected when asking for the desired profile.
const DefaultDesiredProfile = ProfileBalanced

// Ordered ascending; ranges are inclusive and partition [0, MaxScore].
var bands = []model.ProfileBand{
	{
		MinScore:            0,
		MaxScore:            20,
		Name:                ProfileConservative,
		Description:         "Focus su preservazione del capitale, Basso rischio.",
		SuggestedAllocation: "Obbligazioni: 80% / Azioni: 20%",
	},
	{
		MinScore:            21,
		MaxScore:            40,
		Name:                ProfileModerate,
		Description:         "Bilanciamento tra rendimento e protezione.",
		SuggestedAllocation: "Obbligazioni: 60% / Azioni: 40%",
	},
	{
		MinScore:            41,
		MaxScore:            60,
		Name:                ProfileBalanced,
		Description:         "Equilibrio tra crescita e conservazione.",
		SuggestedAllocation: "Obbligazioni: 50% / Azioni: 50%",
	},
	{
		MinScore:            61,
		MaxScore:            80,
		Name:                ProfileDynamic,
		Description:         "Predominanza di opportunità di crescita, Rischio Elevato.",
		SuggestedAllocation: "Obbligazioni: 30% / Azioni: 70%",
	},
	{
		MinScore:            81,
		MaxScore:            100,
		Name:                ProfileAggressive,
		Description:         "Massimizzazione del rendimento, tolleranza massima al rischio.",
		SuggestedAllocation: "Obbligazioni: 10% / Azioni: 90%",
	},
}

// Bands returns the profile band table in ascending order.
func Bands() []model.ProfileBand {
	return append([]model.ProfileBand(nil), bands...)
}

// ClassifyBand returns the band whose inclusive range contains score.
// Scores outside [0, MaxScore] are rejected with ErrInvalidScore, never clamped.
func ClassifyBand(score int) (model.ProfileBand, error) {
	if score < 0 || score > MaxScore {
		return model.ProfileBand{}, fmt.Errorf("%w: %d outside [0, %d]", common.ErrInvalidScore, score, MaxScore)
	}
	for _, band := range bands {
		if band.Contains(score) {
			return band, nil
		}
	}
	return model.ProfileBand{}, fmt.Errorf("%w: no band covers %d", common.ErrInvalidScore, score)
}

// BandByName looks up a band by its exact profile name.
func BandByName(name string) (model.ProfileBand, bool) {
	for _, band := range bands {
		if band.Name == name {
			return band, true
		}
	}
	return model.ProfileBand{}, false
}

// ProfileNames returns the profile names in ascending risk order.
func ProfileNames() []string {
	names := make([]string, len(bands))
	for i, band := range bands {
		names[i] = band.Name
	}
	return names
}

// mustBand is used for the guardrail targets, which are part of the fixed table.
func mustBand(name string) model.ProfileBand {
	band, ok := BandByName(name)
	if !ok {
		panic("catalog: missing band " + name)
	}
	return band
}

// ModerateBand returns the band the guardrail demotes to.
func ModerateBand() model.ProfileBand { return mustBand(ProfileModerate) }

// BalancedBand returns the band the guardrail downsizes to.
func BalancedBand() model.ProfileBand { return mustBand(ProfileBalanced) }
