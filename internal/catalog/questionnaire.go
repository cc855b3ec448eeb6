// Package catalog holds the static questionnaire and profile band tables.
package catalog

import (
	"fmt"
	"strings"

	"github.com/Veraticus/risk-profiler/internal/common"
	"github.com/Veraticus/risk-profiler/internal/model"
)

// MaxScore is the highest total score the questionnaire can produce.
const MaxScore = 100

var areaOrder = []model.AreaTag{
	model.AreaFinancialCapacity,
	model.AreaKnowledge,
	model.AreaTimeHorizon,
	model.AreaPsychologicalTolerance,
}

var areaMax = map[model.AreaTag]int{
	model.AreaFinancialCapacity:      30,
	model.AreaKnowledge:              20,
	model.AreaTimeHorizon:            20,
	model.AreaPsychologicalTolerance: 30,
}

var questionnaire = []model.QuestionDefinition{
	{
		Key:    "A1",
		Area:   model.AreaFinancialCapacity,
		Prompt: "A1. Stima del tuo Reddito Annuo Lordo (RAL)?",
		Options: []model.Option{
			{Label: "< 25k €", Weight: 5},
			{Label: "25k € - 50k €", Weight: 10},
			{Label: "> 50k €", Weight: 15},
		},
	},
	{
		Key:    "A2",
		Area:   model.AreaFinancialCapacity,
		Prompt: "A2. Patrimonio investibile che sei disposto a rischiare?",
		Options: []model.Option{
			{Label: "< 10%", Weight: 5},
			{Label: "10% - 30%", Weight: 10},
			{Label: "> 30%", Weight: 15},
		},
	},
	{
		Key:    "B1",
		Area:   model.AreaKnowledge,
		Prompt: "B1. Quanto è vasta la tua conoscenza di prodotti complessi (es. Derivati)?",
		Options: []model.Option{
			{Label: "Nessuna/Minima", Weight: 5},
			{Label: "Buona conoscenza", Weight: 10},
			{Label: "Elevata e uso regolare", Weight: 20},
		},
	},
	{
		Key:    "C1",
		Area:   model.AreaTimeHorizon,
		Prompt: "C1. Qual è l'orizzonte temporale principale per i tuoi investimenti?",
		Options: []model.Option{
			{Label: "< 3 Anni", Weight: 5},
			{Label: "3 - 7 Anni", Weight: 10},
			{Label: "> 7 Anni", Weight: 20},
		},
	},
	{
		Key:    "D1",
		Area:   model.AreaPsychologicalTolerance,
		Prompt: "D1. Come reagiresti a un calo del 25% in pochi mesi?",
		Options: []model.Option{
			{Label: "Venderesti subito (Panico)", Weight: 0},
			{Label: "Manterresti con preoccupazione", Weight: 10},
			{Label: "Vedresti un'opportunità di acquisto", Weight: 30},
		},
	},
}

// Questions returns the questionnaire in catalog order.
// The returned slice is a copy and may be modified by the caller.
func Questions() []model.QuestionDefinition {
	out := make([]model.QuestionDefinition, len(questionnaire))
	for i, q := range questionnaire {
		q.Options = append([]model.Option(nil), q.Options...)
		out[i] = q
	}
	return out
}

// QuestionByKey returns the catalog index and definition of the question with the given key.
func QuestionByKey(key string) (int, model.QuestionDefinition, error) {
	for i, q := range questionnaire {
		if strings.EqualFold(q.Key, key) {
			q.Options = append([]model.Option(nil), q.Options...)
			return i, q, nil
		}
	}
	return -1, model.QuestionDefinition{}, fmt.Errorf("%w: unknown question %q", common.ErrInvalidAnswer, key)
}

// Areas returns the questionnaire areas in report order.
func Areas() []model.AreaTag {
	return append([]model.AreaTag(nil), areaOrder...)
}

// AreaMax returns the fixed maximum sub-score for an area, or zero for an unknown area.
func AreaMax(area model.AreaTag) int {
	return areaMax[area]
}
