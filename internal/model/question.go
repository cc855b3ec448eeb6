// Package model defines the core domain models used throughout the application.
package model

// AreaTag identifies the questionnaire area a question contributes to.
type AreaTag string

// Questionnaire areas, in report order.
const (
	AreaFinancialCapacity      AreaTag = "FINANCIAL_CAPACITY"
	AreaKnowledge              AreaTag = "KNOWLEDGE"
	AreaTimeHorizon            AreaTag = "TIME_HORIZON"
	AreaPsychologicalTolerance AreaTag = "PSYCHOLOGICAL_TOLERANCE"
)

var areaLabels = map[AreaTag]string{
	AreaFinancialCapacity:      "Capacità Finanziaria",
	AreaKnowledge:              "Conoscenza",
	AreaTimeHorizon:            "Orizzonte Temporale",
	AreaPsychologicalTolerance: "Tolleranza Psicologica",
}

// Label returns the display name of the area.
func (a AreaTag) Label() string {
	if label, ok := areaLabels[a]; ok {
		return label
	}
	return string(a)
}

// IsValid reports whether a is one of the four known areas.
func (a AreaTag) IsValid() bool {
	_, ok := areaLabels[a]
	return ok
}

// Option is a selectable answer and the score it carries.
type Option struct {
	Label  string
	Weight int
}

// QuestionDefinition is a single questionnaire entry.
type QuestionDefinition struct {
	Key     string // Short prompt key, e.g. "A1"
	Prompt  string
	Area    AreaTag
	Options []Option // Ordered as presented to the client
}

// Weight returns the score of the option with the given label.
func (q QuestionDefinition) Weight(label string) (int, bool) {
	for _, opt := range q.Options {
		if opt.Label == label {
			return opt.Weight, true
		}
	}
	return 0, false
}

// MaxWeight returns the highest score any option of q can contribute.
func (q QuestionDefinition) MaxWeight() int {
	highest := 0
	for _, opt := range q.Options {
		if opt.Weight > highest {
			highest = opt.Weight
		}
	}
	return highest
}

// AnswerSet maps a question index (catalog order) to the selected option label.
type AnswerSet map[int]string
