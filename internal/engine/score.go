// Package engine scores questionnaire answers, applies the financial-capacity
// guardrail and drives the profiling workflow.
package engine

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/Veraticus/risk-profiler/internal/catalog"
	"github.com/Veraticus/risk-profiler/internal/common"
	"github.com/Veraticus/risk-profiler/internal/model"
)

// Score computes the classification of a complete answer set.
// The answer set is validated as a whole before any weight is summed.
func Score(answers model.AnswerSet) (model.ClassificationResult, error) {
	questions := catalog.Questions()
	if err := ValidateAnswers(questions, answers); err != nil {
		return model.ClassificationResult{}, err
	}

	breakdown := make(model.ScoreBreakdown, len(catalog.Areas()))
	for _, area := range catalog.Areas() {
		breakdown[area] = 0
	}

	total := 0
	for i, q := range questions {
		weight, _ := q.Weight(answers[i])
		total += weight
		breakdown[q.Area] += weight
	}

	raw, err := catalog.ClassifyBand(total)
	if err != nil {
		slog.Error("Total score outside the band table",
			"total", total,
			"breakdown", breakdown,
			"error", err)
		return model.ClassificationResult{}, err
	}

	result := model.ClassificationResult{
		TotalScore: total,
		RawBand:    raw,
		Breakdown:  breakdown,
	}

	return ApplyGuardrail(result), nil
}

// ValidateAnswers checks that answers covers every question exactly once
// with one of that question's option labels, and that every question
// scores into one of the four areas.
func ValidateAnswers(questions []model.QuestionDefinition, answers model.AnswerSet) error {
	var extra []int
	for idx := range answers {
		if idx < 0 || idx >= len(questions) {
			extra = append(extra, idx)
		}
	}
	if len(extra) > 0 {
		sort.Ints(extra)
		return fmt.Errorf("%w: unknown question index %v", common.ErrInvalidAnswer, extra)
	}

	for i, q := range questions {
		if !q.Area.IsValid() {
			return fmt.Errorf("%w: question %s belongs to unknown area %q", common.ErrInvalidScore, q.Key, q.Area)
		}
		label, ok := answers[i]
		if !ok {
			return fmt.Errorf("%w: question %s not answered", common.ErrInvalidAnswer, q.Key)
		}
		if _, valid := q.Weight(label); !valid {
			return fmt.Errorf("%w: %q is not an option of question %s", common.ErrInvalidAnswer, label, q.Key)
		}
	}

	return nil
}
