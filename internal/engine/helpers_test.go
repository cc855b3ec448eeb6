package engine

import (
	"testing"

	"github.com/Veraticus/risk-profiler/internal/catalog"
	"github.com/Veraticus/risk-profiler/internal/model"
	"github.com/stretchr/testify/require"
)

// answersFor builds an answer set from option indexes in catalog order
// (A1, A2, B1, C1, D1).
func answersFor(t *testing.T, optionIdx ...int) model.AnswerSet {
	t.Helper()
	questions := catalog.Questions()
	require.Len(t, optionIdx, len(questions))

	answers := make(model.AnswerSet, len(questions))
	for i, q := range questions {
		answers[i] = q.Options[optionIdx[i]].Label
	}
	return answers
}

// allAnswerSets enumerates every valid combination of answers.
func allAnswerSets() []model.AnswerSet {
	questions := catalog.Questions()
	sets := []model.AnswerSet{{}}
	for i, q := range questions {
		var next []model.AnswerSet
		for _, partial := range sets {
			for _, opt := range q.Options {
				set := make(model.AnswerSet, len(partial)+1)
				for k, v := range partial {
					set[k] = v
				}
				set[i] = opt.Label
				next = append(next, set)
			}
		}
		sets = next
	}
	return sets
}
