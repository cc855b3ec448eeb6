package engine

import (
	"testing"
	"time"

	"github.com/Veraticus/risk-profiler/internal/catalog"
	"github.com/Veraticus/risk-profiler/internal/common"
	"github.com/Veraticus/risk-profiler/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2025, 11, 7, 18, 45, 16, 500000000, time.UTC)

func fixedClock() time.Time { return fixedTime }

func TestWorkflow_AlignedSubmission(t *testing.T) {
	wf := NewWorkflow("Anna Bianchi", WithClock(fixedClock))
	assert.Equal(t, StateAwaitingSubmission, wf.State())

	state, err := wf.Submit(answersFor(t, 2, 2, 2, 2, 2), catalog.ProfileAggressive)
	require.NoError(t, err)
	assert.Equal(t, StateAligned, state)
	assert.True(t, state.Terminal())

	report, err := wf.Report()
	require.NoError(t, err)
	assert.Equal(t, "Anna Bianchi", report.ClientName)
	assert.Equal(t, "2025-11-07 18:45:16.500000", report.Timestamp)
	assert.Equal(t, catalog.ProfileAggressive, report.Classification.FinalProfileName)
	assert.True(t, report.Gap.IsAligned)
	assert.Equal(t, model.AlignedJustification, report.Gap.Justification)

	err = wf.Justify("not needed")
	assert.ErrorIs(t, err, common.ErrInvalidTransition)
}

func TestWorkflow_DivergentNeedsJustification(t *testing.T) {
	wf := NewWorkflow("Luca Verdi", WithClock(fixedClock))

	state, err := wf.Submit(answersFor(t, 0, 0, 2, 2, 2), catalog.ProfileDynamic)
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingJustification, state)
	assert.False(t, state.Terminal())

	classification, ok := wf.Classification()
	require.True(t, ok)
	assert.Equal(t, catalog.ProfileModerate, classification.FinalProfileName)

	_, err = wf.Report()
	assert.ErrorIs(t, err, common.ErrNotFinalized)

	require.NoError(t, wf.Justify("Il cliente accetta un profilo più prudente"))
	assert.Equal(t, StateJustified, wf.State())

	report, err := wf.Report()
	require.NoError(t, err)
	assert.False(t, report.Gap.IsAligned)
	assert.Equal(t, catalog.ProfileDynamic, report.Gap.DesiredProfileName)
	assert.Equal(t, "Il cliente accetta un profilo più prudente", report.Gap.Justification)
}

func TestWorkflow_EmptyJustificationStillFinalizes(t *testing.T) {
	wf := NewWorkflow("Sara Neri")

	_, err := wf.Submit(answersFor(t, 0, 0, 0, 0, 0), catalog.ProfileBalanced)
	require.NoError(t, err)
	require.NoError(t, wf.Justify(""))

	report, err := wf.Report()
	require.NoError(t, err)
	assert.Equal(t, model.MissingJustification, report.Gap.Justification)
	assert.False(t, report.Gap.IsAligned)
}

func TestWorkflow_InvalidSubmissions(t *testing.T) {
	t.Run("unknown desired profile", func(t *testing.T) {
		wf := NewWorkflow("x")
		state, err := wf.Submit(answersFor(t, 1, 1, 1, 1, 1), "Bilanciato")
		assert.ErrorIs(t, err, common.ErrUnknownProfile)
		assert.Equal(t, StateAwaitingSubmission, state)
	})

	t.Run("invalid answers keep workflow open", func(t *testing.T) {
		wf := NewWorkflow("x")
		state, err := wf.Submit(model.AnswerSet{0: "< 25k €"}, catalog.ProfileBalanced)
		assert.ErrorIs(t, err, common.ErrInvalidAnswer)
		assert.Equal(t, StateAwaitingSubmission, state)

		_, ok := wf.Classification()
		assert.False(t, ok)
	})

	t.Run("double submit", func(t *testing.T) {
		wf := NewWorkflow("x")
		_, err := wf.Submit(answersFor(t, 1, 1, 1, 1, 1), catalog.ProfileBalanced)
		require.NoError(t, err)

		_, err = wf.Submit(answersFor(t, 1, 1, 1, 1, 1), catalog.ProfileBalanced)
		assert.ErrorIs(t, err, common.ErrInvalidTransition)
	})

	t.Run("report before submit", func(t *testing.T) {
		_, err := NewWorkflow("x").Report()
		assert.ErrorIs(t, err, common.ErrNotFinalized)
	})
}

func TestWorkflow_Abandon(t *testing.T) {
	wf := NewWorkflow("x")
	_, err := wf.Submit(answersFor(t, 0, 0, 2, 2, 2), catalog.ProfileAggressive)
	require.NoError(t, err)

	wf.Abandon()
	assert.Equal(t, StateAbandoned, wf.State())

	_, ok := wf.Classification()
	assert.False(t, ok)
	assert.ErrorIs(t, wf.Justify("late"), common.ErrInvalidTransition)
	_, err = wf.Report()
	assert.ErrorIs(t, err, common.ErrNotFinalized)
}

func TestWorkflow_ReportIsIndependentCopy(t *testing.T) {
	wf := NewWorkflow("x")
	_, err := wf.Submit(answersFor(t, 2, 2, 2, 2, 2), catalog.ProfileAggressive)
	require.NoError(t, err)

	first, err := wf.Report()
	require.NoError(t, err)
	first.Classification.Breakdown[model.AreaKnowledge] = 0

	second, err := wf.Report()
	require.NoError(t, err)
	assert.Equal(t, 20, second.Classification.Breakdown[model.AreaKnowledge])
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "awaiting_justification", StateAwaitingJustification.String())
	assert.Equal(t, "justified", StateJustified.String())
	assert.Equal(t, "state(42)", State(42).String())
}
