package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/risk-profiler/internal/catalog"
	"github.com/Veraticus/risk-profiler/internal/model"
)

func press(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var updated tea.Model
		updated, cmd = m.Update(msg)
		var ok bool
		m, ok = updated.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

var (
	enter    = tea.KeyMsg{Type: tea.KeyEnter}
	down     = tea.KeyMsg{Type: tea.KeyDown}
	up       = tea.KeyMsg{Type: tea.KeyUp}
	back     = tea.KeyMsg{Type: tea.KeyShiftTab}
	escape   = tea.KeyMsg{Type: tea.KeyEsc}
	typeText = func(s string) tea.Msg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }
)

// answerAll selects option idx[i] for every question.
func answerAll(t *testing.T, m Model, idx ...int) Model {
	t.Helper()
	for _, n := range idx {
		for i := 0; i < n; i++ {
			m, _ = press(t, m, down)
		}
		m, _ = press(t, m, enter)
	}
	return m
}

func TestModel_NameIsRequired(t *testing.T) {
	m := NewModel(catalog.DefaultDesiredProfile)

	m, _ = press(t, m, enter)
	assert.Equal(t, StepName, m.Step())
	assert.Contains(t, m.View(), "obbligatorio")

	m, _ = press(t, m, typeText("Mario Rossi"), enter)
	assert.Equal(t, StepQuestions, m.Step())
	assert.Contains(t, m.View(), "Domanda 1 di 5")
}

func TestModel_AlignedSubmission(t *testing.T) {
	m := NewModel(catalog.DefaultDesiredProfile)
	m, _ = press(t, m, typeText("Mario Rossi"), enter)

	// 5+10+20+5+10 = 50, Bilanciato.
	m = answerAll(t, m, 0, 1, 2, 0, 1)
	require.Equal(t, StepDesired, m.Step())
	assert.Contains(t, m.View(), "Profilo calcolato: 3. Bilanciato (50/100)")

	m, cmd := press(t, m, enter)
	assert.Equal(t, StepDone, m.Step())
	assert.NotNil(t, cmd)

	sub, ok := m.Submission()
	require.True(t, ok)
	assert.Equal(t, "Mario Rossi", sub.ClientName)
	assert.Equal(t, "3. Bilanciato", sub.Desired)
	assert.Empty(t, sub.Justification)
	assert.Equal(t, model.AnswerSet{
		0: "< 25k €",
		1: "10% - 30%",
		2: "Elevata e uso regolare",
		3: "< 3 Anni",
		4: "Manterresti con preoccupazione",
	}, sub.Answers)
}

func TestModel_DivergentAsksJustification(t *testing.T) {
	m := NewModel(catalog.DefaultDesiredProfile)
	m, _ = press(t, m, typeText("Anna"), enter)
	m = answerAll(t, m, 0, 0, 0, 0, 0)

	// Move from Bilanciato to Aggressivo.
	m, _ = press(t, m, down, down, enter)
	require.Equal(t, StepJustification, m.Step())
	assert.Contains(t, m.View(), "Profilo disallineato")

	m, _ = press(t, m, typeText("Richiesta esplicita"), enter)
	sub, ok := m.Submission()
	require.True(t, ok)
	assert.Equal(t, "5. Aggressivo", sub.Desired)
	assert.Equal(t, "Richiesta esplicita", sub.Justification)
}

func TestModel_BackKeepsAnswers(t *testing.T) {
	m := NewModel(catalog.DefaultDesiredProfile)
	m, _ = press(t, m, typeText("x"), enter)
	m = answerAll(t, m, 2)

	m, _ = press(t, m, back)
	assert.Equal(t, 0, m.question)
	assert.Equal(t, 2, m.cursor, "cursor returns to the previous answer")

	m, _ = press(t, m, up)
	assert.Equal(t, 1, m.cursor)

	m, _ = press(t, m, back)
	assert.Equal(t, StepName, m.Step())
}

func TestModel_CursorWraps(t *testing.T) {
	m := NewModel(catalog.DefaultDesiredProfile)
	m, _ = press(t, m, typeText("x"), enter, up)
	assert.Equal(t, 2, m.cursor)
	m, _ = press(t, m, down)
	assert.Equal(t, 0, m.cursor)
}

func TestModel_Quit(t *testing.T) {
	m := NewModel(catalog.DefaultDesiredProfile)
	m, cmd := press(t, m, escape)

	assert.True(t, m.Canceled())
	assert.NotNil(t, cmd)
	_, ok := m.Submission()
	assert.False(t, ok)
}

func TestModel_LettersTypeIntoName(t *testing.T) {
	m := NewModel(catalog.DefaultDesiredProfile)
	m, _ = press(t, m, typeText("jk"), enter)

	sub := m.nameInput.Value()
	assert.Equal(t, "jk", sub)
	assert.Equal(t, StepQuestions, m.Step())
}
