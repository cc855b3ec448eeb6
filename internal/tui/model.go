// Package tui provides a full-screen questionnaire built on bubbletea.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/risk-profiler/internal/catalog"
	"github.com/Veraticus/risk-profiler/internal/engine"
	"github.com/Veraticus/risk-profiler/internal/model"
)

// Step is the questionnaire screen currently shown.
type Step int

// Questionnaire steps, in order.
const (
	StepName Step = iota
	StepQuestions
	StepDesired
	StepJustification
	StepDone
)

// Submission is everything the questionnaire collected.
type Submission struct {
	Answers       model.AnswerSet
	ClientName    string
	Desired       string
	Justification string
}

// Model holds the questionnaire state.
type Model struct {
	theme         Theme
	preview       model.ClassificationResult
	answers       model.AnswerSet
	help          help.Model
	keymap        KeyMap
	nameInput     textinput.Model
	justification textinput.Model
	questions     []model.QuestionDefinition
	bands         []model.ProfileBand
	validation    string
	preselected   string
	desired       string
	step          Step
	question      int
	cursor        int
	width         int
	canceled      bool
}

// NewModel creates a questionnaire with preselected as the default desired profile.
func NewModel(preselected string) Model {
	name := textinput.New()
	name.Placeholder = "Mario Rossi"
	name.CharLimit = 80
	name.Focus()

	just := textinput.New()
	just.Placeholder = "Motivazione del cliente"
	just.CharLimit = 500

	return Model{
		theme:         DefaultTheme,
		keymap:        DefaultKeyMap(),
		help:          help.New(),
		nameInput:     name,
		justification: just,
		questions:     catalog.Questions(),
		bands:         catalog.Bands(),
		answers:       make(model.AnswerSet),
		preselected:   preselected,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Step returns the current step.
func (m Model) Step() Step { return m.step }

// Canceled reports whether the user quit before finishing.
func (m Model) Canceled() bool { return m.canceled }

// Submission returns the collected input once the questionnaire is done.
func (m Model) Submission() (Submission, bool) {
	if m.step != StepDone {
		return Submission{}, false
	}
	answers := make(model.AnswerSet, len(m.answers))
	for k, v := range m.answers {
		answers[k] = v
	}
	return Submission{
		ClientName:    strings.TrimSpace(m.nameInput.Value()),
		Answers:       answers,
		Desired:       m.desired,
		Justification: m.justification.Value(),
	}, true
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.Quit) {
			m.canceled = true
			return m, tea.Quit
		}
		switch m.step {
		case StepName:
			return m.updateName(msg)
		case StepQuestions:
			return m.updateQuestion(msg)
		case StepDesired:
			return m.updateDesired(msg)
		case StepJustification:
			return m.updateJustification(msg)
		}
	}
	return m, nil
}

func (m Model) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Select) {
		if strings.TrimSpace(m.nameInput.Value()) == "" {
			m.validation = "Il nome del cliente è obbligatorio."
			return m, nil
		}
		m.validation = ""
		m.nameInput.Blur()
		m.step = StepQuestions
		m.cursor = m.selectedOption(0)
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m Model) updateQuestion(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	q := m.questions[m.question]
	switch {
	case key.Matches(msg, m.keymap.Up):
		m.cursor = (m.cursor + len(q.Options) - 1) % len(q.Options)
	case key.Matches(msg, m.keymap.Down):
		m.cursor = (m.cursor + 1) % len(q.Options)
	case key.Matches(msg, m.keymap.Back):
		if m.question == 0 {
			m.step = StepName
			return m, m.nameInput.Focus()
		}
		m.question--
		m.cursor = m.selectedOption(m.question)
	case key.Matches(msg, m.keymap.Select):
		m.answers[m.question] = q.Options[m.cursor].Label
		if m.question < len(m.questions)-1 {
			m.question++
			m.cursor = m.selectedOption(m.question)
			return m, nil
		}
		preview, err := engine.Score(m.answers)
		if err != nil {
			m.validation = err.Error()
			return m, nil
		}
		m.preview = preview
		m.step = StepDesired
		m.cursor = m.bandIndex(m.preselected)
	}
	return m, nil
}

func (m Model) updateDesired(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Up):
		m.cursor = (m.cursor + len(m.bands) - 1) % len(m.bands)
	case key.Matches(msg, m.keymap.Down):
		m.cursor = (m.cursor + 1) % len(m.bands)
	case key.Matches(msg, m.keymap.Back):
		m.step = StepQuestions
		m.question = len(m.questions) - 1
		m.cursor = m.selectedOption(m.question)
	case key.Matches(msg, m.keymap.Select):
		m.desired = m.bands[m.cursor].Name
		if engine.IsAligned(m.preview, m.desired) {
			m.step = StepDone
			return m, tea.Quit
		}
		m.step = StepJustification
		return m, m.justification.Focus()
	}
	return m, nil
}

func (m Model) updateJustification(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Select):
		m.justification.Blur()
		m.step = StepDone
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Back):
		m.justification.Blur()
		m.step = StepDesired
		return m, nil
	}

	var cmd tea.Cmd
	m.justification, cmd = m.justification.Update(msg)
	return m, cmd
}

// selectedOption returns the cursor for question i: its current answer, or the first option.
func (m Model) selectedOption(i int) int {
	label, ok := m.answers[i]
	if !ok {
		return 0
	}
	for j, opt := range m.questions[i].Options {
		if opt.Label == label {
			return j
		}
	}
	return 0
}

func (m Model) bandIndex(name string) int {
	for i, b := range m.bands {
		if b.Name == name {
			return i
		}
	}
	return 0
}
