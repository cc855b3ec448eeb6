package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current step.
func (m Model) View() string {
	var body string
	switch m.step {
	case StepName:
		body = m.viewName()
	case StepQuestions:
		body = m.viewQuestion()
	case StepDesired:
		body = m.viewDesired()
	case StepJustification:
		body = m.viewJustification()
	case StepDone:
		return ""
	}

	parts := []string{m.theme.Title.Render("🛡️ Profilazione del Rischio"), m.theme.Box.Render(body)}
	if m.validation != "" {
		parts = append(parts, m.theme.Error.Render(m.validation))
	}
	parts = append(parts, m.help.View(m.keymap))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewName() string {
	return "Nome Cliente\n\n" + m.nameInput.View()
}

func (m Model) viewQuestion() string {
	q := m.questions[m.question]
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", m.theme.Subtitle.Render(fmt.Sprintf("Domanda %d di %d · %s",
		m.question+1, len(m.questions), q.Area.Label())))
	b.WriteString(q.Prompt + "\n")
	for i, opt := range q.Options {
		b.WriteString("\n" + m.option(i == m.cursor, opt.Label))
	}
	return b.String()
}

func (m Model) viewDesired() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", m.theme.Subtitle.Render(fmt.Sprintf("Profilo calcolato: %s (%d/100)",
		m.preview.FinalProfileName, m.preview.TotalScore)))
	b.WriteString("Profilo di rischio desiderato dal cliente\n")
	for i, band := range m.bands {
		b.WriteString("\n" + m.option(i == m.cursor, band.Name))
	}
	return b.String()
}

func (m Model) viewJustification() string {
	return strings.Join([]string{
		m.theme.Warning.Render("⚠ Profilo disallineato"),
		fmt.Sprintf("Calcolato: %s · Desiderato: %s", m.preview.FinalProfileName, m.desired),
		"",
		"Giustificazione",
		m.justification.View(),
	}, "\n")
}

func (m Model) option(selected bool, label string) string {
	if selected {
		return m.theme.Selected.Render("▸ " + label)
	}
	return m.theme.Normal.Render("  " + label)
}
