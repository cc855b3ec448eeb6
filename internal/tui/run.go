package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrCanceled is returned when the user quits the questionnaire.
var ErrCanceled = errors.New("questionnaire canceled")

// Run shows the questionnaire full screen and returns the collected submission.
func Run(ctx context.Context, preselected string, opts ...tea.ProgramOption) (Submission, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(NewModel(preselected), opts...)

	final, err := p.Run()
	if err != nil {
		return Submission{}, fmt.Errorf("questionnaire failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return Submission{}, fmt.Errorf("unexpected model type %T", final)
	}
	if m.Canceled() {
		return Submission{}, ErrCanceled
	}

	sub, done := m.Submission()
	if !done {
		return Submission{}, ErrCanceled
	}
	return sub, nil
}
