package engine

import (
	"context"
	"sync"

	"github.com/Veraticus/risk-profiler/internal/model"
)

// MockPrompter is a test implementation of the Prompter interface that
// replays preset responses and records what it was asked.
type MockPrompter struct {
	NameErr            error
	AnswersErr         error
	DesiredErr         error
	JustificationErr   error
	Answers            model.AnswerSet
	ClientName         string
	Desired            string
	Justification      string
	JustificationCalls []MockJustificationCall
	mu                 sync.Mutex
}

// MockJustificationCall records a single justification request.
type MockJustificationCall struct {
	Desired        string
	Classification model.ClassificationResult
}

// NewMockPrompter creates a mock prompter answering with the given values.
func NewMockPrompter(clientName string, answers model.AnswerSet, desired string) *MockPrompter {
	return &MockPrompter{
		ClientName: clientName,
		Answers:    answers,
		Desired:    desired,
	}
}

// AskClientName returns the preset client name.
func (m *MockPrompter) AskClientName(_ context.Context) (string, error) {
	return m.ClientName, m.NameErr
}

// AskAnswers returns the preset answers.
func (m *MockPrompter) AskAnswers(_ context.Context, _ []model.QuestionDefinition) (model.AnswerSet, error) {
	return m.Answers, m.AnswersErr
}

// AskDesiredProfile returns the preset desired profile, or the preselected one when unset.
func (m *MockPrompter) AskDesiredProfile(_ context.Context, _ []model.ProfileBand, preselected string) (string, error) {
	if m.Desired == "" {
		return preselected, m.DesiredErr
	}
	return m.Desired, m.DesiredErr
}

// AskJustification records the call and returns the preset justification.
func (m *MockPrompter) AskJustification(_ context.Context, classification model.ClassificationResult, desired string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.JustificationCalls = append(m.JustificationCalls, MockJustificationCall{
		Classification: classification,
		Desired:        desired,
	})
	return m.Justification, m.JustificationErr
}

// JustificationCallCount returns how many times a justification was requested.
func (m *MockPrompter) JustificationCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.JustificationCalls)
}

var _ Prompter = (*MockPrompter)(nil)
