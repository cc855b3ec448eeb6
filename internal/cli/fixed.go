package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/risk-profiler/internal/catalog"
	"github.com/Veraticus/risk-profiler/internal/common"
	"github.com/Veraticus/risk-profiler/internal/engine"
	"github.com/Veraticus/risk-profiler/internal/model"
)

// FixedPrompter answers every prompt from preset values. It backs the
// non-interactive profile command.
type FixedPrompter struct {
	Answers       model.AnswerSet
	ClientName    string
	Desired       string
	Justification string
}

// AskClientName returns the preset client name.
func (f *FixedPrompter) AskClientName(_ context.Context) (string, error) {
	if strings.TrimSpace(f.ClientName) == "" {
		return "", common.NewUserError("client name is required (--name)", common.ErrInvalidAnswer)
	}
	return f.ClientName, nil
}

// AskAnswers returns the preset answers.
func (f *FixedPrompter) AskAnswers(_ context.Context, _ []model.QuestionDefinition) (model.AnswerSet, error) {
	return f.Answers, nil
}

// AskDesiredProfile returns the preset profile, or preselected when unset.
func (f *FixedPrompter) AskDesiredProfile(_ context.Context, _ []model.ProfileBand, preselected string) (string, error) {
	if f.Desired == "" {
		return preselected, nil
	}
	return f.Desired, nil
}

// AskJustification returns the preset justification, which may be empty.
func (f *FixedPrompter) AskJustification(_ context.Context, _ model.ClassificationResult, _ string) (string, error) {
	return f.Justification, nil
}

// ParseAnswers converts KEY=VALUE pairs into an answer set. VALUE is either
// an option label or its 1-based position among the question's options.
func ParseAnswers(pairs []string) (model.AnswerSet, error) {
	answers := make(model.AnswerSet, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q is not KEY=VALUE", common.ErrInvalidAnswer, pair)
		}

		idx, q, err := catalog.QuestionByKey(strings.TrimSpace(key))
		if err != nil {
			return nil, err
		}
		if _, dup := answers[idx]; dup {
			return nil, fmt.Errorf("%w: question %s answered twice", common.ErrInvalidAnswer, q.Key)
		}

		label, err := resolveOption(q, strings.TrimSpace(value))
		if err != nil {
			return nil, err
		}
		answers[idx] = label
	}
	return answers, nil
}

// ResolveDesired accepts a full band name, its number ("4") or its name
// without the number ("Dinamico"), case-insensitively.
func ResolveDesired(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	for i, name := range catalog.ProfileNames() {
		_, short, _ := strings.Cut(name, ". ")
		if strings.EqualFold(value, name) || value == strconv.Itoa(i+1) || strings.EqualFold(value, short) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want one of %s)", common.ErrUnknownProfile, value,
		strings.Join(catalog.ProfileNames(), ", "))
}

func resolveOption(q model.QuestionDefinition, value string) (string, error) {
	if _, ok := q.Weight(value); ok {
		return value, nil
	}
	if n, err := strconv.Atoi(value); err == nil && n >= 1 && n <= len(q.Options) {
		return q.Options[n-1].Label, nil
	}
	for _, opt := range q.Options {
		if strings.EqualFold(opt.Label, value) {
			return opt.Label, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not an option of %s", common.ErrInvalidAnswer, value, q.Key)
}

var _ engine.Prompter = (*FixedPrompter)(nil)
