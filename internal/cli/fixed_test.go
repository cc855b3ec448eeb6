package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/risk-profiler/internal/common"
	"github.com/Veraticus/risk-profiler/internal/engine"
	"github.com/Veraticus/risk-profiler/internal/model"
)

func TestParseAnswers(t *testing.T) {
	answers, err := ParseAnswers([]string{
		"A1=> 50k €",
		"a2=3",
		"B1 = buona conoscenza",
		"C1=2",
		"D1=Vedresti un'opportunità di acquisto",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AnswerSet{
		0: "> 50k €",
		1: "> 30%",
		2: "Buona conoscenza",
		3: "3 - 7 Anni",
		4: "Vedresti un'opportunità di acquisto",
	}, answers)
}

func TestParseAnswers_Errors(t *testing.T) {
	tests := []struct {
		name  string
		pairs []string
	}{
		{name: "missing separator", pairs: []string{"A1"}},
		{name: "unknown question", pairs: []string{"Z9=1"}},
		{name: "option out of range", pairs: []string{"A1=4"}},
		{name: "unknown label", pairs: []string{"A1=100k"}},
		{name: "duplicate", pairs: []string{"A1=1", "a1=2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAnswers(tt.pairs)
			assert.ErrorIs(t, err, common.ErrInvalidAnswer)
		})
	}
}

func TestResolveDesired(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"4. Dinamico", "4. Dinamico"},
		{"4", "4. Dinamico"},
		{"dinamico", "4. Dinamico"},
		{" Conservatore ", "1. Conservatore"},
	}
	for _, tt := range tests {
		got, err := ResolveDesired(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ResolveDesired("Speculativo")
	assert.ErrorIs(t, err, common.ErrUnknownProfile)
}

func TestFixedPrompter_Run(t *testing.T) {
	answers, err := ParseAnswers([]string{"A1=3", "A2=3", "B1=3", "C1=3", "D1=3"})
	require.NoError(t, err)

	p := &FixedPrompter{ClientName: "Mario Rossi", Answers: answers, Desired: "3. Bilanciato"}
	result, err := engine.New(p).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 100, result.Report.Classification.TotalScore)
	assert.Equal(t, "5. Aggressivo", result.Report.Classification.FinalProfileName)
	assert.Equal(t, model.MissingJustification, result.Report.Gap.Justification)
}

func TestFixedPrompter_RequiresName(t *testing.T) {
	p := &FixedPrompter{}
	_, err := p.AskClientName(context.Background())

	var userErr *common.UserError
	assert.ErrorAs(t, err, &userErr)
}
