package engine

import (
	"context"

	"github.com/Veraticus/risk-profiler/internal/model"
)

// Prompter defines the contract for collecting a submission from a user.
type Prompter interface {
	AskClientName(ctx context.Context) (string, error)
	AskAnswers(ctx context.Context, questions []model.QuestionDefinition) (model.AnswerSet, error)
	AskDesiredProfile(ctx context.Context, bands []model.ProfileBand, preselected string) (string, error)
	AskJustification(ctx context.Context, classification model.ClassificationResult, desired string) (string, error)
}

// Recorder observes finalized reports and export outcomes.
type Recorder interface {
	ObserveReport(report model.ClientReport)
	ObserveExportFailure(target string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveReport(model.ClientReport) {}
func (nopRecorder) ObserveExportFailure(string)      {}
