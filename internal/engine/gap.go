package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/risk-profiler/internal/common"
	"github.com/Veraticus/risk-profiler/internal/model"
)

// JustificationProvider supplies the divergence justification for a
// classification that does not match the desired profile.
type JustificationProvider func(ctx context.Context, classification model.ClassificationResult, desired string) (string, error)

// IsAligned reports whether the final profile equals the desired one.
func IsAligned(classification model.ClassificationResult, desired string) bool {
	return classification.FinalProfileName == desired
}

// NormalizeJustification keeps text as typed and substitutes
// MissingJustification when it is empty or whitespace only.
func NormalizeJustification(text string) string {
	if strings.TrimSpace(text) == "" {
		return model.MissingJustification
	}
	return text
}

// AnalyzeGap compares the classification with the desired profile.
// The provider is only called on divergence; a nil provider then yields
// ErrJustificationRequired.
func AnalyzeGap(ctx context.Context, classification model.ClassificationResult, desired string, provide JustificationProvider) (model.GapAssessment, error) {
	if IsAligned(classification, desired) {
		return model.GapAssessment{
			DesiredProfileName: desired,
			IsAligned:          true,
			Justification:      model.AlignedJustification,
		}, nil
	}

	if provide == nil {
		return model.GapAssessment{}, fmt.Errorf("%w: calculated %q, desired %q",
			common.ErrJustificationRequired, classification.FinalProfileName, desired)
	}

	text, err := provide(ctx, classification, desired)
	if err != nil {
		return model.GapAssessment{}, fmt.Errorf("failed to obtain justification: %w", err)
	}

	return model.GapAssessment{
		DesiredProfileName: desired,
		IsAligned:          false,
		Justification:      NormalizeJustification(text),
	}, nil
}
