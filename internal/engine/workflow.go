package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/risk-profiler/internal/catalog"
	"github.com/Veraticus/risk-profiler/internal/common"
	"github.com/Veraticus/risk-profiler/internal/model"
)

// State is a step of the profiling workflow.
type State int

// Workflow states.
const (
	StateAwaitingSubmission State = iota
	StateClassified
	StateAligned
	StateAwaitingJustification
	StateJustified
	StateAbandoned
)

func (s State) String() string {
	switch s {
	case StateAwaitingSubmission:
		return "awaiting_submission"
	case StateClassified:
		return "classified"
	case StateAligned:
		return "aligned"
	case StateAwaitingJustification:
		return "awaiting_justification"
	case StateJustified:
		return "justified"
	case StateAbandoned:
		return "abandoned"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether a report may be produced from s.
func (s State) Terminal() bool {
	return s == StateAligned || s == StateJustified
}

// Workflow carries one submission from answers to a finalized report.
// It is not safe for concurrent use; each submission gets its own Workflow.
type Workflow struct {
	now            func() time.Time
	classification *model.ClassificationResult
	clientName     string
	desired        string
	gap            model.GapAssessment
	state          State
}

// WorkflowOption configures a Workflow.
type WorkflowOption func(*Workflow)

// WithClock overrides the clock used to timestamp the report.
func WithClock(now func() time.Time) WorkflowOption {
	return func(w *Workflow) {
		w.now = now
	}
}

// NewWorkflow starts a workflow for the named client.
func NewWorkflow(clientName string, opts ...WorkflowOption) *Workflow {
	w := &Workflow{
		clientName: clientName,
		state:      StateAwaitingSubmission,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// State returns the current workflow state.
func (w *Workflow) State() State {
	return w.state
}

// Classification returns the computed classification, if any.
func (w *Workflow) Classification() (model.ClassificationResult, bool) {
	if w.classification == nil {
		return model.ClassificationResult{}, false
	}
	return *w.classification, true
}

// Submit scores the answers and evaluates the gap against desired.
// A divergent gap leaves the workflow in StateAwaitingJustification.
func (w *Workflow) Submit(answers model.AnswerSet, desired string) (State, error) {
	if w.state != StateAwaitingSubmission {
		return w.state, fmt.Errorf("%w: submit from %s", common.ErrInvalidTransition, w.state)
	}
	if _, ok := catalog.BandByName(desired); !ok {
		return w.state, fmt.Errorf("%w: %q", common.ErrUnknownProfile, desired)
	}

	result, err := Score(answers)
	if err != nil {
		return w.state, err
	}

	w.classification = &result
	w.desired = desired
	w.state = StateClassified

	slog.Debug("Submission classified",
		"client", w.clientName,
		"total", result.TotalScore,
		"raw_profile", result.RawBand.Name,
		"final_profile", result.FinalProfileName,
		"guardrail", result.Guardrail)

	gap, err := AnalyzeGap(context.Background(), result, desired, nil)
	switch {
	case err == nil:
		w.gap = gap
		w.state = StateAligned
	case errors.Is(err, common.ErrJustificationRequired):
		w.state = StateAwaitingJustification
	default:
		return w.state, err
	}

	return w.state, nil
}

// Justify records the divergence justification. Empty text is accepted
// and replaced by MissingJustification.
func (w *Workflow) Justify(text string) error {
	if w.state != StateAwaitingJustification {
		return fmt.Errorf("%w: justify from %s", common.ErrInvalidTransition, w.state)
	}

	gap, err := AnalyzeGap(context.Background(), *w.classification, w.desired,
		func(context.Context, model.ClassificationResult, string) (string, error) {
			return text, nil
		})
	if err != nil {
		return err
	}

	w.gap = gap
	w.state = StateJustified
	return nil
}

// Report builds the client report. Only terminal states produce one.
func (w *Workflow) Report() (model.ClientReport, error) {
	if !w.state.Terminal() {
		return model.ClientReport{}, fmt.Errorf("%w: workflow is %s", common.ErrNotFinalized, w.state)
	}

	createdAt := w.now()
	classification := *w.classification
	classification.Breakdown = classification.Breakdown.Clone()

	return model.ClientReport{
		ClientName:     w.clientName,
		CreatedAt:      createdAt,
		Timestamp:      createdAt.Format(model.TimestampLayout),
		Classification: classification,
		Gap:            w.gap,
	}, nil
}

// Abandon discards the in-progress submission. Nothing has been persisted
// before a report is produced, so abandoning has no side effects.
func (w *Workflow) Abandon() {
	w.classification = nil
	w.gap = model.GapAssessment{}
	w.desired = ""
	w.state = StateAbandoned
}
