package model

import "time"

// Fixed justification texts recorded in the gap assessment.
const (
	AlignedJustification = "Profilo calcolato e desiderato sono allineati."
	MissingJustification = "Nessuna giustificazione fornita."
)

// Gap labels shown on reports.
const (
	GapAligned   = "ALLINEATO"
	GapDivergent = "DISALLINEATO"
)

// TimestampLayout is the layout used for report timestamps.
const TimestampLayout = "2006-01-02 15:04:05.000000"

// GapAssessment compares the calculated profile with the one the client asked for.
type GapAssessment struct {
	DesiredProfileName string
	Justification      string
	IsAligned          bool
}

// Label returns the gap label for reports.
func (g GapAssessment) Label() string {
	if g.IsAligned {
		return GapAligned
	}
	return GapDivergent
}

// ClientReport is the finalized artifact of one completed submission.
type ClientReport struct {
	CreatedAt      time.Time
	ClientName     string
	Timestamp      string
	Gap            GapAssessment
	Classification ClassificationResult
}

// AreaScore is one row of the normalized per-area breakdown.
type AreaScore struct {
	Area       AreaTag `json:"area" yaml:"area"`
	Label      string  `json:"label" yaml:"label"`
	Score      int     `json:"score" yaml:"score"`
	Max        int     `json:"max" yaml:"max"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// ReportExportData carries everything presentation needs to render a report.
type ReportExportData struct {
	ClientName        string      `json:"client_name" yaml:"client_name"`
	Timestamp         string      `json:"timestamp" yaml:"timestamp"`
	CalculatedProfile string      `json:"calculated_profile" yaml:"calculated_profile"`
	RawProfile        string      `json:"raw_profile" yaml:"raw_profile"`
	DesiredProfile    string      `json:"desired_profile" yaml:"desired_profile"`
	Description       string      `json:"description" yaml:"description"`
	Allocation        string      `json:"allocation" yaml:"allocation"`
	GapLabel          string      `json:"gap" yaml:"gap"`
	Justification     string      `json:"justification" yaml:"justification"`
	Guardrail         string      `json:"guardrail" yaml:"guardrail"`
	Areas             []AreaScore `json:"areas" yaml:"areas"`
	TotalScore        int         `json:"total_score" yaml:"total_score"`
	MaxScore          int         `json:"max_score" yaml:"max_score"`
	Aligned           bool        `json:"aligned" yaml:"aligned"`
}

// HistoryRecord is the flat per-submission row kept in the client history.
type HistoryRecord struct {
	ID                     string
	Timestamp              string
	ClientName             string
	AssignedProfile        string
	DesiredProfile         string
	SuggestedAllocation    string
	Justification          string
	TotalScore             int
	FinancialCapacityScore int
	KnowledgeScore         int
	TimeHorizonScore       int
	PsychologicalScore     int
}
