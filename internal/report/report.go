// Package report turns finalized client reports into export and chart data.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/risk-profiler/internal/catalog"
	"github.com/Veraticus/risk-profiler/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Percentage returns score/maxScore*100 rounded half away from zero to one decimal.
// A non-positive maxScore yields zero.
func Percentage(score, maxScore int) float64 {
	if maxScore <= 0 {
		return 0
	}
	pct := decimal.NewFromInt(int64(score)).
		Div(decimal.NewFromInt(int64(maxScore))).
		Mul(hundred).
		Round(1)
	return pct.InexactFloat64()
}

// Areas returns the normalized per-area breakdown in report order.
func Areas(breakdown model.ScoreBreakdown) []model.AreaScore {
	areas := catalog.Areas()
	out := make([]model.AreaScore, 0, len(areas))
	for _, area := range areas {
		score := breakdown[area]
		maxScore := catalog.AreaMax(area)
		out = append(out, model.AreaScore{
			Area:       area,
			Label:      area.Label(),
			Score:      score,
			Max:        maxScore,
			Percentage: Percentage(score, maxScore),
		})
	}
	return out
}

// Build assembles the data presentation needs to render a report.
func Build(r model.ClientReport) model.ReportExportData {
	c := r.Classification
	return model.ReportExportData{
		ClientName:        r.ClientName,
		Timestamp:         r.Timestamp,
		TotalScore:        c.TotalScore,
		MaxScore:          catalog.MaxScore,
		CalculatedProfile: c.FinalProfileName,
		RawProfile:        c.RawBand.Name,
		DesiredProfile:    r.Gap.DesiredProfileName,
		Description:       c.FinalDescription,
		Allocation:        c.FinalAllocation,
		Guardrail:         string(c.Guardrail),
		Aligned:           r.Gap.IsAligned,
		GapLabel:          r.Gap.Label(),
		Justification:     r.Gap.Justification,
		Areas:             Areas(c.Breakdown),
	}
}

// Record flattens a report into a history row. ID is left for the store.
func Record(r model.ClientReport) model.HistoryRecord {
	b := r.Classification.Breakdown
	return model.HistoryRecord{
		Timestamp:              r.Timestamp,
		ClientName:             r.ClientName,
		TotalScore:             r.Classification.TotalScore,
		AssignedProfile:        r.Classification.FinalProfileName,
		DesiredProfile:         r.Gap.DesiredProfileName,
		SuggestedAllocation:    r.Classification.FinalAllocation,
		Justification:          r.Gap.Justification,
		FinancialCapacityScore: b[model.AreaFinancialCapacity],
		KnowledgeScore:         b[model.AreaKnowledge],
		TimeHorizonScore:       b[model.AreaTimeHorizon],
		PsychologicalScore:     b[model.AreaPsychologicalTolerance],
	}
}

// HistoryHeader is the column header of the client history sheet.
var HistoryHeader = []string{
	"Data_Ora",
	"Nome_Cliente",
	"Punteggio_Totale",
	"Profilo_Rischio_Assegnato",
	"Profilo_Rischio_Desiderato",
	"Allocazione_Suggerita",
	"Giustificazione_Disallineamento",
	"Score_Capacita_Finanziaria",
	"Score_Conoscenza",
	"Score_Orizzonte",
	"Score_Psicologico",
}

// Row returns rec as a history sheet row matching HistoryHeader.
func Row(rec model.HistoryRecord) []any {
	return []any{
		rec.Timestamp,
		rec.ClientName,
		rec.TotalScore,
		rec.AssignedProfile,
		rec.DesiredProfile,
		rec.SuggestedAllocation,
		rec.Justification,
		rec.FinancialCapacityScore,
		rec.KnowledgeScore,
		rec.TimeHorizonScore,
		rec.PsychologicalScore,
	}
}
