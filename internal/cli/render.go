package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/risk-profiler/internal/common"
	"github.com/Veraticus/risk-profiler/internal/model"
)

const barWidth = 20

// WriteReport writes data to w as a styled table, JSON or YAML.
func WriteReport(w io.Writer, data model.ReportExportData, format string) error {
	switch strings.ToLower(format) {
	case "", "table":
		_, err := fmt.Fprintln(w, RenderReport(data))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: unknown output format %q", common.ErrInvalidConfig, format)
	}
}

// RenderReport renders the profiling result box with the per-area bar chart.
func RenderReport(data model.ReportExportData) string {
	gap := SuccessStyle.Render(data.GapLabel)
	if !data.Aligned {
		gap = WarningStyle.Render(data.GapLabel)
	}

	calculated := FormatProfile(data.CalculatedProfile)
	if data.Guardrail != "" && data.Guardrail != string(model.GuardrailNone) {
		calculated += " " + FormatGuardrail(data.Guardrail) + " " + SubtleStyle.Render("da "+data.RawProfile)
	}

	lines := []string{
		field("Data", data.Timestamp),
		field("Profilo Calcolato", calculated),
		field("Profilo Desiderato", data.DesiredProfile),
		field("Punteggio Totale", fmt.Sprintf("%d/%d", data.TotalScore, data.MaxScore)),
		field("Allocazione Suggerita", data.Allocation),
		field("Gap Coerenza", gap),
		field("Giustificazione", data.Justification),
		"",
		SubtleStyle.Render(data.Description),
		"",
		BoldStyle.Render(ChartIcon + " Analisi per Area"),
		RenderAreaChart(data.Areas),
	}

	return RenderBox("Report di Profilazione: "+data.ClientName, strings.Join(lines, "\n"))
}

// RenderAreaChart draws one horizontal bar per area, scaled to its percentage.
func RenderAreaChart(areas []model.AreaScore) string {
	labelWidth := 0
	for _, a := range areas {
		labelWidth = max(labelWidth, lipgloss.Width(a.Label))
	}

	rows := make([]string, 0, len(areas))
	for _, a := range areas {
		filled := int(math.Round(a.Percentage / 100 * barWidth))
		filled = min(max(filled, 0), barWidth)
		bar := BarStyle.Render(strings.Repeat("█", filled)) +
			SubtleStyle.Render(strings.Repeat("░", barWidth-filled))
		label := a.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(a.Label))
		rows = append(rows, fmt.Sprintf("%s  %s  %2d/%d  %5.1f%%", label, bar, a.Score, a.Max, a.Percentage))
	}
	return strings.Join(rows, "\n")
}

// RenderQuestions lists the questionnaire with option weights.
func RenderQuestions(questions []model.QuestionDefinition) string {
	blocks := make([]string, 0, len(questions))
	for _, q := range questions {
		var b strings.Builder
		b.WriteString(q.Prompt)
		for i, opt := range q.Options {
			fmt.Fprintf(&b, "\n  [%d] %s %s", i+1, opt.Label, SubtleStyle.Render("("+strconv.Itoa(opt.Weight)+" pt)"))
		}
		blocks = append(blocks, RenderBox(q.Key+" · "+q.Area.Label(), b.String()))
	}
	return strings.Join(blocks, "\n")
}

// RenderBands renders the profile band table.
func RenderBands(bands []model.ProfileBand) string {
	rows := [][]string{{"Profilo", "Punteggio", "Allocazione"}}
	for _, b := range bands {
		rows = append(rows, []string{b.Name, fmt.Sprintf("%d-%d", b.MinScore, b.MaxScore), b.SuggestedAllocation})
	}
	return renderTable(rows)
}

// RenderHistory renders history records as a table, oldest first.
func RenderHistory(records []model.HistoryRecord) string {
	if len(records) == 0 {
		return FormatInfo("Nessun report nello storico.")
	}
	rows := [][]string{{"Data_Ora", "Cliente", "Totale", "Assegnato", "Desiderato", "Giustificazione"}}
	for _, r := range records {
		rows = append(rows, []string{
			r.Timestamp,
			r.ClientName,
			strconv.Itoa(r.TotalScore),
			r.AssignedProfile,
			r.DesiredProfile,
			r.Justification,
		})
	}
	return renderTable(rows)
}

func field(name, value string) string {
	return SubtleStyle.Render(name+":") + " " + value
}

// renderTable aligns rows into columns; the first row is the header.
func renderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	lines := make([]string, 0, len(rows))
	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
		}
		line := strings.TrimRight(strings.Join(cells, "  "), " ")
		if r == 0 {
			line = TableHeaderStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
