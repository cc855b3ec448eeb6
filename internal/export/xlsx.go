// Package export writes finalized reports to Excel workbooks.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/risk-profiler/internal/model"
	"github.com/Veraticus/risk-profiler/internal/report"
	"github.com/Veraticus/risk-profiler/internal/service"
)

const (
	analysisTitle  = "ANALISI PUNTUALE PER AREA"
	analysisRow    = 3
	percentFormat  = `0.0"%"`
	chartAnchor    = "B11"
	chartDimension = 480
)

// XLSXExporter appends reports to a workbook on disk. Each export adds a row
// to the history sheet and a dedicated report sheet with a radar chart.
type XLSXExporter struct {
	path       string
	mu         sync.Mutex
	standalone bool
}

// XLSXOption configures an XLSXExporter.
type XLSXOption func(*XLSXExporter)

// Standalone makes every export start from an empty workbook, replacing any
// file already at the path.
func Standalone() XLSXOption {
	return func(e *XLSXExporter) {
		e.standalone = true
	}
}

// NewXLSXExporter creates an exporter writing to path.
func NewXLSXExporter(path string, opts ...XLSXOption) (*XLSXExporter, error) {
	if path == "" {
		path = DefaultWorkbook
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create workbook directory: %w", err)
		}
	}
	e := &XLSXExporter{path: path}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Name identifies the exporter in logs and metrics.
func (e *XLSXExporter) Name() string { return "xlsx" }

// Path returns the workbook location.
func (e *XLSXExporter) Path() string { return e.path }

// Export implements service.ReportExporter.
func (e *XLSXExporter) Export(ctx context.Context, r model.ClientReport, data model.ReportExportData) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	f, err := e.open()
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := appendHistoryRow(f, report.Record(r)); err != nil {
		return err
	}

	sheet := ReportSheetName(data.ClientName, data.Timestamp)
	if err := writeReportSheet(f, sheet, data); err != nil {
		return err
	}

	if err := f.SaveAs(e.path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	slog.Info("Report exported to workbook", "path", e.path, "sheet", sheet)
	return nil
}

// RebuildHistory replaces the history sheet with records, leaving report sheets intact.
func (e *XLSXExporter) RebuildHistory(ctx context.Context, records []model.HistoryRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	f, err := e.open()
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if idx, _ := f.GetSheetIndex(HistorySheet); idx < 0 {
		if _, err := f.NewSheet(HistorySheet); err != nil {
			return fmt.Errorf("failed to create history sheet: %w", err)
		}
	}
	existing, err := f.GetRows(HistorySheet)
	if err != nil {
		return fmt.Errorf("failed to read history sheet: %w", err)
	}

	if err := writeHeader(f); err != nil {
		return err
	}
	for i, rec := range records {
		if err := writeRow(f, HistorySheet, i+2, report.Row(rec)); err != nil {
			return err
		}
	}
	// Drop stale rows left over from a longer sheet, bottom up.
	for row := len(existing); row > len(records)+1; row-- {
		if err := f.RemoveRow(HistorySheet, row); err != nil {
			return fmt.Errorf("failed to trim history sheet: %w", err)
		}
	}

	if err := f.SaveAs(e.path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	slog.Info("History sheet rebuilt", "path", e.path, "records", len(records))
	return nil
}

// open loads the workbook or creates a new one containing only the history
// sheet. Standalone exporters always create a new one.
func (e *XLSXExporter) open() (*excelize.File, error) {
	if !e.standalone {
		f, err := excelize.OpenFile(e.path)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to open workbook: %w", err)
		}
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), HistorySheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create history sheet: %w", err)
	}
	return f, nil
}

func appendHistoryRow(f *excelize.File, rec model.HistoryRecord) error {
	if idx, _ := f.GetSheetIndex(HistorySheet); idx < 0 {
		if _, err := f.NewSheet(HistorySheet); err != nil {
			return fmt.Errorf("failed to create history sheet: %w", err)
		}
	}

	rows, err := f.GetRows(HistorySheet)
	if err != nil {
		return fmt.Errorf("failed to read history sheet: %w", err)
	}
	if len(rows) == 0 {
		if err := writeHeader(f); err != nil {
			return err
		}
		rows = append(rows, report.HistoryHeader)
	}

	return writeRow(f, HistorySheet, len(rows)+1, report.Row(rec))
}

func writeHeader(f *excelize.File) error {
	header := make([]any, len(report.HistoryHeader))
	for i, h := range report.HistoryHeader {
		header[i] = h
	}
	return writeRow(f, HistorySheet, 1, header)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	return nil
}

func writeReportSheet(f *excelize.File, sheet string, data model.ReportExportData) error {
	if idx, _ := f.GetSheetIndex(sheet); idx >= 0 {
		if err := f.DeleteSheet(sheet); err != nil {
			return fmt.Errorf("failed to replace report sheet: %w", err)
		}
	}
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create report sheet: %w", err)
	}

	cells := map[string]any{
		"A1": "Report di Profilazione: " + data.ClientName,
		"A3": "Profilo Calcolato: " + data.CalculatedProfile,
		"A4": "Profilo Desiderato: " + data.DesiredProfile,
		"A5": fmt.Sprintf("Punteggio Totale: %d/%d", data.TotalScore, data.MaxScore),
		"A6": "Allocazione Suggerita: " + data.Allocation,
		"A8": "Gap Coerenza: " + data.GapLabel,
		"A9": "Giustificazione: " + data.Justification,
		"G1": analysisTitle,
		"G2": "Area",
		"H2": "Punteggio / Max",
		"I2": "Normalizzato %",
	}
	for i, area := range data.Areas {
		row := analysisRow + i
		cells[fmt.Sprintf("G%d", row)] = area.Label
		cells[fmt.Sprintf("H%d", row)] = fmt.Sprintf("%d / %d", area.Score, area.Max)
		cells[fmt.Sprintf("I%d", row)] = area.Percentage
	}
	for cell, value := range cells {
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to write %s: %w", cell, err)
		}
	}

	if len(data.Areas) == 0 {
		f.SetActiveSheet(idx)
		return nil
	}

	last := analysisRow + len(data.Areas) - 1
	pctFmt := percentFormat
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &pctFmt})
	if err != nil {
		return fmt.Errorf("failed to create percentage style: %w", err)
	}
	if err := f.SetCellStyle(sheet, fmt.Sprintf("I%d", analysisRow), fmt.Sprintf("I%d", last), style); err != nil {
		return fmt.Errorf("failed to style percentages: %w", err)
	}

	if err := f.AddChart(sheet, chartAnchor, radarChart(sheet, data.ClientName, last)); err != nil {
		return fmt.Errorf("failed to add radar chart: %w", err)
	}

	f.SetActiveSheet(idx)
	return nil
}

func radarChart(sheet, clientName string, lastRow int) *excelize.Chart {
	ref := func(col string) string {
		return fmt.Sprintf("'%s'!$%s$%d:$%s$%d", sheet, col, analysisRow, col, lastRow)
	}
	return &excelize.Chart{
		Type: excelize.Radar,
		Series: []excelize.ChartSeries{{
			Name:       "Normalizzato %",
			Categories: ref("G"),
			Values:     ref("I"),
		}},
		Title: []excelize.RichTextRun{{
			Text: "Distribuzione Punteggi per Aree - Cliente: " + clientName,
		}},
		Legend:    excelize.ChartLegend{Position: "none"},
		Dimension: excelize.ChartDimension{Width: chartDimension, Height: chartDimension},
	}
}

var _ service.ReportExporter = (*XLSXExporter)(nil)
