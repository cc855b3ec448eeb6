package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/Veraticus/risk-profiler/internal/config"
	"github.com/Veraticus/risk-profiler/internal/export"
	"github.com/Veraticus/risk-profiler/internal/metrics"
	"github.com/Veraticus/risk-profiler/internal/service"
	"github.com/Veraticus/risk-profiler/internal/sheets"
	"github.com/Veraticus/risk-profiler/internal/storage"
)

// initStorage opens the history database and runs migrations.
func initStorage(ctx context.Context, cfg config.Config) (service.HistoryStore, error) {
	store, err := storage.NewSQLiteStorage(cfg.HistoryPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initSheets builds the Google Sheets exporter from configuration.
func initSheets(ctx context.Context, v *viper.Viper) (service.ReportExporter, error) {
	sheetsCfg, err := config.LoadSheetsConfig(v)
	if err != nil {
		return nil, fmt.Errorf("invalid Google Sheets configuration: %w", err)
	}
	return sheets.NewWriter(ctx, *sheetsCfg, slog.Default())
}

// deliveryTargets assembles the exporters requested by flags and config.
func deliveryTargets(ctx context.Context, v *viper.Viper, cfg config.Config, xlsxPath string, useSheets bool) ([]service.ReportExporter, error) {
	var exporters []service.ReportExporter

	if xlsxPath != "" {
		xlsx, err := export.NewXLSXExporter(config.ExpandPath(xlsxPath))
		if err != nil {
			return nil, err
		}
		exporters = append(exporters, xlsx)
	}

	if useSheets || cfg.SheetsEnabled {
		writer, err := initSheets(ctx, v)
		if err != nil {
			return nil, err
		}
		exporters = append(exporters, writer)
	}

	return exporters, nil
}

// writeMetrics flushes counters to the configured textfile, if any.
func writeMetrics(recorder *metrics.Recorder, path string) {
	if path == "" {
		return
	}
	if err := recorder.WriteTextfile(path); err != nil {
		slog.Warn("Failed to write metrics textfile", "path", path, "error", err)
	}
}
