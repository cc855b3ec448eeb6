package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/risk-profiler/internal/cli"
	"github.com/Veraticus/risk-profiler/internal/config"
	"github.com/Veraticus/risk-profiler/internal/export"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and export the client history",
	}

	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyExportCmd())

	return cmd
}

func historyListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded reports, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryList(cmd.Context(), viper.GetViper(), cmd.OutOrStdout(), limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the most recent N reports")

	return cmd
}

func historyExportCmd() *cobra.Command {
	var xlsxPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Rebuild the workbook history sheet from the history database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryExport(cmd.Context(), viper.GetViper(), cmd.OutOrStdout(), xlsxPath)
		},
	}

	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "workbook path (default: export.xlsx_path or "+export.DefaultWorkbook+")")

	return cmd
}

func runHistoryList(ctx context.Context, v *viper.Viper, out io.Writer, limit int) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer func() { _ = store.Close() }()

	records, err := store.ListRecords(ctx, limit)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, cli.RenderHistory(records))
	return err
}

func runHistoryExport(ctx context.Context, v *viper.Viper, out io.Writer, xlsxPath string) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	if xlsxPath == "" {
		xlsxPath = cfg.WorkbookPath()
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer func() { _ = store.Close() }()

	records, err := store.ListRecords(ctx, 0)
	if err != nil {
		return err
	}

	exporter, err := export.NewXLSXExporter(config.ExpandPath(xlsxPath))
	if err != nil {
		return err
	}
	if err := exporter.RebuildHistory(ctx, records); err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%d report esportati in %s", len(records), exporter.Path())))
	return err
}
