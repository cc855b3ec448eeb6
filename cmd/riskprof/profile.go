package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/risk-profiler/internal/catalog"
	"github.com/Veraticus/risk-profiler/internal/cli"
	"github.com/Veraticus/risk-profiler/internal/common"
	"github.com/Veraticus/risk-profiler/internal/config"
	"github.com/Veraticus/risk-profiler/internal/engine"
	"github.com/Veraticus/risk-profiler/internal/export"
	"github.com/Veraticus/risk-profiler/internal/metrics"
	"github.com/Veraticus/risk-profiler/internal/model"
	"github.com/Veraticus/risk-profiler/internal/tui"
)

type profileOptions struct {
	name          string
	desired       string
	justification string
	format        string
	xlsx          string
	download      string
	answers       []string
	useTUI        bool
	noHistory     bool
	useSheets     bool
}

func profileCmd() *cobra.Command {
	var opts profileOptions

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Run the risk questionnaire for a client",
		Long: `Run the risk questionnaire, classify the client and record the report.

Without --answer the questionnaire is interactive. With --answer every
question must be answered on the command line, e.g.

  riskprof profile --name "Mario Rossi" --desired Dinamico \
    --answer A1=2 --answer A2=1 --answer B1=2 --answer C1=3 --answer D1=2`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("format") {
				opts.format = ""
			}
			return runProfile(cmd.Context(), viper.GetViper(), cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "client name")
	cmd.Flags().StringVar(&opts.desired, "desired", "", "desired profile (name or number 1-5)")
	cmd.Flags().StringArrayVar(&opts.answers, "answer", nil, "answer as KEY=LABEL or KEY=N (repeatable, non-interactive)")
	cmd.Flags().StringVar(&opts.justification, "justification", "", "justification when the desired profile diverges")
	cmd.Flags().BoolVar(&opts.useTUI, "tui", false, "use the full-screen questionnaire")
	cmd.Flags().StringVar(&opts.format, "format", "table", "output format (table, json, yaml)")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "append the report to this workbook (default: export.xlsx_path)")
	cmd.Flags().StringVar(&opts.download, "download", "", "also write a standalone report workbook into this directory")
	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "do not record the report in the history database")
	cmd.Flags().BoolVar(&opts.useSheets, "sheets", false, "append the history row to Google Sheets")

	return cmd
}

func runProfile(ctx context.Context, v *viper.Viper, in io.Reader, out io.Writer, opts profileOptions) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	format := cfg.OutputFormat
	if opts.format != "" {
		format = strings.ToLower(opts.format)
	}
	if !slices.Contains(config.OutputFormats, format) {
		return fmt.Errorf("%w: output format %q", common.ErrInvalidConfig, format)
	}

	desired, err := cli.ResolveDesired(opts.desired)
	if err != nil {
		return common.NewUserError(err.Error(), err)
	}

	prompter, ctx, stop, err := choosePrompter(ctx, in, out, opts, desired)
	if err != nil {
		return err
	}
	defer stop()

	recorder, err := metrics.NewRecorder(nil)
	if err != nil {
		return err
	}
	engineOpts := []engine.Option{engine.WithRecorder(recorder)}

	if cfg.HistoryEnabled && !opts.noHistory {
		store, storeErr := initStorage(ctx, cfg)
		if storeErr != nil {
			return fmt.Errorf("failed to open history: %w", storeErr)
		}
		defer func() { _ = store.Close() }()
		engineOpts = append(engineOpts, engine.WithHistory(store))
	}

	xlsxPath := cfg.XLSXPath
	if opts.xlsx != "" {
		xlsxPath = opts.xlsx
	}
	exporters, err := deliveryTargets(ctx, v, cfg, xlsxPath, opts.useSheets)
	if err != nil {
		return err
	}
	engineOpts = append(engineOpts, engine.WithExporters(exporters...))

	result, err := engine.New(prompter, engineOpts...).Run(ctx)
	if err != nil {
		if errors.Is(err, cli.ErrInputCancelled) || errors.Is(err, context.Canceled) {
			return common.NewUserError("questionario interrotto, nessun report salvato", err)
		}
		return err
	}
	defer writeMetrics(recorder, cfg.MetricsTextfile)

	if err := cli.WriteReport(out, result.Data, format); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if opts.download != "" {
		if err := writeDownload(ctx, opts.download, result); err != nil {
			recorder.ObserveExportFailure("download")
			result.DeliveryErr = errors.Join(result.DeliveryErr, err)
		}
	}

	if result.DeliveryErr != nil {
		return common.NewUserError("report generato ma non tutte le destinazioni sono state aggiornate: "+result.DeliveryErr.Error(), result.DeliveryErr)
	}
	if result.Record != nil {
		slog.Debug("Report recorded in history", "id", result.Record.ID)
	}
	return nil
}

// writeDownload writes a workbook holding only this report, replacing an
// earlier download with the same name.
func writeDownload(ctx context.Context, dir string, result *engine.Result) error {
	name := filepath.Base(export.DownloadFileName(result.Report.ClientName, result.Report.Timestamp))
	path := filepath.Join(config.ExpandPath(dir), name)
	exp, err := export.NewXLSXExporter(path, export.Standalone())
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrExportFailed, err)
	}
	if err := exp.Export(ctx, result.Report, result.Data); err != nil {
		return fmt.Errorf("%w: download: %w", common.ErrExportFailed, err)
	}
	slog.Info("Report workbook written", "path", path)
	return nil
}

// choosePrompter picks the input source: flags, the full-screen TUI or line
// prompts. Line prompts get a context canceled on interrupt; stop releases it.
func choosePrompter(ctx context.Context, in io.Reader, out io.Writer, opts profileOptions, desired string) (engine.Prompter, context.Context, func(), error) {
	noop := func() {}

	if len(opts.answers) > 0 {
		answers, err := cli.ParseAnswers(opts.answers)
		if err != nil {
			return nil, ctx, noop, common.NewUserError(err.Error(), err)
		}
		return &cli.FixedPrompter{
			ClientName:    opts.name,
			Answers:       answers,
			Desired:       desired,
			Justification: opts.justification,
		}, ctx, noop, nil
	}

	if opts.useTUI {
		preselected := desired
		if preselected == "" {
			preselected = catalog.DefaultDesiredProfile
		}
		sub, err := tui.Run(ctx, preselected)
		if err != nil {
			if errors.Is(err, tui.ErrCanceled) {
				return nil, ctx, noop, common.NewUserError("questionario interrotto, nessun report salvato", err)
			}
			return nil, ctx, noop, err
		}
		return &cli.FixedPrompter{
			ClientName:    sub.ClientName,
			Answers:       sub.Answers,
			Desired:       sub.Desired,
			Justification: sub.Justification,
		}, ctx, noop, nil
	}

	handler := cli.NewInterruptHandler(out)
	ictx, stop := handler.HandleInterrupts(ctx)
	var p engine.Prompter = cli.NewCLIPrompter(in, out)
	if opts.name != "" || desired != "" {
		p = &presetPrompter{Prompter: p, name: opts.name, desired: desired}
	}
	return p, ictx, stop, nil
}

// presetPrompter skips prompts whose answers were given as flags.
type presetPrompter struct {
	engine.Prompter
	name    string
	desired string
}

func (p *presetPrompter) AskClientName(ctx context.Context) (string, error) {
	if p.name != "" {
		return p.name, nil
	}
	return p.Prompter.AskClientName(ctx)
}

func (p *presetPrompter) AskDesiredProfile(ctx context.Context, bands []model.ProfileBand, preselected string) (string, error) {
	if p.desired != "" {
		return p.desired, nil
	}
	return p.Prompter.AskDesiredProfile(ctx, bands, preselected)
}
