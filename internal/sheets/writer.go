package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Veraticus/risk-profiler/internal/common"
	"github.com/Veraticus/risk-profiler/internal/model"
	"github.com/Veraticus/risk-profiler/internal/report"
	"github.com/Veraticus/risk-profiler/internal/service"
)

// valuesClient is the subset of the Sheets values API the writer needs.
type valuesClient interface {
	Get(ctx context.Context, spreadsheetID, rng string) ([][]any, error)
	Append(ctx context.Context, spreadsheetID, rng string, values [][]any) error
}

// Writer appends one history row per finalized report.
type Writer struct {
	values valuesClient
	logger *slog.Logger
	config Config
}

// NewWriter creates a new Google Sheets history writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	srv, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return newWriter(config, &apiValues{srv: srv}, logger), nil
}

func newWriter(config Config, values valuesClient, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{config: config, values: values, logger: logger}
}

// Name identifies the exporter in logs and metrics.
func (w *Writer) Name() string { return "sheets" }

// Export implements service.ReportExporter.
func (w *Writer) Export(ctx context.Context, r model.ClientReport, _ model.ReportExportData) error {
	retryOpts := service.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		ShouldRetry:  shouldRetry,
		Throttled:    throttled,
	}

	var rows [][]any
	err := common.WithRetry(ctx, func() error {
		var getErr error
		rows, getErr = w.values.Get(ctx, w.config.SpreadsheetID, w.headerRange())
		return getErr
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("failed to read sheet header: %w", err)
	}

	values := [][]any{report.Row(report.Record(r))}
	if len(rows) == 0 {
		values = append([][]any{headerRow()}, values...)
	}

	err = common.WithRetry(ctx, func() error {
		return w.values.Append(ctx, w.config.SpreadsheetID, w.appendRange(), values)
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("failed to append history row: %w", err)
	}

	w.logger.Info("history row appended",
		"spreadsheet_id", w.config.SpreadsheetID,
		"sheet", w.config.SheetName,
		"client", r.ClientName)
	return nil
}

func (w *Writer) headerRange() string {
	return fmt.Sprintf("'%s'!A1:K1", w.config.SheetName)
}

func (w *Writer) appendRange() string {
	return fmt.Sprintf("'%s'!A:K", w.config.SheetName)
}

func headerRow() []any {
	header := make([]any, len(report.HistoryHeader))
	for i, h := range report.HistoryHeader {
		header[i] = h
	}
	return header
}

// shouldRetry retries rate limits, server errors and transport failures.
// Other 4xx responses are permanent.
func shouldRetry(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return true
	}
	return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
}

func throttled(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		client := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		tokenSource = client.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

type apiValues struct {
	srv *sheets.Service
}

func (a *apiValues) Get(ctx context.Context, spreadsheetID, rng string) ([][]any, error) {
	resp, err := a.srv.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (a *apiValues) Append(ctx context.Context, spreadsheetID, rng string, values [][]any) error {
	_, err := a.srv.Spreadsheets.Values.Append(spreadsheetID, rng, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

var _ service.ReportExporter = (*Writer)(nil)
