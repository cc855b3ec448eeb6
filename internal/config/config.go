package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/risk-profiler/internal/common"
	"github.com/Veraticus/risk-profiler/internal/export"
)

// Viper keys.
const (
	KeyHistoryPath     = "history.path"
	KeyHistoryEnabled  = "history.enabled"
	KeyXLSXPath        = "export.xlsx_path"
	KeySheetsEnabled   = "sheets.enabled"
	KeyMetricsTextfile = "metrics.textfile"
	KeyOutputFormat    = "output.format"
)

// DefaultHistoryPath is where the SQLite history lives unless configured.
const DefaultHistoryPath = "$HOME/.local/share/riskprof/history.db"

// Output formats accepted by the profile command.
var OutputFormats = []string{"table", "json", "yaml"}

// Config is the typed view of the application settings.
type Config struct {
	HistoryPath     string
	XLSXPath        string
	MetricsTextfile string
	OutputFormat    string
	HistoryEnabled  bool
	SheetsEnabled   bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyHistoryPath, DefaultHistoryPath)
	v.SetDefault(KeyHistoryEnabled, true)
	v.SetDefault(KeyXLSXPath, "")
	v.SetDefault(KeySheetsEnabled, false)
	v.SetDefault(KeyMetricsTextfile, "")
	v.SetDefault(KeyOutputFormat, "table")
}

// Load reads the typed configuration from v, expanding paths.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		HistoryPath:     ExpandPath(v.GetString(KeyHistoryPath)),
		HistoryEnabled:  v.GetBool(KeyHistoryEnabled),
		XLSXPath:        ExpandPath(v.GetString(KeyXLSXPath)),
		SheetsEnabled:   v.GetBool(KeySheetsEnabled),
		MetricsTextfile: ExpandPath(v.GetString(KeyMetricsTextfile)),
		OutputFormat:    strings.ToLower(strings.TrimSpace(v.GetString(KeyOutputFormat))),
	}

	if cfg.HistoryEnabled && cfg.HistoryPath == "" {
		return Config{}, fmt.Errorf("%w: %s is empty", common.ErrMissingConfig, KeyHistoryPath)
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "table"
	}
	if !validFormat(cfg.OutputFormat) {
		return Config{}, fmt.Errorf("%w: output format %q (want one of %s)",
			common.ErrInvalidConfig, cfg.OutputFormat, strings.Join(OutputFormats, ", "))
	}

	return cfg, nil
}

// WorkbookPath returns the configured workbook or the default one.
func (c Config) WorkbookPath() string {
	if c.XLSXPath != "" {
		return c.XLSXPath
	}
	return export.DefaultWorkbook
}

func validFormat(format string) bool {
	for _, f := range OutputFormats {
		if f == format {
			return true
		}
	}
	return false
}
