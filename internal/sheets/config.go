// Package sheets appends client history records to a Google Spreadsheet.
package sheets

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/risk-profiler/internal/common"
)

// DefaultSheetName is the tab that receives history rows.
const DefaultSheetName = "Storico Clienti"

// Config holds the configuration for the Google Sheets writer.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SheetName          string
	RetryAttempts      int
	RetryDelay         time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SheetName:     DefaultSheetName,
		RetryAttempts: 3,
		RetryDelay:    time.Second,
	}
}

// Validate checks that exactly one authentication method is configured and
// that the target sheet can be addressed in A1 notation.
func (c *Config) Validate() error {
	hasOAuth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	hasServiceAccount := c.ServiceAccountPath != ""

	switch {
	case !hasOAuth && !hasServiceAccount:
		return fmt.Errorf("%w: no authentication method configured", common.ErrMissingConfig)
	case hasOAuth && hasServiceAccount:
		return fmt.Errorf("%w: multiple authentication methods configured; use either OAuth2 or service account", common.ErrInvalidConfig)
	case c.SpreadsheetID == "":
		return fmt.Errorf("%w: spreadsheet id is required", common.ErrMissingConfig)
	case strings.TrimSpace(c.SheetName) == "":
		return fmt.Errorf("%w: sheet name is required", common.ErrMissingConfig)
	case strings.ContainsAny(c.SheetName, "!'"):
		return fmt.Errorf("%w: sheet name %q cannot contain ! or '", common.ErrInvalidConfig, c.SheetName)
	case c.RetryAttempts < 0:
		return fmt.Errorf("%w: retry attempts cannot be negative", common.ErrInvalidConfig)
	case c.RetryDelay < 0:
		return fmt.Errorf("%w: retry delay cannot be negative", common.ErrInvalidConfig)
	}

	return nil
}
