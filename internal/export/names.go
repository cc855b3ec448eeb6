package export

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultWorkbook is the workbook used when no path is configured.
	DefaultWorkbook = "Storico_Report_Rischio.xlsx"
	// HistorySheet holds one row per finalized report.
	HistorySheet = "Storico Clienti"

	maxSheetName     = 31
	maxSheetNamePart = 18
	sheetIDDigits    = 10
)

// ReportSheetName derives the per-report sheet name from the client name and
// report timestamp: Rpt_<name>_<last ten timestamp digits>, at most 31 characters.
func ReportSheetName(clientName, timestamp string) string {
	name := truncate(safeName(clientName), maxSheetNamePart)

	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, timestamp)
	if len(digits) > sheetIDDigits {
		digits = digits[len(digits)-sheetIDDigits:]
	}

	return truncate("Rpt_"+name+"_"+digits, maxSheetName)
}

// DownloadFileName is the file name offered for a single report download.
// The result never contains a path separator or a dot-dot element.
func DownloadFileName(clientName, timestamp string) string {
	date := timestamp
	if len(date) > 10 {
		date = date[:10]
	}
	return "Report_Rischio_" + safeName(clientName) + "_" + safeName(date) + ".xlsx"
}

// safeName turns spaces into underscores and drops characters that are not
// allowed in sheet names or that would let a name leave its directory.
func safeName(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "_")
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsControl(r):
			return -1
		case strings.ContainsRune(`.:\/?*[]'"<>|`, r):
			return -1
		}
		return r
	}, s)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
