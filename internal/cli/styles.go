// Package cli provides the line-based questionnaire and styled terminal output.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/risk-profiler/internal/catalog"
)

var (
	primaryColor = lipgloss.Color("#4D7CFE")
	successColor = lipgloss.Color("#4ECDC4")
	warningColor = lipgloss.Color("#FFE66D")
	errorColor   = lipgloss.Color("#FF6B6B")
	infoColor    = lipgloss.Color("#95E1D3")
	subtleColor  = lipgloss.Color("#666666")
	borderColor  = lipgloss.Color("#333")

	// Cool to warm, one per band in ascending risk order.
	profileColors = map[string]lipgloss.Color{
		catalog.ProfileConservative: lipgloss.Color("#4ECDC4"),
		catalog.ProfileModerate:     lipgloss.Color("#95E1D3"),
		catalog.ProfileBalanced:     lipgloss.Color("#4D7CFE"),
		catalog.ProfileDynamic:      lipgloss.Color("#FFA94D"),
		catalog.ProfileAggressive:   lipgloss.Color("#FF6B6B"),
	}

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// SuccessStyle marks aligned results and completed steps.
	SuccessStyle = lipgloss.NewStyle().Foreground(successColor)
	// WarningStyle marks divergent results and guardrail overrides.
	WarningStyle = lipgloss.NewStyle().Foreground(warningColor)
	// SubtleStyle is used for labels and secondary text.
	SubtleStyle = lipgloss.NewStyle().Foreground(subtleColor)
	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().Bold(true)
	// BarStyle fills the area bar chart.
	BarStyle = lipgloss.NewStyle().Foreground(primaryColor)

	errorStyle  = lipgloss.NewStyle().Foreground(errorColor)
	infoStyle   = lipgloss.NewStyle().Foreground(infoColor)
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(1, 2)

	// TableHeaderStyle underlines table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(borderColor)

	guardrailBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1A1A1A")).
			Background(warningColor).
			Padding(0, 1)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	ShieldIcon  = "🛡️"
	ChartIcon   = "📊"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return errorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return infoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the shield icon.
func FormatTitle(title string) string {
	return titleStyle.Render(ShieldIcon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return promptStyle.Render(prompt + " → ")
}

// FormatProfile renders a profile name in its band color.
// Unknown names are rendered bold.
func FormatProfile(name string) string {
	color, ok := profileColors[name]
	if !ok {
		return BoldStyle.Render(name)
	}
	return BoldStyle.Foreground(color).Render(name)
}

// FormatGuardrail renders the guardrail action as a badge.
func FormatGuardrail(action string) string {
	return guardrailBadge.Render(WarningIcon + " " + action)
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := titleStyle.
		UnsetMargins().
		Render(title)

	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	)

	return boxStyle.Render(boxContent)
}
