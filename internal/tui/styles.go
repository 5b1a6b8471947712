package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Palette follows the exported spreadsheet: header blue, total-row tint,
// and the chart's sky blue for bars.
var (
	colorPrimary = lipgloss.Color("#4F81BD")
	colorTint    = lipgloss.Color("#D9E1F2")
	colorBar     = lipgloss.Color("#87CEEB")
	colorInk     = lipgloss.Color("#1F2A3A")
	colorText    = lipgloss.AdaptiveColor{Light: "#1F2A3A", Dark: "#E6ECF5"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#7A8699", Dark: "#8A93A6"}
	colorRule    = lipgloss.AdaptiveColor{Light: "#B8C4D6", Dark: "#3B4A61"}
	colorSuccess = lipgloss.Color("#3C9D5D")
	colorWarning = lipgloss.Color("#D98E04")
	colorError   = lipgloss.Color("#C0392B")
)

var (
	// Tabs read like sheet tabs: the active one is filled with header blue.
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).
			Padding(0, 1).
			MarginLeft(1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorInk).
				Background(colorTint).
				Padding(0, 1).
				MarginLeft(1)

	// panelStyle frames the list, results and settings views.
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorRule).
			Padding(0, 1)

	// activePanelStyle frames anything taking input: forms and the export picker.
	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder()).
				BorderForeground(colorPrimary).
				Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().Foreground(colorText).Bold(true)

	// totalStyle mirrors the tinted total row of the spreadsheet.
	totalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorInk).
			Background(colorTint).
			Padding(0, 1)

	barStyle = lipgloss.NewStyle().Foreground(colorBar)

	headerStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorRule)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			PaddingLeft(1)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().Foreground(colorText)
)

// resultsTableStyles renders the results table with the spreadsheet's
// header colours.
func resultsTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorRule).
		BorderBottom(true)
	s.Selected = s.Selected.
		Foreground(colorInk).
		Background(colorTint).
		Bold(false)
	return s
}
