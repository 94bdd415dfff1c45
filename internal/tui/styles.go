package tui

import "github.com/charmbracelet/lipgloss"

// Palette: cool tones for the dataset, amber for skips, red for failures.
var (
	brandColor  = lipgloss.Color("#7FB7BE")
	okColor     = lipgloss.Color("#9BC53D")
	geoColor    = lipgloss.Color("#D3A588")
	skipColor   = lipgloss.Color("#F4B942")
	failColor   = lipgloss.Color("#D1495B")
	faintColor  = lipgloss.Color("#5C6370")
	plainColor  = lipgloss.Color("#E6E6E6")
	subtleColor = lipgloss.Color("#A0A7B4")
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(brandColor).MarginBottom(1)
	subtitleStyle = lipgloss.NewStyle().Italic(true).Foreground(subtleColor)
	metaStyle     = lipgloss.NewStyle().Foreground(subtleColor)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(okColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(faintColor).
			MarginTop(1).
			MarginBottom(1)

	counterStyle = lipgloss.NewStyle().Bold(true).Foreground(brandColor)
	currentStyle = lipgloss.NewStyle().Foreground(plainColor)
	labelStyle   = lipgloss.NewStyle().Width(16).Foreground(subtleColor)
	valueStyle   = lipgloss.NewStyle().Bold(true).Foreground(plainColor)
	geoStyle     = lipgloss.NewStyle().Bold(true).Foreground(geoColor)
	skipStyle    = lipgloss.NewStyle().Foreground(skipColor)
	skipPath     = lipgloss.NewStyle().Italic(true).Foreground(faintColor)
	okStyle      = lipgloss.NewStyle().Bold(true).Foreground(okColor)
	failStyle    = lipgloss.NewStyle().Bold(true).Foreground(failColor)
	spinnerStyle = lipgloss.NewStyle().Foreground(brandColor)
	hintStyle    = lipgloss.NewStyle().Italic(true).Foreground(faintColor).MarginTop(2)

	failBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(failColor).
			Padding(1, 2).
			MarginTop(1)
)

const (
	glyphCamera = "📷"
	glyphTable  = "▦"
	glyphFolder = "📁"
	glyphGPS    = "◉"
	glyphSkip   = "○"
	glyphOK     = "✓"
	glyphFail   = "✗"
	glyphArrow  = "→"
)
