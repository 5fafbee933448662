package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette shared by the circuit builder and the CLI bars.
const (
	colorAccent  = lipgloss.Color("#7fdbff")
	colorSelect  = lipgloss.Color("#f012be")
	colorMuted   = lipgloss.Color("#5c6370")
	colorLabel   = lipgloss.Color("#9aa5b1")
	colorValue   = lipgloss.Color("#39cccc")
	colorOK      = lipgloss.Color("#2ecc40")
	colorWarn    = lipgloss.Color("#ffdc00")
	colorErr     = lipgloss.Color("#ff4136")
	colorBorder  = lipgloss.Color("#3d4451")
	colorSelectB = lipgloss.Color("#2a0a22")
)

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		MarginRight(1)

	Title       = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	Selected    = lipgloss.NewStyle().Bold(true).Foreground(colorSelect).Background(colorSelectB)
	Subtle      = lipgloss.NewStyle().Foreground(colorMuted)
	MetricLabel = lipgloss.NewStyle().Foreground(colorLabel)
	MetricValue = lipgloss.NewStyle().Bold(true).Foreground(colorValue)
	StatusOK    = lipgloss.NewStyle().Bold(true).Foreground(colorOK)
	StatusError = lipgloss.NewStyle().Bold(true).Foreground(colorErr)

	barHigh = lipgloss.NewStyle().Foreground(colorOK)
	barMid  = lipgloss.NewStyle().Foreground(colorWarn)
	barLow  = lipgloss.NewStyle().Foreground(colorValue)
)

// ProgressBar renders a fraction in [0,1] as width cells, colored by size.
func ProgressBar(frac float64, width int) string {
	filled := int(frac*float64(width) + 0.5)
	filled = max(0, min(width, filled))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	switch {
	case frac > 0.8:
		return barHigh.Render(bar)
	case frac > 0.4:
		return barMid.Render(bar)
	default:
		return barLow.Render(bar)
	}
}
