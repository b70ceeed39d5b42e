package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/reality-controller/internal/core"
	"github.com/vovakirdan/reality-controller/internal/playground"
)

// colorStyles caches one lipgloss style per hex color.
var (
	colorStylesMu sync.Mutex
	colorStyles   = map[core.Color]lipgloss.Style{
		core.ColorDefault: lipgloss.NewStyle(),
	}
)

// styleFor returns the foreground style for a color.
func styleFor(c core.Color) lipgloss.Style {
	colorStylesMu.Lock()
	defer colorStylesMu.Unlock()

	if s, ok := colorStyles[c]; ok {
		return s
	}
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(string(c)))
	colorStyles[c] = s
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(styleFor(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

// Pill styles for status indicators
var (
	pillBase = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true)

	pillStyles = map[playground.IndicatorKind]lipgloss.Style{
		playground.IndicatorGravityOn:  pillBase.Foreground(lipgloss.Color("#fca5a5")).Background(lipgloss.Color("#3f1d1d")),
		playground.IndicatorGravityOff: pillBase.Foreground(lipgloss.Color("#86efac")).Background(lipgloss.Color("#14321f")),
		playground.IndicatorSpinning:   pillBase.Foreground(lipgloss.Color("#d8b4fe")).Background(lipgloss.Color("#2e1a47")),
		playground.IndicatorRaining:    pillBase.Foreground(lipgloss.Color("#93c5fd")).Background(lipgloss.Color("#172554")),
	}
)

// renderIndicators draws the status pills in a row.
func renderIndicators(inds []playground.Indicator) string {
	parts := make([]string, 0, len(inds))
	for _, ind := range inds {
		style, ok := pillStyles[ind.Kind]
		if !ok {
			style = pillBase
		}
		parts = append(parts, style.Render(ind.Label))
	}
	return strings.Join(parts, " ")
}

// centerText centers a (possibly multi-line) block within given width.
func centerText(text string, width int) string {
	if lipgloss.Width(text) >= width {
		return text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}
