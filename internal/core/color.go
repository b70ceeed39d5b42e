package core

// Color is a cell foreground color as a "#rrggbb" hex string.
// The zero value means the terminal's default foreground.
type Color string

// Neutral colors used by the playground chrome.
const (
	ColorDefault Color = ""
	ColorBorder  Color = "#585858"
	ColorDim     Color = "#8a8a8a"
	ColorRain    Color = "#00ffff"
	ColorText    Color = "#eeeeee"
)

// IsDefault reports whether c renders with the terminal default color.
func (c Color) IsDefault() bool {
	return c == ColorDefault
}
