package playground

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/reality-controller/internal/core"
)

// PaletteSize is the number of colors every scheme defines.
const PaletteSize = 3

// Palette is an ordered list of colors for one scheme.
type Palette []core.Color

// Palettes maps scheme names to their palettes.
type Palettes map[ColorScheme]Palette

// DefaultPaletteSpecs returns the built-in palettes as HSL strings.
func DefaultPaletteSpecs() map[ColorScheme][]string {
	return map[ColorScheme][]string{
		SchemeDefault: {"hsl(180, 100%, 50%)", "hsl(270, 100%, 50%)", "hsl(120, 100%, 50%)"},
		SchemePurple:  {"hsl(270, 100%, 50%)", "hsl(300, 100%, 50%)", "hsl(240, 100%, 50%)"},
		SchemeRed:     {"hsl(0, 100%, 50%)", "hsl(330, 100%, 50%)", "hsl(15, 100%, 50%)"},
		SchemeBlue:    {"hsl(200, 100%, 50%)", "hsl(240, 100%, 50%)", "hsl(180, 100%, 50%)"},
		SchemeGreen:   {"hsl(120, 100%, 50%)", "hsl(150, 100%, 50%)", "hsl(90, 100%, 50%)"},
	}
}

// DefaultPalettes returns the built-in palettes converted to hex colors.
func DefaultPalettes() Palettes {
	p, err := ParsePalettes(DefaultPaletteSpecs())
	if err != nil {
		panic(fmt.Sprintf("playground: built-in palettes invalid: %v", err))
	}
	return p
}

// ParsePalettes converts color specs into palettes. Every scheme must have
// exactly PaletteSize entries and the default scheme must be present.
func ParsePalettes(specs map[ColorScheme][]string) (Palettes, error) {
	if _, ok := specs[SchemeDefault]; !ok {
		return nil, fmt.Errorf("palette %q is required", SchemeDefault)
	}

	out := make(Palettes, len(specs))
	for scheme, colors := range specs {
		if len(colors) != PaletteSize {
			return nil, fmt.Errorf("palette %q: expected %d colors, got %d", scheme, PaletteSize, len(colors))
		}
		pal := make(Palette, len(colors))
		for i, spec := range colors {
			c, err := ParseColor(spec)
			if err != nil {
				return nil, fmt.Errorf("palette %q: %w", scheme, err)
			}
			pal[i] = c
		}
		out[scheme] = pal
	}
	return out, nil
}

// ParseColor accepts "hsl(h, s%, l%)" or "#rrggbb" and returns a hex color.
func ParseColor(spec string) (core.Color, error) {
	s := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(spec), " ", ""))

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return "", fmt.Errorf("invalid hex color %q: %w", spec, err)
		}
		return hexColor(c), nil
	}

	var h, sat, light float64
	if _, err := fmt.Sscanf(s, "hsl(%g,%g%%,%g%%)", &h, &sat, &light); err != nil {
		return "", fmt.Errorf("invalid color %q: %w", spec, err)
	}
	c := colorful.Hsl(h, sat/100, light/100).Clamped()
	return hexColor(c), nil
}

// hexColor formats c the way browsers do: channels are snapped to drop
// float noise from the HSL conversion, then rounded half up.
func hexColor(c colorful.Color) core.Color {
	channel := func(v float64) uint8 {
		return uint8(math.Round(math.Round(v*255*1e6) / 1e6))
	}
	return core.Color(fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B)))
}

// ColorFor resolves the color of a shape: the palette index is the numeric
// id modulo the palette length. Unknown schemes fall back to the default
// palette and ids that are not integers resolve to index 0.
func (p Palettes) ColorFor(id string, scheme ColorScheme) core.Color {
	pal, ok := p[scheme]
	if !ok || len(pal) == 0 {
		pal = p[SchemeDefault]
	}
	if len(pal) == 0 {
		return core.ColorDefault
	}

	n, err := strconv.Atoi(id)
	if err != nil {
		n = 0
	}
	idx := n % len(pal)
	if idx < 0 {
		idx += len(pal)
	}
	return pal[idx]
}
