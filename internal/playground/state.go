// Package playground implements the command interpreter and state store that
// drive the visual playground. It is pure logic with no terminal dependencies:
// a Playground receives raw command text, classifies it against an ordered
// rule table, mutates its flag set and returns expiry requests that the
// caller schedules. Renderers consume Snapshots.
package playground

import "fmt"

// ColorScheme names a palette.
type ColorScheme string

const (
	SchemeDefault ColorScheme = "default"
	SchemePurple  ColorScheme = "purple"
	SchemeRed     ColorScheme = "red"
	SchemeBlue    ColorScheme = "blue"
	SchemeGreen   ColorScheme = "green"
)

// Schemes lists every known color scheme in display order.
func Schemes() []ColorScheme {
	return []ColorScheme{SchemeDefault, SchemePurple, SchemeRed, SchemeBlue, SchemeGreen}
}

// Valid reports whether s is one of the known schemes.
func (s ColorScheme) Valid() bool {
	for _, known := range Schemes() {
		if s == known {
			return true
		}
	}
	return false
}

// State is the flag set describing the current visual mode.
type State struct {
	Gravity     bool        `yaml:"gravity" json:"gravity"`
	Spinning    bool        `yaml:"spinning" json:"spinning"`
	Exploded    bool        `yaml:"exploded" json:"exploded"`
	Floating    bool        `yaml:"floating" json:"floating"`
	ColorScheme ColorScheme `yaml:"color_scheme" json:"colorScheme"`
	Raining     bool        `yaml:"raining" json:"raining"`
}

// DefaultState returns the startup snapshot: floating, default colors,
// everything else off.
func DefaultState() State {
	return State{
		Floating:    true,
		ColorScheme: SchemeDefault,
	}
}

func (s State) String() string {
	return fmt.Sprintf("gravity=%t spinning=%t exploded=%t floating=%t scheme=%s raining=%t",
		s.Gravity, s.Spinning, s.Exploded, s.Floating, s.ColorScheme, s.Raining)
}
