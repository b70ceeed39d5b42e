package config

import (
	_ "embed"

	"github.com/vovakirdan/reality-controller/internal/playground"
)

//go:embed defaults/reality.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultYAML...)
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	palettes := make(map[string][]string)
	for scheme, colors := range playground.DefaultPaletteSpecs() {
		palettes[string(scheme)] = colors
	}

	return Config{
		Rain: RainConfig{
			Drops:      20,
			DurationMS: 5000,
			MaxDelayMS: 2000,
		},
		Explosion: ExplosionConfig{
			DurationMS: 2000,
			RangePX:    200,
		},
		Feedback: FeedbackConfig{
			ProcessingMS: 500,
			VisibleMS:    3000,
		},
		UI: UIConfig{
			Title:    "Reality Controller",
			FPS:      30,
			PxPerCol: 10,
			PxPerRow: 20,
		},
		Palettes: palettes,
		Shapes:   playground.DefaultShapes(),
		Suggestions: []string{
			"turn off gravity",
			"make it rain",
			"change colors to purple",
			"spin everything",
			"explode",
			"reset",
		},
	}
}
