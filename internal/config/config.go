// Package config provides YAML-based configuration loading for the
// playground: effect timings, palettes, shape layout, suggested commands and
// terminal UI settings.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/reality-controller/internal/playground"
)

// Config contains all configuration for the Reality Controller.
type Config struct {
	Rain        RainConfig          `yaml:"rain"`
	Explosion   ExplosionConfig     `yaml:"explosion"`
	Feedback    FeedbackConfig      `yaml:"feedback"`
	UI          UIConfig            `yaml:"ui"`
	Palettes    map[string][]string `yaml:"palettes"`
	Shapes      []playground.Shape  `yaml:"shapes"`
	Suggestions []string            `yaml:"suggestions"`
}

// RainConfig defines the rain shower effect.
type RainConfig struct {
	Drops      int `yaml:"drops"`
	DurationMS int `yaml:"duration_ms"`  // Time until the shower clears
	MaxDelayMS int `yaml:"max_delay_ms"` // Upper bound of per-drop start delay
}

// ExplosionConfig defines the scatter effect.
type ExplosionConfig struct {
	DurationMS int     `yaml:"duration_ms"`
	RangePX    float64 `yaml:"range_px"` // Max displacement per axis
}

// FeedbackConfig defines the toast shown after a command.
type FeedbackConfig struct {
	ProcessingMS int `yaml:"processing_ms"` // Delay between "Processing" and applying the command
	VisibleMS    int `yaml:"visible_ms"`    // How long "Command executed" stays up
}

// UIConfig defines terminal UI parameters.
type UIConfig struct {
	Title    string `yaml:"title"`
	FPS      int    `yaml:"fps"`
	PxPerCol int    `yaml:"px_per_col"` // Scatter pixels per terminal column
	PxPerRow int    `yaml:"px_per_row"` // Scatter pixels per terminal row
}

// RainDuration returns the shower lifetime.
func (c Config) RainDuration() time.Duration {
	return time.Duration(c.Rain.DurationMS) * time.Millisecond
}

// ExplosionDuration returns the scatter lifetime.
func (c Config) ExplosionDuration() time.Duration {
	return time.Duration(c.Explosion.DurationMS) * time.Millisecond
}

// ProcessingDelay returns the delay before a submitted command is applied.
func (c Config) ProcessingDelay() time.Duration {
	return time.Duration(c.Feedback.ProcessingMS) * time.Millisecond
}

// FeedbackVisible returns how long the confirmation toast stays visible.
func (c Config) FeedbackVisible() time.Duration {
	return time.Duration(c.Feedback.VisibleMS) * time.Millisecond
}

// Validate checks the configuration for values the playground cannot use.
func (c Config) Validate() error {
	var errs []error

	if c.Rain.Drops <= 0 {
		errs = append(errs, fmt.Errorf("rain.drops must be positive, got %d", c.Rain.Drops))
	}
	if c.Rain.DurationMS <= 0 {
		errs = append(errs, fmt.Errorf("rain.duration_ms must be positive, got %d", c.Rain.DurationMS))
	}
	if c.Rain.MaxDelayMS <= 0 {
		errs = append(errs, fmt.Errorf("rain.max_delay_ms must be positive, got %d", c.Rain.MaxDelayMS))
	}
	if c.Explosion.DurationMS <= 0 {
		errs = append(errs, fmt.Errorf("explosion.duration_ms must be positive, got %d", c.Explosion.DurationMS))
	}
	if c.Explosion.RangePX <= 0 {
		errs = append(errs, fmt.Errorf("explosion.range_px must be positive, got %g", c.Explosion.RangePX))
	}
	if c.Feedback.ProcessingMS < 0 || c.Feedback.VisibleMS <= 0 {
		errs = append(errs, errors.New("feedback timings must be positive"))
	}
	if c.UI.FPS <= 0 || c.UI.FPS > 120 {
		errs = append(errs, fmt.Errorf("ui.fps out of range 1-120 (got %d)", c.UI.FPS))
	}
	if c.UI.PxPerCol <= 0 || c.UI.PxPerRow <= 0 {
		errs = append(errs, errors.New("ui.px_per_col and ui.px_per_row must be positive"))
	}

	for name := range c.Palettes {
		if !playground.ColorScheme(name).Valid() {
			errs = append(errs, fmt.Errorf("unknown palette %q", name))
		}
	}
	if _, err := c.palettes(); err != nil {
		errs = append(errs, err)
	}

	if len(c.Shapes) == 0 {
		errs = append(errs, errors.New("at least one shape is required"))
	}
	seen := make(map[string]bool, len(c.Shapes))
	for _, s := range c.Shapes {
		if seen[s.ID] {
			errs = append(errs, fmt.Errorf("duplicate shape id %q", s.ID))
		}
		seen[s.ID] = true
		if s.X < 0 || s.X > 100 || s.Y < 0 || s.Y > 100 {
			errs = append(errs, fmt.Errorf("shape %q position out of 0-100%%", s.ID))
		}
	}

	return errors.Join(errs...)
}

func (c Config) palettes() (playground.Palettes, error) {
	specs := make(map[playground.ColorScheme][]string, len(c.Palettes))
	for name, colors := range c.Palettes {
		specs[playground.ColorScheme(name)] = colors
	}
	return playground.ParsePalettes(specs)
}

// PlaygroundOptions converts the configuration into playground settings.
func (c Config) PlaygroundOptions(seed int64) (playground.Options, error) {
	pal, err := c.palettes()
	if err != nil {
		return playground.Options{}, fmt.Errorf("config: %w", err)
	}

	return playground.Options{
		Seed:              seed,
		Shapes:            append([]playground.Shape(nil), c.Shapes...),
		Palettes:          pal,
		RainDrops:         c.Rain.Drops,
		RainDuration:      c.RainDuration(),
		DropDelayMax:      time.Duration(c.Rain.MaxDelayMS) * time.Millisecond,
		ExplosionDuration: c.ExplosionDuration(),
		ScatterRange:      c.Explosion.RangePX,
	}, nil
}
