package playground

import (
	"math/rand"
	"strings"
	"time"

	"github.com/vovakirdan/reality-controller/internal/core"
)

// Options configures a Playground. Zero fields take the defaults.
type Options struct {
	Seed              int64         // RNG seed; 0 picks a time-based seed
	Shapes            []Shape       // Fixed shapes; defaults to DefaultShapes
	Palettes          Palettes      // Color tables; defaults to DefaultPalettes
	RainDrops         int           // Drops per shower (20)
	RainDuration      time.Duration // Time until the shower clears (5s)
	DropDelayMax      time.Duration // Upper bound of a drop's start delay (2s)
	ExplosionDuration time.Duration // Time until the scatter clears (2s)
	ScatterRange      float64       // Max displacement per axis in px (200)
}

// DefaultOptions returns the built-in playground settings.
func DefaultOptions() Options {
	return Options{
		Shapes:            DefaultShapes(),
		Palettes:          DefaultPalettes(),
		RainDrops:         20,
		RainDuration:      5000 * time.Millisecond,
		DropDelayMax:      2000 * time.Millisecond,
		ExplosionDuration: 2000 * time.Millisecond,
		ScatterRange:      200,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if len(o.Shapes) == 0 {
		o.Shapes = def.Shapes
	}
	if len(o.Palettes) == 0 {
		o.Palettes = def.Palettes
	}
	if o.RainDrops <= 0 {
		o.RainDrops = def.RainDrops
	}
	if o.RainDuration <= 0 {
		o.RainDuration = def.RainDuration
	}
	if o.DropDelayMax <= 0 {
		o.DropDelayMax = def.DropDelayMax
	}
	if o.ExplosionDuration <= 0 {
		o.ExplosionDuration = def.ExplosionDuration
	}
	if o.ScatterRange <= 0 {
		o.ScatterRange = def.ScatterRange
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	return o
}

// Playground holds the flag set and the transient effect data.
// It is not safe for concurrent use; drive it from a single goroutine
// (the Bubble Tea loop or a Runtime).
type Playground struct {
	opts  Options
	rng   *rand.Rand
	state State

	drops         []RainDrop
	displacements map[string]Vec

	rainGen      uint64
	explosionGen uint64
}

// New creates a playground in the default state.
func New(opts Options) *Playground {
	opts = opts.withDefaults()
	return &Playground{
		opts:  opts,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		state: DefaultState(),
	}
}

// Result describes what a command did.
type Result struct {
	Command  string
	Rule     RuleID
	Expiries []Expiry
	Snapshot Snapshot
}

// Matched reports whether any rule fired.
func (r Result) Matched() bool {
	return r.Rule != RuleNone
}

// Execute interprets a raw command. Only the first matching rule applies;
// unmatched text leaves the state untouched. The returned expiries must be
// delivered back through Expire after their delay.
func (p *Playground) Execute(raw string) Result {
	lower := strings.ToLower(raw)
	rule := Classify(lower)

	var expiries []Expiry
	switch rule {
	case RuleGravityOff:
		p.state.Gravity = false
		p.state.Floating = true
	case RuleGravityOn:
		p.state.Gravity = true
		p.state.Floating = false
	case RuleSpin:
		p.state.Spinning = !p.state.Spinning
	case RuleExplode:
		expiries = append(expiries, p.triggerExplosion())
	case RuleRain:
		expiries = append(expiries, p.startRain())
	case RuleReset:
		p.reset()
	case RuleColor:
		if scheme, ok := colorIn(lower); ok {
			p.state.ColorScheme = scheme
		}
	}

	return Result{
		Command:  raw,
		Rule:     rule,
		Expiries: expiries,
		Snapshot: p.Snapshot(),
	}
}

// reset restores the default flags and drops any rain in progress.
func (p *Playground) reset() {
	p.state = DefaultState()
	p.clearRain()
	p.rainGen++
	p.displacements = nil
}

// State returns the current flag set.
func (p *Playground) State() State {
	return p.state
}

// Shapes returns the fixed shapes.
func (p *Playground) Shapes() []Shape {
	return append([]Shape(nil), p.opts.Shapes...)
}

// Palettes returns the color tables in use.
func (p *Playground) Palettes() Palettes {
	return p.opts.Palettes
}

// ColorFor resolves a shape color under the current scheme.
func (p *Playground) ColorFor(id string) core.Color {
	return p.opts.Palettes.ColorFor(id, p.state.ColorScheme)
}

// Options returns the effective settings.
func (p *Playground) Options() Options {
	return p.opts
}

// Snapshot is a copy of everything a renderer needs.
type Snapshot struct {
	State         State                 `yaml:"state"`
	Drops         []RainDrop            `yaml:"drops,omitempty"`
	Displacements map[string]Vec        `yaml:"displacements,omitempty"`
	Colors        map[string]core.Color `yaml:"colors"`
}

// Snapshot returns a copy of the current state, drops and derived colors.
func (p *Playground) Snapshot() Snapshot {
	snap := Snapshot{
		State:  p.state,
		Colors: make(map[string]core.Color, len(p.opts.Shapes)),
	}
	if len(p.drops) > 0 {
		snap.Drops = append([]RainDrop(nil), p.drops...)
	}
	if p.state.Exploded && len(p.displacements) > 0 {
		snap.Displacements = make(map[string]Vec, len(p.displacements))
		for id, v := range p.displacements {
			snap.Displacements[id] = v
		}
	}
	for _, s := range p.opts.Shapes {
		snap.Colors[s.ID] = p.ColorFor(s.ID)
	}
	return snap
}
