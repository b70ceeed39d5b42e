package playground

import (
	"fmt"
	"time"
)

// Effect names a one-shot delayed transition.
type Effect int

const (
	EffectExplosion Effect = iota
	EffectRain
)

func (e Effect) String() string {
	switch e {
	case EffectExplosion:
		return "explosion"
	case EffectRain:
		return "rain"
	default:
		return "unknown"
	}
}

// Expiry asks the caller to call Expire with it once After has elapsed.
// Generation ties the request to the effect session that produced it.
type Expiry struct {
	Effect     Effect
	Generation uint64
	After      time.Duration
}

func (e Expiry) String() string {
	return fmt.Sprintf("%s#%d in %s", e.Effect, e.Generation, e.After)
}

// RainDrop is one falling marker of a shower.
type RainDrop struct {
	ID    string        `yaml:"id"`
	X     float64       `yaml:"x"`     // Horizontal position, percent [0,100)
	Delay time.Duration `yaml:"delay"` // Staggered start, [0,DropDelayMax)
}

// Vec is a 2D displacement in pixels.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// startRain replaces any current drops with a fresh shower.
func (p *Playground) startRain() Expiry {
	drops := make([]RainDrop, p.opts.RainDrops)
	for i := range drops {
		drops[i] = RainDrop{
			ID:    fmt.Sprintf("rain-%d", i),
			X:     p.rng.Float64() * 100,
			Delay: time.Duration(p.rng.Float64() * float64(p.opts.DropDelayMax)),
		}
	}

	p.drops = drops
	p.state.Raining = true
	p.rainGen++

	return Expiry{Effect: EffectRain, Generation: p.rainGen, After: p.opts.RainDuration}
}

func (p *Playground) clearRain() {
	p.drops = nil
	p.state.Raining = false
}

// triggerExplosion scatters every shape with a new random displacement.
func (p *Playground) triggerExplosion() Expiry {
	span := p.opts.ScatterRange * 2
	p.displacements = make(map[string]Vec, len(p.opts.Shapes))
	for _, s := range p.opts.Shapes {
		p.displacements[s.ID] = Vec{
			X: (p.rng.Float64() - 0.5) * span,
			Y: (p.rng.Float64() - 0.5) * span,
		}
	}

	p.state.Exploded = true
	p.explosionGen++

	return Expiry{Effect: EffectExplosion, Generation: p.explosionGen, After: p.opts.ExplosionDuration}
}

// Expire applies a delayed transition and reports whether it changed
// anything. Explosion expiries always clear the scatter, so overlapping
// triggers run independent timers. Rain expiries only apply to the shower
// that issued them; stale ones (after a reset or a newer shower) are no-ops.
func (p *Playground) Expire(e Expiry) bool {
	switch e.Effect {
	case EffectExplosion:
		if !p.state.Exploded {
			return false
		}
		p.state.Exploded = false
		p.displacements = nil
		return true

	case EffectRain:
		if e.Generation != p.rainGen || !p.state.Raining {
			return false
		}
		p.clearRain()
		return true
	}
	return false
}

// Drops returns a copy of the current rain drops.
func (p *Playground) Drops() []RainDrop {
	return append([]RainDrop(nil), p.drops...)
}

// Displacement returns the scatter offset of a shape while exploded.
func (p *Playground) Displacement(id string) (Vec, bool) {
	if !p.state.Exploded {
		return Vec{}, false
	}
	v, ok := p.displacements[id]
	return v, ok
}
