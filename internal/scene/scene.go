// Package scene draws playground snapshots onto a core.Screen.
//
// The playground only holds flags; the scene owns everything that moves
// between commands: the floating bob, falling under gravity, spin frames,
// scatter offsets and the rain shower. Step advances one frame, Render
// draws the current frame.
package scene

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/reality-controller/internal/core"
	"github.com/vovakirdan/reality-controller/internal/playground"
)

// Visual characters for rendering
const (
	RainChar = '|'
)

// Options controls animation speed and scatter scaling.
type Options struct {
	FPS       int           // Frames per second Step is called at
	PxPerCol  int           // Scatter pixels per column
	PxPerRow  int           // Scatter pixels per row
	FallEvery int           // Frames per row while falling
	SpinEvery int           // Frames per rotation step
	BobPeriod time.Duration // Full floating cycle
	RainRow   time.Duration // Time for a drop to fall one row
}

// DefaultOptions returns the standard animation settings at 30 fps.
func DefaultOptions() Options {
	return Options{
		FPS:       30,
		PxPerCol:  10,
		PxPerRow:  20,
		FallEvery: 2,
		SpinEvery: 4,
		BobPeriod: 3 * time.Second,
		RainRow:   60 * time.Millisecond,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.FPS <= 0 {
		o.FPS = def.FPS
	}
	if o.PxPerCol <= 0 {
		o.PxPerCol = def.PxPerCol
	}
	if o.PxPerRow <= 0 {
		o.PxPerRow = def.PxPerRow
	}
	if o.FallEvery <= 0 {
		o.FallEvery = def.FallEvery
	}
	if o.SpinEvery <= 0 {
		o.SpinEvery = def.SpinEvery
	}
	if o.BobPeriod <= 0 {
		o.BobPeriod = def.BobPeriod
	}
	if o.RainRow <= 0 {
		o.RainRow = def.RainRow
	}
	return o
}

// Placement is where a shape is drawn in the current frame.
type Placement struct {
	Shape  playground.Shape
	Sprite Sprite
	Rect   core.Rect
	Color  core.Color
}

// Scene animates a fixed set of shapes.
type Scene struct {
	shapes []playground.Shape
	opts   Options

	frame    int
	fallen   int // Rows fallen since gravity was switched on
	maxFall  int // Tallest drop seen by the last Layout
	shower   string
	showerAt int // Frame the current shower was first seen
}

// New creates a scene for the given shapes.
func New(shapes []playground.Shape, opts Options) *Scene {
	return &Scene{
		shapes:  append([]playground.Shape(nil), shapes...),
		opts:    opts.withDefaults(),
		maxFall: math.MaxInt32,
	}
}

// Frame returns the number of steps taken.
func (s *Scene) Frame() int {
	return s.frame
}

// Reset rewinds all animations.
func (s *Scene) Reset() {
	s.frame = 0
	s.fallen = 0
	s.shower = ""
	s.showerAt = 0
}

// Step advances the animation by one frame for the given snapshot.
func (s *Scene) Step(snap playground.Snapshot) {
	s.frame++

	st := snap.State
	if st.Gravity && !st.Floating {
		if s.frame%s.opts.FallEvery == 0 && s.fallen < s.maxFall {
			s.fallen++
		}
	} else {
		s.fallen = 0
	}

	sig := showerSignature(snap.Drops)
	if sig != s.shower {
		s.shower = sig
		s.showerAt = s.frame
	}
}

// Render draws the playground box, shapes and rain onto dst.
func (s *Scene) Render(dst *core.Screen, snap playground.Snapshot) {
	dst.Clear()
	box := dst.Bounds()
	dst.DrawBox(box, core.ColorBorder)

	inner := box.Inset(1)
	if inner.W <= 0 || inner.H <= 0 {
		return
	}

	// Rain behind shapes
	for _, d := range snap.Drops {
		x, y, ok := s.dropPosition(inner, d)
		if ok {
			dst.SetCell(x, y, RainChar, core.ColorRain)
		}
	}

	for _, p := range s.Layout(inner, snap) {
		for dy, row := range p.Sprite {
			dx := 0
			for _, r := range row {
				if r != ' ' && inner.Contains(p.Rect.X+dx, p.Rect.Y+dy) {
					dst.SetCell(p.Rect.X+dx, p.Rect.Y+dy, r, p.Color)
				}
				dx++
			}
		}
	}
}

// Layout computes the placement of every shape inside area for the
// current frame.
func (s *Scene) Layout(area core.Rect, snap playground.Snapshot) []Placement {
	st := snap.State
	out := make([]Placement, 0, len(s.shapes))

	tallest := 0
	for i, shape := range s.shapes {
		sp := SpriteFor(shape.Kind, shape.Size)
		if st.Spinning {
			sp = spinSprite(shape.Kind, shape.Size, s.frame/s.opts.SpinEvery)
		}
		w, h := sp.Width(), sp.Height()

		x, y := home(area, shape, w, h)

		if playground.HasClass(st, playground.ClassFloating) {
			y += s.bob(i)
		}

		if st.Gravity && !st.Floating {
			floor := area.Bottom() - h
			tallest = max(tallest, floor-y)
			y = min(y+s.fallen, floor)
		}

		if st.Exploded {
			if v, ok := snap.Displacements[shape.ID]; ok {
				x += int(math.Round(v.X / float64(s.opts.PxPerCol)))
				y += int(math.Round(v.Y / float64(s.opts.PxPerRow)))
			}
		}

		// Keep the whole sprite inside the box
		x = core.Clamp(x, area.X, max(area.Right()-w, area.X))
		y = core.Clamp(y, area.Y, max(area.Bottom()-h, area.Y))

		out = append(out, Placement{
			Shape:  shape,
			Sprite: sp,
			Rect:   core.NewRect(x, y, w, h),
			Color:  snap.Colors[shape.ID],
		})
	}

	if st.Gravity && !st.Floating {
		s.maxFall = tallest
	}
	return out
}

// home returns the resting top-left cell of a shape.
func home(area core.Rect, shape playground.Shape, w, h int) (int, int) {
	x := area.X + int(shape.X/100*float64(area.W))
	y := area.Y + int(shape.Y/100*float64(area.H))
	x = core.Clamp(x, area.X, max(area.Right()-w, area.X))
	y = core.Clamp(y, area.Y, max(area.Bottom()-h, area.Y))
	return x, y
}

// bob returns the floating offset of the i-th shape: -1, 0 or +1 rows.
func (s *Scene) bob(i int) int {
	period := s.opts.BobPeriod.Seconds() * float64(s.opts.FPS)
	phase := float64(i) * math.Pi / 3
	return int(math.Round(math.Sin(2*math.Pi*float64(s.frame)/period + phase)))
}

// dropPosition returns where a drop is in this frame, or false while it is
// still waiting for its delay.
func (s *Scene) dropPosition(area core.Rect, d playground.RainDrop) (int, int, bool) {
	elapsed := time.Duration(s.frame-s.showerAt) * time.Second / time.Duration(s.opts.FPS)
	if elapsed < d.Delay {
		return 0, 0, false
	}
	rows := int((elapsed - d.Delay) / s.opts.RainRow)
	x := area.X + int(d.X/100*float64(area.W))
	y := area.Y + rows%area.H
	return core.Clamp(x, area.X, area.Right()-1), y, true
}

// showerSignature identifies a drop set so a new shower restarts the fall.
func showerSignature(drops []playground.RainDrop) string {
	if len(drops) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, d := range drops {
		sb.WriteString(d.ID)
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatFloat(d.X, 'f', -1, 64))
		sb.WriteByte(';')
	}
	return sb.String()
}
