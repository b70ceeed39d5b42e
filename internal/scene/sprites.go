package scene

import "github.com/vovakirdan/reality-controller/internal/playground"

// Sprite is a block of text rows. Spaces are transparent.
type Sprite []string

// Width returns the widest row in runes.
func (sp Sprite) Width() int {
	w := 0
	for _, row := range sp {
		w = max(w, len([]rune(row)))
	}
	return w
}

// Height returns the number of rows.
func (sp Sprite) Height() int {
	return len(sp)
}

var sprites = map[playground.ShapeKind]map[playground.ShapeSize]Sprite{
	playground.KindCircle: {
		playground.SizeSmall:  {"●"},
		playground.SizeMedium: {"╭─╮", "╰─╯"},
		playground.SizeLarge:  {"╭───╮", "│   │", "╰───╯"},
	},
	playground.KindSquare: {
		playground.SizeSmall:  {"■"},
		playground.SizeMedium: {"┌─┐", "└─┘"},
		playground.SizeLarge:  {"┌───┐", "│   │", "└───┘"},
	},
	playground.KindTriangle: {
		playground.SizeSmall:  {"▲"},
		playground.SizeMedium: {" ╱╲ ", "╱__╲"},
		playground.SizeLarge:  {"  ╱╲  ", " ╱  ╲ ", "╱____╲"},
	},
}

// Rotation frames per kind, used while spinning.
var spinFrames = map[playground.ShapeKind][]rune{
	playground.KindCircle:   {'◐', '◓', '◑', '◒'},
	playground.KindSquare:   {'◰', '◳', '◲', '◱'},
	playground.KindTriangle: {'▲', '▶', '▼', '◀'},
}

// SpriteFor returns the resting sprite for a shape. Unknown kinds or sizes
// fall back to a single dot.
func SpriteFor(kind playground.ShapeKind, size playground.ShapeSize) Sprite {
	if bySize, ok := sprites[kind]; ok {
		if sp, ok := bySize[size]; ok {
			return sp
		}
	}
	return Sprite{"•"}
}

// spinSprite returns the sprite for the given rotation step. Single-cell
// sprites swap the glyph; larger ones keep their outline and move a marker
// clockwise around the border.
func spinSprite(kind playground.ShapeKind, size playground.ShapeSize, step int) Sprite {
	base := SpriteFor(kind, size)
	frames, ok := spinFrames[kind]
	if !ok {
		return base
	}
	glyph := frames[step%len(frames)]

	w, h := base.Width(), base.Height()
	if w == 1 && h == 1 {
		return Sprite{string(glyph)}
	}

	ring := perimeter(w, h)
	p := ring[step%len(ring)]

	out := make(Sprite, h)
	for y, row := range base {
		runes := []rune(row)
		for len(runes) < w {
			runes = append(runes, ' ')
		}
		if y == p.y {
			runes[p.x] = glyph
		}
		out[y] = string(runes)
	}
	return out
}

type cell struct{ x, y int }

// perimeter lists the border cells of a w×h box clockwise from the top-left.
func perimeter(w, h int) []cell {
	var ring []cell
	for x := 0; x < w; x++ {
		ring = append(ring, cell{x, 0})
	}
	for y := 1; y < h; y++ {
		ring = append(ring, cell{w - 1, y})
	}
	if h > 1 {
		for x := w - 2; x >= 0; x-- {
			ring = append(ring, cell{x, h - 1})
		}
	}
	if w > 1 {
		for y := h - 2; y > 0; y-- {
			ring = append(ring, cell{0, y})
		}
	}
	return ring
}
