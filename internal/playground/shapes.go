package playground

// ShapeKind is the outline drawn for a shape.
type ShapeKind string

const (
	KindCircle   ShapeKind = "circle"
	KindSquare   ShapeKind = "square"
	KindTriangle ShapeKind = "triangle"
)

// ShapeSize is the relative size of a shape.
type ShapeSize string

const (
	SizeSmall  ShapeSize = "sm"
	SizeMedium ShapeSize = "md"
	SizeLarge  ShapeSize = "lg"
)

// Shape is one of the fixed decorative elements on the playground.
// X and Y are percentages of the playground area.
type Shape struct {
	ID   string    `yaml:"id"`
	Kind ShapeKind `yaml:"kind"`
	Size ShapeSize `yaml:"size"`
	X    float64   `yaml:"x"`
	Y    float64   `yaml:"y"`
}

// DefaultShapes returns the six built-in shapes.
func DefaultShapes() []Shape {
	return []Shape{
		{ID: "1", Kind: KindCircle, Size: SizeMedium, X: 20, Y: 30},
		{ID: "2", Kind: KindSquare, Size: SizeLarge, X: 70, Y: 20},
		{ID: "3", Kind: KindTriangle, Size: SizeSmall, X: 40, Y: 60},
		{ID: "4", Kind: KindCircle, Size: SizeSmall, X: 80, Y: 70},
		{ID: "5", Kind: KindSquare, Size: SizeMedium, X: 10, Y: 80},
		{ID: "6", Kind: KindTriangle, Size: SizeLarge, X: 60, Y: 40},
	}
}
