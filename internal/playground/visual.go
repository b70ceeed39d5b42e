package playground

// Animation classes applied to every shape.
const (
	ClassFloating        = "floating"
	ClassPhysicsDisabled = "physics-disabled"
	ClassGravityOff      = "gravity-off"
	ClassSpinning        = "spinning"
	ClassExploded        = "exploded"
)

// ShapeClasses derives the animation classes for the given state.
func ShapeClasses(s State) []string {
	var classes []string
	if s.Floating && !s.Exploded {
		classes = append(classes, ClassFloating)
	}
	if !s.Gravity && !s.Floating {
		classes = append(classes, ClassPhysicsDisabled)
	}
	if !s.Gravity && s.Floating {
		classes = append(classes, ClassGravityOff)
	}
	if s.Spinning {
		classes = append(classes, ClassSpinning)
	}
	if s.Exploded {
		classes = append(classes, ClassExploded)
	}
	return classes
}

// HasClass reports whether the state yields the given class.
func HasClass(s State, class string) bool {
	for _, c := range ShapeClasses(s) {
		if c == class {
			return true
		}
	}
	return false
}

// IndicatorKind selects the styling of a status pill.
type IndicatorKind int

const (
	IndicatorGravityOn IndicatorKind = iota
	IndicatorGravityOff
	IndicatorSpinning
	IndicatorRaining
)

// Indicator is a status pill shown above the playground.
type Indicator struct {
	Kind  IndicatorKind
	Label string
}

// Indicators returns the status pills for the state. Gravity is always
// shown; spinning and raining only while active.
func Indicators(s State) []Indicator {
	out := make([]Indicator, 0, 3)
	if s.Gravity {
		out = append(out, Indicator{Kind: IndicatorGravityOn, Label: "Gravity: ON"})
	} else {
		out = append(out, Indicator{Kind: IndicatorGravityOff, Label: "Gravity: OFF"})
	}
	if s.Spinning {
		out = append(out, Indicator{Kind: IndicatorSpinning, Label: "Spinning: ON"})
	}
	if s.Raining {
		out = append(out, Indicator{Kind: IndicatorRaining, Label: "Raining: ON"})
	}
	return out
}
