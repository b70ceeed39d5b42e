package playground

import (
	"reflect"
	"testing"
)

func TestShapeClasses(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  []string
	}{
		{
			name:  "defaults float with gravity off",
			state: DefaultState(),
			want:  []string{ClassFloating, ClassGravityOff},
		},
		{
			name:  "gravity on",
			state: State{Gravity: true, ColorScheme: SchemeDefault},
			want:  nil,
		},
		{
			name:  "neither gravity nor floating",
			state: State{ColorScheme: SchemeDefault},
			want:  []string{ClassPhysicsDisabled},
		},
		{
			name:  "exploded suppresses floating",
			state: State{Floating: true, Exploded: true, Spinning: true},
			want:  []string{ClassGravityOff, ClassSpinning, ClassExploded},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ShapeClasses(tc.state)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ShapeClasses() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestHasClass(t *testing.T) {
	s := State{Spinning: true, Floating: true}
	if !HasClass(s, ClassSpinning) {
		t.Error("expected spinning class")
	}
	if HasClass(s, ClassExploded) {
		t.Error("unexpected exploded class")
	}
}

func TestIndicators(t *testing.T) {
	got := Indicators(DefaultState())
	if len(got) != 1 || got[0].Label != "Gravity: OFF" {
		t.Errorf("default indicators = %+v", got)
	}

	got = Indicators(State{Gravity: true, Spinning: true, Raining: true})
	labels := make([]string, len(got))
	for i, ind := range got {
		labels[i] = ind.Label
	}
	want := []string{"Gravity: ON", "Spinning: ON", "Raining: ON"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("indicator labels = %v, want %v", labels, want)
	}
}
