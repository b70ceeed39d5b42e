package playground

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    RuleID
	}{
		{"gravity off", "turn off gravity", RuleGravityOff},
		{"no gravity", "No Gravity please", RuleGravityOff},
		{"gravity on", "turn on gravity", RuleGravityOn},
		{"gravity on short", "GRAVITY ON", RuleGravityOn},
		{"spin", "spin everything", RuleSpin},
		{"rotate", "rotate the shapes", RuleSpin},
		{"explode", "explode", RuleExplode},
		{"scatter", "scatter them", RuleExplode},
		{"make it rain", "make it rain", RuleRain},
		{"rain substring", "brain freeze", RuleRain},
		{"reset", "reset", RuleReset},
		{"clear", "clear the board", RuleReset},
		{"color change", "change colors to purple", RuleColor},
		{"color word", "color me green", RuleColor},
		{"no match", "hello", RuleNone},
		{"empty", "", RuleNone},
		{"reset beats rain", "reset the rain", RuleReset},
		{"clear beats rain", "clear the rain", RuleReset},
		{"gravity off beats spin", "no gravity and spin", RuleGravityOff},
		{"spin beats color", "spin in red", RuleSpin},
		{"explode beats rain", "explode the rain", RuleExplode},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.command); got != tc.want {
				t.Errorf("Classify(%q) = %s, want %s", tc.command, got, tc.want)
			}
		})
	}
}

func TestRulesOrder(t *testing.T) {
	want := []RuleID{RuleGravityOff, RuleGravityOn, RuleSpin, RuleExplode, RuleReset, RuleRain, RuleColor}
	got := Rules()
	if len(got) != len(want) {
		t.Fatalf("Rules() has %d entries, want %d", len(got), len(want))
	}
	for i, r := range got {
		if r.ID != want[i] {
			t.Errorf("rule %d = %s, want %s", i, r.ID, want[i])
		}
		if len(r.Keywords) == 0 {
			t.Errorf("rule %s has no keywords", r.ID)
		}
	}
}

func TestRulesReturnsCopy(t *testing.T) {
	r := Rules()
	r[0].Keywords[0] = "mutated"
	if Classify("turn off gravity") != RuleGravityOff {
		t.Error("mutating Rules() result must not affect classification")
	}
}

func TestColorIn(t *testing.T) {
	tests := []struct {
		text string
		want ColorScheme
		ok   bool
	}{
		{"change colors to purple", SchemePurple, true},
		{"color blue", SchemeBlue, true},
		{"color green", SchemeGreen, true},
		{"color red and blue", SchemeRed, true},
		{"colors please", "", false},
	}
	for _, tc := range tests {
		got, ok := colorIn(tc.text)
		if got != tc.want || ok != tc.ok {
			t.Errorf("colorIn(%q) = (%q, %v), want (%q, %v)", tc.text, got, ok, tc.want, tc.ok)
		}
	}
}
