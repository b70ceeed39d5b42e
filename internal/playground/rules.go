package playground

import "strings"

// RuleID identifies an interpreter rule.
type RuleID string

const (
	RuleNone       RuleID = ""
	RuleGravityOff RuleID = "gravity-off"
	RuleGravityOn  RuleID = "gravity-on"
	RuleSpin       RuleID = "spin"
	RuleExplode    RuleID = "explode"
	RuleRain       RuleID = "rain"
	RuleReset      RuleID = "reset"
	RuleColor      RuleID = "color"
)

func (r RuleID) String() string {
	if r == RuleNone {
		return "none"
	}
	return string(r)
}

// Rule is one entry of the ordered command table. A command matches when its
// lower-cased text contains any of the keywords.
type Rule struct {
	ID       RuleID
	Keywords []string
	Effect   string
}

// Matches reports whether the lower-cased command text triggers the rule.
func (r Rule) Matches(lower string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// rules is evaluated top to bottom; the first match wins. Reset sits above
// rain so that "reset the rain" or "clear the rain" stops the shower.
var rules = []Rule{
	{ID: RuleGravityOff, Keywords: []string{"turn off gravity", "no gravity"}, Effect: "gravity off, shapes float"},
	{ID: RuleGravityOn, Keywords: []string{"turn on gravity", "gravity on"}, Effect: "gravity on, floating stops"},
	{ID: RuleSpin, Keywords: []string{"spin", "rotate"}, Effect: "toggle spinning"},
	{ID: RuleExplode, Keywords: []string{"explode", "scatter"}, Effect: "scatter shapes for a moment"},
	{ID: RuleReset, Keywords: []string{"reset", "clear"}, Effect: "restore defaults, stop rain"},
	{ID: RuleRain, Keywords: []string{"make it rain", "rain"}, Effect: "start a rain shower"},
	{ID: RuleColor, Keywords: []string{"change colors to", "color"}, Effect: "switch palette to purple, red, blue or green"},
}

// colorNames are checked in this order by the color rule.
var colorNames = []ColorScheme{SchemePurple, SchemeRed, SchemeBlue, SchemeGreen}

// Rules returns a copy of the ordered rule table.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		r.Keywords = append([]string(nil), r.Keywords...)
		out[i] = r
	}
	return out
}

// Classify returns the first rule the command matches, or RuleNone.
// Matching is case-insensitive substring containment.
func Classify(raw string) RuleID {
	lower := strings.ToLower(raw)
	for _, r := range rules {
		if r.Matches(lower) {
			return r.ID
		}
	}
	return RuleNone
}

// colorIn returns the first palette name mentioned in the lower-cased text.
func colorIn(lower string) (ColorScheme, bool) {
	for _, name := range colorNames {
		if strings.Contains(lower, string(name)) {
			return name, true
		}
	}
	return "", false
}
