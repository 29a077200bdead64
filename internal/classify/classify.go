// Package classify maps raw percentages onto color bands under named
// threshold profiles. Quota percentages and context-window percentages use
// deliberately different thresholds, so both profiles are kept distinct.
package classify

// Band is the display severity of a percentage.
type Band int

const (
	Low Band = iota
	Medium
	High
)

// Profile is a named pair of thresholds. A percent classifies High when it
// reaches the high threshold, Medium when it reaches the medium threshold,
// and Low otherwise.
type Profile struct {
	MediumAt int
	HighAt   int
}

// Usage is the profile for quota percentages (session/week/model/extra).
var Usage = Profile{MediumAt: 65, HighAt: 85}

// Context is the profile for context-window fill percentages.
var Context = Profile{MediumAt: 65, HighAt: 80}

// Classify truncates percent to an integer (matching the integer the user
// sees) and compares it against the profile thresholds.
func Classify(percent float64, p Profile) Band {
	n := int(percent)
	switch {
	case n >= p.HighAt:
		return High
	case n >= p.MediumAt:
		return Medium
	default:
		return Low
	}
}
