package priority

// Membership holds the degree of membership of a score in each
// importance class. Degrees are computed independently and are not
// normalized, so a score near a class boundary can belong to two
// classes at once.
type Membership struct {
	Low    float64 `json:"low"`
	Medium float64 `json:"medium"`
	High   float64 `json:"high"`
}

const (
	ImportanceLow    = "LOW"
	ImportanceMedium = "MEDIUM"
	ImportanceHigh   = "HIGH"
)

// trapezoid evaluates the four-breakpoint membership function:
// 0 outside (a,d), 1 on [b,c], linear ramps on (a,b) and (c,d).
func trapezoid(x, a, b, c, d float64) float64 {
	switch {
	case x <= a || x >= d:
		return 0
	case x >= b && x <= c:
		return 1
	case x < b:
		return (x - a) / (b - a)
	default:
		return (d - x) / (d - c)
	}
}

// Evaluate maps a score onto the low/medium/high fuzzy sets.
func Evaluate(score int) Membership {
	x := float64(score)
	return Membership{
		Low:    lowDegree(x),
		Medium: trapezoid(x, 40, 55, 70, 85),
		High:   highDegree(x),
	}
}

// Low and high are shoulder sets: low stays 1 down past the scale
// floor and high stays 1 for any score at or above 85, so unbounded
// scores keep classifying as fully high.
func lowDegree(x float64) float64 {
	switch {
	case x <= 30:
		return 1
	case x >= 50:
		return 0
	default:
		return (50 - x) / (50 - 30)
	}
}

func highDegree(x float64) float64 {
	switch {
	case x >= 85:
		return 1
	case x <= 70:
		return 0
	default:
		return (x - 70) / (85 - 70)
	}
}

// Label collapses the memberships to a single display class. High wins
// over Medium wins over Low whenever its degree clears 0.5.
func (m Membership) Label() string {
	if m.High > 0.5 {
		return ImportanceHigh
	}
	if m.Medium > 0.5 {
		return ImportanceMedium
	}
	return ImportanceLow
}
