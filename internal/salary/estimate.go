package salary

const (
	fromOnlyFactor = 1.2
	toOnlyFactor   = 0.8
)

// Estimate predicts a single monthly salary from a vacancy's advertised range.
// A lone lower bound is scaled up and a lone upper bound scaled down; the
// second return value is false when neither bound is known.
func Estimate(from, to *int) (float64, bool) {
	switch {
	case from != nil && to != nil:
		return float64(*from+*to) / 2, true
	case from != nil:
		return float64(*from) * fromOnlyFactor, true
	case to != nil:
		return float64(*to) * toOnlyFactor, true
	default:
		return 0, false
	}
}
