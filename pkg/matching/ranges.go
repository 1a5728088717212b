package matching

// withinRange reports whether value satisfies the [min, max] bounds after
// widening each present bound by tolerance (a fraction, 0.15 = 15%). A nil
// value or a fully unbounded range is trivially satisfied: an absent
// constraint never rejects.
func withinRange(value, min, max *float64, tolerance float64) bool {
	if value == nil {
		return true
	}
	if min == nil && max == nil {
		return true
	}
	if min != nil && *value < *min*(1-tolerance) {
		return false
	}
	if max != nil && *value > *max*(1+tolerance) {
		return false
	}
	return true
}
