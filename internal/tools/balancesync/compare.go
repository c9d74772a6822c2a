package balancesync

import "math"

// DefaultTolerance is the relative tolerance applied when comparing web
// defaults against config values.
const DefaultTolerance = 0.001

// WithinTolerance reports whether observed agrees with reference within the
// given relative tolerance. The tolerance scales with the reference side; a
// zero reference admits only an exactly zero observation.
func WithinTolerance(observed, reference, tolerance float64) bool {
	if reference == 0 {
		return observed == 0
	}
	return math.Abs(observed-reference) <= math.Abs(reference)*tolerance
}

// Matches applies WithinTolerance at DefaultTolerance.
func Matches(observed, reference float64) bool {
	return WithinTolerance(observed, reference, DefaultTolerance)
}
