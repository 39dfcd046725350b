package utils

import (
	"math"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// ValidNutrient reports whether an optional nutrient value is acceptable for
// storage: either absent, or a finite non-negative number. NaN and infinities
// are rejected rather than coerced.
func ValidNutrient(v *float64) bool {
	if v == nil {
		return true
	}
	return !math.IsNaN(*v) && !math.IsInf(*v, 0) && *v >= 0
}

// NutrientValue resolves an optional nutrient field, defaulting absent to 0.
func NutrientValue(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
