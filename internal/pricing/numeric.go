package pricing

import (
	"math"
	"strconv"
	"strings"
)

// safe maps NaN and infinities to 0 so a single malformed field cannot
// poison an entire recalculation.
func safe(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseNumericOrZero converts a form string to a float64, falling back
// to 0 on anything unparseable. It exists for the boundary between form
// input and the calculation core; the core itself only ever sees real
// numbers.
func ParseNumericOrZero(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return safe(v)
}
