// ABOUTME: Rounding and number formatting shared by the pricing calculators
// ABOUTME: Half-up rounding keeps published rates stable across clients

package services

import (
	"math"
	"strconv"
)

// roundHalfUp rounds to the nearest integer with ties going toward +Inf,
// so 2.5 becomes 3 and -2.5 becomes -2.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// formatNumber renders a value the way it appears in user-facing messages:
// no trailing zeros and no exponent for ordinary magnitudes.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
