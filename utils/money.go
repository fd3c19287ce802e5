package utils

import "math"

// Round2 rounds a money amount to 2 decimal places, matching the
// NUMERIC(12,2) columns it is stored in.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
