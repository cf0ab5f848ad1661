package services

import "math"

// round2 rounds a currency figure to 2 decimals. Aggregation stays unrounded
// until a value crosses the output boundary.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
