package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// RoundCurrency rounds to the nearest whole currency unit
func RoundCurrency(f float64) float64 {
	return math.Round(f)
}
