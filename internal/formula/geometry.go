package formula

import "math"

// Channel letter geometry. The closed-form rules below encode shop
// manufacturing calibration and are reproduced exactly; do not "simplify"
// the constants.

// LinearInches converts a letter's width and height (inches) into its
// manufacturing size in linear inches.
//
// Long, thin shapes (one dimension over 14" with an aspect ratio above 4)
// are sized by the larger of perimeter/3.75 and area/20. Everything else is
// sized by the largest of width, height, and area/20. Small results are
// floored to minimum billable sizes.
func LinearInches(width, height float64) float64 {
	if width <= 0 || height <= 0 {
		return 0
	}

	area := width * height
	perimeter := 2 * (width + height)
	longest := math.Max(width, height)
	shortest := math.Min(width, height)

	var raw float64
	if (width > 14 || height > 14) && longest/shortest > 4 {
		raw = math.Max(perimeter/3.75, area/20)
	} else {
		raw = math.Max(longest, area/20)
	}

	return applySizeFloor(raw)
}

// applySizeFloor maps small raw sizes onto minimum billable linear inches
// and rounds everything else to the nearest whole inch.
func applySizeFloor(raw float64) float64 {
	switch {
	case raw <= 2:
		return 5
	case raw <= 3:
		return 6
	case raw <= 4:
		return 7
	case raw <= 5:
		return 8
	case raw <= 7:
		return 9
	case raw <= 9:
		return 10
	default:
		return math.Round(raw)
	}
}

// LedCount returns the number of LED modules for a letter of the given
// dimensions and computed linear inches.
//
// Below 11 linear inches a fitted small-letter curve applies; at 11 and
// above, the larger of the area-density and perimeter-density estimates
// wins.
func LedCount(width, height, linearInches float64) int {
	if linearInches <= 0 {
		return 0
	}
	if linearInches < 11 {
		return int(math.Round(0.6121*linearInches + 0.9333))
	}

	area := width * height
	perimeter := 2 * (width + height)
	byArea := area * 8.5 / 144
	byPerimeter := (perimeter / 2) / 3.5
	return int(math.Ceil(math.Max(byArea, byPerimeter)))
}

// LedsForLinearInches estimates LED count when only linear inches are known
// (bare linear-inch entries in the sizing formula, where width and height
// never existed). Perimeter is taken as the linear-inch value itself,
// matching the perimeter/width alias used throughout channel letter metrics.
func LedsForLinearInches(linearInches float64) int {
	if linearInches <= 0 {
		return 0
	}
	if linearInches < 11 {
		return int(math.Round(0.6121*linearInches + 0.9333))
	}
	return int(math.Ceil((linearInches / 2) / 3.5))
}
