package patterns

// fitLine fits a least-squares line through the given (index, price) points
// and returns the slope and intercept. Fewer than two points yield a flat
// line through the single price (or zero).
func fitLine(points []swingPoint) (slope, intercept float64) {
	n := float64(len(points))
	if len(points) == 0 {
		return 0, 0
	}
	if len(points) == 1 {
		return 0, points[0].Price
	}

	var sumX, sumY, sumXY, sumXX float64
	for _, p := range points {
		x := float64(p.Index)
		sumX += x
		sumY += p.Price
		sumXY += x * p.Price
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// lineAt evaluates a fitted line at a bar index.
func lineAt(slope, intercept float64, index int) float64 {
	return slope*float64(index) + intercept
}

// normalizeSlope rescales a price-per-bar slope to a fraction-per-bar slope
// so tolerance constants hold across price magnitudes.
func normalizeSlope(slope, refPrice float64) float64 {
	if refPrice == 0 {
		return slope
	}
	return slope / refPrice
}
