package analytics

import "math"

// linearSlope returns the least-squares slope of points against x = 1..n.
// Series shorter than two points, or with a degenerate denominator, have no
// trend.
func linearSlope(points []float64) float64 {
	n := float64(len(points))
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range points {
		x := float64(i + 1)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}
	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// populationStdDev divides by n, not n-1.
func populationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// sampleVariance divides by n-1 and is zero for fewer than two values.
func sampleVariance(values []float64, m float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sumSq float64
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return sumSq / float64(len(values)-1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// varianceConfidence maps the coefficient of variation of a series onto a
// bounded confidence. A non-positive average yields the floor.
func varianceConfidence(stdDev, average, floor, ceiling float64) float64 {
	if average <= 0 {
		return floor
	}
	return clamp(1-stdDev/average, floor, ceiling)
}

// percentChange returns (current-previous)/previous*100 and false when the
// previous value cannot be used as a denominator.
func percentChange(current, previous float64) (float64, bool) {
	if previous <= 0 {
		return 0, false
	}
	return (current - previous) / previous * 100, true
}
