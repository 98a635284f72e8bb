package evaluation

import (
	"math"
	"time"
)

// maxPlotPoints caps how many residual points land in the scatter.
// Household test partitions run to tens of thousands of rows, far
// more glyphs than a plot can usefully show.
const maxPlotPoints = 2000

// downsampleResiduals thins a residual series to at most threshold
// points using largest-triangle-three-buckets: the first and last
// points always survive, and each bucket keeps the point forming the
// largest triangle with the previous pick and the next bucket's
// average. Series at or below the threshold pass through untouched.
func downsampleResiduals(timestamps []time.Time, residuals []float64, threshold int) ([]time.Time, []float64) {
	n := len(residuals)
	if threshold < 3 || n <= threshold {
		return timestamps, residuals
	}

	keep := make([]int, 0, threshold)
	keep = append(keep, 0)

	bucketSize := float64(n-2) / float64(threshold-2)
	a := 0
	for i := 0; i < threshold-2; i++ {
		nextStart := int(math.Floor(float64(i+1)*bucketSize)) + 1
		nextEnd := int(math.Floor(float64(i+2)*bucketSize)) + 1
		if nextEnd > n {
			nextEnd = n
		}

		avgX, avgY := 0.0, 0.0
		for j := nextStart; j < nextEnd; j++ {
			avgX += float64(j)
			avgY += residuals[j]
		}
		count := float64(nextEnd - nextStart)
		avgX /= count
		avgY /= count

		start := int(math.Floor(float64(i)*bucketSize)) + 1
		end := int(math.Floor(float64(i+1)*bucketSize)) + 1

		maxArea := -1.0
		best := start
		for j := start; j < end; j++ {
			area := math.Abs((float64(a)-avgX)*(residuals[j]-residuals[a])-
				(float64(a)-float64(j))*(avgY-residuals[a])) * 0.5
			if area > maxArea {
				maxArea = area
				best = j
			}
		}
		keep = append(keep, best)
		a = best
	}
	keep = append(keep, n-1)

	outTimes := make([]time.Time, len(keep))
	outValues := make([]float64, len(keep))
	for i, idx := range keep {
		outTimes[i] = timestamps[idx]
		outValues[i] = residuals[idx]
	}
	return outTimes, outValues
}
