package valuation

import (
	"math"
	"slices"

	domain "github.com/donaldgifford/loss-valuation/pkg/types"
)

// meanStdDev returns the mean and population standard deviation of values.
func meanStdDev(values []float64) (mean, stdDev float64) {
	if len(values) == 0 {
		return 0, 0
	}

	mean = sum(values) / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(len(values)))
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// statistics summarizes the spread of adjusted prices.
func statistics(prices []float64) domain.PriceStatistics {
	if len(prices) == 0 {
		return domain.PriceStatistics{}
	}

	sorted := slices.Clone(prices)
	slices.Sort(sorted)

	mean, sd := meanStdDev(sorted)
	return domain.PriceStatistics{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   mean,
		Median: median(sorted),
		StdDev: sd,
	}
}
