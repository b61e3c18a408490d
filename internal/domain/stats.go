package domain

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds the statistics panel numbers for one filtered subset.
// The pointer fields are nil when Count is zero: an empty subset produces a
// "no data" panel, never a division by zero.
type Summary struct {
	Count  int      `json:"count"`
	Max    *float64 `json:"max,omitempty"`
	Min    *float64 `json:"min,omitempty"`
	Mean   *float64 `json:"mean,omitempty"`
	Median *float64 `json:"median,omitempty"`
}

// Summarize computes max, min, mean (rounded to 2 decimal places), and
// median over the rounded display heights of the subset. Zero-height
// placeholder rows are excluded; only strictly positive heights count.
func Summarize(records []Skyscraper) Summary {
	var heights []float64
	for _, r := range records {
		if h := r.DisplayHeight(); h > 0 {
			heights = append(heights, float64(h))
		}
	}
	if len(heights) == 0 {
		return Summary{}
	}

	sort.Float64s(heights)
	mean := math.Round(stat.Mean(heights, nil)*100) / 100

	return Summary{
		Count:  len(heights),
		Max:    ptr(floats.Max(heights)),
		Min:    ptr(floats.Min(heights)),
		Mean:   ptr(mean),
		Median: ptr(median(heights)),
	}
}

// median returns the middle value of a sorted slice, averaging the two
// middle values for an even count.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func ptr(v float64) *float64 { return &v }
