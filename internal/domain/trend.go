package domain

import "sort"

// trendHorizon is the exclusive upper bound of the densified trend series.
// The series always runs from the earliest completion year in the subset up
// to (but not including) this year, so near-future gaps render as zeroes
// rather than vanishing from the line.
const trendHorizon = 2025

// YearCount is one point of the completions-per-year trend.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// Trend counts completions per year across the subset and densifies the
// result: every year from the earliest completion to the horizon appears,
// zero-filled where nothing completed. Years at or beyond the horizon that
// actually occur in the data are appended in ascending order so no record
// is silently dropped. Records without a completion year are skipped. An
// empty subset yields an empty series.
func Trend(records []Skyscraper) []YearCount {
	counts := make(map[int]int, len(records))
	minYear := 0
	known := false
	for _, r := range records {
		if r.CompletedYear == nil {
			continue
		}
		y := *r.CompletedYear
		counts[y]++
		if !known || y < minYear {
			minYear = y
			known = true
		}
	}
	if !known {
		return nil
	}

	series := make([]YearCount, 0, trendHorizon-minYear)
	for y := minYear; y < trendHorizon; y++ {
		series = append(series, YearCount{Year: y, Count: counts[y]})
	}

	var beyond []int
	for y := range counts {
		if y >= trendHorizon {
			beyond = append(beyond, y)
		}
	}
	sort.Ints(beyond)
	for _, y := range beyond {
		series = append(series, YearCount{Year: y, Count: counts[y]})
	}
	return series
}
