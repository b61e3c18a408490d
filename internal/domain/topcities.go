package domain

import "sort"

// topCityLimit caps the bar chart at the ten busiest cities.
const topCityLimit = 10

// CityCount is one bar of the top-cities view.
type CityCount struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

// TopCities groups the subset by city, counts records per city (zero-height
// placeholder rows included), and returns up to ten entries sorted by
// descending count. Ties keep first-encountered order from the source table,
// so the ranking is deterministic across renders.
func TopCities(records []Skyscraper) []CityCount {
	counts := make(map[string]int, len(records))
	var order []string
	for _, r := range records {
		if counts[r.City] == 0 {
			order = append(order, r.City)
		}
		counts[r.City]++
	}

	entries := make([]CityCount, 0, len(order))
	for _, city := range order {
		entries = append(entries, CityCount{City: city, Count: counts[city]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if len(entries) > topCityLimit {
		entries = entries[:topCityLimit]
	}
	return entries
}
