package domain

import (
	"errors"
	"slices"
)

// Filter holds the three sidebar predicates. Year and height bounds are
// inclusive; an empty Cities selection means no city predicate at all.
type Filter struct {
	YearMin   int
	YearMax   int
	HeightMin float64
	HeightMax float64
	Cities    []string
}

// Validate rejects inverted ranges before any rendering happens.
func (f Filter) Validate() error {
	if f.YearMin > f.YearMax {
		return errors.New("invalid year range: min exceeds max")
	}
	if f.HeightMin > f.HeightMax {
		return errors.New("invalid height range: min exceeds max")
	}
	return nil
}

// Matches reports whether a single record satisfies all three predicates.
// Records with an unknown completed year never match: a nil year cannot
// satisfy a numeric bound, however wide the range.
func (f Filter) Matches(s Skyscraper) bool {
	if s.CompletedYear == nil {
		return false
	}
	if y := *s.CompletedYear; y < f.YearMin || y > f.YearMax {
		return false
	}
	if s.HeightM < f.HeightMin || s.HeightM > f.HeightMax {
		return false
	}
	if len(f.Cities) == 0 {
		return true
	}
	return slices.Contains(f.Cities, s.City)
}

// Apply returns the records satisfying all predicates, in input order.
// It is a pure function of (records, filter): applying the same filter to
// its own output returns an equal subset.
func (f Filter) Apply(records []Skyscraper) []Skyscraper {
	var subset []Skyscraper
	for _, r := range records {
		if f.Matches(r) {
			subset = append(subset, r)
		}
	}
	return subset
}
