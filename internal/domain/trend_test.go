package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrend(t *testing.T) {
	t.Run("densifies from earliest year to horizon", func(t *testing.T) {
		series := Trend([]Skyscraper{
			tower("a", "Dubai", 828, 2019),
			tower("b", "Chicago", 442, 2021),
			tower("c", "Shanghai", 632, 2021),
		})

		expected := []YearCount{
			{Year: 2019, Count: 1},
			{Year: 2020, Count: 0},
			{Year: 2021, Count: 2},
			{Year: 2022, Count: 0},
			{Year: 2023, Count: 0},
			{Year: 2024, Count: 0},
		}
		if diff := cmp.Diff(expected, series); diff != "" {
			t.Fatalf("series mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("series length is horizon minus earliest year", func(t *testing.T) {
		series := Trend([]Skyscraper{
			tower("a", "Chicago", 442, 1974),
			tower("b", "Dubai", 828, 2010),
		})

		require.Len(t, series, 2025-1974)
		assert.Equal(t, 1974, series[0].Year)
		assert.Equal(t, 2024, series[len(series)-1].Year)
	})

	t.Run("zero-filled years stay on the axis", func(t *testing.T) {
		series := Trend([]Skyscraper{
			tower("a", "Dubai", 828, 2010),
			tower("b", "Shanghai", 632, 2015),
		})

		byYear := make(map[int]int, len(series))
		for _, p := range series {
			byYear[p.Year] = p.Count
		}
		assert.Equal(t, 1, byYear[2010])
		assert.Equal(t, 0, byYear[2011])
		assert.Equal(t, 0, byYear[2012])
		assert.Equal(t, 1, byYear[2015])
	})

	t.Run("years at or past the horizon are appended", func(t *testing.T) {
		series := Trend([]Skyscraper{
			tower("a", "Dubai", 828, 2023),
			tower("b", "Jeddah", 1000, 2030),
			tower("c", "Shenzhen", 700, 2026),
		})

		expected := []YearCount{
			{Year: 2023, Count: 1},
			{Year: 2024, Count: 0},
			{Year: 2026, Count: 1},
			{Year: 2030, Count: 1},
		}
		if diff := cmp.Diff(expected, series); diff != "" {
			t.Fatalf("series mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown years are skipped", func(t *testing.T) {
		series := Trend([]Skyscraper{
			tower("a", "Dubai", 828, 2020),
			tower("b", "Chicago", 442, 0),
		})

		require.Len(t, series, 5)
		assert.Equal(t, 1, series[0].Count)
	})

	t.Run("empty subset yields empty series", func(t *testing.T) {
		assert.Empty(t, Trend(nil))
	})

	t.Run("all years unknown yields empty series", func(t *testing.T) {
		assert.Empty(t, Trend([]Skyscraper{tower("a", "Dubai", 828, 0)}))
	})
}
