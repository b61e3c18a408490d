package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palegrove/skyline-explorer/internal/domain"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestTopCitiesPNG(t *testing.T) {
	t.Run("renders a PNG for a populated ranking", func(t *testing.T) {
		data, err := TopCitiesPNG([]domain.CityCount{
			{City: "Hong Kong", Count: 317},
			{City: "New York City", Count: 290},
			{City: "Dubai", Count: 201},
		})

		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, pngMagic), "output should be a PNG")
	})

	t.Run("renders empty axes for an empty ranking", func(t *testing.T) {
		data, err := TopCitiesPNG(nil)

		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, pngMagic))
	})
}

func TestTrendPNG(t *testing.T) {
	t.Run("renders a PNG for a populated series", func(t *testing.T) {
		data, err := TrendPNG([]domain.YearCount{
			{Year: 2018, Count: 12},
			{Year: 2019, Count: 0},
			{Year: 2020, Count: 7},
		})

		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, pngMagic))
	})

	t.Run("renders empty axes for an empty series", func(t *testing.T) {
		data, err := TrendPNG(nil)

		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, pngMagic))
	})
}
