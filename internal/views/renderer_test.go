package views_test

import (
	"bytes"
	"io"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palegrove/skyline-explorer/internal/domain"
	"github.com/palegrove/skyline-explorer/internal/observability"
	"github.com/palegrove/skyline-explorer/internal/views"
)

var loadStamp = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

// --- helpers ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func record(id, name, city, lat, lon string, height float64, year int) domain.Skyscraper {
	heightCell := strconv.FormatFloat(height, 'f', -1, 64)
	yearCell := ""
	if year != 0 {
		yearCell = strconv.Itoa(year)
	}

	s := domain.Skyscraper{
		ID:      id,
		Name:    name,
		City:    city,
		HeightM: height,
		Fields:  []string{id, name, city, lat, lon, heightCell, yearCell, "0"},
	}
	if year != 0 {
		s.CompletedYear = &year
	}
	if lat != "" && lon != "" {
		latV, _ := strconv.ParseFloat(lat, 64)
		lonV, _ := strconv.ParseFloat(lon, 64)
		s.Latitude = &latV
		s.Longitude = &lonV
	}
	return s
}

func testDataset() *domain.Dataset {
	return &domain.Dataset{
		Source: "skyscrapers.csv",
		Columns: []string{
			"id", "name", "location_city", "location_latitude", "location_longitude",
			domain.HeightColumn, "status_completed_year", "purposes_hotel",
		},
		Records: []domain.Skyscraper{
			record("1", "Burj Khalifa", "Dubai", "25.1972", "55.2744", 828, 2010),
			record("2", "Willis Tower", "Chicago", "41.8789", "-87.6359", 442.1, 1974),
			record("3", "Shanghai Tower", "Shanghai", "31.2335", "121.5055", 632, 2015),
			record("4", "Unnamed Spire", "Chicago", "", "", 0, 0),
		},
		LoadedAt:             loadStamp,
		HasCoordinateColumns: true,
	}
}

func newRenderer() *views.Renderer {
	return views.New(testDataset(), discardLogger(), observability.NewMetricsForTesting())
}

// --- tests ---

func TestMeta(t *testing.T) {
	meta := newRenderer().Meta()

	assert.Equal(t, "skyscrapers.csv", meta.Source)
	assert.Equal(t, loadStamp, meta.LoadedAt)
	assert.Equal(t, 4, meta.TotalRecords)
	assert.Equal(t, 1, meta.UnknownYears)
	assert.True(t, meta.MapAvailable)
	assert.Equal(t, []string{"Dubai", "Chicago", "Shanghai"}, meta.Cities)

	// Slider defaults clamp into the dataset bounds.
	assert.Equal(t, views.YearRange{Min: 1974, Max: 2015, DefaultMin: 1974, DefaultMax: 2015}, meta.Years)
	assert.Equal(t, views.HeightRange{Min: 0, Max: 828, DefaultMin: 0, DefaultMax: 828}, meta.Heights)
}

func TestDefaultFilter(t *testing.T) {
	r := newRenderer()
	f := r.DefaultFilter()

	require.NoError(t, f.Validate())
	assert.Equal(t, 1974, f.YearMin)
	assert.Equal(t, 2015, f.YearMax)
	assert.Equal(t, 0.0, f.HeightMin)
	assert.Equal(t, 828.0, f.HeightMax)
	assert.Empty(t, f.Cities)

	// The default filter admits every record with a known year.
	assert.Equal(t, 3, r.Table(f).Total)
}

func TestTable(t *testing.T) {
	r := newRenderer()

	t.Run("projects columns and rounds heights", func(t *testing.T) {
		table := r.Table(r.DefaultFilter())

		expectedColumns := []string{
			"name", "location_city", "location_latitude", "location_longitude",
			domain.HeightColumn, "status_completed_year",
		}
		if diff := cmp.Diff(expectedColumns, table.Columns); diff != "" {
			t.Fatalf("columns mismatch (-want +got):\n%s", diff)
		}

		require.Equal(t, 3, table.Total)
		assert.Equal(t, []string{"Willis Tower", "Chicago", "41.8789", "-87.6359", "442", "1974"}, table.Rows[1])
	})

	t.Run("narrow year filter", func(t *testing.T) {
		f := r.DefaultFilter()
		f.YearMin, f.YearMax = 1974, 1974
		table := r.Table(f)

		require.Equal(t, 1, table.Total)
		assert.Equal(t, "Willis Tower", table.Rows[0][0])
	})

	t.Run("no matches", func(t *testing.T) {
		f := r.DefaultFilter()
		f.Cities = []string{"Atlantis"}
		table := r.Table(f)

		assert.Zero(t, table.Total)
		assert.Empty(t, table.Rows)
	})
}

func TestStats(t *testing.T) {
	r := newRenderer()
	summary := r.Stats(r.DefaultFilter())

	require.Equal(t, 3, summary.Count)
	assert.Equal(t, 828.0, *summary.Max)
	assert.Equal(t, 442.0, *summary.Min)
	assert.Equal(t, 634.0, *summary.Mean)
	assert.Equal(t, 632.0, *summary.Median)
}

func TestTopCities(t *testing.T) {
	r := newRenderer()
	entries := r.TopCities(r.DefaultFilter())

	// All counts tie at one; first-encountered order breaks the tie.
	expected := []domain.CityCount{
		{City: "Dubai", Count: 1},
		{City: "Chicago", Count: 1},
		{City: "Shanghai", Count: 1},
	}
	if diff := cmp.Diff(expected, entries); diff != "" {
		t.Fatalf("ranking mismatch (-want +got):\n%s", diff)
	}
}

func TestTrend(t *testing.T) {
	r := newRenderer()
	series := r.Trend(r.DefaultFilter())

	require.Len(t, series, 2025-1974)
	assert.Equal(t, domain.YearCount{Year: 1974, Count: 1}, series[0])
	assert.Equal(t, domain.YearCount{Year: 2010, Count: 1}, series[2010-1974])
	assert.Equal(t, domain.YearCount{Year: 2024, Count: 0}, series[len(series)-1])
}

func TestMap(t *testing.T) {
	r := newRenderer()

	t.Run("defaults to first city", func(t *testing.T) {
		payload := r.Map(r.DefaultFilter(), "")

		require.True(t, payload.Available)
		assert.Equal(t, "Dubai", payload.Selected)
	})

	t.Run("requested city", func(t *testing.T) {
		payload := r.Map(r.DefaultFilter(), "Shanghai")

		require.True(t, payload.Available)
		assert.Equal(t, "Shanghai", payload.Selected)
		require.Len(t, payload.Columns, 1)
		assert.Equal(t, "Shanghai Tower", payload.Columns[0].Name)
		assert.Equal(t, 632, payload.Columns[0].Height)
	})

	t.Run("filtered-out city vanishes from the picker", func(t *testing.T) {
		f := r.DefaultFilter()
		f.YearMin, f.YearMax = 2010, 2015
		payload := r.Map(f, "Chicago")

		require.True(t, payload.Available)
		assert.Equal(t, []string{"Dubai", "Shanghai"}, payload.Cities)
		assert.Equal(t, "Dubai", payload.Selected)
	})
}

func TestExportCSV(t *testing.T) {
	r := newRenderer()

	t.Run("encodes the filtered subset", func(t *testing.T) {
		data, err := r.ExportCSV(r.DefaultFilter())
		require.NoError(t, err)

		text := string(data)
		assert.Contains(t, text, "name,location_city,location_latitude")
		assert.Contains(t, text, "Willis Tower,Chicago,41.8789,-87.6359,442,1974")
		assert.NotContains(t, text, "Unnamed Spire")
	})

	t.Run("empty subset", func(t *testing.T) {
		f := r.DefaultFilter()
		f.Cities = []string{"Atlantis"}

		_, err := r.ExportCSV(f)
		assert.ErrorIs(t, err, views.ErrNoData)
	})
}

func TestExportXLSX(t *testing.T) {
	r := newRenderer()

	t.Run("encodes a workbook", func(t *testing.T) {
		data, err := r.ExportXLSX(r.DefaultFilter())
		require.NoError(t, err)

		// XLSX files are zip archives.
		assert.True(t, bytes.HasPrefix(data, []byte("PK")))
	})

	t.Run("empty subset", func(t *testing.T) {
		f := r.DefaultFilter()
		f.Cities = []string{"Atlantis"}

		_, err := r.ExportXLSX(f)
		assert.ErrorIs(t, err, views.ErrNoData)
	})
}
