package csvfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palegrove/skyline-explorer/internal/domain"
)

const sampleCSV = `id,name,location.city,location.city_id,location.country id,location.latitude,location.longitude,statistics.height,status.completed.year,purposes.hotel
1,Burj Khalifa,Dubai,123,784,25.1972,55.2744,828,2010,1
2,Willis Tower,Chicago,124,840,41.8789,-87.6359,442.1,1974,0
3,Mystery Tower,,125,840,,,0,0,0
`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skyscrapers.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	fixedTime := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(fixedTime))
	defer domain.SetClock(nil)

	t.Run("normalizes headers and types the rows", func(t *testing.T) {
		dataset, err := Load(writeDataset(t, sampleCSV))
		require.NoError(t, err)

		expectedColumns := []string{
			"id", "name", "location_city", "location_city_id", "location_country id",
			"location_latitude", "location_longitude", "statistics_height",
			"status_completed_year", "purposes_hotel",
		}
		if diff := cmp.Diff(expectedColumns, dataset.Columns); diff != "" {
			t.Fatalf("columns mismatch (-want +got):\n%s", diff)
		}

		require.Equal(t, 3, dataset.Len())
		assert.Equal(t, "skyscrapers.csv", dataset.Source)
		assert.Equal(t, fixedTime, dataset.LoadedAt)
		assert.True(t, dataset.HasCoordinateColumns)

		first := dataset.Records[0]
		assert.Equal(t, "1", first.ID)
		assert.Equal(t, "Burj Khalifa", first.Name)
		assert.Equal(t, "Dubai", first.City)
		assert.Equal(t, 828.0, first.HeightM)
		require.NotNil(t, first.CompletedYear)
		assert.Equal(t, 2010, *first.CompletedYear)
		require.True(t, first.HasCoordinates())
		assert.Equal(t, 25.1972, *first.Latitude)
		assert.Equal(t, 55.2744, *first.Longitude)
	})

	t.Run("resolves value sentinels", func(t *testing.T) {
		dataset, err := Load(writeDataset(t, sampleCSV))
		require.NoError(t, err)

		third := dataset.Records[2]
		assert.Equal(t, domain.UnknownCity, third.City)
		assert.Nil(t, third.CompletedYear)
		assert.Equal(t, 0.0, third.HeightM)
		assert.False(t, third.HasCoordinates())
		assert.Equal(t, 1, dataset.UnknownYearCount())
	})

	t.Run("rewrites the blank city cell for display", func(t *testing.T) {
		dataset, err := Load(writeDataset(t, sampleCSV))
		require.NoError(t, err)

		assert.Equal(t, domain.UnknownCity, dataset.Records[2].Fields[2])
	})

	t.Run("float-formatted years parse to whole years", func(t *testing.T) {
		content := "name,location.city,statistics.height,status.completed.year\nTaipei 101,Taipei,508,2004.0\n"
		dataset, err := Load(writeDataset(t, content))
		require.NoError(t, err)

		require.NotNil(t, dataset.Records[0].CompletedYear)
		assert.Equal(t, 2004, *dataset.Records[0].CompletedYear)
	})

	t.Run("pads short rows and truncates long rows", func(t *testing.T) {
		content := "name,location.city,statistics.height,status.completed.year\nShort Tower,Oslo\nLong Tower,Bergen,120,1995,extra,cells\n"
		dataset, err := Load(writeDataset(t, content))
		require.NoError(t, err)

		require.Equal(t, 2, dataset.Len())
		short := dataset.Records[0]
		assert.Equal(t, []string{"Short Tower", "Oslo", "", ""}, short.Fields)
		assert.Equal(t, 0.0, short.HeightM)
		assert.Nil(t, short.CompletedYear)

		long := dataset.Records[1]
		assert.Equal(t, []string{"Long Tower", "Bergen", "120", "1995"}, long.Fields)
		assert.Equal(t, 120.0, long.HeightM)
	})

	t.Run("missing id column falls back to row ordinals", func(t *testing.T) {
		content := "name,location.city,statistics.height,status.completed.year\nA Tower,Oslo,100,1990\nB Tower,Oslo,110,1991\n"
		dataset, err := Load(writeDataset(t, content))
		require.NoError(t, err)

		assert.Equal(t, "1", dataset.Records[0].ID)
		assert.Equal(t, "2", dataset.Records[1].ID)
	})

	t.Run("missing coordinate columns disable the map", func(t *testing.T) {
		content := "name,location.city,statistics.height,status.completed.year\nA Tower,Oslo,100,1990\n"
		dataset, err := Load(writeDataset(t, content))
		require.NoError(t, err)

		assert.False(t, dataset.HasCoordinateColumns)
		assert.False(t, dataset.Records[0].HasCoordinates())
	})

	t.Run("header-only file loads as an empty dataset", func(t *testing.T) {
		content := "name,location.city,statistics.height,status.completed.year\n"
		dataset, err := Load(writeDataset(t, content))
		require.NoError(t, err)

		assert.Equal(t, 0, dataset.Len())
	})

	t.Run("missing required column", func(t *testing.T) {
		content := "name,location.city,status.completed.year\nA Tower,Oslo,1990\n"
		_, err := Load(writeDataset(t, content))

		require.Error(t, err)
		assert.Contains(t, err.Error(), `missing required column "statistics_height"`)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := Load(writeDataset(t, ""))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no header row")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "open dataset")
	})
}
