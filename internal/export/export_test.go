package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/siteboard/internal/model"
)

func sampleRecords() []model.Record {
	return []model.Record{
		{ID: "PRJ-00001", Name: "Solar Farm North 1", Latitude: 40.5, Longitude: -105.25, Status: model.StatusActive,
			LastUpdated: time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)},
		{ID: "PRJ-00002", Name: "Wind Park South 2", Latitude: -10, Longitude: 30, Status: model.StatusPending,
			LastUpdated: time.Date(2025, 4, 1, 9, 30, 0, 0, time.UTC)},
	}
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"id", "name", "latitude", "longitude", "status", "last_updated"}, rows[0])
	assert.Equal(t, "PRJ-00001", rows[1][0])
	assert.Equal(t, "40.500000", rows[1][2])
	assert.Equal(t, "Active", rows[1][4])
	assert.Equal(t, "2025-03-15T12:00:00Z", rows[1][5])
}

func TestWriteCSV_EmptySet(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}

func TestWriteXLSX(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "records.xlsx")
	out, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteXLSX(out, sampleRecords()))
	require.NoError(t, out.Close())

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)

	sheet := f.Sheets[0]
	assert.Equal(t, "Records", sheet.Name)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "id", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "PRJ-00002", sheet.Rows[2].Cells[0].String())
	assert.Equal(t, "Pending", sheet.Rows[2].Cells[4].String())
}
