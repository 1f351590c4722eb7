package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/siteboard/internal/model"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seeds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadManifest(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, `
datasets:
  - shapefile: sites.shp
    id_field: SITE_ID
    name_field: NAME
    status_field: STATUS
  - shapefile: extra.shp
    name_field: LABEL
    default_status: Active
`)

	m, err := LoadManifest(path)
	require.NoError(t, err)
	require.Len(t, m.Datasets, 2)
	assert.Equal(t, "SITE_ID", m.Datasets[0].IDField)
	assert.Equal(t, model.StatusPending, m.Datasets[0].DefaultStatus, "default status fills in")
	assert.Equal(t, model.StatusActive, m.Datasets[1].DefaultStatus)
}

func TestLoadManifest_Errors(t *testing.T) {
	t.Parallel()

	_, err := LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	empty := writeManifest(t, "datasets: []\n")
	_, err = LoadManifest(empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no datasets")

	garbage := writeManifest(t, "datasets: {not a list\n")
	_, err = LoadManifest(garbage)
	require.Error(t, err)
}

func TestLoadRecords_PointShapefile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	shpPath := filepath.Join(dir, "sites.shp")

	w, err := shp.Create(shpPath, shp.POINT)
	require.NoError(t, err)
	require.NoError(t, w.SetFields([]shp.Field{
		shp.StringField("SITE_ID", 16),
		shp.StringField("NAME", 32),
		shp.StringField("STATUS", 16),
	}))

	points := []struct {
		id, name, status string
		x, y             float64
	}{
		{"S-1", "Harbor Depot", "Active", -122.3, 47.6},
		{"S-2", "Ridge Array", "Bogus", 13.4, 52.5},
	}
	for i, p := range points {
		w.Write(&shp.Point{X: p.x, Y: p.y})
		require.NoError(t, w.WriteAttribute(i, 0, p.id))
		require.NoError(t, w.WriteAttribute(i, 1, p.name))
		require.NoError(t, w.WriteAttribute(i, 2, p.status))
	}
	w.Close()

	m := &Manifest{Datasets: []Dataset{{
		Shapefile:     shpPath,
		IDField:       "SITE_ID",
		NameField:     "NAME",
		StatusField:   "STATUS",
		DefaultStatus: model.StatusPending,
	}}}

	records, err := m.LoadRecords()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "S-1", records[0].ID)
	assert.Equal(t, "Harbor Depot", records[0].Name)
	assert.InDelta(t, 47.6, records[0].Latitude, 1e-6)
	assert.InDelta(t, -122.3, records[0].Longitude, 1e-6)
	assert.Equal(t, model.StatusActive, records[0].Status)

	// Unknown status falls back to the dataset default.
	assert.Equal(t, model.StatusPending, records[1].Status)

	require.NoError(t, Validate(records))
}

func TestLoadRecords_GeneratesMissingIDs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	shpPath := filepath.Join(dir, "anon.shp")

	w, err := shp.Create(shpPath, shp.POINT)
	require.NoError(t, err)
	require.NoError(t, w.SetFields([]shp.Field{shp.StringField("NAME", 32)}))
	w.Write(&shp.Point{X: 2.35, Y: 48.85})
	require.NoError(t, w.WriteAttribute(0, 0, "Left Bank Site"))
	w.Close()

	m := &Manifest{Datasets: []Dataset{{Shapefile: shpPath, NameField: "NAME", DefaultStatus: model.StatusActive}}}
	records, err := m.LoadRecords()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.NotEmpty(t, records[0].ID, "missing id field gets a generated id")
}
