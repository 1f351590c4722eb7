package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/siteboard/internal/model"
)

func TestPageBounds(t *testing.T) {
	t.Parallel()

	records := []model.Record{
		{ID: "A", Latitude: 10, Longitude: -120},
		{ID: "B", Latitude: -35, Longitude: 20},
		{ID: "C", Latitude: 48, Longitude: 150},
	}

	b, ok := PageBounds(records)
	require.True(t, ok)
	assert.Equal(t, -35.0, b.MinLat)
	assert.Equal(t, 48.0, b.MaxLat)
	assert.Equal(t, -120.0, b.MinLon)
	assert.Equal(t, 150.0, b.MaxLon)
}

func TestPageBounds_SinglePoint(t *testing.T) {
	t.Parallel()

	b, ok := PageBounds([]model.Record{{ID: "A", Latitude: 5, Longitude: 7}})
	require.True(t, ok)
	assert.Equal(t, Bounds{MinLat: 5, MinLon: 7, MaxLat: 5, MaxLon: 7}, b)
}

func TestPageBounds_Empty(t *testing.T) {
	t.Parallel()

	_, ok := PageBounds(nil)
	assert.False(t, ok)
}

func TestBoundsCenter(t *testing.T) {
	t.Parallel()

	b := Bounds{MinLat: -10, MaxLat: 30, MinLon: 0, MaxLon: 90}
	lat, lon := b.Center()
	assert.Equal(t, 10.0, lat)
	assert.Equal(t, 45.0, lon)
}
