package store

import (
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/siteboard/internal/model"
)

// Manifest describes one or more shapefile datasets to seed the store from.
type Manifest struct {
	Datasets []Dataset `yaml:"datasets"`
}

// Dataset maps shapefile attributes onto record fields. Point shapes only;
// non-point shapes in the file are skipped.
type Dataset struct {
	Shapefile     string       `yaml:"shapefile"`
	IDField       string       `yaml:"id_field"`
	NameField     string       `yaml:"name_field"`
	StatusField   string       `yaml:"status_field"`
	DefaultStatus model.Status `yaml:"default_status"`
}

// LoadManifest parses a YAML seed manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "store: read manifest %s", path)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, eris.Wrap(err, "store: parse manifest")
	}
	if len(m.Datasets) == 0 {
		return nil, eris.New("store: manifest names no datasets")
	}
	for i := range m.Datasets {
		if m.Datasets[i].DefaultStatus == "" {
			m.Datasets[i].DefaultStatus = model.StatusPending
		}
	}
	return &m, nil
}

// LoadRecords reads every dataset in the manifest into one collection.
func (m *Manifest) LoadRecords() ([]model.Record, error) {
	var records []model.Record
	for _, ds := range m.Datasets {
		recs, err := loadShapefile(ds)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	return records, nil
}

// loadShapefile reads point shapes from one shapefile, mapping attributes
// per the dataset config.
func loadShapefile(ds Dataset) ([]model.Record, error) {
	reader, err := shp.Open(ds.Shapefile)
	if err != nil {
		return nil, eris.Wrapf(err, "store: open shapefile %s", ds.Shapefile)
	}
	defer func() { _ = reader.Close() }()

	// Seeded records carry the dataset's timestamp, not a synthetic one.
	updated := time.Now().UTC()
	if info, statErr := os.Stat(ds.Shapefile); statErr == nil {
		updated = info.ModTime().UTC()
	}

	// Build field name → index map.
	fields := reader.Fields()
	fieldIdx := make(map[string]int, len(fields))
	for i, f := range fields {
		name := strings.TrimRight(f.String(), "\x00")
		fieldIdx[strings.ToLower(name)] = i
	}

	attr := func(field string) string {
		if field == "" {
			return ""
		}
		idx, ok := fieldIdx[strings.ToLower(field)]
		if !ok {
			return ""
		}
		val := strings.TrimRight(reader.Attribute(idx), "\x00")
		return strings.TrimSpace(val)
	}

	var records []model.Record
	var skipped int
	for reader.Next() {
		_, shape := reader.Shape()
		point, ok := shape.(*shp.Point)
		if !ok {
			skipped++
			continue
		}

		rec := model.Record{
			ID:          attr(ds.IDField),
			Name:        attr(ds.NameField),
			Latitude:    point.Y,
			Longitude:   point.X,
			Status:      ds.DefaultStatus,
			LastUpdated: updated,
		}
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		if s := model.Status(attr(ds.StatusField)); s.Valid() {
			rec.Status = s
		}
		records = append(records, rec)
	}

	if skipped > 0 {
		zap.L().Debug("store: skipped non-point shapes",
			zap.String("shapefile", ds.Shapefile),
			zap.Int("skipped", skipped),
		)
	}
	return records, nil
}
