package store

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sells-group/siteboard/internal/model"
)

// nameVariants are the 15 project type names the generator draws from.
// Exactly one contains "Solar", so a "Solar" filter over 5000 records
// matches roughly a fifteenth of the set.
var nameVariants = []string{
	"Solar Farm",
	"Wind Park",
	"Hydro Plant",
	"Geothermal Station",
	"Battery Depot",
	"Substation Upgrade",
	"Transmission Corridor",
	"Microgrid Pilot",
	"Biomass Facility",
	"Tidal Array",
	"Storage Yard",
	"Distribution Hub",
	"Peaker Retrofit",
	"Interconnect Node",
	"Grid Research Lab",
}

var regionVariants = []string{
	"North", "South", "East", "West",
	"Central", "Coastal", "Highland", "Valley",
}

// Generate produces n records with a deterministic shape and random values.
// A non-zero seed makes the output reproducible.
func Generate(n int, seed int64) []model.Record {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	base := time.Now().UTC().Truncate(time.Hour)

	records := make([]model.Record, n)
	for i := range records {
		variant := nameVariants[rng.Intn(len(nameVariants))]
		region := regionVariants[rng.Intn(len(regionVariants))]
		records[i] = model.Record{
			ID:        fmt.Sprintf("PRJ-%05d", i+1),
			Name:      fmt.Sprintf("%s %s %d", variant, region, i+1),
			Latitude:  rng.Float64()*180 - 90,
			Longitude: rng.Float64()*360 - 180,
			Status:    model.Statuses[rng.Intn(len(model.Statuses))],
			// Spread updates over roughly the last two years.
			LastUpdated: base.Add(-time.Duration(rng.Intn(730*24)) * time.Hour),
		}
	}
	return records
}
