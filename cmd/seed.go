package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/siteboard/internal/geo"
	"github.com/sells-group/siteboard/internal/store"
)

var seedManifest string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Validate a seed manifest and report what it would load",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := store.LoadManifest(seedManifest)
		if err != nil {
			return err
		}
		records, err := m.LoadRecords()
		if err != nil {
			return err
		}
		if err := store.Validate(records); err != nil {
			return err
		}

		fields := []zap.Field{
			zap.Int("datasets", len(m.Datasets)),
			zap.Int("records", len(records)),
		}
		if b, ok := geo.PageBounds(records); ok {
			fields = append(fields,
				zap.Float64("min_lat", b.MinLat), zap.Float64("max_lat", b.MaxLat),
				zap.Float64("min_lon", b.MinLon), zap.Float64("max_lon", b.MaxLon),
			)
		}
		zap.L().Info("seed manifest ok", fields...)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedManifest, "manifest", "seeds.yaml", "seed manifest path")
	rootCmd.AddCommand(seedCmd)
}
