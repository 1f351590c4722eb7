package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/siteboard/internal/engine"
	"github.com/sells-group/siteboard/internal/export"
	"github.com/sells-group/siteboard/internal/model"
)

var (
	exportParams   model.QueryParams
	exportManifest string
	exportFormat   string
	exportOut      string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered record set to a CSV or XLSX file",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := buildStore(exportManifest)
		if err != nil {
			return err
		}

		records := st.Records()
		params := exportParams.Normalize()
		params.Page = 1
		params.PageSize = len(records)
		res := engine.Query(records, params)

		f, err := os.Create(exportOut)
		if err != nil {
			return eris.Wrapf(err, "export: create %s", exportOut)
		}
		defer func() { _ = f.Close() }()

		switch exportFormat {
		case "csv":
			err = export.WriteCSV(f, res.Items)
		case "xlsx":
			err = export.WriteXLSX(f, res.Items)
		default:
			return eris.New("export: format must be csv or xlsx")
		}
		if err != nil {
			return err
		}

		zap.L().Info("exported records",
			zap.String("path", exportOut),
			zap.String("format", exportFormat),
			zap.Int("count", len(res.Items)),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportParams.FilterText, "filter", "q", "", "filter text")
	exportCmd.Flags().StringVar(&exportParams.SortKey, "sort", "", "sort key")
	exportCmd.Flags().StringVar((*string)(&exportParams.SortOrder), "order", "asc", "sort order (asc, desc)")
	exportCmd.Flags().StringVar(&exportManifest, "manifest", "", "seed manifest instead of generated records")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format (csv, xlsx)")
	exportCmd.Flags().StringVar(&exportOut, "out", "records.csv", "output path")
	rootCmd.AddCommand(exportCmd)
}
