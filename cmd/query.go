package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/siteboard/internal/engine"
	"github.com/sells-group/siteboard/internal/model"
)

var queryParams model.QueryParams

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run one query against the record set and print the result page",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := buildStore(queryManifest)
		if err != nil {
			return err
		}

		res := engine.Query(st.Records(), queryParams.Normalize())

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return eris.Wrap(err, "query: encode result")
		}
		return nil
	},
}

var queryManifest string

func init() {
	queryCmd.Flags().StringVarP(&queryParams.FilterText, "filter", "q", "", "filter text")
	queryCmd.Flags().StringVar(&queryParams.SortKey, "sort", "", "sort key (id, name, status, latitude, longitude, last_updated)")
	queryCmd.Flags().StringVar((*string)(&queryParams.SortOrder), "order", "asc", "sort order (asc, desc)")
	queryCmd.Flags().IntVar(&queryParams.Page, "page", 1, "page number")
	queryCmd.Flags().IntVar(&queryParams.PageSize, "page-size", model.DefaultPageSize, "page size (10, 25, 50, 100)")
	queryCmd.Flags().StringVar(&queryManifest, "manifest", "", "seed manifest instead of generated records")
	rootCmd.AddCommand(queryCmd)
}
