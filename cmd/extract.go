package cmd

import (
	"fmt"

	"data-extractor/core/fault"
	"data-extractor/feature/pipeline"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var extractReq pipeline.ExtractRequest
var expectedHeaders string

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a source into an .xlsx workbook",
	Long: `Reads every row of the selected source, checks the headers against
--expected-headers when given and writes the table to --output.`,
	Example: `  data-extractor extract --source postgres --connection postgres://u:p@localhost/db \
    --query "SELECT id, name FROM users" --expected-headers '["id","name"]' --output users.xlsx
  data-extractor extract --source csv --connection s3://inputs/users.csv --output users.xlsx --upload`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := extractReq
		if expectedHeaders != "" {
			headers, err := parseHeaders(expectedHeaders)
			if err != nil {
				return err
			}
			req.ExpectedHeaders = headers
		}

		_, logg, svc, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		out, err := svc.ExtractToFile(cmd.Context(), req)
		if err != nil {
			return err
		}

		for _, w := range out.Warnings {
			logg.Warn(w)
		}
		logg.Info("Extraction complete",
			zap.String("run_id", out.RunID),
			zap.Int("rows", out.Table.Len()),
			zap.Int("columns", len(out.Table.Headers)),
			zap.Duration("duration", out.Duration),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %d rows to %s\n", out.Table.Len(), out.Output)
		if out.Uploaded != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded to %s\n", out.Uploaded)
		}
		return nil
	},
}

// parseHeaders decodes a JSON array of column names.
func parseHeaders(raw string) ([]string, error) {
	var headers []string
	if err := json.Unmarshal([]byte(raw), &headers); err != nil {
		return nil, fault.Configuration("", "invalid JSON for --expected-headers: %v", err)
	}
	if headers == nil {
		headers = []string{}
	}
	return headers, nil
}

func init() {
	f := extractCmd.Flags()
	f.StringVarP(&extractReq.Source, "source", "s", "", "source kind (see 'sources')")
	f.StringVarP(&extractReq.Connection, "connection", "c", "", "connection string, file path or s3://bucket/key")
	f.StringVarP(&extractReq.Query, "query", "q", "", "SQL query, MongoDB filter or Elasticsearch body")
	f.StringVar(&extractReq.Table, "table", "", "relational table to read when no query is given")
	f.StringVar(&extractReq.Database, "db-name", "", "MongoDB database")
	f.StringVar(&extractReq.Collection, "collection", "", "MongoDB collection")
	f.StringVar(&extractReq.KeyPattern, "key-pattern", "", "Redis key pattern")
	f.StringVar(&extractReq.Index, "index", "", "Elasticsearch index")
	f.StringVar(&expectedHeaders, "expected-headers", "", `expected columns as a JSON array, e.g. '["id","name"]'`)
	f.StringVarP(&extractReq.Output, "output", "o", "", "output .xlsx path")
	f.BoolVar(&extractReq.Upload, "upload", false, "upload the workbook to object storage")
	_ = extractCmd.MarkFlagRequired("source")
	_ = extractCmd.MarkFlagRequired("connection")
	_ = extractCmd.MarkFlagRequired("output")

	RootCmd.AddCommand(extractCmd)
}
