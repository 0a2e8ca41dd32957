package cmd

import (
	"fmt"

	"data-extractor/core/fault"
	"data-extractor/feature/pipeline"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var updateReq pipeline.UpdateRequest
var fieldUpdates string

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update one record of a TrueTabs datasheet",
	Long:  `Sends the fields in --field-updates to one record. The API token is read from TRUETABS_API_TOKEN.`,
	Example: `  data-extractor update --source truetabs --collection dstXXXX --record-id recXXXX \
    --field-updates '{"Status":"done"}'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := updateReq
		if fieldUpdates != "" {
			fields, err := parseFields(fieldUpdates)
			if err != nil {
				return err
			}
			req.Fields = fields
		}

		_, logg, svc, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		raw, err := svc.Update(cmd.Context(), req)
		if err != nil {
			return err
		}
		logg.Info("Record updated", zap.String("datasheet", req.DatasheetID), zap.String("record", req.RecordID))
		fmt.Fprintln(cmd.OutOrStdout(), string(raw))
		return nil
	},
}

// parseFields decodes a JSON object of field updates.
func parseFields(raw string) (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fault.Configuration("truetabs", "invalid JSON for --field-updates: %v", err)
	}
	return fields, nil
}

func init() {
	f := updateCmd.Flags()
	f.StringVarP(&updateReq.Target, "source", "s", "truetabs", "update target")
	f.StringVar(&updateReq.DatasheetID, "collection", "", "datasheet ID")
	f.StringVar(&updateReq.RecordID, "record-id", "", "record ID")
	f.StringVar(&fieldUpdates, "field-updates", "", "fields to set as a JSON object")
	_ = updateCmd.MarkFlagRequired("collection")
	_ = updateCmd.MarkFlagRequired("record-id")
	_ = updateCmd.MarkFlagRequired("field-updates")

	RootCmd.AddCommand(updateCmd)
}
