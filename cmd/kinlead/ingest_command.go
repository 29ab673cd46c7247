package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"kinlead/internal/ingest"
	id "kinlead/pkg/domain"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var sourceFlag string

	cmd := &cobra.Command{
		Use:   "ingest FILE...",
		Short: "Ingest JSON arrays of source records as one batch",
		Long: `Each file holds a JSON array of source payloads. The source type is taken
from --source-type, or inferred from the file name (naturalization, petition,
passenger, manifest, immigration, census, obit, birth).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var items []ingest.Item
			for _, file := range args {
				fileItems, err := readItems(file, id.SourceType(sourceFlag))
				if err != nil {
					return err
				}
				items = append(items, fileItems...)
			}

			return ctx.withApp(cmd.Context(), func(a *app) error {
				out, err := a.pipeline().RunBatch(cmd.Context(), id.NewBatchID(), items)
				if out != nil {
					if werr := printOutcome(cmd, ctx, out); werr != nil && err == nil {
						err = werr
					}
				}
				return err
			})
		},
	}

	cmd.Flags().StringVar(&sourceFlag, "source-type", "", "Source type of every file (naturalization, immigration, census, obituary, birth)")
	return cmd
}

func readItems(file string, sourceType id.SourceType) ([]ingest.Item, error) {
	if sourceType == "" {
		inferred, ok := ingest.InferSourceType(file)
		if !ok {
			return nil, fmt.Errorf("%s: cannot infer source type from file name, pass --source-type", file)
		}
		sourceType = inferred
	}
	if !sourceType.IsValid() {
		return nil, fmt.Errorf("unknown source type %q", sourceType)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	var payloads []json.RawMessage
	if err := json.Unmarshal(data, &payloads); err != nil {
		return nil, fmt.Errorf("%s: expected a JSON array of records: %w", file, err)
	}
	items := make([]ingest.Item, 0, len(payloads))
	for _, p := range payloads {
		items = append(items, ingest.Item{SourceType: sourceType, Payload: p})
	}
	return items, nil
}

func printOutcome(cmd *cobra.Command, ctx *commandContext, out *ingest.Outcome) error {
	rows := [][]string{
		{"batch", out.BatchID.String()},
		{"status", string(out.Status)},
		{"items", strconv.Itoa(out.TotalItems)},
		{"records processed", strconv.Itoa(out.RecordsProcessed)},
		{"created", strconv.Itoa(out.Created)},
		{"merged", strconv.Itoa(out.Merged)},
		{"flagged for review", strconv.Itoa(out.Reviewed)},
		{"addresses linked", strconv.Itoa(out.AddressesLinked)},
		{"skipped", strconv.Itoa(out.Skipped)},
		{"duration", out.Duration().String()},
	}
	if out.Error != "" {
		rows = append(rows, []string{"error", out.Error})
	}
	return emit(cmd, ctx, out, []string{"Field", "Value"}, rows, nil)
}
