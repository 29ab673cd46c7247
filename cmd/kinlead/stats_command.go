package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the person pool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd.Context(), func(a *app) error {
				stats, err := a.stats(cmd.Context())
				if err != nil {
					return err
				}
				rows := [][]string{
					{"persons", strconv.Itoa(stats.TotalPersons)},
					{"raw records", strconv.Itoa(stats.TotalRecords)},
					{"pending review", strconv.Itoa(stats.PendingReview)},
					{"dedup rate", strconv.FormatFloat(stats.DedupRate*100, 'f', 1, 64) + "%"},
				}
				return emit(cmd, ctx, stats, []string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
			})
		},
	}
}
