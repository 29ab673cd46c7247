package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"kinlead/internal/leads"
)

func newLeadsCommand(ctx *commandContext) *cobra.Command {
	var minScore int
	var limit int

	cmd := &cobra.Command{
		Use:   "leads",
		Short: "List persons with a qualifying ancestor, best first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd.Context(), func(a *app) error {
				list, err := a.leads().ListLeads(cmd.Context(), minScore, limit)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(list))
				for _, l := range list {
					rows = append(rows, leadRow(l))
				}
				return emit(cmd, ctx, list, leadHeaders, rows, leadAligns)
			})
		},
	}
	cmd.Flags().IntVar(&minScore, "min-score", 0, "Only leads scoring at least this much")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of leads")

	cmd.AddCommand(&cobra.Command{
		Use:   "show PERSON_ID",
		Short: "Show the lead for one person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			personID, err := parsePersonID(args[0])
			if err != nil {
				return err
			}
			return ctx.withApp(cmd.Context(), func(a *app) error {
				lead, err := a.leads().GetLead(cmd.Context(), personID)
				if err != nil {
					return err
				}
				return emit(cmd, ctx, lead, leadHeaders, [][]string{leadRow(*lead)}, leadAligns)
			})
		},
	})
	return cmd
}

var (
	leadHeaders = []string{"Person", "Name", "Score", "Confidence", "Ancestor", "Relation", "Naturalized", "Last known address"}
	leadAligns  = []columnAlignment{alignLeft, alignLeft, alignRight}
)

func leadRow(l leads.Lead) []string {
	naturalized := ""
	if !l.Ancestor.NaturalizationDate.IsZero() {
		naturalized = l.Ancestor.NaturalizationDate.String()
	}
	return []string{
		l.PersonID.String(),
		l.Name,
		strconv.Itoa(l.Score.Total),
		string(l.Score.Confidence),
		l.Ancestor.Name,
		string(l.Ancestor.Relation),
		naturalized,
		l.LastKnownAddress,
	}
}
