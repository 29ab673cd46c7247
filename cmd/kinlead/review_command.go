package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"kinlead/internal/genealogy/models"
	id "kinlead/pkg/domain"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Work the queue of provisional merges",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List pending review candidates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd.Context(), func(a *app) error {
				pending, err := a.review().Pending(cmd.Context())
				if err != nil {
					return err
				}
				return printCandidates(cmd, ctx, pending)
			})
		},
	})
	cmd.AddCommand(newVerdictCommand(ctx, "confirm", "Accept a provisional merge", func(a *app) verdictFunc {
		return a.review().Confirm
	}))
	cmd.AddCommand(newVerdictCommand(ctx, "reject", "Mark a provisional merge as wrong", func(a *app) verdictFunc {
		return a.review().Reject
	}))
	return cmd
}

type verdictFunc func(ctx context.Context, candidateID id.CandidateID) (*models.MatchCandidate, error)

func newVerdictCommand(ctx *commandContext, use, short string, pick func(*app) verdictFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " CANDIDATE_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			candidateID, err := id.ParseCandidateID(args[0])
			if err != nil {
				return fmt.Errorf("invalid candidate id %q: %w", args[0], err)
			}
			return ctx.withApp(cmd.Context(), func(a *app) error {
				c, err := pick(a)(cmd.Context(), candidateID)
				if err != nil {
					return err
				}
				return printCandidates(cmd, ctx, []*models.MatchCandidate{c})
			})
		},
	}
}

func printCandidates(cmd *cobra.Command, ctx *commandContext, candidates []*models.MatchCandidate) error {
	rows := make([][]string, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, []string{
			c.ID.String(),
			c.PersonA.String(),
			c.RecordID.String(),
			strconv.FormatFloat(c.Score, 'f', 3, 64),
			string(c.Status),
		})
	}
	headers := []string{"Candidate", "Person", "Record", "Score", "Status"}
	return emit(cmd, ctx, candidates, headers, rows, []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight})
}
