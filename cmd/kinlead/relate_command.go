package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kinlead/internal/genealogy/models"
)

func newRelateCommand(ctx *commandContext) *cobra.Command {
	var relType string
	var confidence float64

	cmd := &cobra.Command{
		Use:   "relate PERSON_ID RELATED_PERSON_ID",
		Short: "Record how one person relates to another",
		Long: `Adds a directed edge. With the default type "parent", RELATED_PERSON_ID is
the parent of PERSON_ID. Adding an existing edge is a no-op.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			personID, err := parsePersonID(args[0])
			if err != nil {
				return err
			}
			relatedID, err := parsePersonID(args[1])
			if err != nil {
				return err
			}
			edge := models.RelationshipEdge{
				PersonID:        personID,
				RelatedPersonID: relatedID,
				Type:            models.RelationshipType(relType),
				Confidence:      confidence,
			}
			return ctx.withApp(cmd.Context(), func(a *app) error {
				if _, err := a.persons.FindByID(cmd.Context(), personID); err != nil {
					return fmt.Errorf("person %s: %w", personID, err)
				}
				if _, err := a.persons.FindByID(cmd.Context(), relatedID); err != nil {
					return fmt.Errorf("person %s: %w", relatedID, err)
				}
				created, err := a.relationships.Add(cmd.Context(), edge)
				if err != nil {
					return err
				}
				if ctx.wantJSON() {
					return writeJSON(cmd, map[string]any{"edge": edge, "created": created})
				}
				state := "added"
				if !created {
					state = "already present"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s of %s: %s\n", relatedID, relType, personID, state)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&relType, "type", string(models.RelationshipParent), "Relationship type (parent, child, spouse, sibling)")
	cmd.Flags().Float64Var(&confidence, "confidence", 1.0, "Confidence in the relationship, 0 to 1")
	return cmd
}
