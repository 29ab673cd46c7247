package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kinlead/internal/platform/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			shown := *cfg
			if shown.Graph.Password != "" {
				shown.Graph.Password = "redacted"
			}
			return printConfig(cmd, shown)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:         "defaults",
		Short:       "Print the built-in defaults as TOML",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfig": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfig(cmd, config.Default())
		},
	})
	return cmd
}

func printConfig(cmd *cobra.Command, cfg config.Config) error {
	body, err := config.Encode(cfg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), body)
	return err
}
