package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skotani/lingrade/internal/cli"
)

func newValidateCommand() *cobra.Command {
	source := SourceYAML

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check every question bank for authoring errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			bankRepository, _, closer, err := newRepositories(cfg, source)
			if err != nil {
				return err
			}
			if closer != nil {
				defer func() {
					_ = closer()
				}()
			}

			return cli.ValidateBanks(cmd.Context(), bankRepository, cmd.OutOrStdout())
		},
	}

	cmd.Flags().Var(&source, "source", "Where to read banks from (yaml or db)")

	return cmd
}
