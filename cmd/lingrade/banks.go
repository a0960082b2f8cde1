package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skotani/lingrade/internal/database"
	"github.com/skotani/lingrade/internal/questionbank/remote"
	"github.com/skotani/lingrade/schemas"
)

const defaultSyncRetryAttempts = 3

func newBanksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "banks",
		Short: "Manage local and hosted question banks",
	}
	cmd.AddCommand(newBanksListCommand())
	cmd.AddCommand(newBanksSyncCommand())
	cmd.AddCommand(newBanksMigrateCommand())
	return cmd
}

func newBanksMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the bank and attempt tables in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			if err := database.Migrate(cmd.Context(), db, schemas.Migrations, "migrations"); err != nil {
				return fmt.Errorf("database.Migrate > %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
			return nil
		},
	}
}

func newBanksListCommand() *cobra.Command {
	source := SourceYAML

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available question banks",
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

			banks, err := bankRepository.FindAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("bankRepository.FindAll > %w", err)
			}
			for _, bank := range banks {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d questions\n", bank.ID, bank.Title, len(bank.Questions))
			}
			return nil
		},
	}

	cmd.Flags().Var(&source, "source", "Where to read banks from (yaml or db)")

	return cmd
}

func newBanksSyncCommand() *cobra.Command {
	var directory string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Download hosted question banks into the local YAML directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cfg.Remote.BaseURL == "" {
				return fmt.Errorf("remote.base_url must be configured to sync banks")
			}

			if directory == "" {
				if len(cfg.Banks.Directories) == 0 {
					return fmt.Errorf("no bank directory configured to sync into")
				}
				directory = cfg.Banks.Directories[0]
			}

			client := remote.NewClient(
				cfg.Remote.BaseURL,
				cfg.Remote.APIKey,
				defaultSyncRetryAttempts,
				cfg.Remote.CacheDirectory,
			)
			written, err := client.Sync(cmd.Context(), directory)
			if err != nil {
				return fmt.Errorf("client.Sync > %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Synced %d banks into %s\n", written, directory)
			return nil
		},
	}

	cmd.Flags().StringVar(&directory, "dir", "", "Directory to write synced banks into (defaults to the first configured bank directory)")

	return cmd
}
