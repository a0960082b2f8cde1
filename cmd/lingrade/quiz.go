package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skotani/lingrade/internal/bootstrap"
	"github.com/skotani/lingrade/internal/cli"
)

func newQuizCommand() *cobra.Command {
	source := SourceYAML
	var shuffle bool

	cmd := &cobra.Command{
		Use:   "quiz [bank-id]",
		Short: "Run an interactive quiz session over a question bank",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			bankRepository, attemptRepository, closer, err := newRepositories(cfg, source)
			if err != nil {
				return err
			}

			app := bootstrap.New()
			if closer != nil {
				app.AddShutdownHook(func(ctx context.Context) error {
					return closer()
				})
				defer func() {
					_ = closer()
				}()
			}

			quizCLI, err := cli.NewQuizCLI(
				cmd.Context(),
				bankRepository,
				attemptRepository,
				newEngine(cfg),
				args[0],
				shuffle,
			)
			if err != nil {
				return fmt.Errorf("cli.NewQuizCLI > %w", err)
			}

			// An interrupted session still keeps its attempt history.
			app.AddShutdownHook(quizCLI.Flush)

			return app.Run(cmd.Context(), func(ctx context.Context) error {
				if err := quizCLI.Run(ctx, quizCLI); err != nil {
					return fmt.Errorf("quizCLI.Run > %w", err)
				}
				return quizCLI.Flush(ctx)
			})
		},
	}

	cmd.Flags().Var(&source, "source", "Where to read banks and record attempts (yaml or db)")
	cmd.Flags().BoolVar(&shuffle, "shuffle", false, "Shuffle the question order")

	return cmd
}
