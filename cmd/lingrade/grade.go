package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skotani/lingrade/internal/questionbank"
)

func newGradeCommand() *cobra.Command {
	source := SourceYAML

	cmd := &cobra.Command{
		Use:   "grade [bank-id] [question-id] [answer...]",
		Short: "Grade one free-text answer and print the score with feedback",
		Args:  cobra.MinimumNArgs(2),
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

			bank, err := bankRepository.FindByID(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("bankRepository.FindByID(%s) > %w", args[0], err)
			}

			question := findQuestion(bank, args[1])
			if question == nil {
				return fmt.Errorf("question %q not found in bank %q", args[1], args[0])
			}

			gradingQuestion := question.ToGrading()
			answer := strings.Join(args[2:], " ")
			score, feedback := newEngine(cfg).ScoreWithFeedback(&gradingQuestion, answer)

			fmt.Fprintf(cmd.OutOrStdout(), "Score: %d\n", score)
			fmt.Fprintf(cmd.OutOrStdout(), "Feedback: %s\n", feedback)
			return nil
		},
	}

	cmd.Flags().Var(&source, "source", "Where to read banks from (yaml or db)")

	return cmd
}

func findQuestion(bank *questionbank.Bank, questionID string) *questionbank.Question {
	for i := range bank.Questions {
		if bank.Questions[i].ID == questionID {
			return &bank.Questions[i]
		}
	}
	return nil
}
