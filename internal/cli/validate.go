package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/skotani/lingrade/internal/questionbank"
)

// ValidateBanks loads every bank and reports authoring errors. It
// returns an error when any bank is broken so the command exits
// non-zero.
func ValidateBanks(ctx context.Context, repository questionbank.Repository, out io.Writer) error {
	banks, err := repository.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("repository.FindAll > %w", err)
	}
	if len(banks) == 0 {
		fmt.Fprintln(out, "No banks found.")
		return nil
	}

	broken := 0
	for _, bank := range banks {
		errs := bank.Validate()
		if len(errs) == 0 {
			fmt.Fprintf(out, "%s %s: %d questions\n", color.GreenString("ok"), bank.ID, len(bank.Questions))
			continue
		}

		broken++
		fmt.Fprintf(out, "%s %s:\n", color.RedString("broken"), bank.ID)
		for _, err := range errs {
			fmt.Fprintf(out, "  - %v\n", err)
		}
	}

	if broken > 0 {
		return fmt.Errorf("%d of %d banks have authoring errors", broken, len(banks))
	}
	return nil
}
