package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kapu/kokkai-giin-go/internal/constants"
	"github.com/kapu/kokkai-giin-go/internal/domain"
	"github.com/kapu/kokkai-giin-go/internal/service/database"
)

var loadDryRun *bool

func init() {
	loadDryRun = loadDBCmd.Flags().Bool("dry-run", false, "Validate the canonical collection without connecting to the database.")
	rootCmd.AddCommand(loadDBCmd)
}

var loadDBCmd = &cobra.Command{
	Use:   "load-db [--dry-run]",
	Short: "Upserts the canonical collection into PostgreSQL.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := container.Store.Load(constants.DataFiles.Canonical)
		if err != nil {
			return fmt.Errorf("failed to read canonical collection: %w", err)
		}

		if *loadDryRun {
			fmt.Fprintln(cmd.OutOrStdout(), "[DRY RUN] no database changes will be made")
			printSummary(cmd.OutOrStdout(), database.Summarize(records))
			return nil
		}

		repo, err := container.PoliticianRepository(cmd.Context())
		if err != nil {
			return err
		}

		summary, err := repo.Upsert(cmd.Context(), records)
		if err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), summary)
		return printStoredCounts(cmd.Context(), cmd.OutOrStdout(), repo)
	},
}

type storedCounter interface {
	Count(ctx context.Context, chamber domain.Chamber) (int, error)
}

// printStoredCounts reports what the table holds after the load, which can
// exceed this run's records when members left office since an earlier load.
func printStoredCounts(ctx context.Context, w io.Writer, counter storedCounter) error {
	total, err := counter.Count(ctx, "")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Stored in database: %d\n", total)
	for _, chamber := range domain.Chambers {
		count, err := counter.Count(ctx, chamber)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s: %d\n", chamber, count)
	}
	return nil
}

func printSummary(w io.Writer, summary *database.LoadSummary) {
	fmt.Fprintln(w, "===== Load Summary =====")
	fmt.Fprintf(w, "Total records:  %d\n", summary.Total)
	fmt.Fprintf(w, "Loaded:         %d\n", summary.Loaded)
	fmt.Fprintf(w, "Skipped:        %d\n", summary.Skipped)
	for _, chamber := range domain.Chambers {
		fmt.Fprintf(w, "  %s: %d\n", chamber, summary.ByChamber[chamber])
	}
}
