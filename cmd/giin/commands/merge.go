package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kapu/kokkai-giin-go/internal/domain"
)

func init() {
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(runCmd)
}

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merges both chamber collections into the canonical politicians.json.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mergeCollections(cmd.Context())
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scrapes both chambers, then merges them.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		scrapeErr := scrapeChambers(cmd.Context(), domain.Chambers)
		if cmd.Context().Err() != nil {
			return cmd.Context().Err()
		}
		if err := mergeCollections(cmd.Context()); err != nil {
			return err
		}
		return scrapeErr
	},
}

func mergeCollections(ctx context.Context) error {
	result, err := container.Merger().Merge(ctx)
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	if !result.Written {
		fmt.Println("No members found in either chamber collection; canonical file left unchanged")
		return nil
	}

	fmt.Printf("Merged %d members (%d 衆議院, %d 参議院) into %s\n",
		len(result.Records),
		result.Counts[domain.ChamberRepresentatives],
		result.Counts[domain.ChamberCouncillors],
		result.Path,
	)
	return nil
}
