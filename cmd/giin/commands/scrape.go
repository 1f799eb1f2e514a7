package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kapu/kokkai-giin-go/internal/domain"
	"github.com/kapu/kokkai-giin-go/internal/util"
)

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:       "scrape [lower|upper|all]",
	Short:     "Scrapes one or both chamber directories into their collection files.",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"lower", "upper", "all"},
	RunE: func(cmd *cobra.Command, args []string) error {
		target := "all"
		if len(args) == 1 {
			target = args[0]
		}

		chambers, err := chambersFor(target)
		if err != nil {
			return err
		}
		return scrapeChambers(cmd.Context(), chambers)
	},
}

func chambersFor(target string) ([]domain.Chamber, error) {
	if target == "" || target == "all" {
		return domain.Chambers, nil
	}
	chamber, ok := domain.ParseChamber(target)
	if !ok {
		return nil, fmt.Errorf("unknown chamber %q, expected lower, upper or all", target)
	}
	return []domain.Chamber{chamber}, nil
}

// scrapeChambers runs each chamber in turn. A structural failure in one
// chamber does not stop the next; all failures are returned together.
func scrapeChambers(ctx context.Context, chambers []domain.Chamber) error {
	var errs []error

	for _, chamber := range chambers {
		orchestrator, err := container.Orchestrator(chamber)
		if err != nil {
			return err
		}

		result, err := orchestrator.Run(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error("Chamber scrape failed",
				zap.String("chamber", chamber.String()),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", chamber.Key(), err))
			continue
		}

		fmt.Printf("[%s] %s: %d members written to %s (%d degraded, %d duplicates dropped)\n",
			util.FormatJST(util.NowJST(), "2006-01-02 15:04"),
			chamber, len(result.Records), result.Path, result.Degraded, result.Duplicates)
	}

	return errors.Join(errs...)
}
