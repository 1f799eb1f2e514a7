package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kapu/kokkai-giin-go/internal/app"
	"github.com/kapu/kokkai-giin-go/internal/config"
	"github.com/kapu/kokkai-giin-go/internal/util"
)

var (
	container *app.Container
	logger    *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "giin",
	Short:         "giin scrapes the National Diet member directories and serves the result.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err = util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		buildCtx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		container, err = app.Build(buildCtx, cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to assemble application services: %w", err)
		}
		return nil
	},
}

func ExecuteContext(ctx context.Context) {
	if err := execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// execute runs the command tree and always releases the container, since
// cobra skips post-run hooks when a command fails.
func execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && logger != nil {
		logger.Error("Command failed", zap.Error(err))
	}
	teardown()
	return err
}

func teardown() {
	if container != nil {
		container.Close()
		container = nil
	}
	if logger != nil {
		_ = logger.Sync()
		logger = nil
	}
}
