package commands

import (
	"context"
	"ezodus-market/internal/components/telemetry"
	"ezodus-market/internal/pipeline"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const serviceName = "ezodus-market"

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "market",
	Short: "market is a CLI for scraping the ezodus character auctions along with the sellers' skills.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json5", "The config file to read, a <name>.local.json5 next to it overrides its values.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enables debug logging.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (pipeline.Config, error) {
	cfg, err := pipeline.LoadConfig(configPath)
	if err != nil {
		return pipeline.Config{}, fmt.Errorf("load %s: %w", configPath, err)
	}
	pipeline.ApplyEnv(&cfg, os.Getenv)
	return cfg, cfg.Validate()
}

// runWithTelemetry sets up the otlp exporters for the duration of fn and
// flushes them afterwards.
func runWithTelemetry(ctx context.Context, cfg pipeline.Config, fn func(ctx context.Context, tel telemetry.API) error) error {
	otel, err := telemetry.Setup(ctx, serviceName, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		// the run context may already be cancelled
		err := otel.Shutdown(context.WithoutCancel(ctx))
		if err != nil {
			slog.Warn("failed to shutdown telemetry", "err", err)
		}
	}()

	tel := telemetry.SlogAPI{}
	err = fn(ctx, tel)
	telemetry.ReportProcessStats(ctx, tel)
	return err
}

func logResult(result pipeline.Result) {
	for _, skill := range result.Highscores.Skills {
		slog.Info(
			"highscores",
			"skill", skill.Skill.String(),
			"pending", skill.Pending,
			"matched", skill.Matched,
			"pages", skill.Pages,
		)
	}
	slog.Info(
		"done",
		"auctions", len(result.Auctions),
		"fetches", result.Highscores.Fetches(),
		"written", result.Written,
	)
}
