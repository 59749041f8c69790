package commands

import (
	"context"
	"ezodus-market/internal/components/telemetry"
	"ezodus-market/internal/pipeline"

	"github.com/spf13/cobra"
)

var replayFlags struct {
	auctions   string
	highscores string
}

func init() {
	flags := replayCmd.Flags()
	flags.StringVar(&replayFlags.auctions, "auctions", "", "A saved auction listing page.")
	flags.StringVar(&replayFlags.highscores, "highscores", "", "A directory of saved highscores pages named <skill>_<page>.html.")
	replayCmd.MarkFlagRequired("auctions")
	addScrapeFlags(replayCmd)
	rootCmd.AddCommand(replayCmd)
}

var replayCmd = &cobra.Command{
	Use:   "replay --auctions <auctions.html> [--highscores <dir>]",
	Short: "Runs the scrape against saved pages instead of the live site.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		err = applyScrapeFlags(cmd, &cfg)
		if err != nil {
			return err
		}

		source, err := pipeline.ReplaySource(cfg, replayFlags.auctions, replayFlags.highscores)
		if err != nil {
			return err
		}

		return runWithTelemetry(cmd.Context(), cfg, func(ctx context.Context, tel telemetry.API) error {
			result, err := pipeline.Run(ctx, source, cfg, cmd.OutOrStdout(), tel)
			if err != nil {
				return err
			}
			logResult(result)
			return nil
		})
	},
}
