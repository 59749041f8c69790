package commands

import (
	"context"
	"ezodus-market/internal/components/telemetry"
	"ezodus-market/internal/pipeline"
	"time"

	"github.com/spf13/cobra"
)

var scrapeFlags struct {
	excel   string
	csv     string
	sqlite  string
	fetcher string
	driver  string
	dump    string
}

func init() {
	addScrapeFlags(scrapeCmd)
	rootCmd.AddCommand(scrapeCmd)
}

func addScrapeFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&scrapeFlags.excel, "excel", "", "Writes the result to this .xlsx file.")
	flags.StringVar(&scrapeFlags.csv, "csv", "", "Writes the result to this .csv file.")
	flags.StringVar(&scrapeFlags.sqlite, "sqlite", "", "Writes the result to this sqlite database.")
	flags.StringVar(&scrapeFlags.fetcher, "fetcher", "", `How pages are fetched, "http" or "browser".`)
	flags.StringVar(&scrapeFlags.driver, "driver", "", "The chrome executable used by the browser fetcher.")
	flags.StringVar(&scrapeFlags.dump, "dump-http", "", "Writes every http request and response of the http fetcher into this directory.")
}

// applyScrapeFlags overrides the config with the flags that were set.
func applyScrapeFlags(cmd *cobra.Command, cfg *pipeline.Config) error {
	flags := cmd.Flags()
	if flags.Changed("excel") {
		cfg.OutputExcelPath = scrapeFlags.excel
	}
	if flags.Changed("csv") {
		cfg.OutputCSVPath = scrapeFlags.csv
	}
	if flags.Changed("sqlite") {
		cfg.OutputSQLitePath = scrapeFlags.sqlite
	}
	if flags.Changed("fetcher") {
		cfg.Fetcher = scrapeFlags.fetcher
	}
	if flags.Changed("driver") {
		cfg.DriverPath = scrapeFlags.driver
	}
	if flags.Changed("dump-http") {
		cfg.DumpHTTPDir = scrapeFlags.dump
	}
	return cfg.Validate()
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--excel <out.xlsx>] [--csv <out.csv>] [--sqlite <out.db>] [--fetcher http|browser]",
	Short: "Scrapes the auction listing and the sellers' skills, then exports the table.",
	Long: "Scrapes the auction listing and the sellers' skills, then exports the table.\n" +
		"If no output file is given the table is printed to stdout.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		err = applyScrapeFlags(cmd, &cfg)
		if err != nil {
			return err
		}

		return runWithTelemetry(cmd.Context(), cfg, func(ctx context.Context, tel telemetry.API) error {
			t1 := time.Now()
			result, err := pipeline.Execute(ctx, cfg, cmd.OutOrStdout(), tel)
			if err != nil {
				return err
			}
			logResult(result)
			tel.ReportDebug("scraping time", time.Since(t1).Seconds())
			return nil
		})
	},
}
