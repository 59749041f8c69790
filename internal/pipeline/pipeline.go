// Package pipeline runs the whole job: collect the auction listing, look up
// the sellers' skills on the highscores, export the result.
package pipeline

import (
	"context"
	"ezodus-market/internal/auction"
	"ezodus-market/internal/components/telemetry"
	"ezodus-market/internal/export"
	"ezodus-market/internal/highscores"
	"ezodus-market/internal/market"
	"ezodus-market/internal/webtable"
	"fmt"
	"io"
)

const report_pipeline_close_source = "pipeline.close-source"

var tracer = telemetry.Tracer("ezodus-market/pipeline")

type Result struct {
	Auctions   []market.Auction
	Highscores highscores.Report
	// files written by the exporter, empty if the table was printed
	Written []string
}

// OpenSource creates the page source selected by cfg.Fetcher.
func OpenSource(ctx context.Context, cfg Config, tel telemetry.API) (webtable.Source, error) {
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	switch cfg.Fetcher {
	case FetcherBrowser:
		source, err := webtable.NewBrowserSource(ctx, webtable.BrowserOptions{
			ExecPath:  cfg.DriverPath,
			Timeout:   timeout,
			Telemetry: tel,
		})
		if err != nil {
			return nil, err
		}
		return source, nil
	case FetcherHTTP, "":
		source, err := webtable.NewHTTPSource(webtable.HTTPOptions{
			Timeout:          timeout,
			CloudflareBypass: !cfg.DisableCloudflareBypass,
			DumpDir:          cfg.DumpHTTPDir,
			Telemetry:        tel,
		})
		if err != nil {
			return nil, err
		}
		return source, nil
	}
	return nil, fmt.Errorf("unknown fetcher %q", cfg.Fetcher)
}

// Execute opens the configured source and runs the job with it.
func Execute(ctx context.Context, cfg Config, console io.Writer, tel telemetry.API) (Result, error) {
	source, err := OpenSource(ctx, cfg, tel)
	if err != nil {
		return Result{}, fmt.Errorf("open %s source: %w", cfg.Fetcher, err)
	}
	return Run(ctx, source, cfg, console, tel)
}

// Run collects, enriches and exports the auctions. It takes ownership of
// source and closes it before returning, whether the run failed or not.
func Run(ctx context.Context, source webtable.Source, cfg Config, console io.Writer, tel telemetry.API) (result Result, err error) {
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	defer func() {
		closeErr := source.Close()
		if closeErr != nil {
			tel.ReportWarning(report_pipeline_close_source, closeErr)
		}
	}()

	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	templates, err := cfg.Templates()
	if err != nil {
		return result, err
	}

	result.Auctions, err = auction.NewCollector(source, tel).Collect(ctx, cfg.AuctionURL)
	if err != nil {
		return result, fmt.Errorf("collect auctions: %w", err)
	}

	characters := market.CharactersOf(result.Auctions)
	result.Highscores, err = highscores.NewEnricher(source, templates, tel).Enrich(ctx, characters)
	if err != nil {
		return result, fmt.Errorf("enrich skills: %w", err)
	}

	exporter := export.NewExporter(export.Options{
		ExcelPath:  cfg.OutputExcelPath,
		CSVPath:    cfg.OutputCSVPath,
		SQLitePath: cfg.OutputSQLitePath,
		Console:    console,
	}, tel)
	result.Written, err = exporter.Export(ctx, result.Auctions)
	if err != nil {
		return result, err
	}

	return result, nil
}
