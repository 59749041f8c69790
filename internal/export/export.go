package export

import (
	"context"
	"ezodus-market/internal/components/telemetry"
	"ezodus-market/internal/market"
	"fmt"
	"io"
	"os"
)

const report_exporter_write = "exporter.write"

var tracer = telemetry.Tracer("ezodus-market/export")

type Options struct {
	ExcelPath  string
	CSVPath    string
	SQLitePath string
	// where the table is printed when no file path is set, defaults to
	// os.Stdout
	Console io.Writer
}

func (o Options) hasFiles() bool {
	return o.ExcelPath != "" || o.CSVPath != "" || o.SQLitePath != ""
}

type Exporter struct {
	opts Options
	tel  telemetry.API
}

func NewExporter(opts Options, tel telemetry.API) Exporter {
	if opts.Console == nil {
		opts.Console = os.Stdout
	}
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	return Exporter{opts: opts, tel: telemetry.NewScopedAPI("export", tel)}
}

// Export writes the auctions to every configured file, or prints them as a
// table if no file is configured. It returns the paths written to.
func (e Exporter) Export(ctx context.Context, auctions []market.Auction) ([]string, error) {
	ctx, span := tracer.Start(ctx, "Export")
	defer span.End()

	records := Records(auctions)

	if !e.opts.hasFiles() {
		RenderTable(e.opts.Console, records)
		return nil, nil
	}

	sinks := []struct {
		path  string
		write func(string) error
	}{
		{e.opts.ExcelPath, func(path string) error { return WriteExcel(path, records) }},
		{e.opts.CSVPath, func(path string) error { return WriteCSV(path, records) }},
		{e.opts.SQLitePath, func(path string) error { return WriteSQLite(ctx, path, records) }},
	}

	var written []string
	for _, sink := range sinks {
		if sink.path == "" {
			continue
		}
		err := sink.write(sink.path)
		if err != nil {
			e.tel.ReportBroken(report_exporter_write, err, sink.path)
			return written, fmt.Errorf("export %s: %w", sink.path, err)
		}
		e.tel.ReportDebug("wrote export", sink.path, len(records))
		written = append(written, sink.path)
	}

	return written, nil
}
