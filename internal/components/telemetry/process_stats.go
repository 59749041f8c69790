package telemetry

import (
	"context"
	"os"

	"github.com/shirou/gopsutil/v4/process"
	"go.opentelemetry.io/otel"
)

const report_process_stats = "process.stats"

var meter = otel.Meter("ezodus-market.process")
var cpuGauge, _ = meter.Float64Gauge("cpu_usage")
var rssGauge, _ = meter.Int64Gauge("rss_mb")

// ReportProcessStats records the current process' cpu usage and resident
// memory, it is meant to be called once at the end of a run.
func ReportProcessStats(ctx context.Context, tel API) {
	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		tel.ReportWarning(report_process_stats, err)
		return
	}

	cpuUsage, err := proc.CPUPercentWithContext(ctx)
	if err != nil {
		tel.ReportWarning(report_process_stats, err)
		return
	}
	mem, err := proc.MemoryInfoWithContext(ctx)
	if err != nil {
		tel.ReportWarning(report_process_stats, err)
		return
	}
	rss := int64(mem.RSS / 1_000_000)

	cpuGauge.Record(ctx, cpuUsage)
	rssGauge.Record(ctx, rss)
	tel.ReportDebug("process stats", cpuUsage, rss)
}
