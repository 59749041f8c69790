package pipeline

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// environment variables that override the config file
const (
	EnvFetcher         = "EZODUS_FETCHER"
	EnvDriverPath      = "EZODUS_DRIVER_PATH"
	EnvOtlpTracesGrpc  = "EZODUS_OTLP_TRACES_GRPC_ENDPOINT"
	EnvOtlpTracesHttp  = "EZODUS_OTLP_TRACES_HTTP_ENDPOINT"
	EnvOtlpMetricsGrpc = "EZODUS_OTLP_METRICS_GRPC_ENDPOINT"
	EnvOtlpMetricsHttp = "EZODUS_OTLP_METRICS_HTTP_ENDPOINT"
)

// LoadDotEnv loads the given .env files (".env" if none are given) into
// the process environment, variables that are already set win.
func LoadDotEnv(filenames ...string) {
	err := godotenv.Load(filenames...)
	if err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}
}

// ApplyEnv overrides cfg with the non-empty variables returned by getenv,
// pass os.Getenv outside of tests.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	set := func(dst *string, key string) {
		if value := getenv(key); value != "" {
			*dst = value
		}
	}
	set(&cfg.Fetcher, EnvFetcher)
	set(&cfg.DriverPath, EnvDriverPath)
	set(&cfg.Telemetry.Otlp.Traces.GrpcEndpoint, EnvOtlpTracesGrpc)
	set(&cfg.Telemetry.Otlp.Traces.HttpEndpoint, EnvOtlpTracesHttp)
	set(&cfg.Telemetry.Otlp.Metrics.GrpcEndpoint, EnvOtlpMetricsGrpc)
	set(&cfg.Telemetry.Otlp.Metrics.HttpEndpoint, EnvOtlpMetricsHttp)
}
