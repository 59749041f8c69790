package pipeline

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"ezodus-market/internal/export"
	"ezodus-market/internal/market"
	"ezodus-market/internal/webtable"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.AuctionURL = "auction"
	cfg.SkillURLTemplates = map[string]string{
		"magic":     "magic/{page}",
		"shielding": "shielding/{page}",
		"distance":  "distance/{page}",
		"club":      "club/{page}",
		"sword":     "sword/{page}",
		"axe":       "axe/{page}",
	}
	return cfg
}

func linkRow(rank, name, value string) webtable.Row {
	return webtable.Row{{Text: rank}, {Text: name, Link: name}, {Text: value}}
}

// scenarioSource serves two auctions, a sword board containing Aria and a
// magic board containing Bo.
func scenarioSource() *webtable.StaticSource {
	source := webtable.NewStaticSource()
	source.AddRows(
		"auction",
		webtable.TextRow("Aria", "120 Elite Knight", "5000 gold"),
		webtable.TextRow("Bo", "80 Master Sorcerer", "2000 gold"),
	)
	header := webtable.TextRow("#", "Name", "Level")
	source.AddRows("sword/0", header, linkRow("1", "Aria", "450"))
	source.AddRows("sword/1", header)
	source.AddRows("axe/0", header)
	source.AddRows("club/0", header)
	source.AddRows("magic/0", header, linkRow("1", "Bo", "300"))
	source.AddRows("magic/1", header)
	return source
}

func TestRunScenario(t *testing.T) {
	source := scenarioSource()
	var console bytes.Buffer

	result, err := Run(context.Background(), source, testConfig(), &console, nil)
	require.NoError(t, err)
	require.True(t, source.Closed())
	require.Empty(t, result.Written)

	records := export.Records(result.Auctions)
	require.Equal(t, []string{"Aria", "5000", "KNIGHT", "120", "450", "", "", "", "", ""}, records[0].Strings())
	require.Equal(t, []string{"Bo", "2000", "SORCERER", "80", "", "", "", "", "300", ""}, records[1].Strings())

	// magic is fetched first since skills are visited in declaration order
	require.Equal(t, []string{
		"auction",
		"magic/0", "magic/1",
		"club/0",
		"sword/0", "sword/1",
		"axe/0",
	}, source.Fetches())
	require.Equal(t, 6, result.Highscores.Fetches())

	rendered := console.String()
	require.Contains(t, rendered, "Aria")
	require.Less(t, strings.Index(rendered, "Aria"), strings.Index(rendered, "Bo"))
}

func TestRunWritesCSV(t *testing.T) {
	cfg := testConfig()
	cfg.OutputCSVPath = filepath.Join(t.TempDir(), "auctions.csv")
	var console bytes.Buffer

	result, err := Run(context.Background(), scenarioSource(), cfg, &console, nil)
	require.NoError(t, err)
	require.Equal(t, []string{cfg.OutputCSVPath}, result.Written)
	require.Empty(t, console.String())

	f, err := os.Open(cfg.OutputCSVPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"name", "price", "profession", "lvl", "sword", "axe", "club", "dist", "magic", "shielding"},
		{"Aria", "5000", "KNIGHT", "120", "450", "", "", "", "", ""},
		{"Bo", "2000", "SORCERER", "80", "", "", "", "", "300", ""},
	}, rows)
}

func TestRunClosesSourceOnParseError(t *testing.T) {
	source := webtable.NewStaticSource()
	source.AddRows("auction", webtable.TextRow("Aria", "120 Elite Warrior", "5000 gold"))

	_, err := Run(context.Background(), source, testConfig(), &bytes.Buffer{}, nil)
	var perr *market.ParseError
	require.True(t, errors.As(err, &perr))
	require.True(t, source.Closed())
	require.Equal(t, []string{"auction"}, source.Fetches())
}

func TestRunClosesSourceOnNavigationError(t *testing.T) {
	source := scenarioSource()
	cfg := testConfig()
	cfg.SkillURLTemplates["magic"] = "missing/{page}"

	var console bytes.Buffer
	_, err := Run(context.Background(), source, cfg, &console, nil)
	var nerr *market.NavigationError
	require.True(t, errors.As(err, &nerr))
	require.Equal(t, "missing/0", nerr.URL)
	require.True(t, source.Closed())
	require.Empty(t, console.String())
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.json5"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)

	templates, err := cfg.Templates()
	require.NoError(t, err)
	require.Equal(t, market.DefaultSkillURLTemplates(), templates)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")
	err := os.WriteFile(path, []byte(`{
		"auction_url": "http://localhost/auction",
		"skill_url_templates": {
			"Dist": "http://localhost/distance/{page}",
		},
		"output_csv_path": "auctions.csv",
		"fetcher": "browser",
		"driver_path": "/usr/bin/chromium",
		"http_timeout": "5s",
	}`), 0600)
	require.NoError(t, err)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "http://localhost/auction", cfg.AuctionURL)
	require.Equal(t, "auctions.csv", cfg.OutputCSVPath)
	require.Equal(t, FetcherBrowser, cfg.Fetcher)
	require.Equal(t, "/usr/bin/chromium", cfg.DriverPath)

	templates, err := cfg.Templates()
	require.NoError(t, err)
	require.Equal(t, "http://localhost/distance/{page}", templates[market.Distance])
	require.Equal(t, market.DefaultSkillURLTemplates()[market.Magic], templates[market.Magic])
}

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{name: "fetcher", mutate: func(cfg *Config) { cfg.Fetcher = "telnet" }},
		{name: "timeout", mutate: func(cfg *Config) { cfg.HTTPTimeout = "soon" }},
		{name: "skill", mutate: func(cfg *Config) { cfg.SkillURLTemplates["fishing"] = "fishing/{page}" }},
		{name: "placeholder", mutate: func(cfg *Config) { cfg.SkillURLTemplates["magic"] = "magic/0" }},
		{name: "auction url", mutate: func(cfg *Config) { cfg.AuctionURL = "" }},
	}

	require.NoError(t, DefaultConfig().Validate())
	for _, test := range testCases {
		cfg := DefaultConfig()
		test.mutate(&cfg)
		require.Error(t, cfg.Validate(), test.name)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvFetcher:        FetcherBrowser,
		EnvOtlpTracesHttp: "localhost:4318",
	}
	cfg := DefaultConfig()
	cfg.DriverPath = "/usr/bin/chromium"
	ApplyEnv(&cfg, func(key string) string { return env[key] })

	require.Equal(t, FetcherBrowser, cfg.Fetcher)
	require.Equal(t, "/usr/bin/chromium", cfg.DriverPath)
	require.Equal(t, "localhost:4318", cfg.Telemetry.Otlp.Traces.HttpEndpoint)
	require.Empty(t, cfg.Telemetry.Otlp.Metrics.HttpEndpoint)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	writeFile(t, path, EnvDriverPath+"=/opt/chrome\n")
	t.Setenv(EnvDriverPath, "")
	os.Unsetenv(EnvDriverPath)

	LoadDotEnv(path)
	cfg := DefaultConfig()
	ApplyEnv(&cfg, nil)
	require.Equal(t, "/opt/chrome", cfg.DriverPath)
}
