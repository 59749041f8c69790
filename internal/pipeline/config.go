package pipeline

import (
	"errors"
	"ezodus-market/internal/components/configutil"
	"ezodus-market/internal/components/telemetry"
	"ezodus-market/internal/market"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	FetcherHTTP    = "http"
	FetcherBrowser = "browser"
)

type Config struct {
	AuctionURL        string            `json:"auction_url"`
	// skill name -> url template containing market.PagePlaceholder,
	// entries are merged over the built-in templates
	SkillURLTemplates map[string]string `json:"skill_url_templates"`

	OutputExcelPath  string `json:"output_excel_path"`
	OutputCSVPath    string `json:"output_csv_path"`
	OutputSQLitePath string `json:"output_sqlite_path"`

	// "http" or "browser"
	Fetcher                 string `json:"fetcher"`
	// browser executable used when Fetcher is "browser"
	DriverPath              string `json:"driver_path"`
	HTTPTimeout             string `json:"http_timeout"`
	DisableCloudflareBypass bool   `json:"disable_cloudflare_bypass"`
	// writes every http exchange of the "http" fetcher into this directory
	DumpHTTPDir             string `json:"dump_http_dir"`

	Telemetry telemetry.Config `json:"telemetry"`
}

func DefaultConfig() Config {
	templates := make(map[string]string)
	for skill, template := range market.DefaultSkillURLTemplates() {
		templates[skill.Key()] = template
	}
	return Config{
		AuctionURL:        market.DefaultAuctionURL,
		SkillURLTemplates: templates,
		Fetcher:           FetcherHTTP,
		HTTPTimeout:       "30s",
	}
}

// LoadConfig reads the config at path (and its .local override), missing
// values are taken from DefaultConfig. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg, err := configutil.ReadConfig[Config](path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg.SkillURLTemplates, err = normalizeSkillKeys(cfg.SkillURLTemplates)
	if err != nil {
		return Config{}, err
	}
	err = configutil.WithDefaults(&cfg, DefaultConfig())
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// normalizeSkillKeys rewrites every key to market.Skill.Key() so entries
// line up with the defaults when merged.
func normalizeSkillKeys(templates map[string]string) (map[string]string, error) {
	if templates == nil {
		return nil, nil
	}
	out := make(map[string]string, len(templates))
	for name, template := range templates {
		skill, err := market.ParseSkill(name)
		if err != nil {
			return nil, fmt.Errorf("skill_url_templates: %w", err)
		}
		out[skill.Key()] = template
	}
	return out, nil
}

func (c Config) Validate() error {
	if c.AuctionURL == "" {
		return fmt.Errorf("auction_url must be set")
	}
	switch c.Fetcher {
	case FetcherHTTP, FetcherBrowser:
	default:
		return fmt.Errorf("unknown fetcher %q, expected %q or %q", c.Fetcher, FetcherHTTP, FetcherBrowser)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	if _, err := c.Templates(); err != nil {
		return err
	}
	return nil
}

func (c Config) Timeout() (time.Duration, error) {
	if c.HTTPTimeout == "" {
		return 0, nil
	}
	timeout, err := time.ParseDuration(c.HTTPTimeout)
	if err != nil {
		return 0, fmt.Errorf("http_timeout: %w", err)
	}
	return timeout, nil
}

// Templates resolves the configured skill names.
func (c Config) Templates() (map[market.Skill]string, error) {
	out := make(map[market.Skill]string, len(c.SkillURLTemplates))
	for name, template := range c.SkillURLTemplates {
		skill, err := market.ParseSkill(name)
		if err != nil {
			return nil, fmt.Errorf("skill_url_templates: %w", err)
		}
		if !strings.Contains(template, market.PagePlaceholder) {
			return nil, fmt.Errorf("skill_url_templates.%s: missing %s placeholder", name, market.PagePlaceholder)
		}
		out[skill] = template
	}
	return out, nil
}
