package pipeline

import (
	"ezodus-market/internal/market"
	"ezodus-market/internal/webtable"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReplaySource builds a source out of saved pages so a run can be repeated
// offline. The auction listing is read from auctionsPath and served at
// cfg.AuctionURL. Highscores pages are read from dir, each named
// <skill>_<page>.html (ex. sword_0.html), and served at the url the
// configured template gives for that page.
//
// The page after the last saved one of each skill is served empty, so
// only pages that contain entries need to be saved.
func ReplaySource(cfg Config, auctionsPath, dir string) (*webtable.StaticSource, error) {
	templates, err := cfg.Templates()
	if err != nil {
		return nil, err
	}

	source := webtable.NewStaticSource()

	auctions, err := os.ReadFile(auctionsPath)
	if err != nil {
		return nil, err
	}
	source.AddHTML(cfg.AuctionURL, string(auctions))

	lastPage := make(map[market.Skill]int)
	if dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".html" {
				continue
			}
			skill, page, err := parsePageFilename(entry.Name())
			if err != nil {
				return nil, err
			}
			template, ok := templates[skill]
			if !ok {
				return nil, fmt.Errorf("%s: no highscores url template for skill %s", entry.Name(), skill)
			}

			content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
			if err != nil {
				return nil, err
			}
			source.AddHTML(market.PageURL(template, page), string(content))

			last, seen := lastPage[skill]
			if !seen || page > last {
				lastPage[skill] = page
			}
		}
	}

	for skill, template := range templates {
		last, seen := lastPage[skill]
		if !seen {
			slog.Debug("no saved highscores, replaying an empty list", "skill", skill.String())
			source.AddRows(market.PageURL(template, 0))
			continue
		}
		source.AddRows(market.PageURL(template, last+1))
	}

	return source, nil
}

func parsePageFilename(name string) (market.Skill, int, error) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	skillName, pageText, ok := strings.Cut(base, "_")
	if !ok {
		return 0, 0, fmt.Errorf("%s: expected <skill>_<page>.html", name)
	}
	skill, err := market.ParseSkill(skillName)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", name, err)
	}
	page, err := strconv.Atoi(pageText)
	if err != nil || page < 0 {
		return 0, 0, fmt.Errorf("%s: invalid page number %q", name, pageText)
	}
	return skill, page, nil
}
