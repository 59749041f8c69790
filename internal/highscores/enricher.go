package highscores

import (
	"context"
	"errors"
	"ezodus-market/internal/components/assert"
	"ezodus-market/internal/components/telemetry"
	"ezodus-market/internal/market"
	"ezodus-market/internal/webtable"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TableSelector identifies the ranking table on a highscores page.
const TableSelector = ".gunz-table"

const (
	report_enricher_fetch        = "enricher.fetch-page"
	report_enricher_skill_result = "enricher.skill-result"
)

const (
	nameColumn  = 1
	valueColumn = 2
)

var tracer = telemetry.Tracer("ezodus-market/highscores")

// Entry is a single ranked character on a highscores page.
type Entry struct {
	Name  string
	Value int
}

type SkillReport struct {
	Skill market.Skill
	// amount of characters that needed this skill
	Pending int
	// amount of pages fetched, including the final empty one
	Pages   int
	Matched int
}

type Report struct {
	Skills []SkillReport
}

// Fetches returns the total amount of pages fetched.
func (r Report) Fetches() int {
	total := 0
	for _, s := range r.Skills {
		total += s.Pages
	}
	return total
}

type Enricher struct {
	source    webtable.Source
	templates map[market.Skill]string
	tel       telemetry.API
}

// NewEnricher creates an Enricher reading the highscores of each skill
// from templates[skill], see market.PageURL.
func NewEnricher(source webtable.Source, templates map[market.Skill]string, tel telemetry.API) Enricher {
	assert.NotNil(source, "source")
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	return Enricher{
		source:    source,
		templates: templates,
		tel:       telemetry.NewScopedAPI("highscores", tel),
	}
}

// PendingIndex maps each skill to the names of the characters whose
// profession makes the skill applicable.
func PendingIndex(characters []*market.Character) map[market.Skill]map[string]struct{} {
	index := make(map[market.Skill]map[string]struct{})
	for _, c := range characters {
		for _, skill := range market.ApplicableSkills(c.Profession) {
			names, ok := index[skill]
			if !ok {
				names = make(map[string]struct{})
				index[skill] = names
			}
			names[c.Name] = struct{}{}
		}
	}
	return index
}

// Enrich pages through the highscores of every skill at least one of the
// characters needs and stores the values found on the characters. Skills
// nobody needs are never fetched. Characters missing from a highscores
// list are left without a value for that skill.
func (e Enricher) Enrich(ctx context.Context, characters []*market.Character) (Report, error) {
	ctx, span := tracer.Start(ctx, "Enrich")
	defer span.End()

	// a name may be listed more than once
	byName := make(map[string][]*market.Character, len(characters))
	for _, c := range characters {
		byName[c.Name] = append(byName[c.Name], c)
	}
	pending := PendingIndex(characters)

	for _, skill := range market.Skills() {
		if len(pending[skill]) == 0 {
			continue
		}
		if _, ok := e.templates[skill]; !ok {
			return Report{}, fmt.Errorf("no highscores url template for skill %s", skill)
		}
	}

	var report Report
	for _, skill := range market.Skills() {
		names := pending[skill]
		if len(names) == 0 {
			continue
		}

		result, err := e.enrichSkill(ctx, skill, names, byName)
		report.Skills = append(report.Skills, result)
		if err != nil {
			return report, err
		}

		e.tel.ReportDebug(
			report_enricher_skill_result,
			skill.String(), result.Pending, result.Pages, result.Matched,
		)
	}

	return report, nil
}

func (e Enricher) enrichSkill(
	ctx context.Context,
	skill market.Skill,
	names map[string]struct{},
	byName map[string][]*market.Character,
) (SkillReport, error) {
	ctx, span := tracer.Start(ctx, "enrichSkill", trace.WithAttributes(
		attribute.String("skill", skill.String()),
	))
	defer span.End()

	report := SkillReport{Skill: skill, Pending: len(names)}
	source := "highscores/" + skill.Key()
	matched := make(map[string]struct{})

	for page := 0; ; page++ {
		url := market.PageURL(e.templates[skill], page)
		rows, err := e.source.FetchTable(ctx, url, TableSelector)
		report.Pages++
		if err != nil {
			e.tel.ReportBroken(report_enricher_fetch, err, url)
			return report, &market.NavigationError{URL: url, Err: err}
		}

		entries, err := ParsePage(rows)
		if err != nil {
			var perr *market.ParseError
			if errors.As(err, &perr) {
				perr.Source = fmt.Sprintf("%s page %d", source, page)
			}
			return report, err
		}
		if len(entries) == 0 {
			break
		}

		for _, entry := range entries {
			if _, ok := names[entry.Name]; !ok {
				continue
			}
			for _, c := range byName[entry.Name] {
				c.SetSkill(skill, entry.Value)
			}
			matched[entry.Name] = struct{}{}
		}
	}

	report.Matched = len(matched)
	span.SetAttributes(
		attribute.Int("pages", report.Pages),
		attribute.Int("matched", report.Matched),
	)
	return report, nil
}

// ParsePage extracts the ranked entries of a highscores page. The rank
// column is ignored, the name is the text of the link in the second
// column. A leading header row is skipped.
func ParsePage(rows []webtable.Row) ([]Entry, error) {
	var entries []Entry
	for i, row := range rows {
		if isHeader(i, row) {
			continue
		}
		entry, err := parseRow(row)
		if err != nil {
			return nil, market.AtRow(err, "", i)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func isHeader(i int, row webtable.Row) bool {
	if row.IsHeader() {
		return true
	}
	// data rows always link to the character
	return i == 0 && (len(row) <= nameColumn || row[nameColumn].Link == "")
}

func parseRow(row webtable.Row) (Entry, error) {
	if len(row) <= valueColumn {
		return Entry{}, &market.ParseError{
			Field: "row",
			Value: fmt.Sprint(len(row), " cells"),
			Err:   market.ErrMissingCell,
		}
	}
	name := row[nameColumn].Link
	if name == "" {
		return Entry{}, &market.ParseError{
			Field: "name",
			Value: row[nameColumn].Text,
			Err:   market.ErrEmptyValue,
		}
	}
	value, err := strconv.Atoi(row[valueColumn].Text)
	if err != nil {
		return Entry{}, &market.ParseError{
			Field: "value",
			Value: row[valueColumn].Text,
			Err:   err,
		}
	}
	return Entry{Name: name, Value: value}, nil
}
