package auction

import (
	"context"
	"ezodus-market/internal/components/assert"
	"ezodus-market/internal/components/telemetry"
	"ezodus-market/internal/market"
	"ezodus-market/internal/webtable"
	"ezodus-market/pkg/textutil"
	"fmt"
	"strconv"
)

// TableSelector identifies the listing table on the auction page.
const TableSelector = "#sellCharList"

const report_collector_fetch = "collector.fetch"

const (
	nameColumn            = 0
	levelProfessionColumn = 1
	priceColumn           = 2
)

var tracer = telemetry.Tracer("ezodus-market/auction")

type Collector struct {
	source webtable.Source
	tel    telemetry.API
}

func NewCollector(source webtable.Source, tel telemetry.API) Collector {
	assert.NotNil(source, "source")
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	return Collector{
		source: source,
		tel:    telemetry.NewScopedAPI("auction", tel),
	}
}

// Collect reads the auction listing at url, it returns one auction per
// row in page order. Any malformed row fails the whole collection.
func (c Collector) Collect(ctx context.Context, url string) ([]market.Auction, error) {
	ctx, span := tracer.Start(ctx, "Collect")
	defer span.End()

	rows, err := c.source.FetchTable(ctx, url, TableSelector)
	if err != nil {
		c.tel.ReportBroken(report_collector_fetch, err, url)
		return nil, &market.NavigationError{URL: url, Err: err}
	}

	auctions := make([]market.Auction, 0, len(rows))
	for i, row := range rows {
		a, err := ParseRow(row)
		if err != nil {
			return nil, market.AtRow(err, "auction", i)
		}
		auctions = append(auctions, a)
	}

	c.tel.ReportCount("auctions", int64(len(auctions)))
	return auctions, nil
}

// ParseRow parses a single listing row of the form
// (name, "<level> <profession text>", "<price> <currency>").
func ParseRow(row webtable.Row) (market.Auction, error) {
	if len(row) <= priceColumn {
		return market.Auction{}, &market.ParseError{
			Row:   -1,
			Field: "row",
			Value: fmt.Sprint(len(row), " cells"),
			Err:   market.ErrMissingCell,
		}
	}

	name := textutil.Clean(row[nameColumn].Text)
	if name == "" {
		return market.Auction{}, &market.ParseError{
			Row:   -1,
			Field: "name",
			Err:   market.ErrEmptyValue,
		}
	}

	levelProfession := row[levelProfessionColumn].Text
	levelText, professionText := textutil.SplitFirstField(levelProfession)
	level, err := parsePositive("level", levelText)
	if err != nil {
		return market.Auction{}, err
	}
	profession, err := market.FindProfession(professionText)
	if err != nil {
		return market.Auction{}, err
	}

	priceText, _ := textutil.SplitFirstField(row[priceColumn].Text)
	price, err := parsePositive("price", priceText)
	if err != nil {
		return market.Auction{}, err
	}

	return market.Auction{
		Character: market.NewCharacter(name, profession, level),
		Price:     price,
	}, nil
}

func parsePositive(field, text string) (int, error) {
	value, err := strconv.Atoi(text)
	if err != nil {
		return 0, &market.ParseError{Row: -1, Field: field, Value: text, Err: err}
	}
	if value <= 0 {
		return 0, &market.ParseError{Row: -1, Field: field, Value: text, Err: market.ErrNotPositive}
	}
	return value, nil
}

// FormatRow renders the cells of a listing row the way the auction page
// displays them.
func FormatRow(name string, level int, profession string, price int) webtable.Row {
	return webtable.TextRow(
		name,
		fmt.Sprintf("%d %s", level, profession),
		fmt.Sprintf("%d gold", price),
	)
}
