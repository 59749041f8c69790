package auction

import (
	"context"
	"errors"
	"ezodus-market/internal/market"
	"ezodus-market/internal/webtable"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

const auctionURL = "https://example.test/auction"

func TestParseRowRoundTrip(t *testing.T) {
	testCases := []struct {
		name        string
		level       int
		displayName string
		profession  market.Profession
		price       int
	}{
		{name: "Aria", level: 120, displayName: "Elite Knight", profession: market.Knight, price: 5000},
		{name: "Bo", level: 80, displayName: "Master Sorcerer", profession: market.Sorcerer, price: 2000},
		{name: "Old Man Druid", level: 1, displayName: "Elder Druid", profession: market.Druid, price: 1},
		{name: "Legolas", level: 999, displayName: "Paladin", profession: market.Paladin, price: 123456789},
	}

	for _, test := range testCases {
		row := FormatRow(test.name, test.level, test.displayName, test.price)
		a, err := ParseRow(row)
		require.NoError(t, err, test.name)
		require.Equal(t, test.name, a.Character.Name)
		require.Equal(t, test.level, a.Character.Level)
		require.Equal(t, test.profession, a.Character.Profession)
		require.Equal(t, test.price, a.Price)
		require.Empty(t, a.Character.Skills)
	}
}

func TestParseRowErrors(t *testing.T) {
	testCases := []struct {
		row   webtable.Row
		field string
	}{
		{row: webtable.TextRow("Aria", "120 Elite Knight"), field: "row"},
		{row: webtable.TextRow("  ", "120 Elite Knight", "5000 gold"), field: "name"},
		{row: webtable.TextRow("Aria", "abc Elite Knight", "5000 gold"), field: "level"},
		{row: webtable.TextRow("Aria", "0 Elite Knight", "5000 gold"), field: "level"},
		{row: webtable.TextRow("Aria", "120 Elite Warrior", "5000 gold"), field: "profession"},
		{row: webtable.TextRow("Aria", "120", "5000 gold"), field: "profession"},
		{row: webtable.TextRow("Aria", "120 Elite Knight", "free"), field: "price"},
		{row: webtable.TextRow("Aria", "120 Elite Knight", "-5 gold"), field: "price"},
		{row: webtable.TextRow("Aria", "120 Elite Knight", ""), field: "price"},
	}

	for _, test := range testCases {
		_, err := ParseRow(test.row)
		var perr *market.ParseError
		require.True(t, errors.As(err, &perr), "%v", test.row)
		require.Equal(t, test.field, perr.Field, "%v", test.row)
	}
}

func TestCollect(t *testing.T) {
	source := webtable.NewStaticSource()
	source.AddRows(
		auctionURL,
		webtable.TextRow("Aria", "120 Elite Knight", "5000 gold"),
		webtable.TextRow("Bo", "80 Master Sorcerer", "2000 gold"),
		webtable.TextRow("Cy", "200 Royal Paladin", "9000 gold"),
	)

	auctions, err := NewCollector(source, nil).Collect(context.Background(), auctionURL)
	require.NoError(t, err)
	require.Len(t, auctions, 3)

	var names []string
	for _, a := range auctions {
		names = append(names, a.Character.Name+":"+strconv.Itoa(a.Price))
	}
	require.Equal(t, []string{"Aria:5000", "Bo:2000", "Cy:9000"}, names)
	require.Equal(t, []string{auctionURL}, source.Fetches())
}

func TestCollectEmpty(t *testing.T) {
	source := webtable.NewStaticSource()
	source.AddRows(auctionURL)

	auctions, err := NewCollector(source, nil).Collect(context.Background(), auctionURL)
	require.NoError(t, err)
	require.Empty(t, auctions)
}

func TestCollectAbortsOnMalformedRow(t *testing.T) {
	source := webtable.NewStaticSource()
	source.AddRows(
		auctionURL,
		webtable.TextRow("Aria", "120 Elite Knight", "5000 gold"),
		webtable.TextRow("Bo", "eighty Master Sorcerer", "2000 gold"),
	)

	auctions, err := NewCollector(source, nil).Collect(context.Background(), auctionURL)
	require.Nil(t, auctions)

	var perr *market.ParseError
	require.True(t, errors.As(err, &perr))
	require.Equal(t, "auction", perr.Source)
	require.Equal(t, 1, perr.Row)
	require.Equal(t, "level", perr.Field)
}

func TestCollectNavigationFailure(t *testing.T) {
	source := webtable.NewStaticSource()

	_, err := NewCollector(source, nil).Collect(context.Background(), auctionURL)
	var nerr *market.NavigationError
	require.True(t, errors.As(err, &nerr))
	require.Equal(t, auctionURL, nerr.URL)
	require.ErrorIs(t, err, webtable.ErrPageNotFound)
}
