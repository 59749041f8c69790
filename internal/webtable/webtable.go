// Package webtable reads HTML tables into rows of cell text. Sources hide
// how a page is obtained (plain HTTP, a real browser, saved files) so the
// code consuming the rows can be tested with fixtures.
package webtable

import (
	"context"
	"errors"
	"ezodus-market/pkg/htmlutil"
	"io"

	"github.com/PuerkitoBio/goquery"
)

var (
	ErrTableNotFound = errors.New("table not found")
	ErrPageNotFound  = errors.New("page not found")
)

type Cell struct {
	Text string
	// text of the first link inside the cell, empty if there is none
	Link string
	// true for <th> cells
	Header bool
}

type Row []Cell

// IsHeader returns true if every cell of the row is a <th>.
func (r Row) IsHeader() bool {
	if len(r) == 0 {
		return false
	}
	for _, c := range r {
		if !c.Header {
			return false
		}
	}
	return true
}

// TextRow builds a row of plain <td> cells.
func TextRow(texts ...string) Row {
	row := make(Row, len(texts))
	for i, t := range texts {
		row[i] = Cell{Text: t}
	}
	return row
}

// Source fetches a page and returns the rows of the first table matching
// a CSS selector.
type Source interface {
	FetchTable(ctx context.Context, url string, selector string) ([]Row, error)
	// Close releases the underlying session, it must be called once the
	// source is no longer needed.
	Close() error
}

func ParseHTML(r io.Reader, selector string) ([]Row, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return ParseTable(doc, selector)
}

// ParseTable reads the body rows of the first element matching selector.
// Rows in <thead> are not included.
func ParseTable(doc *goquery.Document, selector string) ([]Row, error) {
	table := doc.Find(selector).First()
	if table.Length() == 0 {
		return nil, ErrTableNotFound
	}

	trs := table.ChildrenFiltered("tbody").ChildrenFiltered("tr")
	if table.ChildrenFiltered("tbody").Length() == 0 {
		trs = table.ChildrenFiltered("tr")
	}

	rows := make([]Row, 0, trs.Length())
	trs.Each(func(_ int, tr *goquery.Selection) {
		var row Row
		tr.ChildrenFiltered("td, th").Each(func(_ int, cell *goquery.Selection) {
			c := Cell{
				Text:   htmlutil.GetCleanText(cell.Get(0)),
				Header: goquery.NodeName(cell) == "th",
			}
			if a := cell.Find("a").First(); a.Length() > 0 {
				c.Link = htmlutil.GetCleanText(a.Get(0))
			}
			row = append(row, c)
		})
		rows = append(rows, row)
	})

	return rows, nil
}
