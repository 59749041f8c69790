package webtable

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// StaticSource serves pre-built rows or saved HTML pages keyed by url and
// records every fetch.
type StaticSource struct {
	rows    map[string][]Row
	pages   map[string]string
	fetches []string
	closed  bool
}

func NewStaticSource() *StaticSource {
	return &StaticSource{
		rows:  map[string][]Row{},
		pages: map[string]string{},
	}
}

// AddRows registers the rows returned for url, the selector is ignored.
func (s *StaticSource) AddRows(url string, rows ...Row) {
	s.rows[url] = rows
}

// AddHTML registers a page for url, its table is parsed on every fetch.
func (s *StaticSource) AddHTML(url string, html string) {
	s.pages[url] = html
}

func (s *StaticSource) FetchTable(ctx context.Context, url string, selector string) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.closed {
		return nil, fmt.Errorf("fetch %s: source is closed", url)
	}
	s.fetches = append(s.fetches, url)

	if rows, ok := s.rows[url]; ok {
		return slices.Clone(rows), nil
	}
	if page, ok := s.pages[url]; ok {
		return ParseHTML(strings.NewReader(page), selector)
	}
	return nil, ErrPageNotFound
}

// Fetches returns the urls fetched so far, in order.
func (s *StaticSource) Fetches() []string {
	return slices.Clone(s.fetches)
}

func (s *StaticSource) Closed() bool {
	return s.closed
}

func (s *StaticSource) Close() error {
	s.closed = true
	return nil
}
