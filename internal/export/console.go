package export

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

func RenderTable(out io.Writer, records []Record) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)

	header := make(table.Row, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	t.AppendHeader(header)

	for _, r := range records {
		cells := r.Strings()
		row := make(table.Row, len(cells))
		for i, c := range cells {
			row[i] = c
		}
		t.AppendRow(row)
	}

	t.Render()
}
