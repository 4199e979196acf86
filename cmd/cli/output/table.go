package output

import (
	"os"
	"time"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderTable prints a pretty table to stdout
func RenderTable(headers []string, rows [][]interface{}) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)

	headerRow := table.Row{}
	for _, h := range headers {
		headerRow = append(headerRow, h)
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		t.AppendRow(table.Row(row))
	}

	t.Render()
}

// Timestamp formats a time for table cells. Nil pointers render as "-".
func Timestamp(ts *time.Time) string {
	if ts == nil {
		return "-"
	}
	return ts.Format("2006-01-02 15:04")
}

// Truncate shortens long cell text so note content does not wreck the
// table. Cuts on rune boundaries so multibyte text stays valid UTF-8.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}
