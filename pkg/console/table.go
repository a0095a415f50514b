package console

import (
	"strings"

	"github.com/flowlint/flowlint/pkg/logger"
)

var tableLog = logger.New("console:table")

// TableConfig describes a table to render: an optional title, a header row,
// data rows, and an optional total row appended after a separator.
type TableConfig struct {
	Title     string
	Headers   []string
	Rows      [][]string
	ShowTotal bool
	TotalRow  []string
}

// RenderTable renders the table as aligned plain-text columns. Column widths
// are computed from headers, rows, and the total row together; trailing
// padding on the last column is omitted so output diffs stay clean.
func RenderTable(config TableConfig) string {
	if len(config.Headers) == 0 && len(config.Rows) == 0 {
		return ""
	}
	tableLog.Printf("Rendering table: title=%q, columns=%d, rows=%d", config.Title, len(config.Headers), len(config.Rows))

	widths := columnWidths(config)

	var b strings.Builder
	if config.Title != "" {
		b.WriteString(render(titleStyle, config.Title))
		b.WriteString("\n\n")
	}

	if len(config.Headers) > 0 {
		writeRow(&b, config.Headers, widths)
		writeSeparator(&b, widths)
	}

	for _, row := range config.Rows {
		writeRow(&b, row, widths)
	}

	if config.ShowTotal && len(config.TotalRow) > 0 {
		writeSeparator(&b, widths)
		writeRow(&b, config.TotalRow, widths)
	}

	return b.String()
}

func columnWidths(config TableConfig) []int {
	columns := len(config.Headers)
	for _, row := range config.Rows {
		if len(row) > columns {
			columns = len(row)
		}
	}
	if config.ShowTotal && len(config.TotalRow) > columns {
		columns = len(config.TotalRow)
	}

	widths := make([]int, columns)
	measure := func(row []string) {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	measure(config.Headers)
	for _, row := range config.Rows {
		measure(row)
	}
	if config.ShowTotal {
		measure(config.TotalRow)
	}
	return widths
}

func writeRow(b *strings.Builder, row []string, widths []int) {
	for i, width := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i == len(widths)-1 {
			b.WriteString(cell)
		} else {
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", width-len(cell)+2))
		}
	}
	b.WriteString("\n")
}

func writeSeparator(b *strings.Builder, widths []int) {
	for i, width := range widths {
		if i == len(widths)-1 {
			b.WriteString(strings.Repeat("-", width))
		} else {
			b.WriteString(strings.Repeat("-", width))
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")
}
