package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// formatTable lays out headers and rows in space-separated columns sized to
// their widest cell. Columns listed in rightAlign are padded on the left.
func formatTable(headers []string, rows [][]string, rightAlign map[int]bool) []string {
	grid := rows
	if len(headers) > 0 {
		grid = append([][]string{headers}, rows...)
	}
	widths := columnWidths(grid)
	if len(widths) == 0 {
		return nil
	}

	lines := make([]string, 0, len(grid))
	cells := make([]string, len(widths))
	for _, row := range grid {
		for col, width := range widths {
			var value string
			if col < len(row) {
				value = row[col]
			}
			if rightAlign[col] {
				cells[col] = runewidth.FillLeft(value, width)
			} else {
				cells[col] = runewidth.FillRight(value, width)
			}
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return lines
}

// columnWidths returns the terminal width of the widest cell per column.
func columnWidths(grid [][]string) []int {
	var widths []int
	for _, row := range grid {
		for col, value := range row {
			if col >= len(widths) {
				widths = append(widths, 0)
			}
			if w := runewidth.StringWidth(value); w > widths[col] {
				widths[col] = w
			}
		}
	}
	return widths
}
