package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// textTable renders aligned columns with a colored header.
type textTable struct {
	writer  io.Writer
	headers []string
	rows    [][]string
	noColor bool

	// highlight, when set, picks a color for a cell.
	highlight func(col int, cell string) *color.Color
}

func newTextTable(w io.Writer, noColor bool, headers ...string) *textTable {
	return &textTable{writer: w, headers: headers, noColor: noColor}
}

func (t *textTable) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *textTable) paint(c *color.Color) *color.Color {
	if t.noColor {
		c.DisableColor()
	}
	return c
}

func (t *textTable) render() {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	bold := t.paint(color.New(color.Bold, color.FgCyan))
	for i, h := range t.headers {
		bold.Fprint(t.writer, padCell(h, widths[i], i == len(t.headers)-1))
		if i < len(t.headers)-1 {
			fmt.Fprint(t.writer, "  ")
		}
	}
	fmt.Fprintln(t.writer)

	for _, row := range t.rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			text := padCell(cell, widths[i], i == len(row)-1)
			if c := t.colorFor(i, cell); c != nil {
				t.paint(c).Fprint(t.writer, text)
			} else {
				fmt.Fprint(t.writer, text)
			}
			if i < len(row)-1 {
				fmt.Fprint(t.writer, "  ")
			}
		}
		fmt.Fprintln(t.writer)
	}
}

func (t *textTable) colorFor(col int, cell string) *color.Color {
	if t.highlight == nil {
		return nil
	}
	return t.highlight(col, cell)
}

// padCell pads s to width; the last column is not padded.
func padCell(s string, width int, last bool) string {
	if last || len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
