// Package grid holds the decoded, format-agnostic view of a spreadsheet:
// raw cell values addressed by zero-based row and column, plus sheet-level
// bookkeeping. Decoding file formats into this view is an adapter concern.
package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// Grid is a single decoded sheet in row-major order. Rows may be ragged;
// out-of-range access through Cell returns nil rather than panicking.
type Grid [][]any

// Rows returns the number of rows in the sheet.
func (g Grid) Rows() int {
	return len(g)
}

// Row returns the raw cells of one row, or nil when out of range.
func (g Grid) Row(row int) []any {
	if row < 0 || row >= len(g) {
		return nil
	}
	return g[row]
}

// Cell returns the raw value at (row, col), or nil when the coordinates
// fall outside the sheet or inside a short row.
func (g Grid) Cell(row, col int) any {
	if row < 0 || row >= len(g) {
		return nil
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return nil
	}
	return r[col]
}

// Workbook is a fully decoded spreadsheet. Names preserves the sheet order
// of the source file; Sheets maps each name to its decoded grid.
type Workbook struct {
	Names  []string
	Sheets map[string]Grid
}

// Sheet looks up a sheet by name.
func (w *Workbook) Sheet(name string) (Grid, bool) {
	g, ok := w.Sheets[name]
	return g, ok
}

// Normalize prepares a string for matching: lowercase, trimmed, with every
// run of whitespace collapsed to a single space.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// CellString renders a raw cell value as text for label matching. Nil cells
// render as the empty string; numeric cells render without an exponent.
func CellString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(c), 'f', -1, 32)
	case int:
		return strconv.Itoa(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case bool:
		return strconv.FormatBool(c)
	default:
		return fmt.Sprint(c)
	}
}
