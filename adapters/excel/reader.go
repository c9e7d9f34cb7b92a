// Package excel decodes xlsx workbooks into the domain grid model using
// excelize. All sheets are read eagerly so callers can run any number of
// extractions against the decoded workbook without touching the file again.
package excel

import (
	"bytes"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"pacesetter/domain/grid"
	"pacesetter/internal/errors"
)

// Decoder reads xlsx files into grid.Workbook values. The zero value is
// ready to use; NewDecoder exists for symmetry with the port wiring.
type Decoder struct{}

// NewDecoder creates a new workbook decoder
func NewDecoder() *Decoder {
	return &Decoder{}
}

// DecodeBytes decodes a workbook held in memory, typically an upload.
func (d *Decoder) DecodeBytes(data []byte) (*grid.Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.WorkbookInvalid(err)
	}
	defer f.Close()

	return d.decode(f)
}

// DecodeFile decodes a workbook from disk.
func (d *Decoder) DecodeFile(path string) (*grid.Workbook, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.NotFound(path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WorkbookInvalid(err)
	}
	defer f.Close()

	return d.decode(f)
}

func (d *Decoder) decode(f *excelize.File) (*grid.Workbook, error) {
	start := time.Now()

	names := f.GetSheetList()
	wb := &grid.Workbook{
		Names:  names,
		Sheets: make(map[string]grid.Grid, len(names)),
	}

	for _, name := range names {
		rows, err := f.GetRows(name)
		if err != nil {
			log.Printf("[Excel] WARNING: sheet %q could not be read: %v", name, err)
			wb.Sheets[name] = grid.Grid{}
			continue
		}
		wb.Sheets[name] = toGrid(rows)
	}

	log.Printf("[Excel] Decoded %d sheets in %.2fms", len(names),
		float64(time.Since(start).Nanoseconds())/1e6)

	return wb, nil
}

// toGrid converts excelize's formatted string cells into typed cells.
// Numbers become int64 or float64 so downstream parsing sees native values;
// everything else stays a string, with truly empty cells as nil.
func toGrid(rows [][]string) grid.Grid {
	g := make(grid.Grid, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = parseCell(cell)
		}
		g[i] = cells
	}
	return g
}

func parseCell(s string) any {
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
