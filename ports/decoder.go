package ports

import "pacesetter/domain/grid"

// WorkbookDecoder turns an uploaded spreadsheet into the format-agnostic
// grid view. Implementations own the file-format details; everything past
// this boundary works on grids only.
type WorkbookDecoder interface {
	// DecodeBytes decodes a whole workbook held in memory.
	DecodeBytes(data []byte) (*grid.Workbook, error)

	// DecodeFile decodes a workbook from disk.
	DecodeFile(path string) (*grid.Workbook, error)
}
