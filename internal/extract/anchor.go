package extract

import (
	"strings"

	"pacesetter/domain/footprint"
	"pacesetter/domain/grid"
)

// Per-strategy confidence scores. Rightward neighbors are the common
// label/value layout, a value directly below is slightly weaker evidence,
// and a value to the left of its label is weaker still.
const (
	confAnchorRight = 0.9
	confAnchorBelow = 0.8
	confAnchorLeft  = 0.7
	confTable       = 0.6
)

const anchorTextLimit = 50

// FindAnchorValue scans the grid for the first cell whose normalized text
// contains one of the anchor synonyms, then looks for a positive numeric
// neighbor: rightward in the same row, then the cell directly below, then
// leftward. Synonyms are tried in order, so an earlier synonym anywhere in
// the sheet beats a later one everywhere; the first hit wins outright.
func FindAnchorValue(g grid.Grid, anchors []string, sheetName string) (float64, footprint.Provenance, bool) {
	for _, anchor := range anchors {
		anchorNorm := grid.Normalize(anchor)

		for rowIdx, row := range g {
			for colIdx := range row {
				cellText := grid.CellString(row[colIdx])
				if cellText == "" {
					continue
				}
				if !strings.Contains(grid.Normalize(cellText), anchorNorm) {
					continue
				}
				anchorText := truncateRunes(cellText, anchorTextLimit)

				// rightward in the same row
				for c := colIdx + 1; c < len(row); c++ {
					if v, ok := ParseNumeric(row[c]); ok && v > 0 {
						return v, footprint.Provenance{
							Method:     footprint.MethodAnchor,
							Sheet:      sheetName,
							CellRef:    grid.CellRef(c, rowIdx),
							AnchorText: anchorText,
							Confidence: confAnchorRight,
						}, true
					}
				}

				// directly below the label
				if v, ok := ParseNumeric(g.Cell(rowIdx+1, colIdx)); ok && v > 0 {
					return v, footprint.Provenance{
						Method:     footprint.MethodAnchor,
						Sheet:      sheetName,
						CellRef:    grid.CellRef(colIdx, rowIdx+1),
						AnchorText: anchorText,
						Confidence: confAnchorBelow,
					}, true
				}

				// leftward, nearest first
				for c := colIdx - 1; c >= 0; c-- {
					if v, ok := ParseNumeric(row[c]); ok && v > 0 {
						return v, footprint.Provenance{
							Method:     footprint.MethodAnchor,
							Sheet:      sheetName,
							CellRef:    grid.CellRef(c, rowIdx),
							AnchorText: anchorText,
							Confidence: confAnchorLeft,
						}, true
					}
				}
			}
		}
	}
	return 0, footprint.Provenance{}, false
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
