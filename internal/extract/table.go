package extract

import (
	"strings"

	"pacesetter/domain/footprint"
	"pacesetter/domain/grid"
)

// headerScanRows bounds how deep header detection looks. Real workbooks put
// headers near the top; scanning further just invites false positives.
const headerScanRows = 15

// DetectHeaderRow returns the row within the first headerScanRows rows that
// contains the most header-synonym hits. Every synonym occurrence counts, so
// a cell like "materials bom" scores more than once. Ties keep the earliest
// row, and a sheet with no hits at all defaults to row 0.
func DetectHeaderRow(g grid.Grid) int {
	limit := headerScanRows
	if g.Rows() < limit {
		limit = g.Rows()
	}

	bestRow, bestHits := 0, -1
	for r := 0; r < limit; r++ {
		hits := 0
		for _, cell := range g[r] {
			text := grid.Normalize(grid.CellString(cell))
			if text == "" {
				continue
			}
			for _, syns := range footprint.HeaderSynonyms {
				for _, syn := range syns {
					if strings.Contains(text, syn) {
						hits++
					}
				}
			}
		}
		if hits > bestHits {
			bestHits, bestRow = hits, r
		}
	}
	return bestRow
}

// MapHeaders assigns each required key to a column of the header row. The
// leftmost header cell containing any of the key's synonyms wins; blank
// cells and the "nan"/"none" sentinels never match. Keys without a matching
// header are absent from the returned map.
func MapHeaders(headerRow []any) map[string]int {
	raw := make([]string, len(headerRow))
	norm := make([]string, len(headerRow))
	for i, cell := range headerRow {
		text := strings.TrimSpace(grid.CellString(cell))
		switch strings.ToLower(text) {
		case "nan", "none":
			text = ""
		}
		raw[i] = text
		norm[i] = grid.Normalize(text)
	}

	mapped := make(map[string]int, len(footprint.RequiredKeys))
	for _, key := range footprint.RequiredKeys {
		for i, header := range norm {
			if raw[i] == "" {
				continue
			}
			if containsAny(header, footprint.HeaderSynonyms[key]) {
				mapped[key] = i
				break
			}
		}
	}
	return mapped
}

// ExtractTableValue walks down a mapped column below the header row and
// returns the first positive numeric cell. Rows are product variants, so
// the first valid row is the representative value, not a sum.
func ExtractTableValue(g grid.Grid, headerRow, col int, sheetName string) (float64, footprint.Provenance, bool) {
	if col < 0 {
		return 0, footprint.Provenance{}, false
	}
	for r := headerRow + 1; r < g.Rows(); r++ {
		if v, ok := ParseNumeric(g.Cell(r, col)); ok && v > 0 {
			return v, footprint.Provenance{
				Method:     footprint.MethodTable,
				Sheet:      sheetName,
				CellRef:    grid.CellRef(col, r),
				Confidence: confTable,
			}, true
		}
	}
	return 0, footprint.Provenance{}, false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
