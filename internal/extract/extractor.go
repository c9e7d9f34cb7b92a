package extract

import (
	"fmt"
	"log"
	"strings"

	"pacesetter/domain/footprint"
	"pacesetter/domain/grid"
)

// ExtractRequiredInputs runs the extraction cascade for every required key
// against one sheet of a decoded workbook. Anchor-based extraction is tried
// first, table-based second; a key that both miss is recorded as zero with
// failed provenance and a warning. The result always carries all required
// keys, and the function never fails outright.
func ExtractRequiredInputs(wb *grid.Workbook, modelSheet string) *footprint.ExtractionResult {
	g, ok := wb.Sheet(modelSheet)
	if !ok {
		warning := fmt.Sprintf("sheet %q not found, available: %s",
			modelSheet, strings.Join(wb.Names, ", "))
		log.Printf("[Extract] WARNING: %s", warning)
		return footprint.FailedResult(modelSheet, warning)
	}

	result := footprint.NewExtractionResult()

	var (
		headerRow int
		mapping   map[string]int
		mapped    bool
	)

	for _, key := range footprint.RequiredKeys {
		if v, prov, ok := FindAnchorValue(g, footprint.AnchorSynonyms[key], modelSheet); ok {
			result.Set(key, v, prov)
			continue
		}

		if !mapped {
			headerRow = DetectHeaderRow(g)
			mapping = MapHeaders(g.Row(headerRow))
			mapped = true
		}
		if col, ok := mapping[key]; ok {
			if v, prov, ok := ExtractTableValue(g, headerRow, col, modelSheet); ok {
				result.Set(key, v, prov)
				continue
			}
		}

		result.SetFailed(key, modelSheet)
		log.Printf("[Extract] FAILED to extract %s from sheet %q", key, modelSheet)
	}

	return result
}
