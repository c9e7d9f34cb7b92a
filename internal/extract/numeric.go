// Package extract locates the required footprint inputs inside decoded
// spreadsheet grids. It runs a fixed cascade per key: anchor-based search
// near known labels first, then table-based extraction under a classified
// header row, and records provenance for whatever it finds.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// trailing unit suffixes like "409.6 kWh" or "85,2 kgCO2e"
	unitSuffixPattern = regexp.MustCompile(`(?i)\s*(kwh|kgco2e?|kg\s*co2|%|per\s*year|/year|/a|/año)\s*$`)
	nonNumericPattern = regexp.MustCompile(`[^0-9.\-]`)
)

// ParseNumeric interprets a raw cell as a number. Native numeric cells pass
// through; strings are cleaned of unit suffixes, locale separators and stray
// characters before parsing. Returns false for anything that does not yield
// a number, including empty cells and the "nan"/"none" sentinels.
func ParseNumeric(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		return parseNumericString(n)
	default:
		return parseNumericString(fmt.Sprint(v))
	}
}

func parseNumericString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	switch strings.ToLower(s) {
	case "nan", "none":
		return 0, false
	}

	cleaned := unitSuffixPattern.ReplaceAllString(s, "")

	// Single comma with no period is ambiguous: a 3+ digit tail is a
	// thousands separator ("1,200" -> 1200), a 1-2 digit tail is a European
	// decimal comma ("385,5" -> 385.5). Anything else drops the commas.
	if strings.Contains(cleaned, ",") && !strings.Contains(cleaned, ".") {
		parts := strings.Split(cleaned, ",")
		if len(parts) == 2 && isDigits(parts[1]) {
			if len(parts[1]) >= 3 {
				cleaned = strings.ReplaceAll(cleaned, ",", "")
			} else {
				cleaned = strings.ReplaceAll(cleaned, ",", ".")
			}
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	cleaned = nonNumericPattern.ReplaceAllString(cleaned, "")

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
