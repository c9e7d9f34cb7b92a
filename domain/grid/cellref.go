package grid

import (
	"fmt"
	"strings"
)

// ColumnLetter converts a zero-based column index to spreadsheet letters:
// 0 -> "A", 25 -> "Z", 26 -> "AA", 701 -> "ZZ". Negative indices return "".
func ColumnLetter(index int) string {
	if index < 0 {
		return ""
	}
	letters := make([]byte, 0, 3)
	for index >= 0 {
		letters = append(letters, byte('A'+index%26))
		index = index/26 - 1
	}
	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}
	return string(letters)
}

// ColumnIndex is the inverse of ColumnLetter: "A" -> 0, "Z" -> 25, "AA" -> 26.
// Lowercase input is accepted.
func ColumnIndex(letters string) (int, error) {
	if letters == "" {
		return 0, fmt.Errorf("empty column letters")
	}
	n := 0
	for _, r := range strings.ToUpper(letters) {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("invalid column letters %q", letters)
		}
		n = n*26 + int(r-'A') + 1
	}
	return n - 1, nil
}

// CellRef builds an A1-style reference from zero-based coordinates:
// (col 1, row 4) -> "B5".
func CellRef(col, row int) string {
	return fmt.Sprintf("%s%d", ColumnLetter(col), row+1)
}
