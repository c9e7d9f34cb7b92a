package extract

import (
	"testing"

	"pacesetter/domain/footprint"
	"pacesetter/domain/grid"
)

func TestDetectHeaderRow(t *testing.T) {
	g := grid.Grid{
		{"ACME Appliances"},
		{},
		{"Product", "Transport kgCO2e", "Materials kgCO2e", "kWh per year"},
		{"W1", 2.5, 65.0, 175.5},
	}

	if got := DetectHeaderRow(g); got != 2 {
		t.Errorf("DetectHeaderRow = %d, want 2", got)
	}
}

func TestDetectHeaderRowDefaultsToFirstRow(t *testing.T) {
	g := grid.Grid{
		{"nothing", "to"},
		{"see", "here"},
	}

	if got := DetectHeaderRow(g); got != 0 {
		t.Errorf("DetectHeaderRow = %d, want 0", got)
	}
}

func TestDetectHeaderRowTieKeepsEarliest(t *testing.T) {
	g := grid.Grid{
		{"Transport", "Materials"},
		{"Transport", "Materials"},
	}

	if got := DetectHeaderRow(g); got != 0 {
		t.Errorf("DetectHeaderRow = %d, want 0", got)
	}
}

func TestDetectHeaderRowIgnoresRowsPastScanWindow(t *testing.T) {
	g := make(grid.Grid, 0, 20)
	g = append(g, []any{"x"})
	for i := 0; i < 16; i++ {
		g = append(g, []any{})
	}
	g = append(g, []any{"Transport", "Materials", "Production"})

	if got := DetectHeaderRow(g); got != 0 {
		t.Errorf("DetectHeaderRow = %d, want 0 when header sits past the window", got)
	}
}

func TestMapHeaders(t *testing.T) {
	headers := []any{"Product", "Category", "Transport kgCO2e", "Materials kgCO2e", "Production kgCO2e", "kWh per year"}

	mapped := MapHeaders(headers)

	want := map[string]int{
		footprint.KeyTransport:  2,
		footprint.KeyMaterials:  3,
		footprint.KeyProduction: 4,
		footprint.KeyUseKWh:     5,
	}
	for key, col := range want {
		got, ok := mapped[key]
		if !ok {
			t.Fatalf("key %q unmapped", key)
		}
		if got != col {
			t.Errorf("key %q mapped to %d, want %d", key, got, col)
		}
	}
}

func TestMapHeadersLeftmostColumnWins(t *testing.T) {
	headers := []any{"Materials and Transport", "Transport kgCO2e"}

	mapped := MapHeaders(headers)

	if got := mapped[footprint.KeyTransport]; got != 0 {
		t.Errorf("transport mapped to %d, want leftmost column 0", got)
	}
	if got := mapped[footprint.KeyMaterials]; got != 0 {
		t.Errorf("materials mapped to %d, want 0", got)
	}
}

func TestMapHeadersSkipsBlankAndSentinelHeaders(t *testing.T) {
	headers := []any{"", "nan", "None", "Transport kgCO2e"}

	mapped := MapHeaders(headers)

	if got := mapped[footprint.KeyTransport]; got != 3 {
		t.Errorf("transport mapped to %d, want 3", got)
	}
}

func TestMapHeadersLeavesUnmatchedKeysOut(t *testing.T) {
	headers := []any{"Product", "Weight", "Price"}

	mapped := MapHeaders(headers)

	if len(mapped) != 0 {
		t.Errorf("mapped = %v, want empty", mapped)
	}
}

func TestExtractTableValue(t *testing.T) {
	g := grid.Grid{
		{"Product", "Transport"},
		{"W1", ""},
		{"W2", "n/a"},
		{"W3", 0},
		{"W4", 2.5},
	}

	v, prov, ok := ExtractTableValue(g, 0, 1, "Products Table")
	if !ok {
		t.Fatal("expected a value")
	}
	if v != 2.5 {
		t.Errorf("value = %v, want 2.5", v)
	}
	if prov.Method != footprint.MethodTable {
		t.Errorf("method = %q, want table", prov.Method)
	}
	if prov.Confidence != 0.6 {
		t.Errorf("confidence = %v, want 0.6", prov.Confidence)
	}
	if prov.CellRef != "B5" {
		t.Errorf("cell ref = %q, want B5", prov.CellRef)
	}
	if prov.AnchorText != "" {
		t.Errorf("anchor text = %q, want empty", prov.AnchorText)
	}
}

func TestExtractTableValueUsesAbsoluteRows(t *testing.T) {
	g := grid.Grid{
		{"Fleet Report"},
		{"Product", "Transport"},
		{"W1", 3.1},
	}

	v, prov, ok := ExtractTableValue(g, 1, 1, "S")
	if !ok || v != 3.1 {
		t.Fatalf("value = %v ok = %v, want 3.1 true", v, ok)
	}
	if prov.CellRef != "B3" {
		t.Errorf("cell ref = %q, want B3", prov.CellRef)
	}
}

func TestExtractTableValueIgnoresCellsAboveHeader(t *testing.T) {
	g := grid.Grid{
		{"", 99.0},
		{"Product", "Transport"},
		{"W1", 3.1},
	}

	v, _, ok := ExtractTableValue(g, 1, 1, "S")
	if !ok || v != 3.1 {
		t.Fatalf("value = %v ok = %v, want 3.1 true", v, ok)
	}
}

func TestExtractTableValueNoUsableCell(t *testing.T) {
	g := grid.Grid{
		{"Product", "Transport"},
		{"W1", "tbd"},
	}

	if _, _, ok := ExtractTableValue(g, 0, 1, "S"); ok {
		t.Fatal("expected no value")
	}

	// column beyond every row's width
	if _, _, ok := ExtractTableValue(g, 0, 9, "S"); ok {
		t.Fatal("expected no value for out-of-range column")
	}

	if _, _, ok := ExtractTableValue(g, 0, -1, "S"); ok {
		t.Fatal("expected no value for negative column")
	}
}
