package extract

import (
	"math"
	"strings"
	"testing"

	"pacesetter/domain/footprint"
	"pacesetter/domain/grid"
)

func labeledSheet() grid.Grid {
	return grid.Grid{
		{"Dryer SMG Product Sheet"},
		{},
		{"Model", "SMG6527"},
		{},
		{"Annual Energy Consumption", "409.6 kWh"},
		{},
		{"Transport CO2", 4.5},
		{},
		{"Materials CO2", 85.2},
		{},
		{"Production CO2", 18.3},
	}
}

func workbook(name string, g grid.Grid) *grid.Workbook {
	return &grid.Workbook{
		Names:  []string{"Summary", name},
		Sheets: map[string]grid.Grid{"Summary": {}, name: g},
	}
}

func TestExtractRequiredInputsAnchorSheet(t *testing.T) {
	wb := workbook("Dryer SMG (SMG6527)", labeledSheet())

	result := ExtractRequiredInputs(wb, "Dryer SMG (SMG6527)")

	want := map[string]float64{
		footprint.KeyTransport:  4.5,
		footprint.KeyMaterials:  85.2,
		footprint.KeyProduction: 18.3,
		footprint.KeyUseKWh:     409.6,
	}
	for key, value := range want {
		if got := result.Inputs[key]; math.Abs(got-value) > 1e-9 {
			t.Errorf("input %q = %v, want %v", key, got, value)
		}
		prov := result.Provenance[key]
		if prov.Method != footprint.MethodAnchor {
			t.Errorf("provenance %q method = %q, want anchor", key, prov.Method)
		}
		if prov.Sheet != "Dryer SMG (SMG6527)" {
			t.Errorf("provenance %q sheet = %q", key, prov.Sheet)
		}
	}
	if len(result.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", result.Warnings)
	}
	if got := result.Provenance[footprint.KeyUseKWh].CellRef; got != "B5" {
		t.Errorf("use cell ref = %q, want B5", got)
	}
}

func TestExtractRequiredInputsTableFallback(t *testing.T) {
	// headers avoid every anchor synonym, so only the table path can serve
	g := grid.Grid{
		{"Product", "Transport", "Materials", "Production", "Use_kWh"},
		{"W1", 2.5, 65.0, 12.0, 175.5},
		{"W2", 2.8, 68.5, 13.2, 168.0},
	}
	wb := workbook("Products Table", g)

	result := ExtractRequiredInputs(wb, "Products Table")

	want := map[string]struct {
		value float64
		ref   string
	}{
		footprint.KeyTransport:  {2.5, "B2"},
		footprint.KeyMaterials:  {65.0, "C2"},
		footprint.KeyProduction: {12.0, "D2"},
		footprint.KeyUseKWh:     {175.5, "E2"},
	}
	for key, w := range want {
		if got := result.Inputs[key]; math.Abs(got-w.value) > 1e-9 {
			t.Errorf("input %q = %v, want %v", key, got, w.value)
		}
		prov := result.Provenance[key]
		if prov.Method != footprint.MethodTable {
			t.Errorf("provenance %q method = %q, want table", key, prov.Method)
		}
		if prov.CellRef != w.ref {
			t.Errorf("provenance %q cell ref = %q, want %q", key, prov.CellRef, w.ref)
		}
		if prov.Confidence != 0.6 {
			t.Errorf("provenance %q confidence = %v, want 0.6", key, prov.Confidence)
		}
	}
}

func TestExtractRequiredInputsHeadersActAsAnchors(t *testing.T) {
	// "Transport kgCO2e" style headers contain anchor synonyms, so the
	// anchor pass claims them first and takes the value directly below
	g := grid.Grid{
		{"Product", "Category", "Transport kgCO2e", "Materials kgCO2e", "Production kgCO2e", "kWh per year"},
		{"WTW5000DW", "Washing", 2.5, 65.0, 12.0, 175.5},
		{"WTW5105HW", "Washing", 2.8, 68.5, 13.2, 168.0},
	}
	wb := workbook("Products Table", g)

	result := ExtractRequiredInputs(wb, "Products Table")

	if got := result.Inputs[footprint.KeyUseKWh]; math.Abs(got-175.5) > 1e-9 {
		t.Errorf("use input = %v, want first row value 175.5", got)
	}
	prov := result.Provenance[footprint.KeyUseKWh]
	if prov.Method != footprint.MethodAnchor {
		t.Errorf("method = %q, want anchor", prov.Method)
	}
	if prov.Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8", prov.Confidence)
	}
	if prov.CellRef != "F2" {
		t.Errorf("cell ref = %q, want F2", prov.CellRef)
	}
	if got := result.Inputs[footprint.KeyTransport]; math.Abs(got-2.5) > 1e-9 {
		t.Errorf("transport input = %v, want 2.5", got)
	}
}

func TestExtractRequiredInputsPartialFailure(t *testing.T) {
	g := grid.Grid{
		{"Annual Energy Consumption", 409.6},
	}
	wb := workbook("Dryer", g)

	result := ExtractRequiredInputs(wb, "Dryer")

	if got := result.Inputs[footprint.KeyUseKWh]; got != 409.6 {
		t.Errorf("use input = %v, want 409.6", got)
	}
	for _, key := range []string{footprint.KeyTransport, footprint.KeyMaterials, footprint.KeyProduction} {
		if got := result.Inputs[key]; got != 0 {
			t.Errorf("input %q = %v, want 0", key, got)
		}
		prov := result.Provenance[key]
		if prov.Method != footprint.MethodFailed {
			t.Errorf("provenance %q method = %q, want failed", key, prov.Method)
		}
		if prov.CellRef != "N/A" {
			t.Errorf("provenance %q cell ref = %q, want N/A", key, prov.CellRef)
		}
	}
	if len(result.Warnings) != 3 {
		t.Fatalf("got %d warnings, want 3: %v", len(result.Warnings), result.Warnings)
	}
	failed := result.FailedKeys()
	if len(failed) != 3 {
		t.Errorf("FailedKeys = %v, want 3 entries", failed)
	}
}

func TestExtractRequiredInputsSheetNotFound(t *testing.T) {
	wb := workbook("Dryer", labeledSheet())

	result := ExtractRequiredInputs(wb, "Missing Sheet")

	for _, key := range footprint.RequiredKeys {
		if got, ok := result.Inputs[key]; !ok || got != 0 {
			t.Errorf("input %q = %v (present %v), want 0 present", key, got, ok)
		}
		if result.Provenance[key].Method != footprint.MethodFailed {
			t.Errorf("provenance %q method = %q, want failed", key, result.Provenance[key].Method)
		}
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(result.Warnings), result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], "Missing Sheet") {
		t.Errorf("warning %q does not name the missing sheet", result.Warnings[0])
	}
	if !strings.Contains(result.Warnings[0], "Summary") || !strings.Contains(result.Warnings[0], "Dryer") {
		t.Errorf("warning %q does not list available sheets", result.Warnings[0])
	}
}

func TestExtractRequiredInputsEmptySheet(t *testing.T) {
	wb := workbook("Blank", grid.Grid{})

	result := ExtractRequiredInputs(wb, "Blank")

	for _, key := range footprint.RequiredKeys {
		if result.Inputs[key] != 0 {
			t.Errorf("input %q = %v, want 0", key, result.Inputs[key])
		}
		if result.Provenance[key].Method != footprint.MethodFailed {
			t.Errorf("provenance %q method = %q, want failed", key, result.Provenance[key].Method)
		}
	}
	if len(result.Warnings) != len(footprint.RequiredKeys) {
		t.Errorf("got %d warnings, want %d", len(result.Warnings), len(footprint.RequiredKeys))
	}
}

func TestExtractRequiredInputsZeroCellCountsAsFailed(t *testing.T) {
	g := grid.Grid{
		{"Transport CO2", 0},
	}
	wb := workbook("S", g)

	result := ExtractRequiredInputs(wb, "S")

	if result.Provenance[footprint.KeyTransport].Method != footprint.MethodFailed {
		t.Errorf("zero-valued cell should leave the key failed")
	}
}
