package testkit

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fixtures")

	paths, err := WriteAll(dir)
	if err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if len(paths) != 4 {
		t.Fatalf("got %d paths, want 4", len(paths))
	}
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("fixture %s missing: %v", path, err)
		}
		if info.Size() == 0 {
			t.Errorf("fixture %s is empty", path)
		}
	}
}

func TestDryerWorkbookSheets(t *testing.T) {
	f, err := DryerWorkbook()
	if err != nil {
		t.Fatalf("DryerWorkbook() error = %v", err)
	}

	want := []string{"Summary", "Dryer SMG (SMG6527)", "Dryer GTD (GTD42XXX)"}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sheet %d = %q, want %q", i, got[i], want[i])
		}
	}

	value, err := f.GetCellValue("Dryer SMG (SMG6527)", "B5")
	if err != nil {
		t.Fatal(err)
	}
	if value != "409.6 kWh" {
		t.Errorf("B5 = %q, want 409.6 kWh", value)
	}
}

func TestWorkbookBytes(t *testing.T) {
	f, err := SpanishWorkbook()
	if err != nil {
		t.Fatal(err)
	}

	data, err := WorkbookBytes(f)
	if err != nil {
		t.Fatalf("WorkbookBytes() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty workbook bytes")
	}
	// xlsx files are zip archives
	if data[0] != 'P' || data[1] != 'K' {
		t.Errorf("workbook bytes do not start with a zip signature")
	}
}
