// Package testkit builds the synthetic workbooks used across the test
// suites and by the fixtures CLI command. Every builder produces the same
// known values on every run so assertions can be exact.
package testkit

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Fixture file names, matching what WriteAll produces.
const (
	DryerFile        = "dryer_workbook.xlsx"
	RefrigeratorFile = "refrigerator_workbook.xlsx"
	WasherTableFile  = "washer_table_format.xlsx"
	SpanishFile      = "secadora_spanish.xlsx"
)

// DryerWorkbook builds a workbook with a summary sheet and two dryer model
// sheets in label/value layout. The SMG sheet carries 409.6 kWh, 4.5 / 85.2
// / 18.3 kg CO2e; the GTD sheet 245.0 kWh, 3.8 / 72.1 / 15.6.
func DryerWorkbook() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return nil, err
	}
	if err := setCells(f, "Summary", map[string]any{
		"A1": "Product Sustainability Report",
		"A2": "Product: Dryer SMG (SMG6527XXXX)",
		"A3": "Date: 2025-01-15",
	}); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet("Dryer SMG (SMG6527)"); err != nil {
		return nil, err
	}
	if err := setCells(f, "Dryer SMG (SMG6527)", map[string]any{
		"A1": "Product Specifications",
		"A3": "Model Number", "B3": "SMG6527XXXX",
		"A5": "Annual Energy Consumption", "B5": "409.6 kWh",
		"A7": "Transport CO2", "B7": 4.5,
		"A9": "Materials CO2", "B9": 85.2,
		"A11": "Production CO2", "B11": 18.3,
	}); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet("Dryer GTD (GTD42XXX)"); err != nil {
		return nil, err
	}
	if err := setCells(f, "Dryer GTD (GTD42XXX)", map[string]any{
		"A1": "Product Specifications",
		"A3": "Model Number", "B3": "GTD42XXXX",
		"A5": "Annual Energy Consumption", "B5": "245.0 kWh/year",
		"A7": "Transport CO2", "B7": 3.8,
		"A9": "Materials CO2", "B9": 72.1,
		"A11": "Production CO2", "B11": 15.6,
	}); err != nil {
		return nil, err
	}

	return f, nil
}

// RefrigeratorWorkbook builds a cooling workbook whose energy row anchors
// ("Energy Consumption" 322, unit in the next column) extract, while the
// bare "Logistics" / "BOM" / "Manufacturing" labels deliberately carry no
// CO2 context and are not picked up.
func RefrigeratorWorkbook() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Cover"); err != nil {
		return nil, err
	}
	if err := setCells(f, "Cover", map[string]any{
		"A1": "Refrigeration Product Assessment",
	}); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet("Cooling Unit (GSS25XXX)"); err != nil {
		return nil, err
	}
	if err := setCells(f, "Cooling Unit (GSS25XXX)", map[string]any{
		"A1": "Refrigerator Specifications",
		"A3": "SKU", "B3": "GSS25XXXX",
		"A5": "Energy Consumption", "B5": 322, "C5": "kWh/year",
		"A7": "Logistics", "B7": 6.2,
		"A9": "BOM", "B9": 120.5,
		"A11": "Manufacturing", "B11": 22.8,
	}); err != nil {
		return nil, err
	}

	return f, nil
}

// WasherTableWorkbook builds a single-sheet workbook in table layout with a
// header row and two washer variants; the first data row carries 2.5 / 65.0
// / 12.0 kg CO2e and 175.5 kWh.
func WasherTableWorkbook() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Products Table"); err != nil {
		return nil, err
	}

	rows := [][]any{
		{"Product", "Category", "Transport kgCO2e", "Materials kgCO2e", "Production kgCO2e", "kWh per year"},
		{"WTW5000DW", "Washing", 2.5, 65.0, 12.0, 175.5},
		{"WTW5105HW", "Washing", 2.8, 68.5, 13.2, 168.0},
	}
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue("Products Table", cell, value); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// SpanishWorkbook builds a Spanish-labeled dryer sheet with European comma
// decimals. Only the energy row has a matching anchor ("Consumo de
// energía"); the bare "Transporte" / "Materiales" / "Producción" labels do
// not extract.
func SpanishWorkbook() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Secadora (SMG1234)"); err != nil {
		return nil, err
	}
	if err := setCells(f, "Secadora (SMG1234)", map[string]any{
		"A1": "Especificaciones del Producto",
		"A3": "Modelo", "B3": "SMG1234",
		"A5": "Consumo de energía", "B5": "385,5", "C5": "kWh/año",
		"A7": "Transporte", "B7": "5,2",
		"A9": "Materiales", "B9": "92,3",
		"A11": "Producción", "B11": "19,8",
	}); err != nil {
		return nil, err
	}

	return f, nil
}

// WorkbookBytes serializes a workbook the way an upload would arrive.
func WorkbookBytes(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteAll writes every fixture workbook into dir, creating it if needed,
// and returns the written paths.
func WriteAll(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create fixtures dir: %w", err)
	}

	builders := []struct {
		name  string
		build func() (*excelize.File, error)
	}{
		{DryerFile, DryerWorkbook},
		{RefrigeratorFile, RefrigeratorWorkbook},
		{WasherTableFile, WasherTableWorkbook},
		{SpanishFile, SpanishWorkbook},
	}

	var paths []string
	for _, b := range builders {
		f, err := b.build()
		if err != nil {
			return nil, fmt.Errorf("failed to build %s: %w", b.name, err)
		}
		path := filepath.Join(dir, b.name)
		if err := f.SaveAs(path); err != nil {
			return nil, fmt.Errorf("failed to save %s: %w", b.name, err)
		}
		log.Printf("[TestKit] Created fixture %s", path)
		paths = append(paths, path)
	}
	return paths, nil
}

func setCells(f *excelize.File, sheet string, cells map[string]any) error {
	for ref, value := range cells {
		if err := f.SetCellValue(sheet, ref, value); err != nil {
			return err
		}
	}
	return nil
}
