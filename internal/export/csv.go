// Package export renders computations and batch runs as CSV reports that
// open cleanly in spreadsheet software.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pacesetter/app"
	"pacesetter/domain/footprint"
	"pacesetter/internal/batch"
)

// utf8BOM makes Excel detect the encoding instead of guessing.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReportRows lays out a single computation as report rows: a title, the
// parameters used, and the phase breakdown ending in a TOTAL row.
func ReportRows(comp *app.Computation, category, label string) [][]string {
	rows := [][]string{
		{"Product Carbon Footprint Results"},
		{},
		{"Model sheet", comp.Parameters.ModelSheet},
		{"Category", category},
		{"Suggested label", label},
		{"Annual energy (kWh/year)", f1(comp.KPIs[footprint.KeyUseKWh])},
		{"Lifetime (years)", strconv.Itoa(comp.Parameters.Lifetime)},
		{"Grid factor (kg CO2e/kWh)", strconv.FormatFloat(comp.Parameters.GridFactor, 'g', -1, 64)},
		{},
		{"Phase", "kg CO2e", "Share %"},
		{"Transport", f1(comp.KPIs[footprint.KeyTransport]), f1(comp.KPIs[footprint.KeyShareTransport])},
		{"Materials", f1(comp.KPIs[footprint.KeyMaterials]), f1(comp.KPIs[footprint.KeyShareMaterials])},
		{"Production", f1(comp.KPIs[footprint.KeyProduction]), f1(comp.KPIs[footprint.KeyShareProduction])},
		{"Use phase", f1(comp.KPIs[footprint.KeyUsePhase]), f1(comp.KPIs[footprint.KeyShareUse])},
		{"TOTAL", f1(comp.KPIs[footprint.KeyTotal]), "100.0"},
	}

	if len(comp.Warnings) > 0 {
		rows = append(rows, []string{}, []string{"Warnings"})
		for _, warning := range comp.Warnings {
			rows = append(rows, []string{warning})
		}
	}
	return rows
}

// BatchRows lays out a batch run as one row per sheet followed by a
// summary block over the usable totals.
func BatchRows(results []batch.Result, summary *batch.Summary) [][]string {
	rows := [][]string{{
		"Sheet", "Category", "Label",
		"Transport kg CO2e", "Materials kg CO2e", "Production kg CO2e",
		"Annual kWh", "Use phase kg CO2e", "Total kg CO2e",
		"Outlier", "Warnings",
	}}

	for _, res := range results {
		outlier := ""
		if res.Outlier {
			outlier = "yes"
		}
		rows = append(rows, []string{
			res.Sheet,
			res.Category,
			res.Label,
			f2(res.KPIs[footprint.KeyTransport]),
			f2(res.KPIs[footprint.KeyMaterials]),
			f2(res.KPIs[footprint.KeyProduction]),
			f1(res.KPIs[footprint.KeyUseKWh]),
			f2(res.KPIs[footprint.KeyUsePhase]),
			f2(res.KPIs[footprint.KeyTotal]),
			outlier,
			strings.Join(res.Warnings, "; "),
		})
	}

	rows = append(rows,
		[]string{},
		[]string{"Summary"},
		[]string{"Sheets with totals", strconv.Itoa(summary.Count)},
		[]string{"Mean total", f2(summary.Mean)},
		[]string{"Median total", f2(summary.Median)},
		[]string{"Min total", f2(summary.Min)},
		[]string{"Max total", f2(summary.Max)},
		[]string{"Std dev", f2(summary.StdDev)},
	)
	return rows
}

// WriteCSV writes rows as UTF-8 CSV with a byte order mark and CRLF record
// separators.
func WriteCSV(w io.Writer, rows [][]string) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write byte order mark: %w", err)
	}
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv rows: %w", err)
	}
	return nil
}

func f1(x float64) string {
	return fmt.Sprintf("%.1f", x)
}

func f2(x float64) string {
	return fmt.Sprintf("%.2f", x)
}
