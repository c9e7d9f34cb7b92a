// Package batch extracts every model sheet of a workbook concurrently and
// aggregates the per-sheet totals into summary statistics.
package batch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/semaphore"

	"pacesetter/app"
	"pacesetter/domain/footprint"
	"pacesetter/domain/grid"
	"pacesetter/internal/errors"
)

// maxConcurrentSheets bounds how many sheets are extracted at the same time.
const maxConcurrentSheets = 4

// Result is the outcome for one model sheet.
type Result struct {
	Sheet      string                          `json:"sheet"`
	Category   string                          `json:"category"`
	Label      string                          `json:"label"`
	Inputs     map[string]float64              `json:"inputs"`
	Provenance map[string]footprint.Provenance `json:"provenance"`
	KPIs       map[string]float64              `json:"kpis"`
	Warnings   []string                        `json:"warnings"`
	Outlier    bool                            `json:"outlier"`
}

// Summary aggregates the totals of a batch. Sheets where nothing was
// extracted (total 0) are left out so they cannot drag the mean down.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
}

// Runner fans sheet extraction out over a bounded number of goroutines.
// Extraction is pure over the decoded grid, so sheets of the same workbook
// can run in parallel.
type Runner struct {
	service *app.FootprintService
	sem     *semaphore.Weighted
}

// NewRunner creates a batch runner on top of the footprint service.
func NewRunner(service *app.FootprintService) *Runner {
	return &Runner{
		service: service,
		sem:     semaphore.NewWeighted(maxConcurrentSheets),
	}
}

// Run decodes the workbook and processes every detected model sheet with
// the given parameters.
func (r *Runner) Run(ctx context.Context, data []byte, gridFactor float64, lifetime int) ([]Result, *Summary, error) {
	wb, err := r.service.Decode(data)
	if err != nil {
		return nil, nil, err
	}
	return r.RunWorkbook(ctx, wb, gridFactor, lifetime)
}

// RunWorkbook processes every detected model sheet of an already decoded
// workbook and returns per-sheet results in detection order plus summary
// statistics over the totals. Totals beyond two standard deviations from
// the batch mean are flagged as outliers when the batch is large enough
// for that to mean anything.
func (r *Runner) RunWorkbook(ctx context.Context, wb *grid.Workbook, gridFactor float64, lifetime int) ([]Result, *Summary, error) {
	if gridFactor <= 0 {
		return nil, nil, errors.InvalidInput(fmt.Sprintf("grid factor must be positive, got %v", gridFactor))
	}
	if lifetime < 1 {
		return nil, nil, errors.InvalidInput(fmt.Sprintf("lifetime must be at least 1 year, got %d", lifetime))
	}
	sheets := r.service.SheetsOf(wb).DetectedModelSheets
	if len(sheets) == 0 {
		return nil, nil, errors.InvalidInput("workbook has no sheets to process")
	}

	log.Printf("[Batch] Processing %d sheets (up to %d concurrent)", len(sheets), maxConcurrentSheets)

	results := make([]Result, len(sheets))
	var wg sync.WaitGroup
	for i, sheet := range sheets {
		if err := r.sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, nil, fmt.Errorf("failed to acquire batch slot: %w", err)
		}
		wg.Add(1)
		go func(i int, sheet string) {
			defer wg.Done()
			defer r.sem.Release(1)
			results[i] = r.processSheet(wb, sheet, gridFactor, lifetime)
		}(i, sheet)
	}
	wg.Wait()

	summary, err := summarize(results)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to summarize batch: %w", err)
	}
	flagOutliers(results, summary)

	log.Printf("[Batch] Done: %d sheets, %d with usable totals", len(results), summary.Count)
	return results, summary, nil
}

func (r *Runner) processSheet(wb *grid.Workbook, sheet string, gridFactor float64, lifetime int) Result {
	extraction := r.service.ExtractFromWorkbook(wb, sheet)
	kpis := footprint.ComputeKPIs(extraction.Inputs, gridFactor, lifetime)

	category := InferCategory(sheet)
	label := ""
	if kwh := extraction.Inputs[footprint.KeyUseKWh]; kwh > 0 {
		label = footprint.SuggestLabel(kwh, category)
	}

	return Result{
		Sheet:      sheet,
		Category:   category,
		Label:      label,
		Inputs:     extraction.Inputs,
		Provenance: extraction.Provenance,
		KPIs:       kpis,
		Warnings:   extraction.Warnings,
	}
}

// summarize computes batch statistics over the nonzero totals.
func summarize(results []Result) (*Summary, error) {
	totals := make([]float64, 0, len(results))
	for _, res := range results {
		if total := res.KPIs[footprint.KeyTotal]; total > 0 {
			totals = append(totals, total)
		}
	}

	summary := &Summary{Count: len(totals)}
	if len(totals) == 0 {
		return summary, nil
	}

	mean, err := stats.Mean(totals)
	if err != nil {
		return nil, err
	}
	median, err := stats.Median(totals)
	if err != nil {
		return nil, err
	}
	min, err := stats.Min(totals)
	if err != nil {
		return nil, err
	}
	max, err := stats.Max(totals)
	if err != nil {
		return nil, err
	}
	stdDev, err := stats.StandardDeviation(totals)
	if err != nil {
		return nil, err
	}

	summary.Mean = mean
	summary.Median = median
	summary.Min = min
	summary.Max = max
	summary.StdDev = stdDev
	return summary, nil
}

// flagOutliers marks sheets whose total sits more than two standard
// deviations from the batch mean, and says so in the sheet's warnings.
// Sheets without a usable total never count.
func flagOutliers(results []Result, summary *Summary) {
	if summary.Count < 3 || summary.StdDev == 0 {
		return
	}
	lower := summary.Mean - 2*summary.StdDev
	upper := summary.Mean + 2*summary.StdDev
	for i := range results {
		total := results[i].KPIs[footprint.KeyTotal]
		if total <= 0 {
			continue
		}
		if total < lower || total > upper {
			results[i].Outlier = true
			results[i].Warnings = append(results[i].Warnings,
				fmt.Sprintf("total %.2f kg CO2e is more than two standard deviations from the batch mean %.2f", total, summary.Mean))
		}
	}
}

// InferCategory guesses the product category from a sheet or file name.
// Unknown names return the empty string and fall back to generic label
// bands downstream.
func InferCategory(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "dry"):
		return footprint.CategoryDrying
	case strings.Contains(n, "wash"):
		return footprint.CategoryWashing
	case strings.Contains(n, "cool"), strings.Contains(n, "refriger"), strings.Contains(n, "fridge"):
		return footprint.CategoryCooling
	case strings.Contains(n, "cook"), strings.Contains(n, "oven"):
		return footprint.CategoryCooking
	}
	return ""
}
