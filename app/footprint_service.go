package app

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"pacesetter/domain/footprint"
	"pacesetter/domain/grid"
	"pacesetter/internal/errors"
	"pacesetter/internal/extract"
	"pacesetter/ports"
)

// SheetInfo describes the sheets of an uploaded workbook and which of them
// look like product model sheets.
type SheetInfo struct {
	AllSheets           []string `json:"all_sheets"`
	DetectedModelSheets []string `json:"detected_model_sheets"`
	RecommendedSheet    string   `json:"recommended_sheet"`
}

// Parameters echoes the knobs a computation ran with.
type Parameters struct {
	ModelSheet string  `json:"model_sheet"`
	GridFactor float64 `json:"grid_factor"`
	Lifetime   int     `json:"lifetime"`
}

// Computation bundles one full extract-and-compute pass: the extracted
// inputs with their provenance and warnings, the derived KPIs, and the
// parameters used.
type Computation struct {
	ID         string                          `json:"computation_id"`
	Inputs     map[string]float64              `json:"inputs"`
	Provenance map[string]footprint.Provenance `json:"provenance"`
	Warnings   []string                        `json:"warnings"`
	KPIs       map[string]float64              `json:"kpis"`
	Parameters Parameters                      `json:"parameters"`
}

// FootprintService orchestrates workbook decoding, input extraction and KPI
// computation behind one boundary. Extraction is fail-soft: a workbook that
// cannot be decoded still yields a structurally complete result. Parameter
// validation is the only hard failure.
type FootprintService struct {
	decoder ports.WorkbookDecoder
}

// NewFootprintService creates a new footprint service
func NewFootprintService(decoder ports.WorkbookDecoder) *FootprintService {
	return &FootprintService{decoder: decoder}
}

// Decode exposes workbook decoding for callers that cache the decoded grid
// across repeated extractions, like the review UI.
func (s *FootprintService) Decode(data []byte) (*grid.Workbook, error) {
	return s.decoder.DecodeBytes(data)
}

// Sheets decodes the workbook and reports all sheet names, the detected
// model sheets, and the recommended one to extract from.
func (s *FootprintService) Sheets(data []byte) (*SheetInfo, error) {
	wb, err := s.decoder.DecodeBytes(data)
	if err != nil {
		return nil, err
	}
	return s.SheetsOf(wb), nil
}

// SheetsOf builds sheet info for an already decoded workbook.
func (s *FootprintService) SheetsOf(wb *grid.Workbook) *SheetInfo {
	detected := extract.DetectModelSheets(wb.Names)
	recommended := ""
	if len(detected) > 0 {
		recommended = detected[0]
	}
	return &SheetInfo{
		AllSheets:           wb.Names,
		DetectedModelSheets: detected,
		RecommendedSheet:    recommended,
	}
}

// Extract pulls the required inputs from one sheet of the workbook. Decode
// failures degrade to a complete all-failed result with a warning instead
// of an error.
func (s *FootprintService) Extract(data []byte, modelSheet string) *footprint.ExtractionResult {
	wb, err := s.decoder.DecodeBytes(data)
	if err != nil {
		log.Printf("[Footprint] WARNING: workbook decode failed: %v", err)
		return footprint.FailedResult(modelSheet, fmt.Sprintf("failed to read workbook: %v", err))
	}
	return extract.ExtractRequiredInputs(wb, modelSheet)
}

// ExtractFromWorkbook runs extraction against an already decoded workbook.
func (s *FootprintService) ExtractFromWorkbook(wb *grid.Workbook, modelSheet string) *footprint.ExtractionResult {
	return extract.ExtractRequiredInputs(wb, modelSheet)
}

// Compute extracts from the workbook and derives the lifecycle KPIs in one
// pass. Only invalid parameters produce an error.
func (s *FootprintService) Compute(data []byte, modelSheet string, gridFactor float64, lifetime int) (*Computation, error) {
	if err := validateParameters(gridFactor, lifetime); err != nil {
		return nil, err
	}
	result := s.Extract(data, modelSheet)
	return s.finishComputation(result, modelSheet, gridFactor, lifetime), nil
}

// ComputeFromResult derives KPIs from an extraction result that the caller
// already holds, typically after manual overrides were applied.
func (s *FootprintService) ComputeFromResult(result *footprint.ExtractionResult, modelSheet string, gridFactor float64, lifetime int) (*Computation, error) {
	if err := validateParameters(gridFactor, lifetime); err != nil {
		return nil, err
	}
	return s.finishComputation(result, modelSheet, gridFactor, lifetime), nil
}

func (s *FootprintService) finishComputation(result *footprint.ExtractionResult, modelSheet string, gridFactor float64, lifetime int) *Computation {
	kpis := footprint.ComputeKPIs(result.Inputs, gridFactor, lifetime)

	log.Printf("[Footprint] Computed %.2f kg CO2e total for sheet %q (%d warnings)",
		kpis[footprint.KeyTotal], modelSheet, len(result.Warnings))

	return &Computation{
		ID:         uuid.NewString(),
		Inputs:     result.Inputs,
		Provenance: result.Provenance,
		Warnings:   result.Warnings,
		KPIs:       kpis,
		Parameters: Parameters{
			ModelSheet: modelSheet,
			GridFactor: gridFactor,
			Lifetime:   lifetime,
		},
	}
}

func validateParameters(gridFactor float64, lifetime int) error {
	if gridFactor <= 0 {
		return errors.InvalidInput(fmt.Sprintf("grid factor must be positive, got %v", gridFactor))
	}
	if lifetime < 1 {
		return errors.InvalidInput(fmt.Sprintf("lifetime must be at least 1 year, got %d", lifetime))
	}
	return nil
}
