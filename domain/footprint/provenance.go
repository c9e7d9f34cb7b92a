package footprint

import "fmt"

// Method says how a value made it into the inputs.
type Method string

const (
	MethodAnchor Method = "anchor" // label found, value taken from a neighboring cell
	MethodTable  Method = "table"  // column classified by header, first value below it
	MethodManual Method = "manual" // entered or overridden by a person
	MethodFailed Method = "failed" // nothing usable found, value defaulted to zero
)

// Provenance records where a single input value came from. Confidence is a
// fixed per-strategy score, not a statistical estimate: 1.0 manual, 0.9
// anchor right, 0.8 anchor below, 0.7 anchor left, 0.6 table, 0.0 failed.
type Provenance struct {
	Method     Method  `json:"method"`
	Sheet      string  `json:"sheet"`
	CellRef    string  `json:"cell_ref"`
	AnchorText string  `json:"anchor_text,omitempty"`
	Confidence float64 `json:"confidence"`
}

// FailedProvenance marks a key that could not be extracted from the sheet.
func FailedProvenance(sheet string) Provenance {
	return Provenance{
		Method:     MethodFailed,
		Sheet:      sheet,
		CellRef:    "N/A",
		Confidence: 0.0,
	}
}

// ManualProvenance marks a key whose value a person supplied directly.
func ManualProvenance(sheet string) Provenance {
	return Provenance{
		Method:     MethodManual,
		Sheet:      sheet,
		CellRef:    "user_input",
		Confidence: 1.0,
	}
}

// ExtractionResult is the complete outcome of one extraction pass. Every
// required key is always present in both Inputs and Provenance, whether or
// not extraction succeeded; failures surface as zero values with failed
// provenance plus a warning, never as missing keys or an error.
type ExtractionResult struct {
	Inputs     map[string]float64    `json:"inputs"`
	Provenance map[string]Provenance `json:"provenance"`
	Warnings   []string              `json:"warnings"`
}

// NewExtractionResult returns an empty result ready to be filled key by key.
func NewExtractionResult() *ExtractionResult {
	return &ExtractionResult{
		Inputs:     make(map[string]float64, len(RequiredKeys)),
		Provenance: make(map[string]Provenance, len(RequiredKeys)),
		Warnings:   []string{},
	}
}

// FailedResult builds a structurally complete result in which every required
// key is zero with failed provenance, carrying the given warning. Used when
// the workbook cannot be decoded or the requested sheet does not exist.
func FailedResult(sheet, warning string) *ExtractionResult {
	r := NewExtractionResult()
	for _, key := range RequiredKeys {
		r.Inputs[key] = 0.0
		r.Provenance[key] = FailedProvenance(sheet)
	}
	r.Warnings = append(r.Warnings, warning)
	return r
}

// Set records one extracted value together with its provenance.
func (r *ExtractionResult) Set(key string, value float64, prov Provenance) {
	r.Inputs[key] = value
	r.Provenance[key] = prov
}

// SetFailed records that a key could not be extracted and adds the standard
// warning for it.
func (r *ExtractionResult) SetFailed(key, sheet string) {
	r.Inputs[key] = 0.0
	r.Provenance[key] = FailedProvenance(sheet)
	r.Warnings = append(r.Warnings, fmt.Sprintf("could not extract %q from sheet %q", key, sheet))
}

// ApplyOverride replaces a value with one supplied by a person. Provenance
// switches to manual with full confidence; the original sheet attribution is
// kept so the report still says which sheet the number belongs to.
func (r *ExtractionResult) ApplyOverride(key string, value float64) {
	sheet := r.Provenance[key].Sheet
	r.Inputs[key] = value
	r.Provenance[key] = ManualProvenance(sheet)
}

// FailedKeys lists the required keys that ended up with failed provenance,
// in canonical order.
func (r *ExtractionResult) FailedKeys() []string {
	var failed []string
	for _, key := range RequiredKeys {
		if r.Provenance[key].Method == MethodFailed {
			failed = append(failed, key)
		}
	}
	return failed
}
