package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"pacesetter/app"
	"pacesetter/domain/footprint"
	"pacesetter/internal/batch"
	"pacesetter/internal/config"
	"pacesetter/internal/export"
)

//go:embed templates/*.html docs/*.md
var embeddedFiles embed.FS

// formFields maps the HTML form field names to their input keys, in
// display order.
var formFields = []struct{ Key, Field string }{
	{footprint.KeyTransport, "transport"},
	{footprint.KeyMaterials, "materials"},
	{footprint.KeyProduction, "production"},
	{footprint.KeyUseKWh, "use_kwh"},
}

// App is the review web application: upload a workbook, inspect and correct
// the extracted values, compute the footprint, export the report.
type App struct {
	router          *chi.Mux
	service         *app.FootprintService
	cache           *uploadCache
	templates       *template.Template
	methodologyHTML template.HTML
	defaults        config.DefaultsConfig
}

// NewApp creates the review application.
func NewApp(cfg *config.Config, service *app.FootprintService) (*App, error) {
	funcMap := template.FuncMap{
		"mul": func(a, b float64) float64 { return a * b },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	methodologyHTML, err := renderMethodology()
	if err != nil {
		return nil, err
	}

	a := &App{
		router:          chi.NewRouter(),
		service:         service,
		cache:           newUploadCache(cfg.Review.UploadTTL),
		templates:       templates,
		methodologyHTML: methodologyHTML,
		defaults:        cfg.Defaults,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// renderMethodology converts the embedded methodology document to HTML
// once, at startup.
func renderMethodology() (template.HTML, error) {
	raw, err := embeddedFiles.ReadFile("docs/methodology.md")
	if err != nil {
		return "", fmt.Errorf("failed to read methodology document: %w", err)
	}
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse(markdown.NormalizeNewlines(raw))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return template.HTML(markdown.Render(doc, renderer)), nil
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Post("/upload", a.handleUpload)
	a.router.Get("/review/{id}", a.handleReview)
	a.router.Post("/compute/{id}", a.handleComputePage)
	a.router.Post("/export", a.handleExport)
	a.router.Get("/methodology", a.handleMethodology)
}

// Start runs the review server on addr, blocking until it stops.
func (a *App) Start(addr string) error {
	log.Printf("[Review] Listening on http://%s", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, "index.html", map[string]interface{}{
		"Title": "Product Footprint Review",
	})
}

// handleUpload validates and decodes the workbook, caches it, and sends
// the browser to the review screen for the recommended sheet.
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("workbook")
	if err != nil {
		http.Error(w, "no workbook uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		http.Error(w, fmt.Sprintf("file size (%.1f MB) exceeds the 50MB limit", float64(header.Size)/(1024*1024)), http.StatusBadRequest)
		return
	}
	if !hasAllowedExtension(header.Filename) {
		http.Error(w, "only Excel workbooks (.xlsx, .xlsm, .xls) are allowed", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read upload", http.StatusInternalServerError)
		return
	}

	wb, err := a.service.Decode(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := a.cache.Put(header.Filename, wb)
	log.Printf("[Review] Uploaded %q as %s (%d sheets)", header.Filename, id, len(wb.Names))

	sheet := a.service.SheetsOf(wb).RecommendedSheet
	if sheet == "" && len(wb.Names) > 0 {
		sheet = wb.Names[0]
	}
	http.Redirect(w, r, "/review/"+id+"?sheet="+url.QueryEscape(sheet), http.StatusSeeOther)
}

// reviewRow is one editable input on the review screen.
type reviewRow struct {
	Key        string
	Field      string
	Label      string
	Unit       string
	Value      float64
	Provenance footprint.Provenance
	Presets    []float64
}

// handleReview shows the extracted values for one sheet with their
// provenance, ready to be corrected and computed.
func (a *App) handleReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entry, ok := a.cache.Get(id)
	if !ok {
		http.Error(w, "upload not found or expired", http.StatusNotFound)
		return
	}

	info := a.service.SheetsOf(entry.workbook)
	sheet := r.URL.Query().Get("sheet")
	if sheet == "" {
		sheet = info.RecommendedSheet
	}
	if sheet == "" && len(info.AllSheets) > 0 {
		sheet = info.AllSheets[0]
	}

	result := a.service.ExtractFromWorkbook(entry.workbook, sheet)
	category := batch.InferCategory(sheet)

	rows := make([]reviewRow, 0, len(formFields))
	for _, f := range formFields {
		unit := "kg CO2e"
		if f.Key == footprint.KeyUseKWh {
			unit = "kWh/year"
		}
		rows = append(rows, reviewRow{
			Key:        f.Key,
			Field:      f.Field,
			Label:      footprint.DisplayNames[f.Key],
			Unit:       unit,
			Value:      result.Inputs[f.Key],
			Provenance: result.Provenance[f.Key],
			Presets:    footprint.Presets(f.Key, result.Inputs[f.Key], category),
		})
	}

	a.renderTemplate(w, "review.html", map[string]interface{}{
		"Title":         "Review - " + entry.name,
		"ID":            id,
		"FileName":      entry.name,
		"AllSheets":     info.AllSheets,
		"ModelSheets":   info.DetectedModelSheets,
		"SelectedSheet": sheet,
		"Rows":          rows,
		"Warnings":      result.Warnings,
		"GridFactors":   footprint.GridFactors,
		"GridFactor":    a.defaults.GridFactor,
		"Categories":    footprint.Categories,
		"Category":      category,
		"Lifetime":      footprint.Lifetime(category),
	})
}

// phaseRow is one line of the results breakdown table.
type phaseRow struct {
	Phase string
	CO2e  float64
	Share float64
}

// exportField carries one hidden input of the export form.
type exportField struct {
	Field string
	Value float64
}

// handleComputePage re-extracts from the cached workbook, applies any
// values the reviewer changed as manual overrides, computes the KPIs and
// renders the results screen.
func (a *App) handleComputePage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entry, ok := a.cache.Get(id)
	if !ok {
		http.Error(w, "upload not found or expired", http.StatusNotFound)
		return
	}

	sheet := r.FormValue("model_sheet")
	result := a.service.ExtractFromWorkbook(entry.workbook, sheet)
	for _, f := range formFields {
		raw := strings.TrimSpace(r.FormValue(f.Field))
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			http.Error(w, fmt.Sprintf("%s must be a number", f.Field), http.StatusBadRequest)
			return
		}
		if math.Abs(value-result.Inputs[f.Key]) > 1e-9 {
			result.ApplyOverride(f.Key, value)
		}
	}

	gridFactor, lifetime, err := a.formParameters(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	comp, err := a.service.ComputeFromResult(result, sheet, gridFactor, lifetime)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	category := r.FormValue("category")
	label := ""
	if kwh := comp.Inputs[footprint.KeyUseKWh]; kwh > 0 {
		label = footprint.SuggestLabel(kwh, category)
	}

	phases := []phaseRow{
		{"Transport", comp.KPIs[footprint.KeyTransport], comp.KPIs[footprint.KeyShareTransport]},
		{"Materials", comp.KPIs[footprint.KeyMaterials], comp.KPIs[footprint.KeyShareMaterials]},
		{"Production", comp.KPIs[footprint.KeyProduction], comp.KPIs[footprint.KeyShareProduction]},
		{"Use phase", comp.KPIs[footprint.KeyUsePhase], comp.KPIs[footprint.KeyShareUse]},
	}

	// Hidden fields for the export form, so the CSV download works even
	// after the cached upload expires.
	exportFields := make([]exportField, 0, len(formFields))
	for _, f := range formFields {
		exportFields = append(exportFields, exportField{Field: f.Field, Value: comp.Inputs[f.Key]})
	}

	a.renderTemplate(w, "results.html", map[string]interface{}{
		"Title":        "Results - " + entry.name,
		"ID":           id,
		"FileName":     entry.name,
		"Sheet":        sheet,
		"Category":     category,
		"Label":        label,
		"Phases":       phases,
		"Total":        comp.KPIs[footprint.KeyTotal],
		"AnnualKWh":    comp.KPIs[footprint.KeyUseKWh],
		"GridFactor":   gridFactor,
		"Lifetime":     lifetime,
		"Warnings":     comp.Warnings,
		"ExportFields": exportFields,
	})
}

// handleExport rebuilds the computation from the submitted values and
// streams it as a CSV download. The values arrive with the form, so
// exports keep working after the cached upload expires.
func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	sheet := r.FormValue("model_sheet")
	result := footprint.NewExtractionResult()
	for _, f := range formFields {
		value, err := formValueFloat(r, f.Field, 0)
		if err != nil {
			http.Error(w, fmt.Sprintf("%s must be a number", f.Field), http.StatusBadRequest)
			return
		}
		result.Set(f.Key, value, footprint.ManualProvenance(sheet))
	}

	gridFactor, lifetime, err := a.formParameters(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	comp, err := a.service.ComputeFromResult(result, sheet, gridFactor, lifetime)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	category := r.FormValue("category")
	label := r.FormValue("label")
	if label == "" {
		if kwh := result.Inputs[footprint.KeyUseKWh]; kwh > 0 {
			label = footprint.SuggestLabel(kwh, category)
		}
	}

	w.Header().Set("Content-Disposition", `attachment; filename="footprint_report.csv"`)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	if err := export.WriteCSV(w, export.ReportRows(comp, category, label)); err != nil {
		log.Printf("[Review] FAILED - writing csv response: %v", err)
	}
}

func (a *App) handleMethodology(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, "methodology.html", map[string]interface{}{
		"Title":   "Methodology",
		"Content": a.methodologyHTML,
	})
}

// formParameters reads grid_factor and lifetime from the form, falling
// back to the configured defaults.
func (a *App) formParameters(r *http.Request) (float64, int, error) {
	gridFactor, err := formValueFloat(r, "grid_factor", a.defaults.GridFactor)
	if err != nil {
		return 0, 0, fmt.Errorf("grid_factor must be a number")
	}
	lifetime, err := formValueInt(r, "lifetime", a.defaults.Lifetime)
	if err != nil {
		return 0, 0, fmt.Errorf("lifetime must be an integer")
	}
	return gridFactor, lifetime, nil
}

func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

func formValueFloat(r *http.Request, field string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func formValueInt(r *http.Request, field string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
