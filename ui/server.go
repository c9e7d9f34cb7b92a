// Package ui carries the two HTTP surfaces: the JSON API server and the
// human review web app.
package ui

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"pacesetter/app"
	"pacesetter/domain/footprint"
	"pacesetter/internal/config"
	"pacesetter/internal/errors"
	"pacesetter/internal/export"
)

// maxUploadSize caps workbook uploads at 50MB.
const maxUploadSize = 50 * 1024 * 1024

var allowedExtensions = []string{".xlsx", ".xlsm", ".xls"}

// Server is the JSON API for sheet inspection, extraction and computation.
type Server struct {
	router   *gin.Engine
	service  *app.FootprintService
	defaults config.DefaultsConfig
}

// NewServer creates the API server.
func NewServer(cfg *config.Config, service *app.FootprintService) *Server {
	gin.SetMode(cfg.Server.GinMode)
	s := &Server{
		router:   gin.Default(),
		service:  service,
		defaults: cfg.Defaults,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleHealth)

	api := s.router.Group("/api")
	api.POST("/sheets", s.handleSheets)
	api.POST("/extract", s.handleExtract)
	api.POST("/compute", s.handleCompute)
	api.POST("/export.csv", s.handleExportCSV)
}

// Start runs the server on addr, blocking until it stops.
func (s *Server) Start(addr string) error {
	log.Printf("[API] Listening on http://%s", addr)
	return s.router.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "product footprint API"})
}

// handleSheets reports the sheet names of an uploaded workbook and which
// ones look like model sheets.
func (s *Server) handleSheets(c *gin.Context) {
	data, ok := s.readWorkbook(c)
	if !ok {
		return
	}
	info, err := s.service.Sheets(data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// handleExtract runs extraction against one sheet and returns the values
// with their provenance and warnings.
func (s *Server) handleExtract(c *gin.Context) {
	data, ok := s.readWorkbook(c)
	if !ok {
		return
	}
	sheet := c.PostForm("model_sheet")
	if sheet == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "model_sheet is required"})
		return
	}
	c.JSON(http.StatusOK, s.service.Extract(data, sheet))
}

// handleCompute extracts and derives the lifecycle KPIs in one call.
// Missing parameters fall back to the configured defaults.
func (s *Server) handleCompute(c *gin.Context) {
	data, ok := s.readWorkbook(c)
	if !ok {
		return
	}
	sheet := c.PostForm("model_sheet")
	if sheet == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "model_sheet is required"})
		return
	}
	gridFactor, lifetime, ok := s.readParameters(c)
	if !ok {
		return
	}

	comp, err := s.service.Compute(data, sheet, gridFactor, lifetime)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comp)
}

// handleExportCSV renders reviewed values as a CSV report. The client
// re-submits the values it wants exported, so no server state is needed.
func (s *Server) handleExportCSV(c *gin.Context) {
	sheet := c.PostForm("model_sheet")
	result := footprint.NewExtractionResult()
	for _, f := range formFields {
		value, err := formFloat(c, f.Field, 0)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s must be a number", f.Field)})
			return
		}
		result.Set(f.Key, value, footprint.ManualProvenance(sheet))
	}
	gridFactor, lifetime, ok := s.readParameters(c)
	if !ok {
		return
	}

	comp, err := s.service.ComputeFromResult(result, sheet, gridFactor, lifetime)
	if err != nil {
		respondError(c, err)
		return
	}

	category := c.PostForm("category")
	label := c.PostForm("label")
	if label == "" {
		if kwh := result.Inputs[footprint.KeyUseKWh]; kwh > 0 {
			label = footprint.SuggestLabel(kwh, category)
		}
	}

	c.Header("Content-Disposition", `attachment; filename="footprint_report.csv"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if err := export.WriteCSV(c.Writer, export.ReportRows(comp, category, label)); err != nil {
		log.Printf("[API] FAILED - writing csv response: %v", err)
	}
}

// readWorkbook pulls the uploaded workbook out of the multipart form and
// validates size and extension. On failure it writes the error response
// and returns ok=false.
func (s *Server) readWorkbook(c *gin.Context) ([]byte, bool) {
	file, header, err := c.Request.FormFile("workbook")
	if err != nil {
		log.Printf("[API] FAILED - no workbook uploaded: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "no workbook uploaded"})
		return nil, false
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		log.Printf("[API] FAILED - upload too large: %d bytes", header.Size)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("file size (%.1f MB) exceeds the 50MB limit", float64(header.Size)/(1024*1024)),
		})
		return nil, false
	}
	if !hasAllowedExtension(header.Filename) {
		log.Printf("[API] FAILED - invalid file extension: %s", header.Filename)
		c.JSON(http.StatusBadRequest, gin.H{"error": "only Excel workbooks (.xlsx, .xlsm, .xls) are allowed"})
		return nil, false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("[API] FAILED - reading upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return nil, false
	}
	return data, true
}

// readParameters reads grid_factor and lifetime form fields, falling back
// to the configured defaults. On a malformed value it writes the error
// response and returns ok=false.
func (s *Server) readParameters(c *gin.Context) (float64, int, bool) {
	gridFactor, err := formFloat(c, "grid_factor", s.defaults.GridFactor)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "grid_factor must be a number"})
		return 0, 0, false
	}
	lifetime, err := formInt(c, "lifetime", s.defaults.Lifetime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lifetime must be an integer"})
		return 0, 0, false
	}
	return gridFactor, lifetime, true
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeWorkbookInvalid, errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeNotFound, errors.CodeSheetNotFound:
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func formFloat(c *gin.Context, field string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(c.PostForm(field))
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func formInt(c *gin.Context, field string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.PostForm(field))
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func hasAllowedExtension(filename string) bool {
	name := strings.ToLower(filename)
	for _, ext := range allowedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
