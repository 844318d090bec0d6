package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"boxoffice/internal/csvexport"
	"boxoffice/internal/service"
)

// ReportHandler handles report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Classes handles GET /api/v1/reports/:city/classes
func (h *ReportHandler) Classes(c *gin.Context) {
	rows, err := h.reportService.ClassSummary(c.Request.Context(), c.Param("city"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rows)
}

// Totals handles GET /api/v1/reports/:city/totals
func (h *ReportHandler) Totals(c *gin.Context) {
	totals, err := h.reportService.Totals(c.Request.Context(), c.Param("city"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, totals)
}

// Customers handles GET /api/v1/reports/:city/customers
func (h *ReportHandler) Customers(c *gin.Context) {
	rows, err := h.reportService.Customers(c.Request.Context(), c.Param("city"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rows)
}

// Export handles GET /api/v1/reports/:city/export
func (h *ReportHandler) Export(c *gin.Context) {
	cityKey := c.Param("city")

	// Buffer the export so a failed parse still yields a clean JSON error
	// instead of a truncated attachment.
	var buf bytes.Buffer
	if err := h.reportService.ExportCSV(c.Request.Context(), cityKey, &buf); err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", csvexport.BuildFilename(cityKey)))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
