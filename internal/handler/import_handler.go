package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"boxoffice/internal/service"
)

// ImportHandler handles sales export import endpoints.
type ImportHandler struct {
	importService service.ImportService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService service.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// importSummary is the upload summary returned to the dashboard; the raw
// text itself never leaves the persistence boundary.
type importSummary struct {
	CityKey     string    `json:"city_key"`
	FileName    string    `json:"file_name"`
	FileSize    int64     `json:"file_size"`
	RecordCount int       `json:"record_count"`
	UploadedAt  time.Time `json:"uploaded_at"`
	ArchiveURL  string    `json:"archive_url,omitempty"`
}

// Upload handles POST /api/v1/imports/:city
func (h *ImportHandler) Upload(c *gin.Context) {
	cityKey := c.Param("city")

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "multipart 'file' field is required")
		return
	}
	defer file.Close()

	result, err := h.importService.Import(c.Request.Context(), service.ImportInput{
		CityKey:  cityKey,
		FileName: header.Filename,
		Size:     header.Size,
		Reader:   file,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, importSummary{
		CityKey:     result.Upload.CityKey,
		FileName:    result.Upload.FileName,
		FileSize:    result.Upload.FileSize,
		RecordCount: result.Upload.RecordCount,
		UploadedAt:  result.Upload.UploadedAt,
	})
}

// Latest handles GET /api/v1/imports/:city
func (h *ImportHandler) Latest(c *gin.Context) {
	cityKey := c.Param("city")

	upload, records, err := h.importService.Latest(c.Request.Context(), cityKey)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"upload": importSummary{
			CityKey:     upload.CityKey,
			FileName:    upload.FileName,
			FileSize:    upload.FileSize,
			RecordCount: upload.RecordCount,
			UploadedAt:  upload.UploadedAt,
			ArchiveURL:  upload.ArchiveURL,
		},
		"records": records,
	})
}
