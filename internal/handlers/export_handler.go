package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abdulkadar0710/Student-Dashboard-task/internal/services"
)

// ExportHandler handles roster snapshot export requests
type ExportHandler struct {
	exportService services.ExportServiceInterface
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService services.ExportServiceInterface) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Export uploads a JSON snapshot of the full roster to object storage and
// returns its URL
func (h *ExportHandler) Export(c *gin.Context) {
	result, err := h.exportService.ExportRoster(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to export roster", err)
		return
	}

	c.JSON(http.StatusOK, result)
}
