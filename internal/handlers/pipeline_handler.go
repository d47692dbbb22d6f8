package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rebalancer/internal/services"
)

// PipelineHandler handles the API-key protected maintenance endpoints.
type PipelineHandler struct {
	classificationService services.ClassificationServicer
}

// NewPipelineHandler creates a new PipelineHandler.
func NewPipelineHandler(classificationService services.ClassificationServicer) *PipelineHandler {
	return &PipelineHandler{classificationService: classificationService}
}

// ReclassifyAll refreshes every non-manual cached classification.
// @Summary     Refresh all classifications
// @Description Re-resolve every cached ticker classification except manual overrides (pipeline endpoint)
// @Tags        pipeline
// @Produce     json
// @Param       X-API-Key header string true "Pipeline API key"
// @Success     200 {object} map[string]int "Tickers reclassified count"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     503 {object} ErrorResponse "Pipeline not configured"
// @Router      /pipeline/reclassify [post]
func (h *PipelineHandler) ReclassifyAll(c *gin.Context) {
	count, err := h.classificationService.ReclassifyAll(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tickers_reclassified": count})
}
