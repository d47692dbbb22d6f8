package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rebalancer/internal/services"
)

// AnalysisHandler handles the AI narrative analysis.
type AnalysisHandler struct {
	analysisService services.AnalysisServicer
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService services.AnalysisServicer) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// Get returns the stored analysis for a date.
// @Summary     Get portfolio analysis
// @Description Get the stored narrative analysis for a date, or the newest one
// @Tags        analysis
// @Produce     json
// @Security    BearerAuth
// @Param       date query string true "Snapshot date (YYYY-MM-DD) or 'latest'" default(latest)
// @Success     200 {object} models.PortfolioAnalysis "Stored analysis"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No analysis for date"
// @Router      /analysis [get]
func (h *AnalysisHandler) Get(c *gin.Context) {
	analysis, err := h.analysisService.GetAnalysis(dateQuery(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// Generate writes a fresh analysis for a date and stores it.
// @Summary     Generate portfolio analysis
// @Description Generate a narrative analysis of the breakdown for a date and store it, replacing any previous analysis for that date
// @Tags        analysis
// @Produce     json
// @Security    BearerAuth
// @Param       date query string true "Snapshot date (YYYY-MM-DD) or 'latest'" default(latest)
// @Success     201 {object} models.PortfolioAnalysis "Generated analysis"
// @Failure     400 {object} ErrorResponse "Invalid date or no holdings"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     503 {object} ErrorResponse "AI analyst not configured"
// @Router      /analysis/generate [post]
func (h *AnalysisHandler) Generate(c *gin.Context) {
	analysis, err := h.analysisService.GenerateAnalysis(c.Request.Context(), dateQuery(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, analysis)
}
