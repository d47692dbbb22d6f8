package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rebalancer/internal/allocation"
	apperrors "rebalancer/internal/errors"
	"rebalancer/internal/pagination"
	"rebalancer/internal/services"
)

// ClassificationHandler handles the ticker classification cache.
type ClassificationHandler struct {
	classificationService services.ClassificationServicer
}

// NewClassificationHandler creates a new ClassificationHandler.
func NewClassificationHandler(classificationService services.ClassificationServicer) *ClassificationHandler {
	return &ClassificationHandler{classificationService: classificationService}
}

// UpdateClassificationRequest represents a manual classification override.
type UpdateClassificationRequest struct {
	Region   map[string]float64 `json:"region" binding:"required,dive,keys,region_label,endkeys"`
	Category map[string]float64 `json:"category" binding:"required,dive,keys,category_label,endkeys"`
}

// List returns the cached classifications.
// @Summary     List classifications
// @Description List cached ticker classifications ordered by ticker
// @Tags        classifications
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.TickerClassification] "Paginated classifications"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /classifications [get]
func (h *ClassificationHandler) List(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	resp, err := h.classificationService.ListClassifications(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get returns the classification for one ticker.
// @Summary     Get a classification
// @Description Get the cached classification for a ticker
// @Tags        classifications
// @Produce     json
// @Security    BearerAuth
// @Param       ticker path string true "Ticker symbol"
// @Success     200 {object} models.TickerClassification "Cached classification"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No classification for ticker"
// @Router      /classifications/{ticker} [get]
func (h *ClassificationHandler) Get(c *gin.Context) {
	row, err := h.classificationService.GetClassification(c.Param("ticker"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}

// Update overrides a ticker's classification manually.
// @Summary     Override a classification
// @Description Manually set the region and category breakdowns for a ticker. Manual overrides survive pipeline refreshes.
// @Tags        classifications
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       ticker  path string                      true "Ticker symbol"
// @Param       request body UpdateClassificationRequest true "Region and category breakdowns"
// @Success     200 {object} models.TickerClassification "Updated classification"
// @Failure     400 {object} ErrorResponse "Invalid breakdown"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /classifications/{ticker} [put]
func (h *ClassificationHandler) Update(c *gin.Context) {
	var req UpdateClassificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	row, err := h.classificationService.UpdateClassification(c.Param("ticker"),
		allocation.Distribution(req.Region), allocation.Distribution(req.Category))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}

// Reclassify re-resolves one ticker through the classification chain.
// @Summary     Reclassify a ticker
// @Description Drop the cached classification for a ticker and resolve it again
// @Tags        classifications
// @Produce     json
// @Security    BearerAuth
// @Param       ticker path string true "Ticker symbol"
// @Success     200 {object} models.TickerClassification "Fresh classification"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No classification for ticker"
// @Router      /classifications/{ticker}/reclassify [post]
func (h *ClassificationHandler) Reclassify(c *gin.Context) {
	row, err := h.classificationService.Reclassify(c.Request.Context(), c.Param("ticker"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}
