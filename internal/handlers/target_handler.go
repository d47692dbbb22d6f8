package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "rebalancer/internal/errors"
	"rebalancer/internal/services"
)

// TargetHandler handles target allocation management.
type TargetHandler struct {
	targetService services.TargetServicer
}

// NewTargetHandler creates a new TargetHandler.
func NewTargetHandler(targetService services.TargetServicer) *TargetHandler {
	return &TargetHandler{targetService: targetService}
}

// SaveTargetsRequest represents the target weights for one dimension.
type SaveTargetsRequest struct {
	Targets map[string]float64 `json:"targets" binding:"required"`
}

// ListAll returns every saved target row.
// @Summary     List all targets
// @Description List saved target allocations across both dimensions
// @Tags        targets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.TargetAllocation "Saved targets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /targets [get]
func (h *TargetHandler) ListAll(c *gin.Context) {
	rows, err := h.targetService.GetAllTargets()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"targets": rows})
}

// Get returns the saved weights for one dimension.
// @Summary     Get targets for a dimension
// @Description Get the saved target weights for the region or category dimension
// @Tags        targets
// @Produce     json
// @Security    BearerAuth
// @Param       dimension path string true "Dimension (region or category)"
// @Success     200 {object} map[string]float64 "Target weights by label"
// @Failure     400 {object} ErrorResponse "Invalid dimension"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /targets/{dimension} [get]
func (h *TargetHandler) Get(c *gin.Context) {
	dim, err := parseDimensionParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	targets, err := h.targetService.GetTargets(dim)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dimension": dim, "targets": targets})
}

// Save replaces the target set for one dimension.
// @Summary     Save targets for a dimension
// @Description Replace the target weights for a dimension. Weights must use known labels and sum to 100.
// @Tags        targets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       dimension path string             true "Dimension (region or category)"
// @Param       request   body SaveTargetsRequest true "Target weights by label"
// @Success     200 {object} map[string]float64 "Saved target weights"
// @Failure     400 {object} ErrorResponse "Invalid labels or sum"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /targets/{dimension} [put]
func (h *TargetHandler) Save(c *gin.Context) {
	dim, err := parseDimensionParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SaveTargetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.targetService.SaveTargets(dim, req.Targets); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dimension": dim, "targets": req.Targets})
}
