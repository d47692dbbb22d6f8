package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rebalancer/internal/allocation"
	apperrors "rebalancer/internal/errors"
	"rebalancer/internal/services"
)

// PortfolioHandler handles the read-side portfolio views.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// Breakdown returns the allocation breakdown for a snapshot set.
// @Summary     Get portfolio breakdown
// @Description Get the region and category breakdown for a date, or the latest snapshot per brokerage
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Param       date        query string true  "Snapshot date (YYYY-MM-DD) or 'latest'" default(latest)
// @Param       equity_only query bool   false "Recompute region buckets over the equity sleeve only"
// @Success     200 {object} services.BreakdownView "Allocation breakdown"
// @Failure     400 {object} ErrorResponse "Invalid date or no holdings"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No snapshot for date"
// @Router      /portfolio/breakdown [get]
func (h *PortfolioHandler) Breakdown(c *gin.Context) {
	equityOnly := c.Query("equity_only") == "true"

	view, err := h.portfolioService.GetBreakdown(c.Request.Context(), dateQuery(c), equityOnly)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Rebalance returns drift-closing trade recommendations.
// @Summary     Get rebalance plan
// @Description Compare current weights against targets and recommend trades. Omit dimension to get both plans.
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Param       date      query string true  "Snapshot date (YYYY-MM-DD) or 'latest'" default(latest)
// @Param       dimension query string false "Restrict to one dimension (region or category)"
// @Success     200 {object} services.RebalanceView "Rebalance plans"
// @Failure     400 {object} ErrorResponse "Invalid date, dimension, or no holdings"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No snapshot for date"
// @Router      /portfolio/rebalance [get]
func (h *PortfolioHandler) Rebalance(c *gin.Context) {
	var dimension *allocation.Dimension
	if raw := c.Query("dimension"); raw != "" {
		dim, err := allocation.ParseDimension(raw)
		if err != nil {
			respondWithError(c, apperrors.ErrInvalidDimension)
			return
		}
		dimension = &dim
	}

	view, err := h.portfolioService.GetRebalance(c.Request.Context(), dateQuery(c), dimension)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Live returns the snapshot repriced with live quotes.
// @Summary     Get live portfolio view
// @Description Reprice the snapshot's positions with live market quotes. Unquotable positions keep their snapshot value and are flagged stale.
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Param       date query string true "Snapshot date (YYYY-MM-DD) or 'latest'" default(latest)
// @Success     200 {object} services.LiveView "Live portfolio view"
// @Failure     400 {object} ErrorResponse "Invalid date or no holdings"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Quote provider unavailable"
// @Router      /portfolio/live [get]
func (h *PortfolioHandler) Live(c *gin.Context) {
	view, err := h.portfolioService.GetLiveView(c.Request.Context(), dateQuery(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
