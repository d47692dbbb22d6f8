package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rebalancer/internal/allocation"
	apperrors "rebalancer/internal/errors"
	"rebalancer/internal/pagination"
	"rebalancer/internal/services"
)

// maxUploadBytes caps CSV uploads at 5 MB.
const maxUploadBytes = 5 << 20

// SnapshotHandler handles CSV uploads and snapshot management.
type SnapshotHandler struct {
	snapshotService services.SnapshotServicer
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(snapshotService services.SnapshotServicer) *SnapshotHandler {
	return &SnapshotHandler{snapshotService: snapshotService}
}

// UploadRequest represents the multipart form fields of an upload.
type UploadRequest struct {
	Brokerage string `form:"brokerage" binding:"required,brokerage"`
	Date      string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// Upload ingests a brokerage positions CSV.
// @Summary     Upload a positions CSV
// @Description Upload a Fidelity or Schwab positions export. Re-uploading for the same date and brokerage replaces the snapshot.
// @Tags        snapshots
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       file      formData file   true  "Positions CSV export"
// @Param       brokerage formData string true  "Brokerage (fidelity or schwab)"
// @Param       date      formData string false "Snapshot date (YYYY-MM-DD, default today)"
// @Success     201 {object} models.Snapshot "Imported snapshot"
// @Failure     400 {object} ErrorResponse "Invalid input or unparseable CSV"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /snapshots/upload [post]
func (h *SnapshotHandler) Upload(c *gin.Context) {
	var req UploadRequest
	if err := c.ShouldBind(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	brokerage, _ := allocation.ParseBrokerage(req.Brokerage)

	date := time.Now().UTC()
	if req.Date != "" {
		date, _ = time.Parse("2006-01-02", req.Date)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "file is required"))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "file exceeds 5MB limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	snapshot, err := h.snapshotService.ImportCSV(c.Request.Context(), date, brokerage, fileHeader.Filename, string(content))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, snapshot)
}

// List returns paginated snapshots.
// @Summary     List snapshots
// @Description List uploaded snapshots, newest first
// @Tags        snapshots
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Snapshot] "Paginated snapshots"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /snapshots [get]
func (h *SnapshotHandler) List(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	resp, err := h.snapshotService.ListSnapshots(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get returns one snapshot with its holdings.
// @Summary     Get a snapshot
// @Description Get a snapshot and its holdings by ID
// @Tags        snapshots
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Snapshot ID"
// @Success     200 {object} models.Snapshot "Snapshot with holdings"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Snapshot not found"
// @Router      /snapshots/{id} [get]
func (h *SnapshotHandler) Get(c *gin.Context) {
	snapshot, err := h.snapshotService.GetSnapshot(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// Delete removes a snapshot and its holdings.
// @Summary     Delete a snapshot
// @Description Delete a snapshot and its holdings by ID
// @Tags        snapshots
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Snapshot ID"
// @Success     204 "Snapshot deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Snapshot not found"
// @Router      /snapshots/{id} [delete]
func (h *SnapshotHandler) Delete(c *gin.Context) {
	if err := h.snapshotService.DeleteSnapshot(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Clear removes every snapshot and holding.
// @Summary     Clear all snapshots
// @Description Delete every snapshot and holding
// @Tags        snapshots
// @Produce     json
// @Security    BearerAuth
// @Success     204 "All snapshots deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /snapshots [delete]
func (h *SnapshotHandler) Clear(c *gin.Context) {
	if err := h.snapshotService.ClearAll(); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Dates lists the distinct snapshot dates.
// @Summary     List snapshot dates
// @Description List the distinct snapshot dates, newest first
// @Tags        snapshots
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]string "Snapshot dates"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /snapshots/dates [get]
func (h *SnapshotHandler) Dates(c *gin.Context) {
	dates, err := h.snapshotService.Dates()
	if err != nil {
		respondWithError(c, err)
		return
	}

	formatted := make([]string, len(dates))
	for i, d := range dates {
		formatted[i] = d.Format("2006-01-02")
	}
	c.JSON(http.StatusOK, gin.H{"dates": formatted})
}
