package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"rebalancer/internal/allocation"
	apperrors "rebalancer/internal/errors"
	"rebalancer/internal/models"
	"rebalancer/internal/pagination"
	"rebalancer/internal/services"
)

// --- mock snapshot service ---

type mockSnapshotService struct {
	importCSVFn     func(ctx context.Context, date time.Time, brokerage allocation.Brokerage, filename, content string) (*models.Snapshot, error)
	listSnapshotsFn func(page pagination.PageRequest) (*pagination.PageResponse[models.Snapshot], error)
	getSnapshotFn   func(id string) (*models.Snapshot, error)
	deleteFn        func(id string) error
	clearAllFn      func() error
	positionsForFn  func(dateQuery string) ([]allocation.Position, time.Time, error)
	datesFn         func() ([]time.Time, error)
}

var _ services.SnapshotServicer = (*mockSnapshotService)(nil)

func (m *mockSnapshotService) ImportCSV(ctx context.Context, date time.Time, brokerage allocation.Brokerage, filename, content string) (*models.Snapshot, error) {
	if m.importCSVFn != nil {
		return m.importCSVFn(ctx, date, brokerage, filename, content)
	}
	return &models.Snapshot{Base: models.Base{ID: "s1"}}, nil
}

func (m *mockSnapshotService) ListSnapshots(page pagination.PageRequest) (*pagination.PageResponse[models.Snapshot], error) {
	if m.listSnapshotsFn != nil {
		return m.listSnapshotsFn(page)
	}
	resp := pagination.NewPageResponse([]models.Snapshot{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockSnapshotService) GetSnapshot(id string) (*models.Snapshot, error) {
	if m.getSnapshotFn != nil {
		return m.getSnapshotFn(id)
	}
	return &models.Snapshot{Base: models.Base{ID: id}}, nil
}

func (m *mockSnapshotService) DeleteSnapshot(id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

func (m *mockSnapshotService) ClearAll() error {
	if m.clearAllFn != nil {
		return m.clearAllFn()
	}
	return nil
}

func (m *mockSnapshotService) PositionsFor(dateQuery string) ([]allocation.Position, time.Time, error) {
	if m.positionsForFn != nil {
		return m.positionsForFn(dateQuery)
	}
	return nil, time.Time{}, apperrors.ErrNoHoldings
}

func (m *mockSnapshotService) Dates() ([]time.Time, error) {
	if m.datesFn != nil {
		return m.datesFn()
	}
	return nil, nil
}

// --- helpers ---

func setupSnapshotRouter(handler *SnapshotHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID("u1"))
	auth.POST("/snapshots/upload", handler.Upload)
	auth.GET("/snapshots", handler.List)
	auth.GET("/snapshots/dates", handler.Dates)
	auth.GET("/snapshots/:id", handler.Get)
	auth.DELETE("/snapshots/:id", handler.Delete)
	auth.DELETE("/snapshots", handler.Clear)
	return r
}

func doUpload(r *gin.Engine, fields map[string]string, filename, fileContent string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		_ = writer.WriteField(key, value)
	}
	if filename != "" {
		part, _ := writer.CreateFormFile("file", filename)
		_, _ = part.Write([]byte(fileContent))
	}
	writer.Close()

	req := httptest.NewRequest("POST", "/snapshots/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// --- tests ---

func TestSnapshotHandler_Upload(t *testing.T) {
	t.Run("returns_201_on_success", func(t *testing.T) {
		var gotBrokerage allocation.Brokerage
		var gotDate time.Time
		svc := &mockSnapshotService{
			importCSVFn: func(_ context.Context, date time.Time, brokerage allocation.Brokerage, filename, content string) (*models.Snapshot, error) {
				gotBrokerage = brokerage
				gotDate = date
				return &models.Snapshot{Base: models.Base{ID: "s1"}, Brokerage: string(brokerage), HoldingCount: 2}, nil
			},
		}
		r := setupSnapshotRouter(NewSnapshotHandler(svc))

		rec := doUpload(r, map[string]string{
			"brokerage": "fidelity",
			"date":      "2025-06-01",
		}, "positions.csv", "Symbol,Quantity,Current Value\nVTI,100,25000")

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotBrokerage != allocation.BrokerageFidelity {
			t.Errorf("expected fidelity, got %s", gotBrokerage)
		}
		if gotDate.Format("2006-01-02") != "2025-06-01" {
			t.Errorf("expected date 2025-06-01, got %v", gotDate)
		}
	})

	t.Run("returns_400_on_unknown_brokerage", func(t *testing.T) {
		r := setupSnapshotRouter(NewSnapshotHandler(&mockSnapshotService{}))

		rec := doUpload(r, map[string]string{"brokerage": "etrade"}, "positions.csv", "data")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns_400_when_file_missing", func(t *testing.T) {
		r := setupSnapshotRouter(NewSnapshotHandler(&mockSnapshotService{}))

		rec := doUpload(r, map[string]string{"brokerage": "fidelity"}, "", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("propagates_parse_errors", func(t *testing.T) {
		svc := &mockSnapshotService{
			importCSVFn: func(_ context.Context, _ time.Time, _ allocation.Brokerage, _, _ string) (*models.Snapshot, error) {
				return nil, apperrors.ErrMalformedCSV
			},
		}
		r := setupSnapshotRouter(NewSnapshotHandler(svc))

		rec := doUpload(r, map[string]string{"brokerage": "schwab"}, "bad.csv", "garbage")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "MALFORMED_CSV")
	})
}

func TestSnapshotHandler_List(t *testing.T) {
	t.Run("returns_paginated_snapshots", func(t *testing.T) {
		svc := &mockSnapshotService{
			listSnapshotsFn: func(page pagination.PageRequest) (*pagination.PageResponse[models.Snapshot], error) {
				resp := pagination.NewPageResponse([]models.Snapshot{
					{Base: models.Base{ID: "s1"}, Brokerage: "fidelity"},
				}, 1, 20, 1)
				return &resp, nil
			},
		}
		r := setupSnapshotRouter(NewSnapshotHandler(svc))

		rec := doRequest(r, "GET", "/snapshots", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["total_items"].(float64) != 1 {
			t.Errorf("expected 1 total item, got %v", result["total_items"])
		}
	})
}

func TestSnapshotHandler_Delete(t *testing.T) {
	t.Run("returns_204", func(t *testing.T) {
		r := setupSnapshotRouter(NewSnapshotHandler(&mockSnapshotService{}))

		rec := doRequest(r, "DELETE", "/snapshots/s1", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})

	t.Run("returns_404_when_missing", func(t *testing.T) {
		svc := &mockSnapshotService{
			deleteFn: func(_ string) error { return apperrors.ErrSnapshotNotFound },
		}
		r := setupSnapshotRouter(NewSnapshotHandler(svc))

		rec := doRequest(r, "DELETE", "/snapshots/missing", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestSnapshotHandler_Dates(t *testing.T) {
	svc := &mockSnapshotService{
		datesFn: func() ([]time.Time, error) {
			return []time.Time{
				time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			}, nil
		},
	}
	r := setupSnapshotRouter(NewSnapshotHandler(svc))

	rec := doRequest(r, "GET", "/snapshots/dates", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	dates := result["dates"].([]interface{})
	if len(dates) != 2 || dates[0] != "2025-06-01" {
		t.Errorf("unexpected dates payload: %v", dates)
	}
}
