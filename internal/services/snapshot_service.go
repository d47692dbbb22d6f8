package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"rebalancer/internal/allocation"
	apperrors "rebalancer/internal/errors"
	"rebalancer/internal/logger"
	"rebalancer/internal/models"
	"rebalancer/internal/pagination"
	"rebalancer/internal/parsers"
)

// LatestDateQuery selects the most recent snapshot date.
const LatestDateQuery = "latest"

// snapshotService handles CSV ingestion and snapshot lookup.
type snapshotService struct {
	db              *gorm.DB
	classifications ClassificationServicer
}

// NewSnapshotService creates a new SnapshotServicer.
func NewSnapshotService(db *gorm.DB, classifications ClassificationServicer) SnapshotServicer {
	return &snapshotService{db: db, classifications: classifications}
}

// ImportCSV parses a brokerage positions export and stores it as the snapshot
// for (date, brokerage). An existing snapshot for that pair is replaced
// together with its holdings.
func (s *snapshotService) ImportCSV(ctx context.Context, date time.Time, brokerage allocation.Brokerage, filename, content string) (*models.Snapshot, error) {
	positions, err := parsers.Parse(brokerage, content)
	if err != nil {
		return nil, err
	}

	date = truncateToDay(date)
	snapshot := &models.Snapshot{
		SnapshotDate: date,
		Brokerage:    string(brokerage),
		Filename:     filename,
		HoldingCount: len(positions),
	}

	holdings := make([]models.Holding, len(positions))
	for i, p := range positions {
		value := p.Value
		if value == 0 {
			value = p.Quantity * p.Price
		}
		snapshot.TotalValue += value
		holdings[i] = models.Holding{
			Ticker:       p.Ticker,
			Name:         p.Name,
			Quantity:     p.Quantity,
			Price:        p.Price,
			Value:        value,
			CostBasis:    p.CostBasis,
			Brokerage:    string(p.Brokerage),
			Account:      p.Account,
			SecurityType: p.SecurityType,
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Snapshot
		err := tx.Where("snapshot_date = ? AND brokerage = ?", date, string(brokerage)).First(&existing).Error
		if err == nil {
			if err := tx.Where("snapshot_id = ?", existing.ID).Delete(&models.Holding{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(snapshot).Error; err != nil {
			return err
		}
		for i := range holdings {
			holdings[i].SnapshotID = snapshot.ID
		}
		return tx.Create(&holdings).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Classify any tickers this upload introduced. Classification failures
	// never fail the upload.
	tickers := make(map[string]string, len(positions))
	for _, p := range positions {
		tickers[p.Ticker] = p.Name
	}
	if err := s.classifications.EnsureClassified(ctx, tickers); err != nil {
		logger.Get().Warnw("Classification after upload failed", "error", err, "snapshot_id", snapshot.ID)
	}

	snapshot.Holdings = holdings
	logger.Get().Infow("Imported snapshot",
		"snapshot_id", snapshot.ID,
		"brokerage", brokerage,
		"date", date.Format("2006-01-02"),
		"holdings", len(holdings),
		"total_value", snapshot.TotalValue,
	)
	return snapshot, nil
}

// ListSnapshots returns snapshots ordered by date descending.
func (s *snapshotService) ListSnapshots(page pagination.PageRequest) (*pagination.PageResponse[models.Snapshot], error) {
	page.Defaults()

	var total int64
	if err := s.db.Model(&models.Snapshot{}).Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var snapshots []models.Snapshot
	if err := s.db.Order("snapshot_date desc, brokerage asc").Scopes(pagination.Paginate(page)).Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(snapshots, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetSnapshot returns a snapshot with its holdings preloaded.
func (s *snapshotService) GetSnapshot(id string) (*models.Snapshot, error) {
	var snapshot models.Snapshot
	if err := s.db.Preload("Holdings").Where("id = ?", id).First(&snapshot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSnapshotNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &snapshot, nil
}

// DeleteSnapshot removes a snapshot and its holdings.
func (s *snapshotService) DeleteSnapshot(id string) error {
	snapshot, err := s.GetSnapshot(id)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("snapshot_id = ?", snapshot.ID).Delete(&models.Holding{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Snapshot{}, "id = ?", snapshot.ID).Error
	})
}

// ClearAll removes every snapshot and holding.
func (s *snapshotService) ClearAll() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Holding{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&models.Snapshot{}).Error
	})
}

// PositionsFor resolves a date query to positions. "latest" combines, for
// each brokerage, its most recent snapshot; a YYYY-MM-DD query selects the
// snapshots of exactly that date. The returned time is the newest snapshot
// date included.
func (s *snapshotService) PositionsFor(dateQuery string) ([]allocation.Position, time.Time, error) {
	snapshots, err := s.resolveSnapshots(dateQuery)
	if err != nil {
		return nil, time.Time{}, err
	}

	var positions []allocation.Position
	var newest time.Time
	for _, snapshot := range snapshots {
		if snapshot.SnapshotDate.After(newest) {
			newest = snapshot.SnapshotDate
		}
		for _, h := range snapshot.Holdings {
			positions = append(positions, allocation.Position{
				Ticker:       h.Ticker,
				Name:         h.Name,
				Quantity:     h.Quantity,
				Price:        h.Price,
				Value:        h.Value,
				CostBasis:    h.CostBasis,
				Brokerage:    allocation.Brokerage(h.Brokerage),
				Account:      h.Account,
				SecurityType: h.SecurityType,
			})
		}
	}
	if len(positions) == 0 {
		return nil, time.Time{}, apperrors.ErrNoHoldings
	}
	return positions, newest, nil
}

func (s *snapshotService) resolveSnapshots(dateQuery string) ([]models.Snapshot, error) {
	if dateQuery == "" || dateQuery == LatestDateQuery {
		return s.latestPerBrokerage()
	}

	date, err := time.Parse("2006-01-02", dateQuery)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be 'latest' or YYYY-MM-DD")
	}

	var snapshots []models.Snapshot
	if err := s.db.Preload("Holdings").Where("snapshot_date = ?", truncateToDay(date)).Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(snapshots) == 0 {
		return nil, apperrors.ErrSnapshotNotFound
	}
	return snapshots, nil
}

// latestPerBrokerage picks, for each brokerage seen, its newest snapshot.
func (s *snapshotService) latestPerBrokerage() ([]models.Snapshot, error) {
	var all []models.Snapshot
	if err := s.db.Preload("Holdings").Order("snapshot_date desc").Find(&all).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	seen := make(map[string]bool)
	var latest []models.Snapshot
	for _, snapshot := range all {
		if seen[snapshot.Brokerage] {
			continue
		}
		seen[snapshot.Brokerage] = true
		latest = append(latest, snapshot)
	}
	if len(latest) == 0 {
		return nil, apperrors.ErrNoHoldings
	}
	return latest, nil
}

// Dates returns the distinct snapshot dates, newest first.
func (s *snapshotService) Dates() ([]time.Time, error) {
	var dates []time.Time
	if err := s.db.Model(&models.Snapshot{}).
		Distinct("snapshot_date").
		Order("snapshot_date desc").
		Pluck("snapshot_date", &dates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return dates, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
