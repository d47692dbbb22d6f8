package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"rebalancer/internal/ai"
	apperrors "rebalancer/internal/errors"
	"rebalancer/internal/logger"
	"rebalancer/internal/models"
)

// analysisService generates and stores the AI narrative for a snapshot date.
type analysisService struct {
	db        *gorm.DB
	portfolio PortfolioServicer
	analyst   ai.Analyst
}

// NewAnalysisService creates a new AnalysisServicer. analyst may be nil when
// no AI key is configured.
func NewAnalysisService(db *gorm.DB, portfolio PortfolioServicer, analyst ai.Analyst) AnalysisServicer {
	return &analysisService{db: db, portfolio: portfolio, analyst: analyst}
}

// GenerateAnalysis builds the breakdown for the date query, asks the analyst
// for a narrative, and stores it keyed by snapshot date. Regenerating
// replaces the stored analysis for that date.
func (s *analysisService) GenerateAnalysis(ctx context.Context, dateQuery string) (*models.PortfolioAnalysis, error) {
	if s.analyst == nil {
		return nil, apperrors.ErrAnalystUnavailable
	}

	view, err := s.portfolio.GetBreakdown(ctx, dateQuery, false)
	if err != nil {
		return nil, err
	}

	text, err := s.analyst.Analyze(ctx, view.Breakdown)
	if err != nil {
		return nil, err
	}

	analysis := &models.PortfolioAnalysis{
		SnapshotDate: view.SnapshotDate,
		Analysis:     text,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("snapshot_date = ?", view.SnapshotDate).Delete(&models.PortfolioAnalysis{}).Error; err != nil {
			return err
		}
		return tx.Create(analysis).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("Generated portfolio analysis",
		"snapshot_date", view.SnapshotDate.Format("2006-01-02"),
		"length", len(text),
	)
	return analysis, nil
}

// GetAnalysis returns the stored analysis for a date query. "latest" returns
// the newest stored analysis.
func (s *analysisService) GetAnalysis(dateQuery string) (*models.PortfolioAnalysis, error) {
	query := s.db.Order("snapshot_date desc")
	if dateQuery != "" && dateQuery != LatestDateQuery {
		date, err := time.Parse("2006-01-02", dateQuery)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be 'latest' or YYYY-MM-DD")
		}
		query = query.Where("snapshot_date = ?", truncateToDay(date))
	}

	var analysis models.PortfolioAnalysis
	if err := query.First(&analysis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAnalysisNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &analysis, nil
}
