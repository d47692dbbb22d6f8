package services

import (
	"fmt"
	"math"

	"gorm.io/gorm"

	"rebalancer/internal/allocation"
	apperrors "rebalancer/internal/errors"
	"rebalancer/internal/models"
)

// targetService manages the user-defined target weights per dimension.
type targetService struct {
	db *gorm.DB
}

// NewTargetService creates a new TargetServicer.
func NewTargetService(db *gorm.DB) TargetServicer {
	return &targetService{db: db}
}

// SaveTargets replaces the target set for a dimension. Labels must belong to
// the dimension and weights must sum to 100 within the tolerance.
func (s *targetService) SaveTargets(dimension allocation.Dimension, targets map[string]float64) error {
	if _, err := allocation.ParseDimension(string(dimension)); err != nil {
		return apperrors.ErrInvalidDimension
	}
	if len(targets) == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one target is required")
	}

	var sum float64
	for label, pct := range targets {
		if !allocation.ValidLabel(dimension, label) {
			return apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("unknown %s label %q", dimension, label))
		}
		if pct < 0 {
			return apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("target for %q must not be negative", label))
		}
		sum += pct
	}
	if math.Abs(sum-100) > allocation.TargetSumTolerance {
		return apperrors.WithMessage(apperrors.ErrInvalidTargetSum,
			fmt.Sprintf("target percentages sum to %.2f, expected 100", sum))
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dimension = ?", string(dimension)).Delete(&models.TargetAllocation{}).Error; err != nil {
			return err
		}
		for label, pct := range targets {
			target := models.TargetAllocation{
				Dimension: string(dimension),
				Label:     label,
				TargetPct: pct,
			}
			if err := tx.Create(&target).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetTargets returns the saved weights for a dimension. An empty map means
// no targets have been set.
func (s *targetService) GetTargets(dimension allocation.Dimension) (map[string]float64, error) {
	if _, err := allocation.ParseDimension(string(dimension)); err != nil {
		return nil, apperrors.ErrInvalidDimension
	}

	var rows []models.TargetAllocation
	if err := s.db.Where("dimension = ?", string(dimension)).Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	targets := make(map[string]float64, len(rows))
	for _, row := range rows {
		targets[row.Label] = row.TargetPct
	}
	return targets, nil
}

// GetAllTargets returns every saved target row ordered by dimension and label.
func (s *targetService) GetAllTargets() ([]models.TargetAllocation, error) {
	var rows []models.TargetAllocation
	if err := s.db.Order("dimension asc, label asc").Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}
