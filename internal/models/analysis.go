package models

import "time"

// PortfolioAnalysis is a persisted AI-written narrative for a snapshot date.
// Regenerating replaces the previous analysis for that date.
type PortfolioAnalysis struct {
	Base
	SnapshotDate time.Time `gorm:"type:date;not null;index" json:"snapshot_date"`
	Analysis     string    `gorm:"type:text;not null" json:"analysis"`
}
