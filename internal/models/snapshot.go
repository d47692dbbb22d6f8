package models

import "time"

// Snapshot is a point-in-time capture of one brokerage's positions from a CSV
// upload. Re-uploading for the same date and brokerage replaces the snapshot
// and its holdings.
type Snapshot struct {
	Base
	SnapshotDate time.Time `gorm:"type:date;not null;index:idx_snapshot_date_brokerage,unique" json:"snapshot_date"`
	Brokerage    string    `gorm:"size:50;not null;index:idx_snapshot_date_brokerage,unique" json:"brokerage"`
	Filename     string    `gorm:"size:200" json:"filename"`
	HoldingCount int       `gorm:"default:0" json:"holding_count"`
	TotalValue   float64   `gorm:"default:0" json:"total_value"`

	Holdings []Holding `gorm:"foreignKey:SnapshotID;constraint:OnDelete:CASCADE" json:"holdings,omitempty"`
}

// Holding is one normalized position row inside a snapshot.
type Holding struct {
	Base
	SnapshotID   string  `gorm:"type:uuid;not null;index" json:"snapshot_id"`
	Ticker       string  `gorm:"size:20;not null;index" json:"ticker"`
	Name         string  `gorm:"size:200" json:"name"`
	Quantity     float64 `gorm:"not null" json:"quantity"`
	Price        float64 `json:"price"`
	Value        float64 `gorm:"not null" json:"value"`
	CostBasis    float64 `json:"cost_basis"`
	Brokerage    string  `gorm:"size:50;not null" json:"brokerage"`
	Account      string  `gorm:"size:100" json:"account"`
	SecurityType string  `gorm:"size:50" json:"security_type"`
}
