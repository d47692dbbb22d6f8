package models

// TargetAllocation is one user-defined target weight for a label within a
// dimension. Targets for a dimension are replaced as a set and validated to
// sum to 100 at write time.
type TargetAllocation struct {
	Base
	Dimension string  `gorm:"size:20;not null;index:idx_target_dimension_label,unique" json:"dimension"`
	Label     string  `gorm:"size:50;not null;index:idx_target_dimension_label,unique" json:"label"`
	TargetPct float64 `gorm:"not null" json:"target_pct"`
}
