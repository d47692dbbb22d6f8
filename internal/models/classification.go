package models

import (
	"time"

	"rebalancer/internal/allocation"
)

// Classification provenance tags. Provenance is informational only and never
// affects the allocation math.
const (
	SourceAI       = "ai"
	SourceManual   = "manual"
	SourceBuiltin  = "builtin"
	SourceFallback = "fallback"
)

// TickerClassification is the cached region and category breakdown for a
// ticker.
type TickerClassification struct {
	Base
	Ticker            string                  `gorm:"size:20;uniqueIndex;not null" json:"ticker"`
	Name              string                  `gorm:"size:200" json:"name"`
	RegionBreakdown   allocation.Distribution `gorm:"serializer:json" json:"region_breakdown"`
	CategoryBreakdown allocation.Distribution `gorm:"serializer:json" json:"category_breakdown"`
	Source            string                  `gorm:"size:20;default:ai" json:"source"`
	ClassifiedAt      time.Time               `json:"classified_at"`
}

// Breakdown converts the stored record to the allocation package's value type.
func (c *TickerClassification) Breakdown() allocation.Classification {
	return allocation.Classification{
		Region:   c.RegionBreakdown,
		Category: c.CategoryBreakdown,
	}
}
