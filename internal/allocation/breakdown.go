package allocation

import (
	"math"
	"sort"
)

// Bucket is one breakdown entry: the absolute value attributed to a label and
// its share of the view total.
type Bucket struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Pct   float64 `json:"pct"`
}

// Breakdown is the normalized portfolio-wide view produced by a Builder.
type Breakdown struct {
	TotalValue float64             `json:"total_value"`
	ByRegion   []Bucket            `json:"by_region"`
	ByCategory []Bucket            `json:"by_category"`
	Holdings   []AggregatedHolding `json:"holdings"`
}

// Buckets returns the breakdown's buckets for a dimension.
func (b Breakdown) Buckets(dim Dimension) []Bucket {
	if dim == DimensionRegion {
		return b.ByRegion
	}
	return b.ByCategory
}

// BuilderConfig carries the knobs the breakdown builder would otherwise
// hardwire, so tests can exercise boundaries directly.
type BuilderConfig struct {
	// UnclassifiedLabel absorbs the value of holdings with no breakdown for a
	// dimension.
	UnclassifiedLabel string

	// EquityExcluded lists the categories removed from the equity-only region
	// view (cash and treasury buffers).
	EquityExcluded []string

	// DisplayDecimals is the rounding applied to output values and
	// percentages. Internal math always runs unrounded.
	DisplayDecimals int
}

// DefaultBuilderConfig returns the production configuration.
func DefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{
		UnclassifiedLabel: UnclassifiedLabel,
		EquityExcluded:    []string{"Cash", "Short-Term Treasuries", "Long-Term Treasuries"},
		DisplayDecimals:   2,
	}
}

// Builder turns aggregated holdings into percentage-of-total views per
// dimension.
type Builder struct {
	cfg      BuilderConfig
	excluded map[string]bool
}

// NewBuilder creates a Builder. Zero-value config fields fall back to the
// defaults.
func NewBuilder(cfg BuilderConfig) *Builder {
	def := DefaultBuilderConfig()
	if cfg.UnclassifiedLabel == "" {
		cfg.UnclassifiedLabel = def.UnclassifiedLabel
	}
	if cfg.EquityExcluded == nil {
		cfg.EquityExcluded = def.EquityExcluded
	}
	if cfg.DisplayDecimals == 0 {
		cfg.DisplayDecimals = def.DisplayDecimals
	}
	return &Builder{cfg: cfg, excluded: toSet(cfg.EquityExcluded)}
}

// Build fans each holding's value out across its classification percentages
// and normalizes the result into region and category views. The value of a
// holding with no breakdown for a dimension goes entirely to the unclassified
// sentinel, so for every dimension the bucket values sum to the total.
//
// Per-holding pct-of-total is attached on the returned copy of holdings; the
// input slice is not mutated.
func (b *Builder) Build(holdings []AggregatedHolding, totalValue float64) Breakdown {
	if len(holdings) == 0 || totalValue == 0 {
		return Breakdown{}
	}

	regionValues := make(map[string]float64)
	categoryValues := make(map[string]float64)
	out := make([]AggregatedHolding, len(holdings))

	for i, h := range holdings {
		b.fanOut(regionValues, h.Classification.Region, h.Value)
		b.fanOut(categoryValues, h.Classification.Category, h.Value)

		out[i] = h
		out[i].Pct = b.round(h.Value / totalValue * 100)
		out[i].Value = b.round(h.Value)
		out[i].CostBasis = b.round(h.CostBasis)
	}

	return Breakdown{
		TotalValue: b.round(totalValue),
		ByRegion:   b.buckets(regionValues, totalValue),
		ByCategory: b.buckets(categoryValues, totalValue),
		Holdings:   out,
	}
}

// EquityOnlyRegions builds a second, independently normalized region view that
// ignores cash-like categories. Each holding contributes only the fraction of
// its category breakdown outside the excluded set, and percentages are taken
// against the sum of those scaled contributions. The primary breakdown is
// untouched.
func (b *Builder) EquityOnlyRegions(holdings []AggregatedHolding) ([]Bucket, float64) {
	regionValues := make(map[string]float64)
	var scaledTotal float64

	for _, h := range holdings {
		fraction := b.equityFraction(h.Classification.Category)
		if fraction == 0 {
			continue
		}
		scaled := h.Value * fraction
		scaledTotal += scaled
		b.fanOut(regionValues, h.Classification.Region, scaled)
	}

	if scaledTotal == 0 {
		return nil, 0
	}
	return b.buckets(regionValues, scaledTotal), b.round(scaledTotal)
}

// equityFraction returns the share of a category breakdown not in the
// excluded set. An unclassified holding counts as fully included.
func (b *Builder) equityFraction(category Distribution) float64 {
	if len(category) == 0 {
		return 1
	}
	var excludedPct float64
	for label, pct := range category {
		if b.excluded[label] {
			excludedPct += pct
		}
	}
	fraction := (100 - excludedPct) / 100
	if fraction < 0 {
		return 0
	}
	return fraction
}

func (b *Builder) fanOut(values map[string]float64, dist Distribution, value float64) {
	if len(dist) == 0 {
		values[b.cfg.UnclassifiedLabel] += value
		return
	}
	for label, pct := range dist {
		values[label] += value * pct / 100
	}
}

// buckets converts raw label values into sorted, rounded output buckets.
// Sorting happens on unrounded values so ordering never depends on display
// precision; ties break on label.
func (b *Builder) buckets(values map[string]float64, total float64) []Bucket {
	labels := make([]string, 0, len(values))
	for label := range values {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if values[labels[i]] != values[labels[j]] {
			return values[labels[i]] > values[labels[j]]
		}
		return labels[i] < labels[j]
	})

	buckets := make([]Bucket, 0, len(labels))
	for _, label := range labels {
		buckets = append(buckets, Bucket{
			Label: label,
			Value: b.round(values[label]),
			Pct:   b.round(values[label] / total * 100),
		})
	}
	return buckets
}

func (b *Builder) round(v float64) float64 {
	shift := math.Pow(10, float64(b.cfg.DisplayDecimals))
	return math.Round(v*shift) / shift
}
