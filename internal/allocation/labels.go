// Package allocation implements the portfolio allocation engine: merging raw
// brokerage positions into per-ticker holdings, fanning holding values out
// across region and category classifications, and computing rebalancing
// recommendations against target weights. Everything in this package is a pure
// function of its inputs, with no database, network, or shared state.
package allocation

import (
	"fmt"
	"math"
)

// Dimension is the axis along which breakdowns and targets are computed.
type Dimension string

const (
	DimensionRegion   Dimension = "region"
	DimensionCategory Dimension = "category"
)

// ParseDimension validates a dimension string. An unsupported dimension is a
// caller bug and fails fast rather than being silently ignored.
func ParseDimension(s string) (Dimension, error) {
	switch Dimension(s) {
	case DimensionRegion, DimensionCategory:
		return Dimension(s), nil
	}
	return "", fmt.Errorf("unknown dimension %q (must be region or category)", s)
}

// Regions is the closed set of geographic labels a classification may use.
var Regions = []string{"US", "DM", "EM", "Global"}

// Categories is the closed set of GICS-style sector and special-category
// labels a classification may use.
var Categories = []string{
	"Technology",
	"Financials",
	"Health Care",
	"Consumer Discretionary",
	"Communication Services",
	"Industrials",
	"Consumer Staples",
	"Energy",
	"Utilities",
	"Real Estate",
	"Materials",
	"Precious Metals",
	"Commodities",
	"Cryptocurrency",
	"Short-Term Treasuries",
	"Long-Term Treasuries",
	"Cash",
	"Other",
}

// UnclassifiedLabel is the sentinel bucket that absorbs the full value of
// holdings without a classification, so that breakdown totals stay conserved.
// It is a display label only: classifications themselves may not use it.
const UnclassifiedLabel = "Unclassified"

var (
	regionSet   = toSet(Regions)
	categorySet = toSet(Categories)
)

func toSet(labels []string) map[string]bool {
	set := make(map[string]bool, len(labels))
	for _, l := range labels {
		set[l] = true
	}
	return set
}

// ValidLabel reports whether label belongs to the closed enumeration for the
// given dimension.
func ValidLabel(dim Dimension, label string) bool {
	switch dim {
	case DimensionRegion:
		return regionSet[label]
	case DimensionCategory:
		return categorySet[label]
	}
	return false
}

// Tolerances for "sums to 100" checks. The two contexts intentionally carry
// separate named constants: classification breakdowns are machine-produced and
// held tight, while user-entered targets get a full percentage point of slack.
const (
	// DistributionSumTolerance bounds how far a classification breakdown's
	// percentages may stray from 100 before it is rejected at ingestion.
	DistributionSumTolerance = 0.01

	// TargetSumTolerance bounds how far a dimension's target percentages may
	// stray from 100 at write time.
	TargetSumTolerance = 1.0
)

// Distribution maps labels to percentages. A valid distribution is either
// empty (unclassified) or sums to 100 within DistributionSumTolerance.
type Distribution map[string]float64

// Sum returns the total of all percentages in the distribution.
func (d Distribution) Sum() float64 {
	var total float64
	for _, pct := range d {
		total += pct
	}
	return total
}

// Validate checks that every label belongs to the dimension's closed set and
// that percentages sum to 100 within tolerance. An empty distribution is
// valid: it means the ticker is unclassified.
func (d Distribution) Validate(dim Dimension) error {
	if len(d) == 0 {
		return nil
	}
	for label, pct := range d {
		if !ValidLabel(dim, label) {
			return fmt.Errorf("unknown %s label %q", dim, label)
		}
		if pct < 0 {
			return fmt.Errorf("%s label %q has negative percentage %.2f", dim, label, pct)
		}
	}
	if sum := d.Sum(); math.Abs(sum-100) > DistributionSumTolerance {
		return fmt.Errorf("%s percentages sum to %.2f, expected 100", dim, sum)
	}
	return nil
}

// Classification is a ticker's fractional attribution across regions and
// categories. Either distribution may be empty when the ticker could not be
// classified for that dimension.
type Classification struct {
	Region   Distribution `json:"region"`
	Category Distribution `json:"category"`
}

// Validate checks both distributions against their closed label sets.
func (c Classification) Validate() error {
	if err := c.Region.Validate(DimensionRegion); err != nil {
		return err
	}
	return c.Category.Validate(DimensionCategory)
}

// IsZero reports whether the classification carries no information at all.
func (c Classification) IsZero() bool {
	return len(c.Region) == 0 && len(c.Category) == 0
}

// Fallback is the classification assigned when every resolution step fails:
// assume a US holding of unknown sector.
func Fallback() Classification {
	return Classification{
		Region:   Distribution{"US": 100},
		Category: Distribution{"Other": 100},
	}
}
