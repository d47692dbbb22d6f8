package allocation

import (
	"math"
	"strings"
)

// LivePosition is a position revalued at a live quote, keeping the snapshot
// numbers alongside for comparison. Stale marks positions for which no quote
// was available and the snapshot value was retained.
type LivePosition struct {
	Position
	SnapshotPrice  float64 `json:"snapshot_price"`
	SnapshotValue  float64 `json:"snapshot_value"`
	PriceChange    float64 `json:"price_change"`
	PriceChangePct float64 `json:"price_change_pct"`
	Stale          bool    `json:"stale"`
}

// LiveSummary compares the revalued portfolio against its snapshot.
type LiveSummary struct {
	SnapshotTotal  float64  `json:"snapshot_total"`
	LiveTotal      float64  `json:"total_value"`
	TotalChange    float64  `json:"total_change"`
	TotalChangePct float64  `json:"total_change_pct"`
	StaleTickers   []string `json:"stale_tickers,omitempty"`
}

// ApplyLivePrices substitutes live prices into snapshot positions. A position
// whose ticker has a quote is revalued as quantity times the live price;
// anything else keeps its snapshot value and is flagged stale rather than
// silently substituted. The returned positions feed back through Aggregate
// and Builder unchanged.
func ApplyLivePrices(positions []Position, prices map[string]float64) ([]LivePosition, LiveSummary) {
	var summary LiveSummary
	staleSet := make(map[string]bool)

	live := make([]LivePosition, 0, len(positions))
	for _, p := range positions {
		ticker := strings.ToUpper(strings.TrimSpace(p.Ticker))
		lp := LivePosition{
			Position:      p,
			SnapshotPrice: p.Price,
			SnapshotValue: p.Value,
		}

		price, ok := prices[ticker]
		if ok && price > 0 && p.Quantity > 0 {
			lp.Price = price
			lp.Value = round2(p.Quantity * price)
			lp.PriceChange = math.Round((price-p.Price)*10000) / 10000
			if p.Price > 0 {
				lp.PriceChangePct = round2(lp.PriceChange / p.Price * 100)
			}
		} else {
			lp.Stale = true
			if !staleSet[ticker] {
				staleSet[ticker] = true
				summary.StaleTickers = append(summary.StaleTickers, ticker)
			}
		}

		summary.SnapshotTotal += lp.SnapshotValue
		summary.LiveTotal += lp.Value
		live = append(live, lp)
	}

	summary.TotalChange = round2(summary.LiveTotal - summary.SnapshotTotal)
	if summary.SnapshotTotal > 0 {
		summary.TotalChangePct = round2(summary.TotalChange / summary.SnapshotTotal * 100)
	}
	summary.SnapshotTotal = round2(summary.SnapshotTotal)
	summary.LiveTotal = round2(summary.LiveTotal)
	return live, summary
}

// RepricedPositions strips the live detail back down to plain positions for
// re-aggregation.
func RepricedPositions(live []LivePosition) []Position {
	positions := make([]Position, len(live))
	for i, lp := range live {
		positions[i] = lp.Position
	}
	return positions
}
