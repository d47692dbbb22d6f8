package services

import (
	"context"
	"time"

	"rebalancer/internal/allocation"
	apperrors "rebalancer/internal/errors"
	"rebalancer/internal/quotes"
)

// portfolioService assembles the read-side views: breakdowns, rebalance
// plans, and the live-price overlay.
type portfolioService struct {
	snapshots       SnapshotServicer
	classifications ClassificationServicer
	targets         TargetServicer
	quotes          quotes.Fetcher
	builder         *allocation.Builder
	engine          *allocation.Engine
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(
	snapshots SnapshotServicer,
	classifications ClassificationServicer,
	targets TargetServicer,
	fetcher quotes.Fetcher,
	builder *allocation.Builder,
	engine *allocation.Engine,
) PortfolioServicer {
	return &portfolioService{
		snapshots:       snapshots,
		classifications: classifications,
		targets:         targets,
		quotes:          fetcher,
		builder:         builder,
		engine:          engine,
	}
}

// holdingsFor loads positions for a date query and aggregates them with their
// cached classifications.
func (s *portfolioService) holdingsFor(dateQuery string) ([]allocation.AggregatedHolding, float64, time.Time, error) {
	positions, date, err := s.snapshots.PositionsFor(dateQuery)
	if err != nil {
		return nil, 0, time.Time{}, err
	}

	classifications, err := s.classifications.ClassificationsFor(uniqueTickers(positions))
	if err != nil {
		return nil, 0, time.Time{}, err
	}

	holdings, total := allocation.Aggregate(positions, classifications)
	if total == 0 {
		return nil, 0, time.Time{}, apperrors.ErrNoHoldings
	}
	return holdings, total, date, nil
}

func uniqueTickers(positions []allocation.Position) []string {
	seen := make(map[string]bool, len(positions))
	var tickers []string
	for _, p := range positions {
		if !seen[p.Ticker] {
			seen[p.Ticker] = true
			tickers = append(tickers, p.Ticker)
		}
	}
	return tickers
}

// GetBreakdown builds the region and category breakdown for the resolved
// snapshot set. With equityOnly, the region buckets are recomputed over the
// equity sleeve only.
func (s *portfolioService) GetBreakdown(ctx context.Context, dateQuery string, equityOnly bool) (*BreakdownView, error) {
	holdings, total, date, err := s.holdingsFor(dateQuery)
	if err != nil {
		return nil, err
	}

	breakdown := s.builder.Build(holdings, total)
	if equityOnly {
		regions, scaledTotal := s.builder.EquityOnlyRegions(holdings)
		breakdown.ByRegion = regions
		breakdown.TotalValue = scaledTotal
	}

	return &BreakdownView{
		SnapshotDate: date,
		Breakdown:    breakdown,
		EquityOnly:   equityOnly,
	}, nil
}

// GetRebalance runs the drift engine. With a nil dimension both plans are
// computed; a dimension with no saved targets yields a plan whose summary
// says so.
func (s *portfolioService) GetRebalance(ctx context.Context, dateQuery string, dimension *allocation.Dimension) (*RebalanceView, error) {
	holdings, total, date, err := s.holdingsFor(dateQuery)
	if err != nil {
		return nil, err
	}
	breakdown := s.builder.Build(holdings, total)

	view := &RebalanceView{SnapshotDate: date}
	dims := []allocation.Dimension{allocation.DimensionRegion, allocation.DimensionCategory}
	if dimension != nil {
		dims = []allocation.Dimension{*dimension}
	}

	for _, dim := range dims {
		targets, err := s.targets.GetTargets(dim)
		if err != nil {
			return nil, err
		}
		plan, err := s.engine.Rebalance(breakdown, dim, targets)
		if err != nil {
			return nil, err
		}
		switch dim {
		case allocation.DimensionRegion:
			view.Region = &plan
		case allocation.DimensionCategory:
			view.Category = &plan
		}
	}
	return view, nil
}

// GetLiveView reprices the resolved snapshot's positions with live quotes.
// Positions with no usable quote keep their snapshot value and are flagged
// stale.
func (s *portfolioService) GetLiveView(ctx context.Context, dateQuery string) (*LiveView, error) {
	positions, date, err := s.snapshots.PositionsFor(dateQuery)
	if err != nil {
		return nil, err
	}

	prices, err := s.quotes.FetchPrices(ctx, uniqueTickers(positions))
	if err != nil {
		return nil, err
	}

	live, summary := allocation.ApplyLivePrices(positions, prices)

	classifications, err := s.classifications.ClassificationsFor(uniqueTickers(positions))
	if err != nil {
		return nil, err
	}
	holdings, total := allocation.Aggregate(allocation.RepricedPositions(live), classifications)

	return &LiveView{
		SnapshotDate: date,
		Positions:    live,
		Summary:      summary,
		Breakdown:    s.builder.Build(holdings, total),
	}, nil
}
