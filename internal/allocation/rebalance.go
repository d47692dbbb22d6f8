package allocation

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Action is the recommended trade direction for one label.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
	ActionHold Action = "hold"
)

// Recommendation is the drift and trade suggestion for one label in a
// dimension. Drift is signed; positive means overweight. Amount is always
// non-negative and zero for holds.
type Recommendation struct {
	Label        string  `json:"label"`
	CurrentPct   float64 `json:"current_pct"`
	CurrentValue float64 `json:"current_value"`
	TargetPct    float64 `json:"target_pct"`
	TargetValue  float64 `json:"target_value"`
	Drift        float64 `json:"drift"`
	Action       Action  `json:"action"`
	Amount       float64 `json:"amount"`
}

// Plan is the rebalance output for one dimension.
type Plan struct {
	Dimension Dimension        `json:"dimension"`
	Items     []Recommendation `json:"items"`
	Summary   string           `json:"summary"`
}

// DefaultHoldThreshold is the drift, in percentage points, below which a
// label is left alone.
const DefaultHoldThreshold = 0.5

// EngineConfig carries the rebalance tuning knobs.
type EngineConfig struct {
	HoldThreshold float64
}

// Engine computes drift-closing trade recommendations. It consumes whatever
// targets are currently persisted and never validates their sum; that is the
// write-time contract of the target service.
type Engine struct {
	cfg EngineConfig
}

// NewEngine creates an Engine. A zero hold threshold falls back to the
// default.
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.HoldThreshold == 0 {
		cfg.HoldThreshold = DefaultHoldThreshold
	}
	return &Engine{cfg: cfg}
}

// Rebalance compares a breakdown's current weights against target weights for
// one dimension. The label universe is the union of current bucket labels and
// target keys: a target with no current holding is a full-drift buy
// candidate, and a current label with no target is treated as target zero.
//
// A zero-value breakdown or an empty target map produces an empty plan with
// an explanatory summary, never an error. An unknown dimension is a caller
// bug and fails fast.
func (e *Engine) Rebalance(breakdown Breakdown, dim Dimension, targets map[string]float64) (Plan, error) {
	if dim != DimensionRegion && dim != DimensionCategory {
		return Plan{}, fmt.Errorf("unknown dimension %q (must be region or category)", dim)
	}

	plan := Plan{Dimension: dim}

	if breakdown.TotalValue == 0 {
		plan.Summary = "No holdings to rebalance."
		return plan, nil
	}
	if len(targets) == 0 {
		plan.Summary = fmt.Sprintf("No %s targets set.", dim)
		return plan, nil
	}

	current := make(map[string]Bucket)
	labelSet := make(map[string]bool)
	for _, bucket := range breakdown.Buckets(dim) {
		current[bucket.Label] = bucket
		labelSet[bucket.Label] = true
	}
	for label := range targets {
		labelSet[label] = true
	}

	total := breakdown.TotalValue
	for label := range labelSet {
		bucket := current[label]
		targetPct := targets[label]
		targetValue := total * targetPct / 100
		drift := bucket.Pct - targetPct

		item := Recommendation{
			Label:        label,
			CurrentPct:   round2(bucket.Pct),
			CurrentValue: round2(bucket.Value),
			TargetPct:    round2(targetPct),
			TargetValue:  round2(targetValue),
			Drift:        round2(drift),
			Action:       ActionHold,
		}
		if math.Abs(drift) >= e.cfg.HoldThreshold {
			if drift > 0 {
				item.Action = ActionSell
			} else {
				item.Action = ActionBuy
			}
			item.Amount = round2(math.Abs(bucket.Value - targetValue))
		}
		plan.Items = append(plan.Items, item)
	}

	sort.Slice(plan.Items, func(i, j int) bool {
		di, dj := math.Abs(plan.Items[i].Drift), math.Abs(plan.Items[j].Drift)
		if di != dj {
			return di > dj
		}
		return plan.Items[i].Label < plan.Items[j].Label
	})

	plan.Summary = e.summarize(dim, plan.Items)
	return plan, nil
}

// summarize builds the human-readable trade sentence for a dimension.
// Category trades read as buy/sell of an asset class; region trades read as
// shifting exposure.
func (e *Engine) summarize(dim Dimension, items []Recommendation) string {
	var actions []string
	for _, item := range items {
		switch {
		case item.Action == ActionSell && dim == DimensionCategory:
			actions = append(actions, fmt.Sprintf("Sell $%s of %s", formatAmount(item.Amount), item.Label))
		case item.Action == ActionBuy && dim == DimensionCategory:
			actions = append(actions, fmt.Sprintf("Buy $%s of %s", formatAmount(item.Amount), item.Label))
		case item.Action == ActionSell:
			actions = append(actions, fmt.Sprintf("Reduce %s by $%s", item.Label, formatAmount(item.Amount)))
		case item.Action == ActionBuy:
			actions = append(actions, fmt.Sprintf("Increase %s by $%s", item.Label, formatAmount(item.Amount)))
		}
	}
	if len(actions) == 0 {
		return "Portfolio is balanced."
	}
	return strings.Join(actions, "; ") + "."
}

// formatAmount renders a dollar amount with thousands separators and no
// cents, e.g. 20500.75 -> "20,501".
func formatAmount(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		return "-" + out
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
