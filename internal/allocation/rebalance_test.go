package allocation

import (
	"strings"
	"testing"
)

func findItem(t *testing.T, items []Recommendation, label string) Recommendation {
	t.Helper()
	for _, item := range items {
		if item.Label == label {
			return item
		}
	}
	t.Fatalf("item %q not found in %v", label, items)
	return Recommendation{}
}

func regionBreakdown(t *testing.T, weights map[string]float64, total float64) Breakdown {
	t.Helper()
	builder := NewBuilder(DefaultBuilderConfig())

	var positions []Position
	var classifications = make(map[string]Classification)
	i := 0
	for label, pct := range weights {
		ticker := "T" + strings.Repeat("X", i+1)
		positions = append(positions, Position{Ticker: ticker, Quantity: 1, Value: total * pct / 100, Brokerage: BrokerageFidelity})
		classifications[ticker] = Classification{
			Region:   Distribution{label: 100},
			Category: Distribution{"Other": 100},
		}
		i++
	}
	holdings, totalValue := Aggregate(positions, classifications)
	return builder.Build(holdings, totalValue)
}

func TestRebalance(t *testing.T) {
	engine := NewEngine(EngineConfig{})

	t.Run("overweight_label_is_a_sell", func(t *testing.T) {
		bd := regionBreakdown(t, map[string]float64{"US": 70, "EM": 30}, 100000)
		plan, err := engine.Rebalance(bd, DimensionRegion, map[string]float64{"US": 40, "EM": 60})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		us := findItem(t, plan.Items, "US")
		if us.Drift != 30 {
			t.Errorf("expected drift +30, got %f", us.Drift)
		}
		if us.Action != ActionSell {
			t.Errorf("expected sell, got %s", us.Action)
		}
		if !almostEqual(us.Amount, 30000) {
			t.Errorf("expected amount 30000, got %f", us.Amount)
		}
	})

	t.Run("underweight_label_is_a_buy", func(t *testing.T) {
		bd := regionBreakdown(t, map[string]float64{"US": 90, "EM": 10}, 100000)
		plan, err := engine.Rebalance(bd, DimensionRegion, map[string]float64{"US": 60, "EM": 40})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		em := findItem(t, plan.Items, "EM")
		if em.Drift != -30 {
			t.Errorf("expected drift -30, got %f", em.Drift)
		}
		if em.Action != ActionBuy {
			t.Errorf("expected buy, got %s", em.Action)
		}
	})

	t.Run("drift_below_threshold_is_a_hold_with_zero_amount", func(t *testing.T) {
		bd := regionBreakdown(t, map[string]float64{"US": 50.3, "EM": 49.7}, 100000)
		plan, err := engine.Rebalance(bd, DimensionRegion, map[string]float64{"US": 50, "EM": 50})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		us := findItem(t, plan.Items, "US")
		if us.Action != ActionHold {
			t.Errorf("expected hold for 0.3 drift, got %s", us.Action)
		}
		if us.Amount != 0 {
			t.Errorf("expected zero amount on hold, got %f", us.Amount)
		}
	})

	t.Run("threshold_is_tunable", func(t *testing.T) {
		loose := NewEngine(EngineConfig{HoldThreshold: 10})
		bd := regionBreakdown(t, map[string]float64{"US": 55, "EM": 45}, 100000)
		plan, err := loose.Rebalance(bd, DimensionRegion, map[string]float64{"US": 50, "EM": 50})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, item := range plan.Items {
			if item.Action != ActionHold {
				t.Errorf("expected hold under loose threshold, got %s for %s", item.Action, item.Label)
			}
		}
	})

	t.Run("target_without_current_holding_is_full_drift_buy", func(t *testing.T) {
		bd := regionBreakdown(t, map[string]float64{"US": 100}, 50000)
		plan, err := engine.Rebalance(bd, DimensionRegion, map[string]float64{"US": 80, "EM": 20})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		em := findItem(t, plan.Items, "EM")
		if em.CurrentPct != 0 || em.Action != ActionBuy {
			t.Errorf("expected zero-current buy, got %+v", em)
		}
		if !almostEqual(em.Amount, 10000) {
			t.Errorf("expected amount 10000, got %f", em.Amount)
		}
	})

	t.Run("current_label_without_target_is_a_sell", func(t *testing.T) {
		bd := regionBreakdown(t, map[string]float64{"US": 80, "Global": 20}, 100000)
		plan, err := engine.Rebalance(bd, DimensionRegion, map[string]float64{"US": 100})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		global := findItem(t, plan.Items, "Global")
		if global.TargetPct != 0 || global.Action != ActionSell {
			t.Errorf("expected zero-target sell, got %+v", global)
		}
	})

	t.Run("items_sorted_by_absolute_drift", func(t *testing.T) {
		bd := regionBreakdown(t, map[string]float64{"US": 60, "DM": 25, "EM": 15}, 100000)
		plan, err := engine.Rebalance(bd, DimensionRegion, map[string]float64{"US": 40, "DM": 30, "EM": 30})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if plan.Items[0].Label != "US" || plan.Items[1].Label != "EM" || plan.Items[2].Label != "DM" {
			t.Errorf("expected order US, EM, DM; got %v", plan.Items)
		}
	})

	t.Run("empty_targets_give_explanatory_summary", func(t *testing.T) {
		bd := regionBreakdown(t, map[string]float64{"US": 100}, 100000)
		plan, err := engine.Rebalance(bd, DimensionRegion, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(plan.Items) != 0 {
			t.Errorf("expected no items, got %v", plan.Items)
		}
		if !strings.Contains(plan.Summary, "No region targets") {
			t.Errorf("expected no-targets summary, got %q", plan.Summary)
		}
	})

	t.Run("zero_portfolio_never_divides", func(t *testing.T) {
		plan, err := engine.Rebalance(Breakdown{}, DimensionCategory, map[string]float64{"Technology": 100})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(plan.Items) != 0 || plan.Summary == "" {
			t.Errorf("expected empty plan with summary, got %+v", plan)
		}
	})

	t.Run("unknown_dimension_fails_fast", func(t *testing.T) {
		bd := regionBreakdown(t, map[string]float64{"US": 100}, 1000)
		if _, err := engine.Rebalance(bd, Dimension("sector"), map[string]float64{"US": 100}); err == nil {
			t.Fatal("expected error for unknown dimension")
		}
	})

	t.Run("balanced_portfolio_summary", func(t *testing.T) {
		bd := regionBreakdown(t, map[string]float64{"US": 60, "EM": 40}, 100000)
		plan, err := engine.Rebalance(bd, DimensionRegion, map[string]float64{"US": 60, "EM": 40})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if plan.Summary != "Portfolio is balanced." {
			t.Errorf("expected balanced summary, got %q", plan.Summary)
		}
	})

	t.Run("category_summary_uses_buy_sell_verbs", func(t *testing.T) {
		builder := NewBuilder(DefaultBuilderConfig())
		positions := []Position{{Ticker: "QQQ", Quantity: 1, Value: 100000, Brokerage: BrokerageFidelity}}
		classifications := map[string]Classification{
			"QQQ": {Region: Distribution{"US": 100}, Category: Distribution{"Technology": 100}},
		}
		holdings, total := Aggregate(positions, classifications)
		bd := builder.Build(holdings, total)

		plan, err := engine.Rebalance(bd, DimensionCategory, map[string]float64{"Technology": 60, "Cash": 40})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(plan.Summary, "Sell $40,000 of Technology") {
			t.Errorf("expected sell sentence, got %q", plan.Summary)
		}
		if !strings.Contains(plan.Summary, "Buy $40,000 of Cash") {
			t.Errorf("expected buy sentence, got %q", plan.Summary)
		}
	})
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{20500.75, "20,501"},
		{1234567, "1,234,567"},
	}
	for _, tc := range cases {
		if got := formatAmount(tc.in); got != tc.want {
			t.Errorf("formatAmount(%f) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
