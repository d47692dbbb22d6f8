package allocation

import (
	"sort"
	"strings"
)

// Brokerage identifies the source of a position.
type Brokerage string

const (
	BrokerageFidelity Brokerage = "fidelity"
	BrokerageSchwab   Brokerage = "schwab"
)

// ParseBrokerage validates a brokerage string.
func ParseBrokerage(s string) (Brokerage, bool) {
	switch Brokerage(strings.ToLower(s)) {
	case BrokerageFidelity:
		return BrokerageFidelity, true
	case BrokerageSchwab:
		return BrokerageSchwab, true
	}
	return "", false
}

// Position is a single normalized brokerage row, as produced by the CSV
// parsers. Value is quantity times price unless the source overrode it.
type Position struct {
	Ticker       string    `json:"ticker"`
	Name         string    `json:"name"`
	Quantity     float64   `json:"quantity"`
	Price        float64   `json:"price"`
	Value        float64   `json:"value"`
	CostBasis    float64   `json:"cost_basis,omitempty"`
	Brokerage    Brokerage `json:"brokerage"`
	Account      string    `json:"account,omitempty"`
	SecurityType string    `json:"security_type,omitempty"`
}

// AggregatedHolding is the merge of every position for one ticker within a
// view, with its classification attached. Recomputed fresh on every request,
// never persisted.
type AggregatedHolding struct {
	Ticker         string         `json:"ticker"`
	Name           string         `json:"name"`
	Quantity       float64        `json:"quantity"`
	Price          float64        `json:"price"`
	Value          float64        `json:"value"`
	CostBasis      float64        `json:"cost_basis,omitempty"`
	Pct            float64        `json:"pct"`
	Brokerages     []string       `json:"brokerages"`
	Accounts       []string       `json:"accounts,omitempty"`
	SecurityType   string         `json:"security_type,omitempty"`
	Classification Classification `json:"classification"`
}

// Aggregate merges positions by uppercased ticker and attaches each ticker's
// classification. Tickers absent from classifications get a zero
// Classification, not an error; the breakdown builder buckets that value under
// the unclassified sentinel. An empty position list yields (nil, 0), the
// "no data" terminal state callers must branch on.
//
// Holdings are returned sorted by value descending, ties broken by ticker, so
// identical inputs always produce identical output.
func Aggregate(positions []Position, classifications map[string]Classification) ([]AggregatedHolding, float64) {
	if len(positions) == 0 {
		return nil, 0
	}

	byTicker := make(map[string]*AggregatedHolding)
	brokerages := make(map[string]map[string]bool)
	accounts := make(map[string]map[string]bool)
	var order []string

	for _, p := range positions {
		ticker := strings.ToUpper(strings.TrimSpace(p.Ticker))
		if ticker == "" {
			continue
		}

		value := p.Value
		if value == 0 {
			value = p.Quantity * p.Price
		}

		h, ok := byTicker[ticker]
		if !ok {
			h = &AggregatedHolding{
				Ticker:       ticker,
				Name:         p.Name,
				SecurityType: p.SecurityType,
			}
			byTicker[ticker] = h
			brokerages[ticker] = make(map[string]bool)
			accounts[ticker] = make(map[string]bool)
			order = append(order, ticker)
		}

		h.Quantity += p.Quantity
		h.Value += value
		h.CostBasis += p.CostBasis
		if h.Name == "" {
			h.Name = p.Name
		}
		if p.Brokerage != "" {
			brokerages[ticker][string(p.Brokerage)] = true
		}
		if p.Account != "" {
			accounts[ticker][p.Account] = true
		}
	}

	var total float64
	holdings := make([]AggregatedHolding, 0, len(order))
	for _, ticker := range order {
		h := byTicker[ticker]
		if h.Quantity > 0 {
			h.Price = h.Value / h.Quantity
		}
		h.Brokerages = sortedKeys(brokerages[ticker])
		h.Accounts = sortedKeys(accounts[ticker])
		h.Classification = classifications[ticker]
		total += h.Value
		holdings = append(holdings, *h)
	}

	sort.Slice(holdings, func(i, j int) bool {
		if holdings[i].Value != holdings[j].Value {
			return holdings[i].Value > holdings[j].Value
		}
		return holdings[i].Ticker < holdings[j].Ticker
	})

	if total == 0 {
		return nil, 0
	}
	return holdings, total
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
