package parsers

import (
	"strings"

	"rebalancer/internal/allocation"
	"rebalancer/internal/errors"
)

// Fidelity money market sweep and pseudo-position tickers that carry no
// investable allocation.
var fidelitySkip = map[string]bool{
	"CASH":             true,
	"PENDING ACTIVITY": true,
	"FCASH":            true,
	"SPAXX":            true,
	"FDRXX":            true,
}

// ParseFidelity parses a Fidelity positions export.
//
// Typical header:
// Account Number,Account Name,Symbol,Description,Quantity,Last Price,Current Value
func ParseFidelity(content string) ([]allocation.Position, error) {
	lines := splitLines(content)
	headerIdx := findHeader(lines, "Symbol", "Quantity", "Current Value")
	if headerIdx < 0 {
		return nil, errors.WithMessage(errors.ErrMalformedCSV,
			"Could not find header row, expected columns: Symbol, Description, Quantity, Last Price, Current Value")
	}

	rows, err := readRows(lines, headerIdx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrMalformedCSV, err)
	}

	var positions []allocation.Position
	for _, row := range rows {
		ticker := field(row, "Symbol")
		if ticker == "" || strings.HasPrefix(ticker, "***") {
			continue
		}
		if fidelitySkip[strings.ToUpper(ticker)] {
			continue
		}

		quantity := parseNumber(field(row, "Quantity", "Shares"))
		value := parseNumber(field(row, "Current Value", "Market Value"))
		if quantity == 0 && value == 0 {
			continue
		}

		positions = append(positions, allocation.Position{
			Ticker:    strings.ToUpper(ticker),
			Name:      field(row, "Description", "Security Description"),
			Quantity:  quantity,
			Price:     parseNumber(field(row, "Last Price")),
			Value:     value,
			Brokerage: allocation.BrokerageFidelity,
			Account:   field(row, "Account Name", "Account Number"),
		})
	}

	if len(positions) == 0 {
		return nil, errors.ErrEmptyCSV
	}
	return positions, nil
}
