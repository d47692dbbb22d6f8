package parsers

import (
	"strings"

	"rebalancer/internal/allocation"
	"rebalancer/internal/errors"
)

var schwabSkip = map[string]bool{
	"ACCOUNT TOTAL":           true,
	"CASH & CASH INVESTMENTS": true,
	"CASH":                    true,
	"SWVXX":                   true,
}

// ParseSchwab parses a Schwab positions export. Schwab files open with one or
// more account info lines before the header row and close with a totals row.
func ParseSchwab(content string) ([]allocation.Position, error) {
	lines := splitLines(content)
	headerIdx := findHeader(lines, "Symbol", "Quantity", "Market Value")
	if headerIdx < 0 {
		return nil, errors.WithMessage(errors.ErrMalformedCSV,
			"Could not find header row, expected columns: Symbol, Name, Quantity, Price, Market Value")
	}

	// The account name sits on a preamble line before the header.
	account := ""
	for _, line := range lines[:headerIdx] {
		line = strings.Trim(strings.TrimSpace(line), `"`)
		if line != "" && !strings.HasPrefix(line, ",") {
			account = line
			break
		}
	}

	rows, err := readRows(lines, headerIdx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrMalformedCSV, err)
	}

	var positions []allocation.Position
	for _, row := range rows {
		ticker := strings.Trim(field(row, "Symbol"), `"`)
		if ticker == "" {
			continue
		}
		if schwabSkip[strings.ToUpper(ticker)] || strings.Contains(strings.ToLower(ticker), "total") {
			continue
		}

		quantity := parseNumber(field(row, "Qty (Quantity)", "Quantity", "Shares"))
		value := parseNumber(field(row, "Mkt Val (Market Value)", "Market Value", "Current Value"))
		if quantity == 0 && value == 0 {
			continue
		}

		positions = append(positions, allocation.Position{
			Ticker:    strings.ToUpper(ticker),
			Name:      strings.Trim(field(row, "Description", "Name"), `"`),
			Quantity:  quantity,
			Price:     parseNumber(field(row, "Price", "Last Price")),
			Value:     value,
			Brokerage: allocation.BrokerageSchwab,
			Account:   account,
		})
	}

	if len(positions) == 0 {
		return nil, errors.ErrEmptyCSV
	}
	return positions, nil
}
