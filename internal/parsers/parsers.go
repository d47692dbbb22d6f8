// Package parsers turns brokerage CSV position exports into normalized
// positions. Each brokerage has its own quirks (preamble lines, BOM, totals
// rows, cash sweep tickers); the parsers absorb them all and emit one
// allocation.Position per holding row.
package parsers

import (
	"encoding/csv"
	"io"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"rebalancer/internal/allocation"
	"rebalancer/internal/errors"
)

// Parse dispatches to the parser for the given brokerage.
func Parse(brokerage allocation.Brokerage, content string) ([]allocation.Position, error) {
	switch brokerage {
	case allocation.BrokerageFidelity:
		return ParseFidelity(content)
	case allocation.BrokerageSchwab:
		return ParseSchwab(content)
	}
	return nil, errors.ErrUnsupportedBrokerage
}

var moneyJunk = regexp.MustCompile(`[$,"]`)

// parseNumber parses a money or quantity string, stripping $ signs, commas,
// quotes, and brokerage placeholders. Unparseable input counts as zero, which
// matches how the exports use "--" and "N/A" for empty cells.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = moneyJunk.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "--", "0")
	s = strings.ReplaceAll(s, "N/A", "0")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}

// findHeader scans lines for the first row that looks like the positions
// header. Brokerage exports often carry a BOM, account preamble, or
// disclaimer lines before the real header.
func findHeader(lines []string, required string, oneOf ...string) int {
	for i, line := range lines {
		if !strings.Contains(line, required) {
			continue
		}
		for _, alt := range oneOf {
			if strings.Contains(line, alt) {
				return i
			}
		}
	}
	return -1
}

// readRows reads CSV records from the header row onward into maps keyed by
// header column name.
func readRows(lines []string, headerIdx int) ([]map[string]string, error) {
	reader := csv.NewReader(strings.NewReader(strings.Join(lines[headerIdx:], "\n")))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\uFEFF"))
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Brokerage exports end with free-text disclaimer lines that are
			// not valid CSV; stop at the first such row.
			break
		}
		row := make(map[string]string, len(header))
		for i, value := range record {
			if i < len(header) {
				row[header[i]] = value
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// field returns the first non-empty value among the named columns.
func field(row map[string]string, names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(row[name]); v != "" {
			return v
		}
	}
	return ""
}

func splitLines(content string) []string {
	content = strings.TrimPrefix(content, "\uFEFF")
	return strings.Split(strings.ReplaceAll(strings.TrimSpace(content), "\r\n", "\n"), "\n")
}
