package ai

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"google.golang.org/genai"

	"rebalancer/internal/allocation"
	"rebalancer/internal/errors"
)

// Analyze sends a compact summary of the breakdown to Gemini and returns the
// Markdown narrative.
func (g *Gemini) Analyze(ctx context.Context, breakdown allocation.Breakdown) (string, error) {
	prompt := analysisPrompt + summarizeBreakdown(breakdown)

	system := &genai.Content{Parts: []*genai.Part{
		{Text: "You are a portfolio analyst. Return well-formatted Markdown. No JSON."},
	}}
	text, err := g.generate(ctx, prompt, &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](0.3),
		SystemInstruction: system,
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrAnalystUnavailable, err)
	}
	return text, nil
}

const analysisTopHoldings = 25

// summarizeBreakdown renders the breakdown as the plain-text data section of
// the analysis prompt.
func summarizeBreakdown(b allocation.Breakdown) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Total portfolio value: $%.2f\n\n", b.TotalValue)

	sb.WriteString("### Category Breakdown\n")
	for _, bucket := range b.ByCategory {
		fmt.Fprintf(&sb, "- %s: %.2f%% ($%.0f)\n", bucket.Label, bucket.Pct, bucket.Value)
	}

	sb.WriteString("\n### Region Breakdown\n")
	for _, bucket := range b.ByRegion {
		fmt.Fprintf(&sb, "- %s: %.2f%% ($%.0f)\n", bucket.Label, bucket.Pct, bucket.Value)
	}

	sb.WriteString("\n### Top Holdings (by value)\n")
	holdings := b.Holdings
	if len(holdings) > analysisTopHoldings {
		holdings = holdings[:analysisTopHoldings]
	}
	for _, h := range holdings {
		fmt.Fprintf(&sb, "- %s: $%.0f (%.2f%%) | type=%s | cat=[%s] | reg=[%s]\n",
			h.Ticker, h.Value, h.Pct, h.SecurityType,
			formatDistribution(h.Classification.Category),
			formatDistribution(h.Classification.Region))
	}
	return sb.String()
}

func formatDistribution(d allocation.Distribution) string {
	parts := make([]string, 0, len(d))
	for _, label := range sortedLabels(d) {
		parts = append(parts, fmt.Sprintf("%s %.0f%%", label, d[label]))
	}
	return strings.Join(parts, ", ")
}

// sortedLabels keeps the prompt text stable across runs.
func sortedLabels(d allocation.Distribution) []string {
	labels := make([]string, 0, len(d))
	for label := range d {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
