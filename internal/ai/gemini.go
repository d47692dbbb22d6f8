// Package ai wraps the Gemini API for ticker classification and portfolio
// analysis.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"rebalancer/internal/allocation"
	"rebalancer/internal/errors"
	"rebalancer/internal/logger"
)

// Ticker pairs a symbol with its description for the classification prompt.
type Ticker struct {
	Symbol string
	Name   string
}

// Classifier produces allocation breakdowns for tickers it has never seen.
type Classifier interface {
	Classify(ctx context.Context, tickers []Ticker) (map[string]allocation.Classification, error)
}

// Analyst writes a narrative portfolio analysis from a breakdown.
type Analyst interface {
	Analyze(ctx context.Context, breakdown allocation.Breakdown) (string, error)
}

// Gemini implements Classifier and Analyst against the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini client. Returns ErrClassifierUnavailable when no
// API key is configured so callers can fall back gracefully.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.ErrClassifierUnavailable
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, errors.Wrap(errors.ErrClassifierUnavailable, err)
	}
	return &Gemini{client: client, model: model}, nil
}

// generate sends one prompt and returns the text of the first candidate.
func (g *Gemini) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model %s", g.model)
	}
	return text, nil
}

// Classify asks Gemini for region and category breakdowns of the given
// tickers. Entries that come back with unknown labels or breakdowns that do
// not sum to 100 are dropped so the caller can apply its fallback.
func (g *Gemini) Classify(ctx context.Context, tickers []Ticker) (map[string]allocation.Classification, error) {
	if len(tickers) == 0 {
		return map[string]allocation.Classification{}, nil
	}

	var list strings.Builder
	for _, t := range tickers {
		fmt.Fprintf(&list, "- %s (%s)\n", t.Symbol, t.Name)
	}

	raw, err := g.generate(ctx, classificationPrompt+list.String(), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.1),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrClassifierUnavailable, err)
	}

	var payload map[string]struct {
		Region   allocation.Distribution `json:"region"`
		Category allocation.Distribution `json:"category"`
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), &payload); err != nil {
		return nil, errors.Wrap(errors.ErrClassifierUnavailable, err)
	}

	result := make(map[string]allocation.Classification, len(payload))
	for symbol, entry := range payload {
		c := allocation.Classification{
			Region:   entry.Region,
			Category: entry.Category,
		}
		if err := c.Validate(); err != nil {
			logger.Get().Warnw("Dropping invalid AI classification", "ticker", symbol, "error", err)
			continue
		}
		result[strings.ToUpper(symbol)] = c
	}
	return result, nil
}

// stripFences removes a markdown code fence if the model wrapped its JSON in
// one despite the instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
