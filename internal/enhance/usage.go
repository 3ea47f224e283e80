package enhance

import (
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/shopspring/decimal"
)

// Pricing holds per-model token prices in USD per million tokens.
type Pricing struct {
	InputPerMTok      decimal.Decimal
	OutputPerMTok     decimal.Decimal
	CacheWritePerMTok decimal.Decimal
	CacheReadPerMTok  decimal.Decimal
}

var million = decimal.NewFromInt(1_000_000)

// Cost calculates the USD cost of one call at this pricing.
func (p Pricing) Cost(u Usage) decimal.Decimal {
	cost := decimal.NewFromInt(int64(u.InputTokens)).Mul(p.InputPerMTok).Div(million)
	cost = cost.Add(decimal.NewFromInt(int64(u.CacheReadInputTokens)).Mul(p.CacheReadPerMTok).Div(million))
	cost = cost.Add(decimal.NewFromInt(int64(u.CacheCreationInputTokens)).Mul(p.CacheWritePerMTok).Div(million))
	cost = cost.Add(decimal.NewFromInt(int64(u.OutputTokens)).Mul(p.OutputPerMTok).Div(million))
	return cost
}

// DefaultPricing contains built-in pricing for Claude models (USD per million tokens).
var DefaultPricing = map[anthropic.Model]Pricing{
	anthropic.ModelClaudeOpus4_6: {
		InputPerMTok:      decimal.NewFromFloat(5),
		OutputPerMTok:     decimal.NewFromFloat(25),
		CacheWritePerMTok: decimal.NewFromFloat(6.25),
		CacheReadPerMTok:  decimal.NewFromFloat(0.5),
	},
	anthropic.ModelClaudeSonnet4_5: {
		InputPerMTok:      decimal.NewFromFloat(3),
		OutputPerMTok:     decimal.NewFromFloat(15),
		CacheWritePerMTok: decimal.NewFromFloat(3.75),
		CacheReadPerMTok:  decimal.NewFromFloat(0.3),
	},
	anthropic.ModelClaudeHaiku4_5: {
		InputPerMTok:      decimal.NewFromFloat(1),
		OutputPerMTok:     decimal.NewFromFloat(5),
		CacheWritePerMTok: decimal.NewFromFloat(1.25),
		CacheReadPerMTok:  decimal.NewFromFloat(0.1),
	},
}

// Usage holds token counts for a single generation call.
type Usage struct {
	InputTokens              int
	OutputTokens             int
	CacheReadInputTokens     int
	CacheCreationInputTokens int
}

// Tracker accumulates token usage and cost across generation calls.
// It is safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	total   Usage
	cost    decimal.Decimal
	pricing map[anthropic.Model]Pricing
}

// NewTracker creates a tracker with the given pricing table.
func NewTracker(pricing map[anthropic.Model]Pricing) *Tracker {
	return &Tracker{
		cost:    decimal.Zero,
		pricing: pricing,
	}
}

// Record adds one call's usage and updates the cumulative cost.
func (t *Tracker) Record(model anthropic.Model, u Usage) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total.InputTokens += u.InputTokens
	t.total.OutputTokens += u.OutputTokens
	t.total.CacheReadInputTokens += u.CacheReadInputTokens
	t.total.CacheCreationInputTokens += u.CacheCreationInputTokens

	pricing, ok := t.pricing[model]
	if !ok {
		return // unknown model: tokens counted, no cost added
	}
	t.cost = t.cost.Add(pricing.Cost(u))
}

// TotalUsage returns the cumulative token usage across all recorded calls.
func (t *Tracker) TotalUsage() Usage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}

// TotalCost returns the cumulative cost across all recorded calls.
func (t *Tracker) TotalCost() decimal.Decimal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cost
}
