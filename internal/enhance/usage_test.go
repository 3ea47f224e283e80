package enhance

import (
	"sync"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingCost(t *testing.T) {
	p := DefaultPricing[anthropic.ModelClaudeSonnet4_5]

	// input: 1000 * $3/MTok = $0.003, output: 500 * $15/MTok = $0.0075
	cost := p.Cost(Usage{InputTokens: 1000, OutputTokens: 500})
	expected := decimal.NewFromFloat(0.0105)
	assert.True(t, expected.Equal(cost), "expected %s, got %s", expected, cost)
}

func TestPricingCostWithCacheTokens(t *testing.T) {
	p := DefaultPricing[anthropic.ModelClaudeSonnet4_5]

	// input:      5000 * $3/MTok    = $0.015
	// cacheRead:  1000 * $0.30/MTok = $0.0003
	// cacheWrite: 500  * $3.75/MTok = $0.001875
	// output:     2000 * $15/MTok   = $0.030
	cost := p.Cost(Usage{
		InputTokens:              5000,
		OutputTokens:             2000,
		CacheReadInputTokens:     1000,
		CacheCreationInputTokens: 500,
	})
	expected := decimal.NewFromFloat(0.015).
		Add(decimal.NewFromFloat(0.0003)).
		Add(decimal.NewFromFloat(0.001875)).
		Add(decimal.NewFromFloat(0.030))
	assert.True(t, expected.Equal(cost), "expected %s, got %s", expected, cost)
}

func TestTrackerAccumulates(t *testing.T) {
	tr := NewTracker(DefaultPricing)

	tr.Record(anthropic.ModelClaudeSonnet4_5, Usage{InputTokens: 1000, OutputTokens: 500})
	tr.Record(anthropic.ModelClaudeHaiku4_5, Usage{InputTokens: 500, OutputTokens: 500})

	usage := tr.TotalUsage()
	assert.Equal(t, 1500, usage.InputTokens)
	assert.Equal(t, 1000, usage.OutputTokens)

	// sonnet: 1000*$3/MTok + 500*$15/MTok = $0.0105
	// haiku:  500*$1/MTok + 500*$5/MTok   = $0.003
	expected := decimal.NewFromFloat(0.0135)
	assert.True(t, expected.Equal(tr.TotalCost()), "expected %s, got %s", expected, tr.TotalCost())
}

func TestTrackerUnknownModel(t *testing.T) {
	tr := NewTracker(DefaultPricing)

	tr.Record("some-future-model", Usage{InputTokens: 1000, OutputTokens: 500})

	usage := tr.TotalUsage()
	assert.Equal(t, 1000, usage.InputTokens)
	assert.Equal(t, 500, usage.OutputTokens)
	assert.True(t, decimal.Zero.Equal(tr.TotalCost()), "unknown model should not add cost")
}

func TestTrackerConcurrentAccess(t *testing.T) {
	tr := NewTracker(DefaultPricing)

	var wg sync.WaitGroup
	goroutines := 50
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Record(anthropic.ModelClaudeSonnet4_5, Usage{InputTokens: 1000, OutputTokens: 500})
		}()
	}
	wg.Wait()

	usage := tr.TotalUsage()
	assert.Equal(t, goroutines*1000, usage.InputTokens)

	// each call: $0.0105
	expected := decimal.NewFromFloat(0.0105).Mul(decimal.NewFromInt(int64(goroutines)))
	require.True(t, expected.Equal(tr.TotalCost()), "expected %s, got %s", expected, tr.TotalCost())
}
