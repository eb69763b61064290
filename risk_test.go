// FILE: risk_test.go

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRiskGovernorStopLossLimit(t *testing.T) {
	g := NewRiskGovernor(testConfig())
	g.ResetDailyCounters()

	for i := 0; i < 4; i++ {
		g.RecordTradeOutcome(ExitStopLoss)
		assert.True(t, g.CanTradeNow(), "still under the limit after %d stop losses", i+1)
	}
	g.RecordTradeOutcome(ExitStopLoss)
	assert.False(t, g.CanTradeNow(), "the 5th stop loss halts new entries")

	// Stays false until the explicit day-boundary reset.
	assert.False(t, g.CanTradeNow())
	g.ResetDailyCounters()
	assert.True(t, g.CanTradeNow())
}

func TestRiskGovernorTotalTradesLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxTradesPerDay = 3
	cfg.MaxTargetHits = 10
	g := NewRiskGovernor(cfg)

	g.RecordTradeOutcome(ExitTarget)
	g.RecordTradeOutcome(ExitTarget)
	assert.True(t, g.CanTradeNow())
	g.RecordTradeOutcome(ExitTarget)
	assert.False(t, g.CanTradeNow(), "total trades cap binds even when per-reason caps do not")
}

func TestRiskGovernorUnrecognizedReason(t *testing.T) {
	g := NewRiskGovernor(testConfig())
	g.RecordTradeOutcome(ExitReason(99))

	st := g.Status()
	assert.Equal(t, 1, st.TotalTrades, "unknown reasons still count toward the total")
	assert.Equal(t, 0, st.StopLosses)
	assert.Equal(t, 0, st.TargetHits)
	assert.Equal(t, 0, st.PartialExits)
}

func TestRiskStatusSnapshot(t *testing.T) {
	g := NewRiskGovernor(testConfig())
	g.RecordTradeOutcome(ExitStopLoss)
	g.RecordTradeOutcome(ExitTarget)
	g.RecordTradeOutcome(ExitPartial)

	st := g.Status()
	assert.Equal(t, 3, st.TotalTrades)
	assert.Equal(t, 1, st.StopLosses)
	assert.Equal(t, 1, st.TargetHits)
	assert.Equal(t, 1, st.PartialExits)
	assert.True(t, st.CanTrade)
}
