// FILE: regime_test.go

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// trendBars builds n strictly rising bars with a fixed per-bar step.
func trendBars(n int, start, step float64) (highs, lows, closes []float64) {
	highs = make([]float64, n)
	lows = make([]float64, n)
	closes = make([]float64, n)
	for i := 0; i < n; i++ {
		mid := start + float64(i)*step
		highs[i] = mid + 0.5
		lows[i] = mid - 0.5
		closes[i] = mid
	}
	return highs, lows, closes
}

func TestRegimeSidewaysOnShortHistory(t *testing.T) {
	highs, lows, closes := trendBars(10, 100, 1)
	assert.Equal(t, RegimeSideways, detectMarketRegime(highs, lows, closes))
}

func TestRegimeSidewaysOnFlatBars(t *testing.T) {
	// Identical bars make ATR zero, so ADX is undefined.
	n := 25
	flat := make([]float64, n)
	for i := range flat {
		flat[i] = 100
	}
	assert.Equal(t, RegimeSideways, detectMarketRegime(flat, flat, flat))
}

func TestRegimeTrendingOnStrongADX(t *testing.T) {
	// One-directional bars push the lightweight ADX to 100.
	highs, lows, closes := trendBars(25, 100, 1)
	assert.Equal(t, RegimeTrending, detectMarketRegime(highs, lows, closes))
}

func TestRegimeSidewaysOnChoppyRange(t *testing.T) {
	// Alternating bars: +DI and −DI cancel, DX collapses toward 0/one-sided
	// values below the early threshold, and the range does not expand.
	n := 30
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			highs[i], lows[i], closes[i] = 101, 99, 100
		} else {
			highs[i], lows[i], closes[i] = 101.5, 99.5, 100.5
		}
	}
	assert.Equal(t, RegimeSideways, detectMarketRegime(highs, lows, closes))
}
