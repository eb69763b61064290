// FILE: breakout_test.go

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// breakoutLongFixture builds 60 bars of a textbook long setup: a slow ramp,
// a steep 20-bar leg (the wide prior range), a 19-bar coil, then a final bar
// clearing the coil's high by more than 0.12% on 2× volume.
func breakoutLongFixture() (prices, volumes, highs, lows, closes []float64) {
	prices = make([]float64, 60)
	for i := 0; i < 20; i++ {
		prices[i] = 100 + 0.1*float64(i)
	}
	for i := 20; i < 40; i++ {
		prices[i] = 102 + 0.5*float64(i-20)
	}
	for i := 40; i < 59; i++ {
		prices[i] = 111.6 + 0.05*float64(i-40)
	}
	prices[59] = 113.0

	volumes = make([]float64, 60)
	highs = make([]float64, 60)
	lows = make([]float64, 60)
	closes = make([]float64, 60)
	for i, p := range prices {
		volumes[i] = 150000
		highs[i] = p + 0.2
		lows[i] = p - 0.2
		closes[i] = p
	}
	volumes[59] = 300000
	return prices, volumes, highs, lows, closes
}

// breakoutShortFixture mirrors the long setup downward.
func breakoutShortFixture() (prices, volumes, highs, lows, closes []float64) {
	prices = make([]float64, 60)
	for i := 0; i < 20; i++ {
		prices[i] = 200 - 0.1*float64(i)
	}
	for i := 20; i < 40; i++ {
		prices[i] = 198 - 0.5*float64(i-20)
	}
	for i := 40; i < 59; i++ {
		prices[i] = 188.4 - 0.05*float64(i-40)
	}
	prices[59] = 187.0

	volumes = make([]float64, 60)
	highs = make([]float64, 60)
	lows = make([]float64, 60)
	closes = make([]float64, 60)
	for i, p := range prices {
		volumes[i] = 150000
		highs[i] = p + 0.2
		lows[i] = p - 0.2
		closes[i] = p
	}
	volumes[59] = 300000
	return prices, volumes, highs, lows, closes
}

func TestDetectCompression(t *testing.T) {
	prices, _, _, _, _ := breakoutLongFixture()
	assert.True(t, detectCompression(prices, 20, 0.65))

	assert.False(t, detectCompression(prices[:30], 20, 0.65), "needs 2×lookback samples")

	flat := make([]float64, 40)
	for i := range flat {
		flat[i] = 100
	}
	assert.False(t, detectCompression(flat, 20, 0.65), "zero prior range cannot compress")
}

func TestBreakoutNeedsThirtySamples(t *testing.T) {
	prices, volumes, highs, lows, closes := breakoutLongFixture()
	got := detectBreakout(prices[:29], volumes[:29], highs[:29], lows[:29], closes[:29])
	assert.Equal(t, BreakNone, got)
}

func TestBreakoutLong(t *testing.T) {
	prices, volumes, highs, lows, closes := breakoutLongFixture()
	assert.Equal(t, BreakLong, detectBreakout(prices, volumes, highs, lows, closes))
}

func TestBreakoutShort(t *testing.T) {
	prices, volumes, highs, lows, closes := breakoutShortFixture()
	assert.Equal(t, BreakShort, detectBreakout(prices, volumes, highs, lows, closes))
}

func TestBreakoutRejectedWithoutExpansion(t *testing.T) {
	prices, volumes, highs, lows, closes := breakoutLongFixture()
	// Shrink the final move below 0.7×ATR and flatten the volume so neither
	// expansion check confirms; the directional break alone must not fire.
	prices[59] = 112.7
	highs[59] = 112.9
	lows[59] = 112.5
	closes[59] = 112.7
	volumes[59] = 150000
	assert.Equal(t, BreakNone, detectBreakout(prices, volumes, highs, lows, closes))
}

func TestBreakoutRejectedWithoutDirectionalBreak(t *testing.T) {
	prices, volumes, highs, lows, closes := breakoutLongFixture()
	// Volume confirms but the final price stays inside the coil's extremes.
	prices[59] = 112.55
	highs[59] = 112.75
	lows[59] = 112.35
	closes[59] = 112.55
	assert.Equal(t, BreakNone, detectBreakout(prices, volumes, highs, lows, closes))
}
