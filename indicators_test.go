// FILE: indicators_test.go

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	v, ok := SMA([]float64{1, 2, 3, 4}, 2)
	require.True(t, ok)
	assert.InDelta(t, 3.5, v, 1e-9)

	_, ok = SMA([]float64{1, 2}, 3)
	assert.False(t, ok, "short history must be undefined")

	_, ok = SMA([]float64{1, 2}, 0)
	assert.False(t, ok)
}

func TestEMASeededWithSMA(t *testing.T) {
	// With exactly n samples the EMA equals the SMA seed.
	v, ok := EMA([]float64{2, 4, 6}, 3)
	require.True(t, ok)
	assert.InDelta(t, 4.0, v, 1e-9)

	// One more sample folds in with k = 2/(n+1) = 0.5.
	v, ok = EMA([]float64{2, 4, 6, 10}, 3)
	require.True(t, ok)
	assert.InDelta(t, 7.0, v, 1e-9) // (10-4)*0.5 + 4

	_, ok = EMA([]float64{1, 2}, 3)
	assert.False(t, ok)
}

func TestRSI(t *testing.T) {
	up := []float64{100, 101, 102, 103, 104, 105, 106, 107, 108, 109, 110, 111, 112, 113, 114}
	v, ok := RSI(up, 14)
	require.True(t, ok)
	assert.InDelta(t, 100.0, v, 1e-9, "only gains saturates at 100")

	down := []float64{114, 113, 112, 111, 110, 109, 108, 107, 106, 105, 104, 103, 102, 101, 100}
	v, ok = RSI(down, 14)
	require.True(t, ok)
	assert.InDelta(t, 0.0, v, 1e-9, "only losses pins at 0")

	_, ok = RSI(up, 15)
	assert.False(t, ok, "needs n+1 prices")
}

func TestTrueRangeAndATR(t *testing.T) {
	highs := []float64{10, 12, 11}
	lows := []float64{9, 10, 10}
	closes := []float64{9.5, 11, 10.5}

	tr := TrueRange(highs, lows, closes)
	require.Len(t, tr, 2)
	// bar 1: max(12-10, |12-9.5|, |10-9.5|) = 2.5
	assert.InDelta(t, 2.5, tr[0], 1e-9)
	// bar 2: max(11-10, |11-11|, |10-11|) = 1.0
	assert.InDelta(t, 1.0, tr[1], 1e-9)

	atr, ok := ATR(highs, lows, closes, 2)
	require.True(t, ok)
	assert.InDelta(t, 1.75, atr, 1e-9)

	_, ok = ATR(highs, lows, closes, 3)
	assert.False(t, ok)

	assert.Nil(t, TrueRange([]float64{10}, []float64{9}, []float64{9.5}))
}

func TestADXUndefinedCases(t *testing.T) {
	_, ok := ADX([]float64{1, 2, 3}, []float64{1, 2, 3}, []float64{1, 2, 3}, 14)
	assert.False(t, ok, "short history")

	// Flat bars: ATR is 0, so ADX is undefined rather than NaN.
	n := 20
	flat := make([]float64, n)
	for i := range flat {
		flat[i] = 100
	}
	_, ok = ADX(flat, flat, flat, 14)
	assert.False(t, ok)
}

func TestADXStrongTrendIsHigh(t *testing.T) {
	// Strictly rising bars: all directional movement is positive, so the
	// lightweight DX reads 100.
	n := 20
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	for i := 0; i < n; i++ {
		highs[i] = 100.5 + float64(i)
		lows[i] = 99.5 + float64(i)
		closes[i] = 100 + float64(i)
	}
	v, ok := ADX(highs, lows, closes, 14)
	require.True(t, ok)
	assert.InDelta(t, 100.0, v, 1e-9)
}

func TestMACDDefinedOnlyWithEnoughHistory(t *testing.T) {
	short := make([]float64, 25)
	for i := range short {
		short[i] = 100 + float64(i)
	}
	_, _, _, ok := MACD(short, 12, 26, 9)
	assert.False(t, ok)

	long := make([]float64, 40)
	for i := range long {
		long[i] = 100 + float64(i)
	}
	macd, _, _, ok := MACD(long, 12, 26, 9)
	require.True(t, ok)
	assert.Greater(t, macd, 0.0, "rising series keeps the short EMA above the long")
}
