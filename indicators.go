// FILE: indicators.go
// Package main – Technical indicators for the signal pipeline.
//
// This file implements lightweight TA helpers used by the regime/bias/breakout
// path:
//   • SMA / EMA           – simple and exponential moving averages
//   • RSI(n)              – Relative Strength Index over the last n deltas
//   • TrueRange / ATR(n)  – volatility from true-range values
//   • ADX(n)              – lightweight directional index (no Wilder smoothing of DX)
//   • MACD                – approximate MACD line/signal/histogram (informational)
//
// Notes
//   - All functions take ordered series (oldest first) as produced by the Scanner.
//   - Each returns (value, ok); ok is false when history is insufficient.
//     Callers treat !ok as "undefined" and must not use the value.
//   - Keep these fast and allocation-light; they run per instrument per batch.

package main

import "math"

// SMA returns the simple moving average of the last n samples.
func SMA(series []float64, n int) (float64, bool) {
	if n <= 0 || len(series) < n {
		return 0, false
	}
	var sum float64
	for _, v := range series[len(series)-n:] {
		sum += v
	}
	return sum / float64(n), true
}

// EMA returns the exponential moving average with multiplier 2/(n+1),
// seeded with the SMA of the first n samples and smoothed forward over the
// remainder of the series.
func EMA(series []float64, n int) (float64, bool) {
	if n <= 0 || len(series) < n {
		return 0, false
	}
	seed, _ := SMA(series[:n], n)
	k := 2.0 / float64(n+1)
	ema := seed
	for _, v := range series[n:] {
		ema = (v-ema)*k + ema
	}
	return ema, true
}

// RSI returns the n-period Relative Strength Index computed from the last n
// price deltas. When the average loss is zero the RSI saturates at 100.
func RSI(prices []float64, n int) (float64, bool) {
	if n <= 0 || len(prices) < n+1 {
		return 0, false
	}
	var gain, loss float64
	for i := len(prices) - n; i < len(prices); i++ {
		d := prices[i] - prices[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	avgGain := gain / float64(n)
	avgLoss := loss / float64(n)
	if avgLoss == 0 {
		return 100, true
	}
	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs)), true
}

// TrueRange returns the per-bar true-range series:
//
//	tr[i] = max(high-low, |high-prevClose|, |low-prevClose|)
//
// The result has len(highs)-1 entries; fewer than 2 bars yields nil.
func TrueRange(highs, lows, closes []float64) []float64 {
	if len(highs) < 2 {
		return nil
	}
	tr := make([]float64, 0, len(highs)-1)
	for i := 1; i < len(highs); i++ {
		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		tr = append(tr, math.Max(hl, math.Max(hc, lc)))
	}
	return tr
}

// ATR returns the mean of the last n true-range values.
func ATR(highs, lows, closes []float64, n int) (float64, bool) {
	tr := TrueRange(highs, lows, closes)
	if n <= 0 || len(tr) < n {
		return 0, false
	}
	var sum float64
	for _, v := range tr[len(tr)-n:] {
		sum += v
	}
	return sum / float64(n), true
}

// ADX returns a lightweight n-period directional index for intraday use.
// Directional moves are credited only when they exceed the opposing move and
// are positive; +DI/−DI normalize the last n moves by ATR. DX is returned
// directly; Wilder's recursive smoothing of DX is not applied.
// Undefined when history is short or ATR is undefined/zero.
func ADX(highs, lows, closes []float64, n int) (float64, bool) {
	if n <= 0 || len(highs) < n+1 {
		return 0, false
	}
	plusDM := make([]float64, 0, len(highs)-1)
	minusDM := make([]float64, 0, len(highs)-1)
	for i := 1; i < len(highs); i++ {
		up := highs[i] - highs[i-1]
		down := lows[i-1] - lows[i]
		if up > down && up > 0 {
			plusDM = append(plusDM, up)
		} else {
			plusDM = append(plusDM, 0)
		}
		if down > up && down > 0 {
			minusDM = append(minusDM, down)
		} else {
			minusDM = append(minusDM, 0)
		}
	}

	atr, ok := ATR(highs, lows, closes, n)
	if !ok || atr == 0 {
		return 0, false
	}

	var plusSum, minusSum float64
	for _, v := range plusDM[len(plusDM)-n:] {
		plusSum += v
	}
	for _, v := range minusDM[len(minusDM)-n:] {
		minusSum += v
	}
	plusDI := plusSum / atr * 100
	minusDI := minusSum / atr * 100

	if plusDI+minusDI == 0 {
		return 0, true
	}
	return math.Abs(plusDI-minusDI) / (plusDI + minusDI) * 100, true
}

// MACD returns an approximate (macd, signal, histogram). The signal line is
// an EMA over a short synthetic MACD history, so this is a coarse measure:
// informational only, not used by the decision path.
func MACD(prices []float64, short, long, signal int) (float64, float64, float64, bool) {
	if len(prices) < long {
		return 0, 0, 0, false
	}
	shortEMA := emaRaw(prices, short)
	longEMA := emaRaw(prices, long)
	macd := shortEMA - longEMA

	histLen := signal
	if len(prices) < histLen {
		histLen = len(prices)
	}
	macdHist := make([]float64, histLen)
	for i := range macdHist {
		macdHist[i] = macd
	}
	sig := emaRaw(macdHist, signal)
	return macd, sig, macd - sig, true
}

// emaRaw smooths the whole series seeded at its first value (no SMA seed).
func emaRaw(series []float64, n int) float64 {
	if len(series) == 0 {
		return 0
	}
	k := 2.0 / float64(n+1)
	ema := series[0]
	for _, v := range series[1:] {
		ema = (v-ema)*k + ema
	}
	return ema
}
