// FILE: gates.go
// Package main – Stateless volatility, volume and liquidity predicates.
//
// These gates are pure functions over recent series; the breakout detector
// and the Session pipeline compose them:
//   • atrExpansion     – ATR-relative move check
//   • volumeSpike      – tiered participation check (first match wins)
//   • isLiquid         – minimum-average-volume floor
//
// Defaults follow the strategy configuration; callers pass explicit knobs so
// the same predicate serves both the breakout path and standalone checks.

package main

const (
	volumeLookback   = 20
	volumeRisingBars = 3
)

// atrExpansion reports whether the move from previous to current price is at
// least multiplier × ATR. A missing ATR (ok=false upstream) never reaches
// here; callers gate on it first.
func atrExpansion(current, previous, atr, multiplier float64) bool {
	move := current - previous
	if move < 0 {
		move = -move
	}
	return move >= atr*multiplier
}

// volumeSpike confirms participation strength from the volume series.
// Tiers, first match wins:
//  1. strong:   current ≥ 1.25 × avg(last lookback)
//  2. moderate: current ≥ thresholdMultiplier × avg(last lookback)
//  3. rising:   last risingBars strictly increasing AND current ≥ 0.95 × avg
//
// Requires at least lookback+risingBars samples, else false.
func volumeSpike(volumes []float64, thresholdMultiplier float64) bool {
	lookback, rising := volumeLookback, volumeRisingBars
	if len(volumes) < lookback+rising {
		return false
	}

	var sum float64
	for _, v := range volumes[len(volumes)-lookback:] {
		sum += v
	}
	avg := sum / float64(lookback)
	current := volumes[len(volumes)-1]

	if current >= avg*1.25 {
		return true
	}
	if current >= avg*thresholdMultiplier {
		return true
	}

	lastN := volumes[len(volumes)-rising:]
	for i := 1; i < len(lastN); i++ {
		if lastN[i] <= lastN[i-1] {
			return false
		}
	}
	return current >= avg*0.95
}

// isLiquid reports whether the instrument trades enough volume on average to
// be worth scanning. minAvgVolume <= 0 disables the floor.
func isLiquid(volumes []float64, minAvgVolume float64) bool {
	if minAvgVolume <= 0 {
		return true
	}
	if len(volumes) == 0 {
		return false
	}
	var sum float64
	for _, v := range volumes {
		sum += v
	}
	return sum/float64(len(volumes)) >= minAvgVolume
}
