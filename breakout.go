// FILE: breakout.go
// Package main – Compression → expansion → directional break detection.
//
// detectBreakout looks for an early breakout in three mandatory steps:
//   1) compression: the last 20-price range contracted below 0.65× the prior
//      20-price range (volatility coiling before expansion)
//   2) expansion confirmation: the latest one-bar move clears 0.7× ATR(14),
//      or the volume-spike gate confirms at the 1.15× tier
//   3) directional break: the latest price clears the prior 19-price extreme
//      by ±0.12%
//
// The result is LONG, SHORT or none, never both.

package main

// BreakSignal is the directional breakout outcome.
type BreakSignal int

const (
	BreakNone BreakSignal = iota
	BreakLong
	BreakShort
)

func (b BreakSignal) String() string {
	switch b {
	case BreakLong:
		return "LONG"
	case BreakShort:
		return "SHORT"
	default:
		return "NONE"
	}
}

const (
	breakoutMinSamples   = 30
	breakoutLookback     = 20
	compressionRatio     = 0.65
	breakoutPct          = 0.0012 // 0.12%
	breakoutATRMult      = 0.7
	breakoutVolThreshold = 1.15
)

// detectCompression reports whether the recent price range contracted below
// compressionRatio × the prior equal-length range. False when the prior range
// is zero or fewer than 2×lookback samples exist.
func detectCompression(prices []float64, lookback int, ratio float64) bool {
	if len(prices) < lookback*2 {
		return false
	}
	recent := prices[len(prices)-lookback:]
	previous := prices[len(prices)-lookback*2 : len(prices)-lookback]

	recentRange := maxOf(recent) - minOf(recent)
	previousRange := maxOf(previous) - minOf(previous)
	if previousRange == 0 {
		return false
	}
	return recentRange < previousRange*ratio
}

// detectBreakout runs the full three-step detection over the instrument's
// series. Fewer than 30 prices always yields BreakNone.
func detectBreakout(prices, volumes, highs, lows, closes []float64) BreakSignal {
	if len(prices) < breakoutMinSamples {
		return BreakNone
	}

	// 1) compression is a mandatory gate
	if !detectCompression(prices, breakoutLookback, compressionRatio) {
		return BreakNone
	}

	// 2) expansion: ATR-relative move (primary) or volume participation (secondary)
	atrOK := false
	if atr, ok := ATR(highs, lows, closes, 14); ok && atr > 0 {
		atrOK = atrExpansion(prices[len(prices)-1], prices[len(prices)-2], atr, breakoutATRMult)
	}

	volumeOK := false
	if len(volumes) >= breakoutLookback {
		volumeOK = volumeSpike(volumes, breakoutVolThreshold)
	}

	if !atrOK && !volumeOK {
		return BreakNone
	}

	// 3) directional break over the last 20 prices, extremes excluding the
	// final (current) one
	segment := prices[len(prices)-breakoutLookback:]
	high := maxOf(segment[:len(segment)-1])
	low := minOf(segment[:len(segment)-1])
	current := segment[len(segment)-1]

	if current > high*(1+breakoutPct) {
		return BreakLong
	}
	if current < low*(1-breakoutPct) {
		return BreakShort
	}
	return BreakNone
}
