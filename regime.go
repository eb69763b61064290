// FILE: regime.go
// Package main – Market regime classification (trend strength).
//
// Classifies an instrument's recent bars as TRENDING, EARLY_TREND or SIDEWAYS
// from the lightweight ADX plus a 10-vs-10 bar range-expansion test. SIDEWAYS
// is the conservative default whenever the inputs are undefined.

package main

// Regime is the trend-strength classification.
type Regime int

const (
	RegimeSideways Regime = iota
	RegimeEarlyTrend
	RegimeTrending
)

func (r Regime) String() string {
	switch r {
	case RegimeTrending:
		return "TRENDING"
	case RegimeEarlyTrend:
		return "EARLY_TREND"
	default:
		return "SIDEWAYS"
	}
}

const (
	adxTrendThreshold = 18.0
	adxEarlyThreshold = 14.0
	rangeExpansionMin = 1.3
	regimeRangeBars   = 10
)

// detectMarketRegime classifies the bars:
//   - ADX or ATR undefined            → SIDEWAYS
//   - ADX ≥ trend threshold           → TRENDING
//   - ADX ≥ early threshold AND the last 10-bar range exceeds 1.3× the prior
//     10-bar range (needs ≥ 20 bars)  → EARLY_TREND
//   - otherwise                       → SIDEWAYS
func detectMarketRegime(highs, lows, closes []float64) Regime {
	adx, adxOK := ADX(highs, lows, closes, 14)
	_, atrOK := ATR(highs, lows, closes, 14)
	if !adxOK || !atrOK {
		return RegimeSideways
	}

	if adx >= adxTrendThreshold {
		return RegimeTrending
	}

	if len(highs) < 2*regimeRangeBars || len(lows) < 2*regimeRangeBars {
		return RegimeSideways
	}
	recentRange := maxOf(highs[len(highs)-regimeRangeBars:]) - minOf(lows[len(lows)-regimeRangeBars:])
	previousRange := maxOf(highs[len(highs)-2*regimeRangeBars:len(highs)-regimeRangeBars]) -
		minOf(lows[len(lows)-2*regimeRangeBars:len(lows)-regimeRangeBars])

	if adx >= adxEarlyThreshold && recentRange > previousRange*rangeExpansionMin {
		return RegimeEarlyTrend
	}
	return RegimeSideways
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, v := range xs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, v := range xs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
