// FILE: decision.go
// Package main – Final decision gate cascade.
//
// finalTradeDecision turns the per-instrument context (regime, breakout,
// bias, VWAP, short-horizon momentum) into a trading intent. Every gate
// short-circuits to Flat on failure, so the result is always exactly one of
// Buy, Sell or Flat:
//   1) regime must be TRENDING or EARLY_TREND
//   2) a directional breakout must exist
//   3) the HTF bias must align with the breakout direction
//   4) VWAP context is soft: a violation is tolerated only on the matching
//      _STRONG bias
//   5) momentum: EMA9 vs EMA21 plus an RSI14 band confirm the direction
//
// The momentum gate alone can never produce a decision; gate 2 guarantees a
// breakout precedes it.

package main

// Signal is the high-level intent.
type Signal int

const (
	Flat Signal = iota
	Buy
	Sell
)

// String implements fmt.Stringer for pretty logging.
func (s Signal) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "FLAT"
	}
}

// SignalToSide converts the intent into a broker side.
func (s Signal) SignalToSide() OrderSide {
	if s == Sell {
		return SideSell
	}
	return SideBuy
}

const (
	vwapSoftLongFloor  = 0.997 // LONG fails soft check below VWAP × this
	vwapSoftShortCeil  = 1.003 // SHORT fails soft check above VWAP × this
	momentumMinSamples = 30
	rsiLongFloor       = 48.0
	rsiShortCeil       = 52.0
)

// finalTradeDecision runs the gate cascade for one instrument.
// vwapOK=false (no volume yet) leaves the VWAP context satisfied.
func finalTradeDecision(prices []float64, regime Regime, bias Bias, breakout BreakSignal, vwap float64, vwapOK bool, ltp float64) Signal {
	// 1) regime gate
	if regime != RegimeTrending && regime != RegimeEarlyTrend {
		return Flat
	}

	// 2) breakout must exist
	if breakout != BreakLong && breakout != BreakShort {
		return Flat
	}

	// 3) HTF bias alignment
	if breakout == BreakLong && !bias.bullish() {
		return Flat
	}
	if breakout == BreakShort && !bias.bearish() {
		return Flat
	}

	// 4) VWAP context (soft): tolerate a violation only on the matching
	// _STRONG bias
	vwapSatisfied := true
	if vwapOK {
		if breakout == BreakLong && ltp < vwap*vwapSoftLongFloor {
			vwapSatisfied = false
		}
		if breakout == BreakShort && ltp > vwap*vwapSoftShortCeil {
			vwapSatisfied = false
		}
	}
	if !vwapSatisfied {
		if breakout == BreakLong && bias != BiasBullishStrong {
			return Flat
		}
		if breakout == BreakShort && bias != BiasBearishStrong {
			return Flat
		}
	}

	// 5) momentum confirmation
	if len(prices) < momentumMinSamples {
		return Flat
	}
	ema9, ok9 := EMA(prices, 9)
	ema21, ok21 := EMA(prices, 21)
	rsi14, okR := RSI(prices, 14)
	if !ok9 || !ok21 || !okR {
		return Flat
	}

	if breakout == BreakLong && ema9 > ema21 && rsi14 > rsiLongFloor {
		return Buy
	}
	if breakout == BreakShort && ema9 < ema21 && rsi14 < rsiShortCeil {
		return Sell
	}
	return Flat
}
