// FILE: bias.go
// Package main – Higher-time-frame directional bias.
//
// Combines an EMA(20)/EMA(50) crossover with VWAP alignment into a 5-way
// bias. The EMA relation sets the direction; VWAP agreement upgrades it to
// the _STRONG variant. NEUTRAL whenever history is short or the EMAs tie.

package main

// Bias is the 5-way higher-time-frame directional classification.
type Bias int

const (
	BiasNeutral Bias = iota
	BiasBullishWeak
	BiasBullishStrong
	BiasBearishWeak
	BiasBearishStrong
)

func (b Bias) String() string {
	switch b {
	case BiasBullishStrong:
		return "BULLISH_STRONG"
	case BiasBullishWeak:
		return "BULLISH_WEAK"
	case BiasBearishStrong:
		return "BEARISH_STRONG"
	case BiasBearishWeak:
		return "BEARISH_WEAK"
	default:
		return "NEUTRAL"
	}
}

// bullish / bearish report whether the bias points in the given direction,
// regardless of strength.
func (b Bias) bullish() bool { return b == BiasBullishWeak || b == BiasBullishStrong }
func (b Bias) bearish() bool { return b == BiasBearishWeak || b == BiasBearishStrong }

const (
	biasShortPeriod   = 20
	biasLongPeriod    = 50
	biasVWAPTolerance = 0.002 // 0.2%
)

// htfBias classifies prices against the EMA pair and, when a VWAP value is
// available, against VWAP with a 0.2% tolerance band. vwapOK=false (no volume
// yet) leaves the EMA bias at its weak variant.
func htfBias(prices []float64, vwap float64, vwapOK bool) Bias {
	if len(prices) < biasLongPeriod {
		return BiasNeutral
	}
	emaShort, okS := EMA(prices, biasShortPeriod)
	emaLong, okL := EMA(prices, biasLongPeriod)
	if !okS || !okL || emaShort == emaLong {
		return BiasNeutral
	}

	price := prices[len(prices)-1]
	vwapBullish := vwapOK && price > vwap*(1+biasVWAPTolerance)
	vwapBearish := vwapOK && price < vwap*(1-biasVWAPTolerance)

	if emaShort > emaLong {
		if vwapBullish {
			return BiasBullishStrong
		}
		return BiasBullishWeak
	}
	if vwapBearish {
		return BiasBearishStrong
	}
	return BiasBearishWeak
}
