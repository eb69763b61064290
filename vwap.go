// FILE: vwap.go
// Package main – Session / trailing-window VWAP accumulator.
//
// One VWAPCalculator per instrument, owned by the Session. Two modes:
//   • session (window == 0): running price·volume and volume sums for the day
//   • windowed (window > 0): bounded FIFOs with incrementally maintained sums
//
// A VWAP value exists only once cumulative volume is positive; until then
// reads return ok=false. Reset() clears everything and is invoked only at a
// session boundary (StartDay), never mid-session.

package main

// VWAPCalculator accumulates volume-weighted average price.
type VWAPCalculator struct {
	window int

	pvSum  float64
	volSum float64

	// bounded mode only
	pv  *ringSeries
	vol *ringSeries
}

// NewVWAPCalculator builds a session-scoped calculator when window is 0, or a
// trailing-window calculator over the last window samples otherwise.
func NewVWAPCalculator(window int) *VWAPCalculator {
	v := &VWAPCalculator{window: window}
	if window > 0 {
		v.pv = newRingSeries(window)
		v.vol = newRingSeries(window)
	}
	return v
}

// Reset clears all accumulated state for a new trading session.
func (v *VWAPCalculator) Reset() {
	v.pvSum = 0
	v.volSum = 0
	if v.window > 0 {
		v.pv = newRingSeries(v.window)
		v.vol = newRingSeries(v.window)
	}
}

// Update folds one (price, volume) sample in and returns the current VWAP.
// ok is false while cumulative volume is zero.
func (v *VWAPCalculator) Update(price, volume float64) (float64, bool) {
	if v.window > 0 {
		if v.pv.len() == v.window {
			// evict the oldest contribution before pushing
			old := v.pv.values()[0]
			oldVol := v.vol.values()[0]
			v.pvSum -= old
			v.volSum -= oldVol
		}
		v.pv.push(price * volume)
		v.vol.push(volume)
		v.pvSum += price * volume
		v.volSum += volume
	} else {
		v.pvSum += price * volume
		v.volSum += volume
	}
	return v.Value()
}

// Value is a non-mutating read of the current VWAP.
func (v *VWAPCalculator) Value() (float64, bool) {
	if v.volSum == 0 {
		return 0, false
	}
	return v.pvSum / v.volSum, true
}
