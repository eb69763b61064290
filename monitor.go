// FILE: monitor.go
// Package main – Open-trade exit state machine.
//
// A TrackedTrade carries stop/target levels computed once at entry plus two
// one-way latches (breakeven_moved, partial_exit_done). The TradeMonitor
// sweeps every open trade against the current batch prices in a fixed rule
// order, stopping at the first rule that matches:
//   1) stop-loss        (terminal)
//   2) target           (terminal)
//   3) breakeven ratchet (non-terminal: stop moves to entry, exactly once)
//   4) partial exit     (terminal)
// A trade transitions to closed exactly once, with exactly one reason; a
// closed trade is never re-evaluated (the Session removes it after logging).
//
// The monitor is owned by one Session; it is not safe for concurrent use.

package main

import "time"

// ExitReason tags why a trade closed.
type ExitReason int

const (
	ExitStopLoss ExitReason = iota
	ExitTarget
	ExitPartial
)

func (e ExitReason) String() string {
	switch e {
	case ExitStopLoss:
		return "STOP_LOSS"
	case ExitTarget:
		return "TARGET"
	default:
		return "PARTIAL_EXIT"
	}
}

// TrackedTrade holds state for one live trade.
type TrackedTrade struct {
	Instrument string
	Side       OrderSide
	EntryPrice float64
	Qty        int

	StopLoss float64
	Target   float64

	BreakevenMoved  bool
	PartialExitDone bool
	Closed          bool

	OpenTime time.Time
}

// profitPct is the side-relative unrealized move as a fraction of entry.
func (t *TrackedTrade) profitPct(price float64) float64 {
	if t.Side == SideBuy {
		return (price - t.EntryPrice) / t.EntryPrice
	}
	return (t.EntryPrice - price) / t.EntryPrice
}

// TradeExit reports one closed trade from a sweep.
type TradeExit struct {
	TradeID string
	Trade   *TrackedTrade
	Reason  ExitReason
	Price   float64
}

// TradeMonitor watches live trades and triggers exit logic.
type TradeMonitor struct {
	cfg    Config
	trades map[string]*TrackedTrade
	order  []string // insertion order, for a deterministic sweep
}

func NewTradeMonitor(cfg Config) *TradeMonitor {
	return &TradeMonitor{cfg: cfg, trades: make(map[string]*TrackedTrade)}
}

// AddTrade registers a freshly filled trade. Stop and target are derived from
// the entry price and side once, here; only the breakeven ratchet may move
// the stop afterwards.
func (m *TradeMonitor) AddTrade(tradeID, inst string, side OrderSide, entryPrice float64, qty int, openTime time.Time) {
	t := &TrackedTrade{
		Instrument: inst,
		Side:       side,
		EntryPrice: entryPrice,
		Qty:        qty,
		OpenTime:   openTime,
	}
	if side == SideBuy {
		t.StopLoss = entryPrice * (1 - m.cfg.StopLossPct)
		t.Target = entryPrice * (1 + m.cfg.TargetPct)
	} else {
		t.StopLoss = entryPrice * (1 + m.cfg.StopLossPct)
		t.Target = entryPrice * (1 - m.cfg.TargetPct)
	}
	m.trades[tradeID] = t
	m.order = append(m.order, tradeID)
	mtxOpenTrades.Set(float64(len(m.trades)))
}

// RemoveTrade drops a trade from the active set.
func (m *TradeMonitor) RemoveTrade(tradeID string) {
	if _, ok := m.trades[tradeID]; !ok {
		return
	}
	delete(m.trades, tradeID)
	for i, id := range m.order {
		if id == tradeID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	mtxOpenTrades.Set(float64(len(m.trades)))
}

// ActiveCount returns the number of trades currently monitored.
func (m *TradeMonitor) ActiveCount() int { return len(m.trades) }

// CheckTrades evaluates every open trade against the batch's current prices.
// Instruments absent from the map are left untouched this sweep.
func (m *TradeMonitor) CheckTrades(currentPrices map[string]float64) []TradeExit {
	var exits []TradeExit

	for _, tradeID := range m.order {
		t := m.trades[tradeID]
		if t == nil || t.Closed {
			continue
		}
		ltp, ok := currentPrices[t.Instrument]
		if !ok {
			continue
		}

		profit := t.profitPct(ltp)

		// 1) stop-loss
		if (t.Side == SideBuy && ltp <= t.StopLoss) || (t.Side == SideSell && ltp >= t.StopLoss) {
			t.Closed = true
			exits = append(exits, TradeExit{TradeID: tradeID, Trade: t, Reason: ExitStopLoss, Price: ltp})
			continue
		}

		// 2) target
		if (t.Side == SideBuy && ltp >= t.Target) || (t.Side == SideSell && ltp <= t.Target) {
			t.Closed = true
			exits = append(exits, TradeExit{TradeID: tradeID, Trade: t, Reason: ExitTarget, Price: ltp})
			continue
		}

		// 3) breakeven ratchet: one-way move of the stop to entry
		if !t.BreakevenMoved && profit >= m.cfg.BreakevenMovePct {
			t.StopLoss = t.EntryPrice
			t.BreakevenMoved = true
			continue
		}

		// 4) partial exit. Both conditions read the SAME tick price: the
		// profit threshold and the retrace limit must hold simultaneously,
		// which with the default knobs (move 0.70%, limit 0.65%) is
		// unsatisfiable; the rule fires only when PARTIAL_EXIT_LIMIT_PCT is
		// configured at or above PARTIAL_EXIT_MOVE_PCT. Kept as the literal
		// contract; do not swap in a high-water-mark retrace without
		// revisiting the configured thresholds.
		if !t.PartialExitDone && profit >= m.cfg.PartialExitMovePct {
			retraced := (t.Side == SideBuy && ltp <= t.EntryPrice*(1+m.cfg.PartialExitLimitPct)) ||
				(t.Side == SideSell && ltp >= t.EntryPrice*(1-m.cfg.PartialExitLimitPct))
			if retraced {
				t.Closed = true
				exits = append(exits, TradeExit{TradeID: tradeID, Trade: t, Reason: ExitPartial, Price: ltp})
				continue
			}
		}
	}

	return exits
}
