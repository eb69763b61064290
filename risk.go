// FILE: risk.go
// Package main – Day-scoped risk governor.
//
// The governor counts closed-trade outcomes and gates whether new entries are
// allowed. Counters only grow within a session; ResetDailyCounters is the
// single explicit day-boundary operation. There is no automatic re-enable:
// the Session's admission flag stays cleared after a breach until the next
// day start.

package main

// RiskStatus is a snapshot of the governor's counters for logs/reporting.
type RiskStatus struct {
	TotalTrades  int
	StopLosses   int
	TargetHits   int
	PartialExits int
	CanTrade     bool
}

// RiskGovernor tracks closed trades and enforces daily limits.
type RiskGovernor struct {
	cfg Config

	totalTrades  int
	stopLosses   int
	targetHits   int
	partialExits int
}

func NewRiskGovernor(cfg Config) *RiskGovernor {
	return &RiskGovernor{cfg: cfg}
}

// ResetDailyCounters clears all counters for a new trading day.
func (r *RiskGovernor) ResetDailyCounters() {
	r.totalTrades = 0
	r.stopLosses = 0
	r.targetHits = 0
	r.partialExits = 0
}

// RecordTradeOutcome folds one closed trade in. Every outcome counts toward
// the total; only recognized reasons bump their dedicated counter.
func (r *RiskGovernor) RecordTradeOutcome(reason ExitReason) {
	r.totalTrades++
	switch reason {
	case ExitStopLoss:
		r.stopLosses++
	case ExitTarget:
		r.targetHits++
	case ExitPartial:
		r.partialExits++
	}
}

// CanTradeNow reports whether new entries are still allowed today.
func (r *RiskGovernor) CanTradeNow() bool {
	if r.totalTrades >= r.cfg.MaxTradesPerDay {
		return false
	}
	if r.stopLosses >= r.cfg.MaxStopLosses {
		return false
	}
	if r.targetHits >= r.cfg.MaxTargetHits {
		return false
	}
	if r.partialExits >= r.cfg.MaxPartialExits {
		return false
	}
	return true
}

// Status returns the current counters for operator logging.
func (r *RiskGovernor) Status() RiskStatus {
	return RiskStatus{
		TotalTrades:  r.totalTrades,
		StopLosses:   r.stopLosses,
		TargetHits:   r.targetHits,
		PartialExits: r.partialExits,
		CanTrade:     r.CanTradeNow(),
	}
}
