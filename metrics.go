// FILE: metrics.go
// Package main – Prometheus metrics for observability.
//
// Exposes the primary metrics the engine updates during operation:
//   • bot_ticks_skipped_total{reason}     – Feed ticks dropped by validation
//   • bot_decisions_total{signal}         – Decision engine outcomes (BUY|SELL|FLAT)
//   • bot_signals_total{side}             – Signals registered (post-dedupe)
//   • bot_orders_total{mode,status}       – Order placements (paper|rest, ok|error)
//   • bot_exit_reasons_total{reason,side} – Trade exits split by reason and side
//   • bot_open_trades                     – Currently monitored trades (gauge)
//   • bot_risk_halted                     – 1 once the admission flag clears (gauge)
//
// These are registered in init() and served by the HTTP handler started in
// main.go at /metrics (Prometheus text exposition format).

package main

import "github.com/prometheus/client_golang/prometheus"

var (
	mtxSkippedTicks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_ticks_skipped_total",
			Help: "Feed ticks skipped by per-field validation",
		},
		[]string{"reason"},
	)

	mtxDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_decisions_total",
			Help: "Decision engine outcomes",
		},
		[]string{"signal"},
	)

	mtxSignals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_signals_total",
			Help: "Signals registered after dedupe",
		},
		[]string{"side"},
	)

	mtxOrders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_orders_total",
			Help: "Order placements by mode and status",
		},
		[]string{"mode", "status"},
	)

	// Counts exits split by reason; reasons are stop_loss, target, partial_exit.
	mtxExitReasons = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_exit_reasons_total",
			Help: "Total exits split by reason and side",
		},
		[]string{"reason", "side"}, // side: BUY|SELL (the side of the CLOSED trade)
	)

	mtxOpenTrades = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bot_open_trades",
			Help: "Trades currently held by the monitor",
		},
	)

	// Flips to 1 when the risk governor halts new entries; reset only at day start.
	mtxRiskHalted = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bot_risk_halted",
			Help: "1 while new entries are halted by the risk governor",
		},
	)
)

func init() {
	prometheus.MustRegister(mtxSkippedTicks, mtxDecisions, mtxSignals, mtxOrders)
	prometheus.MustRegister(mtxExitReasons, mtxOpenTrades, mtxRiskHalted)
}
