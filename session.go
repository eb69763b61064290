// FILE: session.go
// Package main – trading session orchestrator.
//
// A Session owns every piece of mutable intraday state: the Scanner, the
// per-instrument VWAP calculators, the one-signal-per-instrument dedupe set,
// the TradeMonitor, the RiskGovernor, and the admission flag. It is built
// once per trading day and driven by a single goroutine pulling TickBatch
// values off a channel, so none of the state needs locking.
//
// Per batch, in order:
//   1) drain async order results and register fills with the monitor
//   2) validate ticks, update series and VWAP
//   3) evaluate entries (regime/bias/breakout/decision) for eligible
//      instruments and submit orders
//   4) sweep open trades against this batch's prices, journal exits, feed
//      outcomes to the governor
//
// The admission flag is monotonic: once the governor reports a breach, no
// new entries for the rest of the session. Open trades are still swept to
// their natural exits after the halt.

package main

import (
	"fmt"
	"log"
	"time"
)

// Session drives one trading day end to end.
type Session struct {
	cfg      Config
	scanner  *Scanner
	vwaps    map[string]*VWAPCalculator
	dedupe   map[string]struct{}
	monitor  *TradeMonitor
	governor *RiskGovernor
	executor *OrderExecutor
	journal  *TradeLogger

	allowNewTrades bool
	batchesSeen    int64
}

func NewSession(cfg Config, executor *OrderExecutor, journal *TradeLogger) *Session {
	return &Session{
		cfg:      cfg,
		scanner:  NewScanner(cfg.ScannerCapacity),
		vwaps:    make(map[string]*VWAPCalculator),
		dedupe:   make(map[string]struct{}),
		monitor:  NewTradeMonitor(cfg),
		governor: NewRiskGovernor(cfg),
		executor: executor,
		journal:  journal,
	}
}

// StartDay resets all day-scoped state and re-opens admission. Rolling
// series survive the reset only because a fresh Session per day is the
// normal deployment; callers reusing a Session across days get fresh
// counters, dedupe slots, and VWAP but keep price history.
func (s *Session) StartDay() {
	s.governor.ResetDailyCounters()
	s.dedupe = make(map[string]struct{})
	for _, v := range s.vwaps {
		v.Reset()
	}
	s.allowNewTrades = true
	mtxRiskHalted.Set(0)
	log.Printf("[INFO] session day started: admission open, counters reset")
}

// Run pulls batches until the channel closes or ctx asks for shutdown,
// then reports the day's final risk status.
func (s *Session) Run(batches <-chan TickBatch, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			s.logDaySummary()
			return
		case batch, ok := <-batches:
			if !ok {
				s.logDaySummary()
				return
			}
			s.ProcessBatch(batch)
		}
	}
}

// ProcessBatch runs one batch through the full pipeline. It never blocks on
// the broker or the journal.
func (s *Session) ProcessBatch(batch TickBatch) {
	s.batchesSeen++
	s.drainFills()

	prices := make(map[string]float64, len(batch.Ticks))
	for _, tick := range batch.Ticks {
		if reason, ok := validateTick(tick); !ok {
			mtxSkippedTicks.WithLabelValues(reason).Inc()
			log.Printf("TRACE tick skipped inst=%q reason=%s", tick.Instrument, reason)
			continue
		}
		s.scanner.Update(tick.Instrument, tick.LTP, tick.High, tick.Low, tick.Close, tick.Volume)
		s.vwapFor(tick.Instrument).Update(tick.LTP, tick.Volume)
		prices[tick.Instrument] = tick.LTP

		if s.allowNewTrades {
			s.evaluateEntry(tick)
		}
	}

	s.sweepExits(prices, batch.At)
}

func (s *Session) vwapFor(inst string) *VWAPCalculator {
	v, ok := s.vwaps[inst]
	if !ok {
		v = NewVWAPCalculator(s.cfg.VWAPWindow)
		s.vwaps[inst] = v
	}
	return v
}

// drainFills registers completed async placements with the monitor. A fill
// from a previous batch starts being swept this batch; a failed placement
// was already logged by the executor and its dedupe slot stays consumed.
func (s *Session) drainFills() {
	for _, res := range s.executor.DrainResults() {
		if res.Err != nil || res.Placed == nil {
			continue
		}
		p := res.Placed
		s.monitor.AddTrade(p.OrderID, p.Instrument, p.Side, p.LimitPrice, p.Quantity, p.CreateTime)
		log.Printf("[INFO] trade open id=%s %s %s qty=%d entry=%.2f active=%d",
			p.OrderID, p.Side, p.Instrument, p.Quantity, p.LimitPrice, s.monitor.ActiveCount())
	}
}

// evaluateEntry runs the decision cascade for one instrument and submits an
// order when it fires. Each instrument gets at most one registered signal
// per day; the slot is consumed at signal time, before placement resolves.
func (s *Session) evaluateEntry(tick InstrumentTick) {
	inst := tick.Instrument
	if _, seen := s.dedupe[inst]; seen {
		return
	}

	volumes := s.scanner.Volumes(inst)
	if !isLiquid(volumes, s.cfg.MinAvgVolume) {
		return
	}

	prices := s.scanner.Prices(inst)
	highs := s.scanner.Highs(inst)
	lows := s.scanner.Lows(inst)
	closes := s.scanner.Closes(inst)
	vwap, vwapOK := s.vwapFor(inst).Value()

	regime := detectMarketRegime(highs, lows, closes)
	bias := htfBias(prices, vwap, vwapOK)
	breakout := detectBreakout(prices, volumes, highs, lows, closes)

	signal := finalTradeDecision(prices, regime, bias, breakout, vwap, vwapOK, tick.LTP)
	mtxDecisions.WithLabelValues(signal.String()).Inc()
	if signal == Flat {
		if breakout != BreakNone {
			log.Printf("TRACE gate reject %s: breakout=%s regime=%s bias=%s ltp=%.2f",
				inst, breakout, regime, bias, tick.LTP)
		}
		return
	}

	// Signal registered: the day's slot for this instrument is spent now,
	// whatever happens to the order.
	s.dedupe[inst] = struct{}{}
	mtxSignals.WithLabelValues(signal.String()).Inc()
	log.Printf("[INFO] signal %s %s ltp=%.2f regime=%s bias=%s breakout=%s",
		signal, inst, tick.LTP, regime, bias, breakout)

	if !s.governor.CanTradeNow() {
		s.haltAdmission("risk limit reached before placement")
		return
	}

	qty := calculateQuantity(s.cfg.CapitalPerTrade, tick.LTP)
	if qty < 1 {
		log.Printf("[WARN] signal %s %s rejected locally: price %.2f exceeds per-trade capital %.0f",
			signal, inst, tick.LTP, s.cfg.CapitalPerTrade)
		return
	}

	side := signal.SignalToSide()
	req := OrderRequest{
		Instrument:     inst,
		Side:           side,
		ReferencePrice: tick.LTP,
		Quantity:       qty,
		LimitPrice:     limitPriceFor(side, tick.LTP, s.cfg.LimitBufferPct),
	}
	if !s.executor.Submit(req) {
		log.Printf("[WARN] order queue full; %s %s not submitted", side, inst)
	}
}

// sweepExits evaluates every open trade against this batch's prices, then
// journals and counts the closures.
func (s *Session) sweepExits(prices map[string]float64, at time.Time) {
	if len(prices) == 0 || s.monitor.ActiveCount() == 0 {
		return
	}
	for _, exit := range s.monitor.CheckTrades(prices) {
		s.monitor.RemoveTrade(exit.TradeID)
		t := exit.Trade

		mtxExitReasons.WithLabelValues(exit.Reason.String(), string(t.Side)).Inc()
		log.Printf("[INFO] trade closed id=%s %s %s reason=%s entry=%.2f exit=%.2f",
			exit.TradeID, t.Side, t.Instrument, exit.Reason, t.EntryPrice, exit.Price)

		s.journal.Record(TradeRecord{
			Instrument: t.Instrument,
			Side:       t.Side,
			Quantity:   t.Qty,
			EntryPrice: t.EntryPrice,
			ExitPrice:  exit.Price,
			EntryTime:  t.OpenTime,
			ExitTime:   at,
			ExitReason: exit.Reason,
		})

		s.governor.RecordTradeOutcome(exit.Reason)
		if !s.governor.CanTradeNow() {
			s.haltAdmission(fmt.Sprintf("risk breach after %s on %s", exit.Reason, t.Instrument))
		}
	}
}

// haltAdmission clears the admission flag. One way: nothing inside a
// session re-opens it.
func (s *Session) haltAdmission(why string) {
	if !s.allowNewTrades {
		return
	}
	s.allowNewTrades = false
	mtxRiskHalted.Set(1)
	log.Printf("[WARN] admission halted: %s; open trades still monitored", why)
}

// AllowNewTrades reports whether entries are currently admitted.
func (s *Session) AllowNewTrades() bool { return s.allowNewTrades }

func (s *Session) logDaySummary() {
	st := s.governor.Status()
	log.Printf("[INFO] session done: batches=%d trades=%d stop_losses=%d targets=%d partials=%d open=%d admission=%v",
		s.batchesSeen, st.TotalTrades, st.StopLosses, st.TargetHits, st.PartialExits,
		s.monitor.ActiveCount(), s.allowNewTrades)
}
