// FILE: tradelog.go
// Package main – append-only CSV trade journal.
//
// Every closed trade (and partial exit) becomes one CSV row. Writes happen
// on a dedicated goroutine so disk latency never touches the tick path; the
// Session hands completed exits to Record and moves on.
//
// PnL is side-relative: a SELL entry profits when price falls.

package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

var tradeLogHeader = []string{
	"date", "entry_time", "exit_time", "instrument", "side", "quantity",
	"entry_price", "exit_price", "pnl_pct", "pnl_amount", "exit_reason",
	"strategy", "remarks",
}

// TradeRecord is one journal row.
type TradeRecord struct {
	Instrument string
	Side       OrderSide
	Quantity   int
	EntryPrice float64
	ExitPrice  float64
	EntryTime  time.Time
	ExitTime   time.Time
	ExitReason ExitReason
	Remarks    string
}

// TradeLogger journals closed trades to a CSV file.
type TradeLogger struct {
	path     string
	strategy string
	ch       chan TradeRecord
	done     chan struct{}
}

func NewTradeLogger(path, strategy string) *TradeLogger {
	tl := &TradeLogger{
		path:     path,
		strategy: strategy,
		ch:       make(chan TradeRecord, 64),
		done:     make(chan struct{}),
	}
	go tl.writer()
	return tl
}

// Record queues a journal row. Never blocks; a full queue drops the row
// with a log line rather than stalling the caller.
func (tl *TradeLogger) Record(rec TradeRecord) {
	select {
	case tl.ch <- rec:
	default:
		log.Printf("[WARN] trade log queue full; dropping row for %s", rec.Instrument)
	}
}

// Close flushes pending rows and stops the writer.
func (tl *TradeLogger) Close() {
	close(tl.ch)
	<-tl.done
}

func (tl *TradeLogger) writer() {
	defer close(tl.done)
	for rec := range tl.ch {
		if err := tl.append(rec); err != nil {
			log.Printf("[ERROR] trade log write failed: %v", err)
		}
	}
}

func (tl *TradeLogger) append(rec TradeRecord) error {
	if err := os.MkdirAll(filepath.Dir(tl.path), 0o755); err != nil {
		return err
	}
	info, statErr := os.Stat(tl.path)
	needHeader := statErr != nil || info.Size() == 0

	f, err := os.OpenFile(tl.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if needHeader {
		if err := w.Write(tradeLogHeader); err != nil {
			return err
		}
	}

	pnlPct, pnlAmt := tradePnL(rec)
	row := []string{
		rec.ExitTime.Format("2006-01-02"),
		rec.EntryTime.Format("15:04:05"),
		rec.ExitTime.Format("15:04:05"),
		rec.Instrument,
		string(rec.Side),
		fmt.Sprintf("%d", rec.Quantity),
		fmt.Sprintf("%.2f", rec.EntryPrice),
		fmt.Sprintf("%.2f", rec.ExitPrice),
		fmt.Sprintf("%.4f", pnlPct),
		fmt.Sprintf("%.2f", pnlAmt),
		rec.ExitReason.String(),
		tl.strategy,
		rec.Remarks,
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// tradePnL returns the percent and absolute PnL for a closed trade,
// relative to the entry side.
func tradePnL(rec TradeRecord) (pct float64, amount float64) {
	if rec.EntryPrice <= 0 {
		return 0, 0
	}
	diff := rec.ExitPrice - rec.EntryPrice
	if rec.Side == SideSell {
		diff = -diff
	}
	pct = diff / rec.EntryPrice * 100
	amount = diff * float64(rec.Quantity)
	return pct, amount
}
