// FILE: feed.go
// Package main – market data batch types, validation, and CSV replay.
//
// A TickBatch is the unit of work for the whole pipeline: a set of
// per-instrument snapshots that arrived together. Sources (websocket feed,
// CSV replay) produce batches onto a buffered channel; the Session pulls
// them one at a time, so a slow batch applies backpressure to the source
// instead of dropping data silently.
//
// Validation is per field and per instrument: a bad tick is skipped with a
// counted reason while the rest of the batch proceeds.

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// InstrumentTick is one instrument's snapshot within a batch.
type InstrumentTick struct {
	Instrument string
	LTP        float64
	High       float64
	Low        float64
	Close      float64
	Volume     float64
}

// TickBatch carries the ticks that arrived together.
type TickBatch struct {
	At    time.Time
	Ticks []InstrumentTick
}

// Tick skip reasons, used as the label on the skipped-tick counter.
const (
	skipEmptyInstrument = "empty_instrument"
	skipBadLTP          = "bad_ltp"
	skipBadVolume       = "bad_volume"
	skipBadRange        = "bad_range"
	skipBadClose        = "bad_close"
)

// validateTick checks each field and returns the first failing reason.
func validateTick(t InstrumentTick) (string, bool) {
	if strings.TrimSpace(t.Instrument) == "" {
		return skipEmptyInstrument, false
	}
	if t.LTP <= 0 {
		return skipBadLTP, false
	}
	if t.Volume < 0 {
		return skipBadVolume, false
	}
	if t.High < t.Low {
		return skipBadRange, false
	}
	if t.Close <= 0 {
		return skipBadClose, false
	}
	return "", true
}

// ---- CSV replay ----

// LoadReplayCSV reads a recorded session and regroups it into batches by
// timestamp. Expected header:
//
//	timestamp,instrument,ltp,high,low,close,volume
//
// timestamp is RFC3339 or unix seconds. Rows must be time-ordered; rows
// sharing a timestamp form one batch.
func LoadReplayCSV(path string) ([]TickBatch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, need := range []string{"timestamp", "instrument", "ltp", "high", "low", "close", "volume"} {
		if _, ok := col[need]; !ok {
			return nil, fmt.Errorf("replay csv missing column %q", need)
		}
	}

	var (
		batches []TickBatch
		cur     *TickBatch
		line    = 1
	)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		line++

		at, err := parseReplayTime(rec[col["timestamp"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		tick := InstrumentTick{
			Instrument: strings.TrimSpace(rec[col["instrument"]]),
			LTP:        parseFloatOr(rec[col["ltp"]], 0),
			High:       parseFloatOr(rec[col["high"]], 0),
			Low:        parseFloatOr(rec[col["low"]], 0),
			Close:      parseFloatOr(rec[col["close"]], 0),
			Volume:     parseFloatOr(rec[col["volume"]], -1),
		}

		if cur == nil || !cur.At.Equal(at) {
			batches = append(batches, TickBatch{At: at})
			cur = &batches[len(batches)-1]
		}
		cur.Ticks = append(cur.Ticks, tick)
	}
	return batches, nil
}

func parseReplayTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(sec, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("bad timestamp %q", s)
}

func parseFloatOr(s string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return v
}

// ReplaySource pushes pre-loaded batches onto out, preserving order. It is
// the offline stand-in for the websocket feed.
func ReplaySource(batches []TickBatch, out chan<- TickBatch) {
	for _, b := range batches {
		out <- b
	}
	close(out)
}
