// FILE: universe.go
// Package main – session instrument universe.
//
// The watchlist is a plain CSV of trading symbols; the exchange publishes an
// instrument master JSON mapping symbols to instrument keys. BuildUniverse
// joins the two, keeping only the configured segment, and reports any
// watchlist symbol the master does not know.

package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// masterEntry is one row of the exchange instrument master.
type masterEntry struct {
	Segment       string `json:"segment"`
	TradingSymbol string `json:"trading_symbol"`
	InstrumentKey string `json:"instrument_key"`
}

// loadSymbolsCSV reads the watchlist: one symbol per row, optional
// "symbol" header, blank rows and comments ignored.
func loadSymbolsCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var out []string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) == 0 {
			continue
		}
		sym := strings.ToUpper(strings.TrimSpace(rec[0]))
		if sym == "" || sym == "SYMBOL" || strings.HasPrefix(sym, "#") {
			continue
		}
		out = append(out, sym)
	}
	return out, nil
}

// BuildUniverse resolves watchlist symbols to instrument keys through the
// instrument master, restricted to one segment. Unknown symbols are logged
// and dropped; an empty result is an error since the session would have
// nothing to trade.
func BuildUniverse(symbolsPath, masterPath, segment string) ([]string, error) {
	symbols, err := loadSymbolsCSV(symbolsPath)
	if err != nil {
		return nil, fmt.Errorf("load symbols: %w", err)
	}

	mf, err := os.Open(masterPath)
	if err != nil {
		return nil, fmt.Errorf("open instrument master: %w", err)
	}
	defer mf.Close()

	var master []masterEntry
	if err := json.NewDecoder(mf).Decode(&master); err != nil {
		return nil, fmt.Errorf("decode instrument master: %w", err)
	}

	bySymbol := make(map[string]string, len(master))
	for _, m := range master {
		if !strings.EqualFold(m.Segment, segment) {
			continue
		}
		bySymbol[strings.ToUpper(m.TradingSymbol)] = m.InstrumentKey
	}

	var keys []string
	seen := make(map[string]struct{}, len(symbols))
	for _, sym := range symbols {
		key, ok := bySymbol[sym]
		if !ok {
			log.Printf("[WARN] symbol %s not in instrument master segment %s; skipping", sym, segment)
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("universe is empty: no watchlist symbol resolved in segment %s", segment)
	}
	log.Printf("[INFO] universe built: %d of %d symbols resolved (segment=%s)", len(keys), len(symbols), segment)
	return keys, nil
}
