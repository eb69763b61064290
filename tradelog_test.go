// FILE: tradelog_test.go

package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradePnLSideRelative(t *testing.T) {
	buy := TradeRecord{Side: SideBuy, Quantity: 10, EntryPrice: 100, ExitPrice: 101}
	pct, amt := tradePnL(buy)
	assert.InDelta(t, 1.0, pct, 1e-9)
	assert.InDelta(t, 10.0, amt, 1e-9)

	sell := TradeRecord{Side: SideSell, Quantity: 10, EntryPrice: 100, ExitPrice: 101}
	pct, amt = tradePnL(sell)
	assert.InDelta(t, -1.0, pct, 1e-9, "a short loses when price rises")
	assert.InDelta(t, -10.0, amt, 1e-9)

	zero := TradeRecord{Side: SideBuy, Quantity: 10, EntryPrice: 0, ExitPrice: 101}
	pct, amt = tradePnL(zero)
	assert.Zero(t, pct)
	assert.Zero(t, amt)
}

func TestTradeLoggerWritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades", "all.csv")
	tl := NewTradeLogger(path, "elite_intraday_v1")

	entry := time.Date(2026, 2, 2, 9, 30, 0, 0, time.UTC)
	exit := time.Date(2026, 2, 2, 10, 15, 0, 0, time.UTC)
	tl.Record(TradeRecord{
		Instrument: "NSE_EQ|A",
		Side:       SideBuy,
		Quantity:   100,
		EntryPrice: 100,
		ExitPrice:  101.2,
		EntryTime:  entry,
		ExitTime:   exit,
		ExitReason: ExitTarget,
	})
	tl.Record(TradeRecord{
		Instrument: "NSE_EQ|B",
		Side:       SideSell,
		Quantity:   50,
		EntryPrice: 200,
		ExitPrice:  200.9,
		EntryTime:  entry,
		ExitTime:   exit,
		ExitReason: ExitStopLoss,
	})
	tl.Close()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two trades")

	assert.Equal(t, tradeLogHeader, rows[0])

	first := rows[1]
	assert.Equal(t, "2026-02-02", first[0])
	assert.Equal(t, "09:30:00", first[1])
	assert.Equal(t, "10:15:00", first[2])
	assert.Equal(t, "NSE_EQ|A", first[3])
	assert.Equal(t, "BUY", first[4])
	assert.Equal(t, "100", first[5])
	assert.Equal(t, "1.2000", first[8])
	assert.Equal(t, "120.00", first[9])
	assert.Equal(t, "TARGET", first[10])
	assert.Equal(t, "elite_intraday_v1", first[11])

	second := rows[2]
	assert.Equal(t, "SELL", second[4])
	assert.Equal(t, "-0.4500", second[8])
	assert.Equal(t, "-45.00", second[9])
	assert.Equal(t, "STOP_LOSS", second[10])
}

func TestTradeLoggerAppendsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "all.csv")

	tl := NewTradeLogger(path, "s")
	tl.Record(TradeRecord{Instrument: "A", Side: SideBuy, Quantity: 1, EntryPrice: 100, ExitPrice: 101})
	tl.Close()

	tl2 := NewTradeLogger(path, "s")
	tl2.Record(TradeRecord{Instrument: "B", Side: SideBuy, Quantity: 1, EntryPrice: 100, ExitPrice: 99})
	tl2.Close()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 3, "one header, never repeated on append")
}
