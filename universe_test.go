// FILE: universe_test.go

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeUniverseFiles(t *testing.T, symbols, master string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	sp := filepath.Join(dir, "symbols.csv")
	mp := filepath.Join(dir, "instruments.json")
	require.NoError(t, os.WriteFile(sp, []byte(symbols), 0o644))
	require.NoError(t, os.WriteFile(mp, []byte(master), 0o644))
	return sp, mp
}

func TestBuildUniverseResolvesSymbols(t *testing.T) {
	sp, mp := writeUniverseFiles(t,
		"symbol\nRELIANCE\ntcs\nUNKNOWN\n",
		`[
			{"segment":"NSE_EQ","trading_symbol":"RELIANCE","instrument_key":"NSE_EQ|INE002A01018"},
			{"segment":"NSE_EQ","trading_symbol":"TCS","instrument_key":"NSE_EQ|INE467B01029"},
			{"segment":"NSE_FO","trading_symbol":"RELIANCE","instrument_key":"NSE_FO|12345"}
		]`)

	keys, err := BuildUniverse(sp, mp, "NSE_EQ")
	require.NoError(t, err)
	assert.Equal(t, []string{"NSE_EQ|INE002A01018", "NSE_EQ|INE467B01029"}, keys,
		"case-insensitive symbol match, unknown symbols dropped, other segments ignored")
}

func TestBuildUniverseEmptyIsAnError(t *testing.T) {
	sp, mp := writeUniverseFiles(t, "symbol\nNOPE\n", `[]`)
	_, err := BuildUniverse(sp, mp, "NSE_EQ")
	assert.Error(t, err)
}

func TestLoadSymbolsCSVSkipsHeaderAndBlanks(t *testing.T) {
	dir := t.TempDir()
	sp := filepath.Join(dir, "symbols.csv")
	require.NoError(t, os.WriteFile(sp, []byte("symbol\nINFY\n# comment\nSBIN\n"), 0o644))

	syms, err := loadSymbolsCSV(sp)
	require.NoError(t, err)
	assert.Equal(t, []string{"INFY", "SBIN"}, syms)
}
