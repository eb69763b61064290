// FILE: config.go
// Package main – Runtime configuration model and loader.
//
// This file defines the Config struct (all the knobs the engine uses) and a
// helper to populate it from environment variables. The .env file is read
// by loadBotEnv() (see env.go), so you can tune behavior without exports.
//
// Typical flow (see main.go):
//   loadBotEnv()
//   cfg := loadConfigFromEnv()
//
// Config is immutable for the lifetime of a session: the Session and its
// collaborators take a copy at construction and never re-read the env.

package main

// Config holds all runtime knobs for signal generation, execution and ops.
type Config struct {
	// Sizing & order entry
	CapitalPerTrade float64 // intended capital per trade (quote currency)
	LimitBufferPct  float64 // limit price nudge: +buffer for BUY, -buffer for SELL
	DryRun          bool    // paper execution, no broker calls

	// Exit thresholds (fractions, e.g. 0.0045 = 0.45%)
	StopLossPct         float64
	TargetPct           float64
	BreakevenMovePct    float64
	PartialExitMovePct  float64
	PartialExitLimitPct float64

	// Daily risk limits
	MaxStopLosses   int
	MaxTargetHits   int
	MaxPartialExits int
	MaxTradesPerDay int

	// Scanner / gates
	ScannerCapacity int     // per-instrument rolling history length
	MinAvgVolume    float64 // liquidity floor (average bar volume); 0 disables
	VWAPWindow      int     // trailing VWAP window in bars; 0 = full session

	// Broker (REST)
	BrokerBaseURL string // e.g. https://api-hft.upstox.com
	AccessToken   string // bearer token for order placement and feed authorize
	OrderProduct  string // product code sent with orders (intraday)

	// Feed
	FeedAuthURL string // REST endpoint returning the authorized websocket URL
	FeedMode    string // subscription mode ("full")

	// Universe
	SymbolsCSV      string // symbols reference CSV (column "Symbol")
	InstrumentsJSON string // instrument master JSON
	UniverseSegment string // segment filter, e.g. "NSE_EQ"

	// Trade journal
	TradeLogPath string
	StrategyTag  string

	// Ops
	Port int
}

// loadConfigFromEnv reads the process env (already hydrated by loadBotEnv())
// and returns a Config with sane defaults if keys are missing.
func loadConfigFromEnv() Config {
	return Config{
		CapitalPerTrade: getEnvFloat("CAPITAL_PER_TRADE", 75000.0),
		LimitBufferPct:  getEnvFloat("LIMIT_BUFFER_PCT", 0.0003),
		DryRun:          getEnvBool("DRY_RUN", true),

		StopLossPct:         getEnvFloat("STOP_LOSS_PCT", 0.0045),
		TargetPct:           getEnvFloat("TARGET_PCT", 0.0120),
		BreakevenMovePct:    getEnvFloat("BREAKEVEN_MOVE_PCT", 0.0050),
		PartialExitMovePct:  getEnvFloat("PARTIAL_EXIT_MOVE_PCT", 0.0070),
		PartialExitLimitPct: getEnvFloat("PARTIAL_EXIT_LIMIT_PCT", 0.0065),

		MaxStopLosses:   getEnvInt("MAX_STOP_LOSSES", 5),
		MaxTargetHits:   getEnvInt("MAX_TARGET_HITS", 5),
		MaxPartialExits: getEnvInt("MAX_PARTIAL_EXITS", 5),
		MaxTradesPerDay: getEnvInt("MAX_TRADES_PER_DAY", 15),

		ScannerCapacity: getEnvInt("SCANNER_CAPACITY", 600),
		MinAvgVolume:    getEnvFloat("MIN_AVG_VOLUME", 100000),
		VWAPWindow:      getEnvInt("VWAP_WINDOW", 0),

		BrokerBaseURL: getEnv("BROKER_BASE_URL", ""),
		AccessToken:   getEnv("ACCESS_TOKEN", ""),
		OrderProduct:  getEnv("ORDER_PRODUCT", "I"),

		FeedAuthURL: getEnv("FEED_AUTH_URL", "https://api.upstox.com/v3/feed/market-data-feed/authorize"),
		FeedMode:    getEnv("FEED_MODE", "full"),

		SymbolsCSV:      getEnv("SYMBOLS_CSV", "data/nifty250.csv"),
		InstrumentsJSON: getEnv("INSTRUMENTS_JSON", "data/instruments.json"),
		UniverseSegment: getEnv("UNIVERSE_SEGMENT", "NSE_EQ"),

		TradeLogPath: getEnv("TRADE_LOG_PATH", "logs/trades/all_trades.csv"),
		StrategyTag:  getEnv("STRATEGY_TAG", "elite_intraday_v1"),

		Port: getEnvInt("PORT", 8080),
	}
}
