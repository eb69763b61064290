// FILE: main.go
// Package main – Program entrypoint and HTTP/metrics server.
//
// Boot sequence:
//   1) loadBotEnv()               – read .env (no shell exports required)
//   2) cfg := loadConfigFromEnv() – build runtime Config
//   3) wire broker/executor/journal/session
//   4) start Prometheus /healthz server on cfg.Port
//   5) runReplay or runLive based on flags
//
// Flags:
//   -replay <csv>   Replay a recorded session from CSV batches
//   -live           Connect the websocket feed and trade the live session
//
// Example:
//   go run . -replay testdata/session.csv
//
// Notes:
//   - Live mode needs ACCESS_TOKEN, SYMBOLS_CSV, and INSTRUMENTS_JSON set.
//   - DRY_RUN=true (the default) routes orders to the paper broker even in
//     live mode; flip it only with a fresh access token.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// ---- Flags ----
	var replayCSV string
	var live bool
	flag.StringVar(&replayCSV, "replay", "", "Path to recorded session CSV (timestamp,instrument,ltp,high,low,close,volume)")
	flag.BoolVar(&live, "live", false, "Run against the live websocket feed (ignores -replay)")
	flag.Parse()

	// ---- Environment & Config ----
	loadBotEnv()
	cfg := loadConfigFromEnv()

	// ---- Broker wiring ----
	var broker Broker
	if cfg.DryRun {
		broker = NewPaperBroker()
		log.Printf("[INFO] dry run: orders go to the paper broker")
	} else {
		broker = NewRESTBroker(cfg.BrokerBaseURL, cfg.AccessToken, cfg.OrderProduct)
	}

	executor := NewOrderExecutor(broker, 32)
	journal := NewTradeLogger(cfg.TradeLogPath, cfg.StrategyTag)
	session := NewSession(cfg, executor, journal)

	// ---- HTTP metrics/health ----
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Port), Handler: mux}
	go func() {
		log.Printf("serving metrics on :%d/metrics", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	// ---- Run selected mode ----
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	executor.Start(ctx)
	session.StartDay()

	if replayCSV != "" && !live {
		runReplay(ctx, replayCSV, session)
	} else {
		runLive(ctx, cfg, session)
	}

	executor.Stop()
	journal.Close()

	// ---- Graceful shutdown for HTTP server ----
	shutdownCtx, c := context.WithTimeout(context.Background(), 2*time.Second)
	defer c()
	_ = srv.Shutdown(shutdownCtx)
}

// runReplay drives the session from a recorded CSV, batch by batch, in the
// file's own order.
func runReplay(ctx context.Context, path string, session *Session) {
	batches, err := LoadReplayCSV(path)
	if err != nil {
		log.Fatalf("replay load: %v", err)
	}
	log.Printf("[INFO] replay: %d batches from %s", len(batches), path)

	ch := make(chan TickBatch, 8)
	go ReplaySource(batches, ch)
	session.Run(ch, ctx.Done())
}

// runLive builds the instrument universe, connects the websocket feed, and
// streams batches into the session until interrupted.
func runLive(ctx context.Context, cfg Config, session *Session) {
	keys, err := BuildUniverse(cfg.SymbolsCSV, cfg.InstrumentsJSON, cfg.UniverseSegment)
	if err != nil {
		log.Fatalf("universe: %v", err)
	}

	feed := NewWSFeed(cfg.FeedAuthURL, cfg.AccessToken, cfg.FeedMode, keys)
	ch := make(chan TickBatch, 64)
	go feed.Run(ctx, ch)
	session.Run(ch, ctx.Done())
}
