// FILE: broker.go
// Package main – Broker abstractions shared by all execution backends.
//
// This file defines the minimal interface the engine needs to place entry
// orders, plus the shared types and the local sizing rules:
//   • Broker interface: place one limit order
//   • OrderRequest / PlacedOrder: normalized request and fill views
//   • calculateQuantity / limitPriceFor: capital-based sizing and the
//     side-relative limit buffer
//
// Two concrete implementations live in separate files:
//   • broker_paper.go – in-memory paper broker (no external calls)
//   • broker_rest.go  – HTTP client for the exchange order API

package main

import (
	"context"
	"math"
	"time"
)

// OrderSide is the side of a trade.
type OrderSide string

const (
	SideBuy  OrderSide = "BUY"
	SideSell OrderSide = "SELL"
)

// OrderRequest is one entry-order intent.
type OrderRequest struct {
	Instrument     string
	Side           OrderSide
	ReferencePrice float64 // LTP the signal fired at
	Quantity       int
	LimitPrice     float64
}

// PlacedOrder is a normalized view of an accepted order.
type PlacedOrder struct {
	OrderID    string
	Instrument string
	Side       OrderSide
	Quantity   int
	LimitPrice float64
	CreateTime time.Time
}

// Broker is the minimal surface the engine needs to operate.
type Broker interface {
	Name() string
	PlaceLimitOrder(ctx context.Context, req OrderRequest) (*PlacedOrder, error)
}

// calculateQuantity converts the configured per-trade capital into whole
// shares at the reference price. Zero when price is non-positive or capital
// does not cover one share.
func calculateQuantity(capital, price float64) int {
	if price <= 0 {
		return 0
	}
	return int(math.Floor(capital / price))
}

// limitPriceFor nudges the reference price by the configured buffer (up for
// BUY, down for SELL) and rounds to 2 decimals (exchange tick).
func limitPriceFor(side OrderSide, refPrice, bufferPct float64) float64 {
	px := refPrice * (1 + bufferPct)
	if side == SideSell {
		px = refPrice * (1 - bufferPct)
	}
	return math.Round(px*100) / 100
}
