// FILE: broker_paper.go
// Package main – In-memory paper broker (no external calls).
//
// Simulates order acceptance for dry runs and replay: every well-formed
// request is "filled" at its limit price with a fresh uuid order id. The
// live loop behaves identically against this broker, so the whole pipeline
// can be exercised without credentials.

package main

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// PaperBroker records accepted orders in memory.
type PaperBroker struct {
	mu     sync.Mutex
	placed []PlacedOrder
}

func NewPaperBroker() *PaperBroker { return &PaperBroker{} }

func (p *PaperBroker) Name() string { return "paper" }

func (p *PaperBroker) PlaceLimitOrder(ctx context.Context, req OrderRequest) (*PlacedOrder, error) {
	if req.Quantity < 1 {
		return nil, errors.New("quantity must be >= 1")
	}
	if req.LimitPrice <= 0 {
		return nil, errors.New("limit price must be > 0")
	}
	ord := PlacedOrder{
		OrderID:    uuid.New().String(),
		Instrument: req.Instrument,
		Side:       req.Side,
		Quantity:   req.Quantity,
		LimitPrice: req.LimitPrice,
		CreateTime: time.Now().UTC(),
	}
	p.mu.Lock()
	p.placed = append(p.placed, ord)
	p.mu.Unlock()
	return &ord, nil
}

// Placed returns a copy of all accepted orders (test/report helper).
func (p *PaperBroker) Placed() []PlacedOrder {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]PlacedOrder, len(p.placed))
	copy(out, p.placed)
	return out
}
