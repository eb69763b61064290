// FILE: executor.go
// Package main – asynchronous order executor.
//
// Order placement goes over HTTP and can take hundreds of milliseconds; a
// tick batch must never wait on it. The executor decouples the two with a
// pair of buffered channels: the Session submits OrderRequests without
// blocking, a worker goroutine places them against the Broker, and completed
// results queue up until the Session drains them at the start of the next
// batch.

package main

import (
	"context"
	"log"
	"time"
)

// OrderResult is the outcome of one placement attempt.
type OrderResult struct {
	Request    OrderRequest
	Placed     *PlacedOrder // nil when Err != nil
	Err        error
	SubmitTime time.Time
}

// OrderExecutor runs broker placements off the tick path.
type OrderExecutor struct {
	broker   Broker
	requests chan OrderRequest
	results  chan OrderResult
	done     chan struct{}
}

func NewOrderExecutor(broker Broker, queueDepth int) *OrderExecutor {
	if queueDepth < 1 {
		queueDepth = 16
	}
	return &OrderExecutor{
		broker:   broker,
		requests: make(chan OrderRequest, queueDepth),
		results:  make(chan OrderResult, queueDepth),
		done:     make(chan struct{}),
	}
}

// Start launches the placement worker. It exits when ctx is cancelled or
// the request channel is closed via Stop.
func (e *OrderExecutor) Start(ctx context.Context) {
	go func() {
		defer close(e.done)
		for {
			select {
			case <-ctx.Done():
				return
			case req, ok := <-e.requests:
				if !ok {
					return
				}
				e.place(ctx, req)
			}
		}
	}()
}

func (e *OrderExecutor) place(ctx context.Context, req OrderRequest) {
	submitted := time.Now().UTC()
	placed, err := e.broker.PlaceLimitOrder(ctx, req)
	if err != nil {
		log.Printf("[WARN] order %s %s qty=%d limit=%.2f failed: %v",
			req.Side, req.Instrument, req.Quantity, req.LimitPrice, err)
		mtxOrders.WithLabelValues(e.broker.Name(), "error").Inc()
	} else {
		log.Printf("[INFO] order placed id=%s %s %s qty=%d limit=%.2f",
			placed.OrderID, req.Side, req.Instrument, req.Quantity, req.LimitPrice)
		mtxOrders.WithLabelValues(e.broker.Name(), "ok").Inc()
	}
	res := OrderResult{Request: req, Placed: placed, Err: err, SubmitTime: submitted}
	select {
	case e.results <- res:
	default:
		// Result queue full. The order is already at the exchange, so the
		// only loss is monitor registration for this trade.
		log.Printf("[ERROR] result queue full; dropping result for %s %s", req.Side, req.Instrument)
	}
}

// Submit queues a placement request. It never blocks: if the queue is full
// the request is rejected and the caller decides what to log.
func (e *OrderExecutor) Submit(req OrderRequest) bool {
	select {
	case e.requests <- req:
		return true
	default:
		return false
	}
}

// DrainResults returns every completed placement without blocking.
func (e *OrderExecutor) DrainResults() []OrderResult {
	var out []OrderResult
	for {
		select {
		case res := <-e.results:
			out = append(out, res)
		default:
			return out
		}
	}
}

// Stop closes the request queue and waits for the worker to finish any
// in-flight placement.
func (e *OrderExecutor) Stop() {
	close(e.requests)
	<-e.done
}
