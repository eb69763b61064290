// FILE: executor_test.go

package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutorPlacesAndQueuesResults(t *testing.T) {
	broker := NewPaperBroker()
	e := NewOrderExecutor(broker, 4)
	e.Start(context.Background())

	ok := e.Submit(OrderRequest{Instrument: "X", Side: SideBuy, ReferencePrice: 100, Quantity: 10, LimitPrice: 100.03})
	require.True(t, ok)

	require.Eventually(t, func() bool { return len(broker.Placed()) == 1 }, time.Second, 5*time.Millisecond)
	e.Stop()

	results := e.DrainResults()
	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
	require.NotNil(t, results[0].Placed)
	assert.Equal(t, "X", results[0].Placed.Instrument)

	assert.Empty(t, e.DrainResults(), "results are consumed exactly once")
}

func TestExecutorReportsPlacementErrors(t *testing.T) {
	broker := &failingBroker{}
	e := NewOrderExecutor(broker, 4)
	e.Start(context.Background())

	require.True(t, e.Submit(OrderRequest{Instrument: "X", Side: SideSell, ReferencePrice: 100, Quantity: 10, LimitPrice: 99.97}))
	require.Eventually(t, func() bool { return broker.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	e.Stop()

	results := e.DrainResults()
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
	assert.Nil(t, results[0].Placed)
}

func TestExecutorSubmitRejectsWhenQueueFull(t *testing.T) {
	// Never started: the queue fills and Submit must not block.
	e := NewOrderExecutor(NewPaperBroker(), 1)
	assert.True(t, e.Submit(OrderRequest{Instrument: "A", Quantity: 1, LimitPrice: 1}))
	assert.False(t, e.Submit(OrderRequest{Instrument: "B", Quantity: 1, LimitPrice: 1}))
}
