// FILE: scanner.go
// Package main – Per-instrument rolling market state (the instrument store).
//
// The Scanner owns five parallel fixed-capacity series per instrument
// (price, high, low, close, volume). Update appends one sample to each,
// evicting the oldest on overflow (FIFO); accessors return ordered copies.
//
// No validation happens here; the Session validates feed fields before
// calling Update. Storage for an instrument is created lazily on first use.
// The Scanner is owned and mutated by exactly one Session; it is not safe
// for concurrent use.

package main

// ringSeries is a fixed-capacity FIFO of float64 samples.
type ringSeries struct {
	buf  []float64
	head int // index of the oldest sample
	size int
}

func newRingSeries(capacity int) *ringSeries {
	return &ringSeries{buf: make([]float64, capacity)}
}

func (r *ringSeries) push(v float64) {
	if r.size < len(r.buf) {
		r.buf[(r.head+r.size)%len(r.buf)] = v
		r.size++
		return
	}
	// full: overwrite the oldest and advance
	r.buf[r.head] = v
	r.head = (r.head + 1) % len(r.buf)
}

func (r *ringSeries) values() []float64 {
	out := make([]float64, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.buf[(r.head+i)%len(r.buf)]
	}
	return out
}

func (r *ringSeries) len() int { return r.size }

// instrumentSeries groups the five rolling series for one instrument.
type instrumentSeries struct {
	prices  *ringSeries
	highs   *ringSeries
	lows    *ringSeries
	closes  *ringSeries
	volumes *ringSeries
}

// Scanner stores rolling market data for many instruments.
type Scanner struct {
	capacity int
	data     map[string]*instrumentSeries
}

// NewScanner builds a Scanner whose per-instrument history holds capacity
// samples (oldest evicted first).
func NewScanner(capacity int) *Scanner {
	if capacity <= 0 {
		capacity = 600
	}
	return &Scanner{capacity: capacity, data: make(map[string]*instrumentSeries)}
}

func (s *Scanner) series(inst string) *instrumentSeries {
	is, ok := s.data[inst]
	if !ok {
		is = &instrumentSeries{
			prices:  newRingSeries(s.capacity),
			highs:   newRingSeries(s.capacity),
			lows:    newRingSeries(s.capacity),
			closes:  newRingSeries(s.capacity),
			volumes: newRingSeries(s.capacity),
		}
		s.data[inst] = is
	}
	return is
}

// Update appends one sample to each of the instrument's series.
// Called once per tick/bar per instrument.
func (s *Scanner) Update(inst string, price, high, low, close, volume float64) {
	is := s.series(inst)
	is.prices.push(price)
	is.highs.push(high)
	is.lows.push(low)
	is.closes.push(close)
	is.volumes.push(volume)
}

// Len returns the number of samples held for the instrument.
func (s *Scanner) Len(inst string) int {
	if is, ok := s.data[inst]; ok {
		return is.prices.len()
	}
	return 0
}

func (s *Scanner) Prices(inst string) []float64 {
	if is, ok := s.data[inst]; ok {
		return is.prices.values()
	}
	return nil
}

func (s *Scanner) Highs(inst string) []float64 {
	if is, ok := s.data[inst]; ok {
		return is.highs.values()
	}
	return nil
}

func (s *Scanner) Lows(inst string) []float64 {
	if is, ok := s.data[inst]; ok {
		return is.lows.values()
	}
	return nil
}

func (s *Scanner) Closes(inst string) []float64 {
	if is, ok := s.data[inst]; ok {
		return is.closes.values()
	}
	return nil
}

func (s *Scanner) Volumes(inst string) []float64 {
	if is, ok := s.data[inst]; ok {
		return is.volumes.values()
	}
	return nil
}
