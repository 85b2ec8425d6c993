// Package collector gathers stream results and reduces them into a run summary.
package collector

import (
	"sync"
	"sync/atomic"
	"time"

	"viobench/internal/core"

	"github.com/google/uuid"
)

// Collector receives one StreamResult per stream as players terminate.
// Players own their result exclusively until they hand it over here, so
// the collector is the only place results from different streams meet.
type Collector struct {
	runID    string
	results  []core.StreamResult
	ch       chan core.StreamResult
	done     chan struct{}
	mu       sync.Mutex
	finished atomic.Int32

	startTime time.Time
	endTime   time.Time
}

// NewCollector creates a Collector and starts its collection goroutine.
func NewCollector() *Collector {
	c := &Collector{
		runID:     uuid.NewString(),
		results:   make([]core.StreamResult, 0),
		ch:        make(chan core.StreamResult, 64),
		done:      make(chan struct{}),
		startTime: time.Now(),
	}
	go c.collect()
	return c
}

func (c *Collector) collect() {
	for result := range c.ch {
		c.mu.Lock()
		c.results = append(c.results, result)
		c.mu.Unlock()
		c.finished.Add(1)
	}
	close(c.done)
}

// Report hands a terminated stream's result to the collector.
// Blocks until accepted; results are never dropped.
func (c *Collector) Report(result core.StreamResult) {
	c.ch <- result
}

// Close stops accepting results and waits for the pending ones to drain.
func (c *Collector) Close() {
	c.endTime = time.Now()
	close(c.ch)
	<-c.done
}

// Finished returns how many streams have reported so far. Safe to call
// while the run is still going; used by the progress printer.
func (c *Collector) Finished() int {
	return int(c.finished.Load())
}

// Results returns a copy of the collected results.
func (c *Collector) Results() []core.StreamResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]core.StreamResult, len(c.results))
	copy(out, c.results)
	return out
}

// Duration returns the elapsed run time, or the final duration once the
// collector is closed.
func (c *Collector) Duration() time.Duration {
	if !c.endTime.IsZero() {
		return c.endTime.Sub(c.startTime)
	}
	return time.Since(c.startTime)
}

// Summary reduces everything collected so far into a run summary.
func (c *Collector) Summary() *Summary {
	s := ComputeSummary(c.Results(), c.Duration())
	s.RunID = c.runID
	return s
}
