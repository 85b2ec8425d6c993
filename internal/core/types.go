// Package core defines the fundamental types shared by the viobench components.
package core

import "time"

// StreamID names one simulated playback stream. IDs are assigned once by
// the coordinator, in [0, threads), and never change afterwards. The ID
// selects both the stream's workload file and its content seed.
type StreamID int

// Status is the terminal state of a stream at the end of a play run.
type Status string

const (
	// StatusCompleted means the stream played out its full time budget.
	StatusCompleted Status = "completed"
	// StatusExhausted means the workload file ended before the time budget
	// did. This is a normal termination, not a failure.
	StatusExhausted Status = "exhausted"
	// StatusFailed means a read error ended the stream early.
	StatusFailed Status = "failed"
	// StatusCanceled means the run was interrupted (SIGINT/SIGTERM).
	StatusCanceled Status = "canceled"
)

// MissEvent records one frame that could not be delivered before its
// interval deadline.
type MissEvent struct {
	Stream   StreamID
	Interval int   // monotonic interval counter, from 0
	Bytes    int64 // bytes obtained before the deadline
}

// StreamResult is the complete outcome of one stream's play run. It is
// owned exclusively by its player until the player terminates and hands
// it to the collector; it is read-only afterwards.
type StreamResult struct {
	Stream    StreamID
	Intervals int // read attempts made
	Misses    []MissEvent
	Status    Status
	BytesRead int64
	Elapsed   time.Duration
	Err       error // set only when Status is StatusFailed
}

// MissCount returns the number of missed frames.
func (r *StreamResult) MissCount() int {
	return len(r.Misses)
}

// MissRatio returns misses/intervals, or 0 for a stream that never got
// to attempt an interval.
func (r *StreamResult) MissRatio() float64 {
	if r.Intervals == 0 {
		return 0
	}
	return float64(len(r.Misses)) / float64(r.Intervals)
}

// Reporter is the interface players use to hand their result to the
// collector at termination.
type Reporter interface {
	Report(StreamResult)
}
