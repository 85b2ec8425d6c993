package collector

import (
	"sort"
	"time"

	"viobench/internal/core"
)

// Summary is the aggregate outcome of one play run.
type Summary struct {
	RunID          string
	TotalStreams   int
	TotalIntervals int
	TotalMisses    int
	MissRate       float64 // percent over all intervals
	WorstStream    core.StreamID
	WorstMissRate  float64 // percent, worst single stream
	Duration       time.Duration
	Streams        []StreamSummary
}

// StreamSummary is the per-stream breakdown carried in the report.
type StreamSummary struct {
	Stream    core.StreamID
	Intervals int
	Misses    int
	MissRate  float64 // percent
	Status    core.Status
	BytesRead int64
	Error     string
}

// ComputeSummary reduces stream results into a Summary. Pure function,
// no I/O; zero results yield a summary with all counters at zero.
func ComputeSummary(results []core.StreamResult, duration time.Duration) *Summary {
	s := &Summary{
		Duration: duration,
		Streams:  make([]StreamSummary, 0, len(results)),
	}

	for i := range results {
		r := &results[i]
		s.TotalStreams++
		s.TotalIntervals += r.Intervals
		s.TotalMisses += r.MissCount()

		ratio := r.MissRatio() * 100
		if ratio > s.WorstMissRate {
			s.WorstMissRate = ratio
			s.WorstStream = r.Stream
		}

		ss := StreamSummary{
			Stream:    r.Stream,
			Intervals: r.Intervals,
			Misses:    r.MissCount(),
			MissRate:  ratio,
			Status:    r.Status,
			BytesRead: r.BytesRead,
		}
		if r.Err != nil {
			ss.Error = r.Err.Error()
		}
		s.Streams = append(s.Streams, ss)
	}

	if s.TotalIntervals > 0 {
		s.MissRate = float64(s.TotalMisses) / float64(s.TotalIntervals) * 100
	}

	sort.Slice(s.Streams, func(i, j int) bool {
		return s.Streams[i].Stream < s.Streams[j].Stream
	})

	return s
}
