// Package player implements the timed replay loop for one stream.
package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"viobench/internal/config"
	"viobench/internal/core"
	"viobench/internal/pacer"

	"go.uber.org/zap"
)

// Player simulates one video playback against its workload file. It
// reads one frame per frame interval and records a miss whenever the
// read finishes after the interval's deadline. A Player owns its file
// handle and its result exclusively; nothing is shared with sibling
// streams while playing.
type Player struct {
	Config *config.Config
	Stream core.StreamID

	// Clock defaults to the real clock; tests substitute a fake.
	Clock core.Clock
	// Open defaults to os.Open; tests substitute slow or failing readers.
	Open func(path string) (io.ReadCloser, error)
	Log  *zap.Logger
}

// Play runs the replay loop until the time budget is spent, the file is
// exhausted, the read fails, or ctx is canceled. The returned result is
// always meaningful: a failed or canceled stream keeps the intervals
// and misses accumulated so far.
func (p *Player) Play(ctx context.Context) core.StreamResult {
	clock := p.Clock
	if clock == nil {
		clock = core.RealClock{}
	}
	openFn := p.Open
	if openFn == nil {
		openFn = func(path string) (io.ReadCloser, error) { return os.Open(path) }
	}
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}

	result := core.StreamResult{Stream: p.Stream}

	path := p.Config.WorkfilePath(p.Stream)
	f, err := openFn(path)
	if err != nil {
		result.Status = core.StatusFailed
		result.Err = fmt.Errorf("opening workfile %s: %w", path, err)
		return result
	}
	defer f.Close()

	interval := p.Config.FrameInterval()
	maxIntervals := p.Config.MaxIntervals()
	limit := p.Config.TimeLimit
	buf := make([]byte, p.Config.FrameSize)
	pace := pacer.New(p.Config.FrameRate)
	start := clock.Now()

	log.Debug("stream started",
		zap.Int("stream", int(p.Stream)),
		zap.Duration("interval", interval))

	for {
		// The interval budget gives bounded runs an exact attempt count;
		// the elapsed check is the cooperative cancellation for runs that
		// storage has already pushed past their limit.
		if maxIntervals > 0 && result.Intervals >= maxIntervals {
			break
		}
		if limit > 0 && clock.Since(start) >= limit {
			break
		}

		// Sleeps out the remainder of the previous interval. Without this
		// throttle a stream would race ahead of real playback speed.
		if werr := pace.Wait(ctx); werr != nil {
			result.Status = core.StatusCanceled
			result.Elapsed = clock.Since(start)
			return result
		}

		result.Intervals++
		intervalStart := clock.Now()
		n, rerr := io.ReadFull(f, buf)
		late := clock.Since(intervalStart) - interval
		result.BytesRead += int64(n)

		if errors.Is(rerr, io.EOF) || errors.Is(rerr, io.ErrUnexpectedEOF) {
			// The file ended before the time budget did. Normal termination:
			// the corpus was sized for a shorter run than this one.
			result.Status = core.StatusExhausted
			result.Elapsed = clock.Since(start)
			log.Info("stream exhausted",
				zap.Int("stream", int(p.Stream)),
				zap.Int("intervals", result.Intervals))
			return result
		}
		if rerr != nil {
			result.Status = core.StatusFailed
			result.Err = fmt.Errorf("reading frame %d: %w", result.Intervals-1, rerr)
			result.Elapsed = clock.Since(start)
			return result
		}

		if late > 0 {
			result.Misses = append(result.Misses, core.MissEvent{
				Stream:   p.Stream,
				Interval: result.Intervals - 1,
				Bytes:    int64(n),
			})
			log.Debug("missed frame",
				zap.Int("stream", int(p.Stream)),
				zap.Int("interval", result.Intervals-1),
				zap.Duration("late", late))
		}
	}

	result.Status = core.StatusCompleted
	result.Elapsed = clock.Since(start)
	return result
}
