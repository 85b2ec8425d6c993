// Package pacer throttles a stream to its nominal playback cadence.
package pacer

import (
	"context"

	"golang.org/x/time/rate"
)

// Pacer releases one token per frame interval. Waiting after a fast
// read sleeps exactly the remainder of the interval, which keeps every
// stream consuming at frame_rate instead of racing through its file.
type Pacer struct {
	limiter *rate.Limiter
}

// New creates a pacer for the given frames-per-second cadence.
func New(framesPerSecond float64) *Pacer {
	return &Pacer{
		limiter: rate.NewLimiter(rate.Limit(framesPerSecond), 1),
	}
}

// Wait blocks until the next frame boundary, or until ctx is canceled.
// The first call consumes the initial token and returns immediately.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.limiter.Wait(ctx)
}
