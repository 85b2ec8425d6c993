// Package coordinator decides the run mode and drives the streams.
package coordinator

import (
	"context"
	"fmt"
	"sync"

	"viobench/internal/config"
	"viobench/internal/core"
	"viobench/internal/player"
	"viobench/internal/workload"

	"go.uber.org/zap"
)

// Mode is what a binary invocation ends up doing. The same arguments
// provision files on the first call and benchmark reads on the second;
// there is no explicit mode flag.
type Mode string

const (
	// ModeGenerate provisions missing workload files, then exits.
	ModeGenerate Mode = "generate"
	// ModePlay runs the concurrent playback benchmark.
	ModePlay Mode = "play"
)

// Coordinator owns the stream lifecycle for one run.
type Coordinator struct {
	cfg *config.Config
	gen *workload.Generator
	log *zap.Logger
	wg  sync.WaitGroup
}

func New(cfg *config.Config, log *zap.Logger) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{
		cfg: cfg,
		gen: workload.NewGenerator(cfg, log),
		log: log,
	}
}

// DecideMode picks generate mode if any stream's workfile is absent or
// below target size, play mode when the whole corpus is present.
func (c *Coordinator) DecideMode() Mode {
	for id := 0; id < c.cfg.Threads; id++ {
		if !c.gen.Present(core.StreamID(id)) {
			return ModeGenerate
		}
	}
	return ModePlay
}

// GenerateMissing provisions every absent workfile, in stream order.
// The first failure aborts the pass: a partial corpus is never treated
// as ready, and a rerun regenerates idempotently (same seeds, same
// bytes), so already-written files are left in place.
func (c *Coordinator) GenerateMissing(ctx context.Context) (int, error) {
	generated := 0
	for id := 0; id < c.cfg.Threads; id++ {
		sid := core.StreamID(id)
		if c.gen.Present(sid) {
			continue
		}
		if err := c.gen.Generate(ctx, sid); err != nil {
			return generated, fmt.Errorf("generating stream %d: %w", id, err)
		}
		generated++
	}
	return generated, nil
}

// Play starts one player per stream, all concurrently, and blocks until
// every stream reaches a terminal state. Each player hands its result
// to the reporter exactly once, at termination; one stream failing
// never cancels its siblings.
func (c *Coordinator) Play(ctx context.Context, rep core.Reporter) {
	for id := 0; id < c.cfg.Threads; id++ {
		sid := core.StreamID(id)
		c.wg.Add(1)
		go func(id core.StreamID) {
			defer c.wg.Done()
			defer c.recoverPanic(id, rep)
			p := &player.Player{Config: c.cfg, Stream: id, Log: c.log}
			rep.Report(p.Play(ctx))
		}(sid)
	}
	c.wg.Wait()
}

// recoverPanic turns a panicking stream into a failed result so the
// run's report still accounts for it.
func (c *Coordinator) recoverPanic(id core.StreamID, rep core.Reporter) {
	if r := recover(); r != nil {
		rep.Report(core.StreamResult{
			Stream: id,
			Status: core.StatusFailed,
			Err:    fmt.Errorf("panic: %v", r),
		})
	}
}
