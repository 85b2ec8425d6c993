// Package workload provisions the pseudo-random files the players read.
package workload

import (
	"context"
	"fmt"
	"hash/fnv"
	"os"

	"viobench/internal/config"
	"viobench/internal/core"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// chunkSize is how much content is generated and written per syscall.
const chunkSize = 1 << 20

// Seed derives the content seed for one stream. It is a pure function
// of the host label and stream index, so regenerating a file yields the
// exact bytes a previous run wrote, with no coordination between the
// generate and play invocations.
func Seed(host string, id core.StreamID) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s/%d", host, id)
	return h.Sum64()
}

// Generator writes workload files for a run's streams.
type Generator struct {
	cfg *config.Config
	log *zap.Logger
}

func NewGenerator(cfg *config.Config, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{cfg: cfg, log: log}
}

// Present reports whether the stream's workfile already exists at full
// size. A short file counts as absent: content is seeded, so it must be
// rewritten from the start rather than extended.
func (g *Generator) Present(id core.StreamID) bool {
	info, err := os.Stat(g.cfg.WorkfilePath(id))
	return err == nil && info.Size() >= g.cfg.TargetFileSize()
}

// Generate writes the stream's workfile. The file is written in whole
// chunks until it covers the configured time limit (or the default play
// duration for unbounded runs), so it may overshoot the target by up to
// one chunk. A partial file is removed on every failure path.
func (g *Generator) Generate(ctx context.Context, id core.StreamID) (err error) {
	path := g.cfg.WorkfilePath(id)
	target := g.cfg.TargetFileSize()

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating workfile %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(path)
		}
	}()

	rng := rand.New(rand.NewSource(Seed(g.cfg.Host, id)))
	buf := make([]byte, chunkSize)
	var written int64
	for written < target {
		if err = ctx.Err(); err != nil {
			return err
		}
		rng.Read(buf)
		n, werr := f.Write(buf)
		written += int64(n)
		if werr != nil {
			err = fmt.Errorf("writing workfile %s: %w", path, werr)
			return err
		}
	}

	if cerr := f.Close(); cerr != nil {
		err = fmt.Errorf("closing workfile %s: %w", path, cerr)
		os.Remove(path)
		return err
	}

	g.log.Info("generated workfile",
		zap.Int("stream", int(id)),
		zap.String("path", path),
		zap.Int64("bytes", written))
	return nil
}
