package workload

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"viobench/internal/config"
	"viobench/internal/core"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.WorkDir = t.TempDir()
	cfg.Host = "testhost"
	cfg.FrameRate = 10
	cfg.FrameSize = 512
	cfg.TimeLimit = 1 * time.Second
	return &cfg
}

func TestSeed_PureFunctionOfIdentity(t *testing.T) {
	if Seed("a", 0) != Seed("a", 0) {
		t.Error("same identity must yield the same seed")
	}
	if Seed("a", 0) == Seed("a", 1) {
		t.Error("different stream indices must yield different seeds")
	}
	if Seed("a", 0) == Seed("b", 0) {
		t.Error("different host labels must yield different seeds")
	}
}

func TestGenerate_MeetsTargetSize(t *testing.T) {
	cfg := testConfig(t)
	g := NewGenerator(cfg, nil)

	if err := g.Generate(context.Background(), 0); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	info, err := os.Stat(cfg.WorkfilePath(0))
	if err != nil {
		t.Fatalf("stat workfile: %v", err)
	}
	if info.Size() < cfg.TargetFileSize() {
		t.Errorf("file size %d below target %d", info.Size(), cfg.TargetFileSize())
	}
	if !g.Present(0) {
		t.Error("Present must report a freshly generated file")
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := testConfig(t)
	g := NewGenerator(cfg, nil)

	if err := g.Generate(context.Background(), 3); err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	first, err := os.ReadFile(cfg.WorkfilePath(3))
	if err != nil {
		t.Fatalf("reading first file: %v", err)
	}

	if err := g.Generate(context.Background(), 3); err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	second, err := os.ReadFile(cfg.WorkfilePath(3))
	if err != nil {
		t.Fatalf("reading second file: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("regenerating the same stream must produce byte-identical content")
	}
}

func TestGenerate_DistinctStreamsDistinctContent(t *testing.T) {
	cfg := testConfig(t)
	g := NewGenerator(cfg, nil)

	for _, id := range []core.StreamID{0, 1} {
		if err := g.Generate(context.Background(), id); err != nil {
			t.Fatalf("Generate(%d): %v", id, err)
		}
	}

	a, _ := os.ReadFile(cfg.WorkfilePath(0))
	b, _ := os.ReadFile(cfg.WorkfilePath(1))
	if bytes.Equal(a[:1024], b[:1024]) {
		t.Error("streams with different identities must not share content")
	}
}

func TestGenerate_RemovesPartialFileOnCancel(t *testing.T) {
	cfg := testConfig(t)
	// Large enough that generation spans several chunks.
	cfg.FrameSize = 1 << 20
	cfg.TimeLimit = 10 * time.Second
	g := NewGenerator(cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := g.Generate(ctx, 0); err == nil {
		t.Fatal("expected error from canceled context")
	}
	if _, err := os.Stat(cfg.WorkfilePath(0)); !os.IsNotExist(err) {
		t.Error("partial workfile must be removed on failure")
	}
}

func TestGenerate_FailsOnUnwritableDir(t *testing.T) {
	cfg := testConfig(t)
	cfg.WorkDir = cfg.WorkDir + "/does-not-exist"
	g := NewGenerator(cfg, nil)

	if err := g.Generate(context.Background(), 0); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestPresent_ShortFileCountsAsAbsent(t *testing.T) {
	cfg := testConfig(t)
	g := NewGenerator(cfg, nil)

	if err := os.WriteFile(cfg.WorkfilePath(0), []byte("stub"), 0o644); err != nil {
		t.Fatalf("writing stub: %v", err)
	}
	if g.Present(0) {
		t.Error("a file below target size must count as absent")
	}
}
