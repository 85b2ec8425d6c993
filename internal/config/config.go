// Package config holds the benchmark configuration, its defaults,
// validation, and the workload file naming scheme.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"viobench/internal/collector"
	"viobench/internal/core"

	validator "github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPlayDuration is the play time a generated workload file must
// cover when no time limit is configured. Unbounded runs longer than
// this will eventually exhaust their files; eight minutes matches the
// longest run the tool is normally used for.
const DefaultPlayDuration = 8 * time.Minute

// Config describes one benchmark run. The same configuration drives
// both the generate pass and the play pass.
type Config struct {
	// Threads is the number of concurrent simulated streams.
	Threads int `yaml:"threads" validate:"required,gt=0"`
	// Host namespaces workload files so several machines can share a
	// working directory. It is never used for network I/O.
	Host string `yaml:"host" validate:"required"`
	// WorkDir is where workload files live.
	WorkDir string `yaml:"dir" validate:"required"`
	// FrameRate is frames per second each stream must sustain.
	FrameRate float64 `yaml:"rate" validate:"required,gt=0"`
	// FrameSize is the bytes one frame read must deliver.
	FrameSize int64 `yaml:"size" validate:"required,gt=0"`
	// TimeLimit bounds the play pass; zero means unbounded.
	TimeLimit time.Duration `yaml:"limit" validate:"min=0"`

	// Thresholds turn the final summary into a pass/fail verdict.
	// They can only be set through the config file.
	Thresholds *collector.Thresholds `yaml:"thresholds,omitempty"`
}

// Default returns the configuration the original tool shipped with.
func Default() Config {
	return Config{
		Threads:   1,
		Host:      "localhost",
		WorkDir:   ".",
		FrameRate: 24.0,
		FrameSize: 1 << 20,
	}
}

// LoadFile overlays a YAML config file onto cfg.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// Validate checks the configuration once, before any file I/O begins.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// One stream's target file size must stay representable.
	size := math.Ceil(c.FrameRate) * float64(c.FrameSize) * float64(c.playSeconds()+1)
	if size > math.MaxInt64 {
		return fmt.Errorf("invalid configuration: rate %.1f x size %d x limit %v overflows the file size range",
			c.FrameRate, c.FrameSize, c.TimeLimit)
	}
	return nil
}

// WorkfilePath returns the workload file path for one stream. The name
// embeds the host label and stream index, so it is unique per stream
// within a run and per machine within a shared directory.
func (c *Config) WorkfilePath(id core.StreamID) string {
	return filepath.Join(c.WorkDir, fmt.Sprintf("vio-work-%s-%d", c.Host, id))
}

// FrameInterval is the deadline for one frame read: 1/rate seconds.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.FrameRate)
}

// MaxIntervals is the read-attempt budget for a bounded run, or zero
// when the run is unbounded.
func (c *Config) MaxIntervals() int {
	if c.TimeLimit <= 0 {
		return 0
	}
	return int(math.Round(c.TimeLimit.Seconds() * c.FrameRate))
}

// TargetFileSize is the minimum workload file size for one stream:
// ceil(rate) frames per second, one extra second of slack, for the
// configured limit or DefaultPlayDuration when unbounded.
func (c *Config) TargetFileSize() int64 {
	return int64(math.Ceil(c.FrameRate)) * c.FrameSize * (c.playSeconds() + 1)
}

func (c *Config) playSeconds() int64 {
	if c.TimeLimit <= 0 {
		return int64(DefaultPlayDuration / time.Second)
	}
	return int64(c.TimeLimit / time.Second)
}
