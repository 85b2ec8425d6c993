package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"viobench/internal/collector"
	"viobench/internal/config"
	"viobench/internal/coordinator"
	"viobench/internal/core"
	"viobench/internal/progress"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	ExitSuccess         = 0
	ExitThresholdFailed = 1
	ExitError           = 2
)

var (
	flagThreads    int
	flagHost       string
	flagDir        string
	flagRate       float64
	flagSize       int64
	flagLimit      int
	flagConfigPath string
	flagOutput     string
	flagQuiet      bool
	flagVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "viobench",
	Short: "Estimate how many concurrent video playback streams a storage volume can sustain",
	Long: `viobench simulates concurrent video playback against a storage volume.

Run it once to provision one pseudo-random work file per stream, then run
it again with the same arguments to benchmark: each stream reads one frame
per frame interval and every frame that arrives late is counted as missed.`,
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(run(cmd))
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.IntVarP(&flagThreads, "threads", "t", 1, "number of concurrent streams")
	flags.StringVarP(&flagHost, "host", "o", "localhost", "host label used to name work files")
	flags.StringVarP(&flagDir, "dir", "d", ".", "working directory for work files")
	flags.Float64VarP(&flagRate, "rate", "r", 24.0, "frame rate (frames per second)")
	flags.Int64VarP(&flagSize, "size", "s", 1<<20, "frame size in bytes")
	flags.IntVarP(&flagLimit, "limit", "l", 0, "time limit in seconds (0 = unbounded)")
	flags.StringVar(&flagConfigPath, "config", "", "path to YAML config file")
	flags.StringVar(&flagOutput, "output", "text", "output format: text, json")
	flags.BoolVar(&flagQuiet, "quiet", false, "suppress progress output")
	flags.BoolVar(&flagVerbose, "verbose", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

func run(cmd *cobra.Command) int {
	cfg := config.Default()
	if flagConfigPath != "" {
		if err := config.LoadFile(flagConfigPath, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return ExitError
		}
	}

	// Explicit flags override config file values.
	flags := cmd.Flags()
	if flags.Changed("threads") {
		cfg.Threads = flagThreads
	}
	if flags.Changed("host") {
		cfg.Host = flagHost
	}
	if flags.Changed("dir") {
		cfg.WorkDir = flagDir
	}
	if flags.Changed("rate") {
		cfg.FrameRate = flagRate
	}
	if flags.Changed("size") {
		cfg.FrameSize = flagSize
	}
	if flags.Changed("limit") {
		cfg.TimeLimit = time.Duration(flagLimit) * time.Second
	}

	if flagOutput != "text" && flagOutput != "json" {
		fmt.Fprintf(os.Stderr, "error: --output must be 'text' or 'json', got %q\n", flagOutput)
		return ExitError
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return ExitError
	}

	log := zap.NewNop()
	if flagVerbose {
		log = zap.Must(zap.NewDevelopment())
		defer log.Sync()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		if !flagQuiet {
			fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		}
		cancel()
	}()

	coord := coordinator.New(&cfg, log)

	if coord.DecideMode() == coordinator.ModeGenerate {
		n, err := coord.GenerateMissing(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return ExitError
		}
		fmt.Printf("Created %d work files. Run again with the same arguments to benchmark.\n", n)
		return ExitSuccess
	}

	coll := collector.NewCollector()
	prog := progress.NewProgress(coll, cfg.Threads, flagQuiet)

	limitDesc := "unbounded"
	if cfg.TimeLimit > 0 {
		limitDesc = cfg.TimeLimit.String()
	}
	prog.Printf("viobench starting: %d streams, %v frame interval, limit %s",
		cfg.Threads, cfg.FrameInterval(), limitDesc)

	prog.Start()
	coord.Play(ctx, coll)
	prog.Stop()
	coll.Close()

	summary := coll.Summary()

	var thresholdResults *collector.ThresholdResults
	if cfg.Thresholds != nil {
		thresholdResults = cfg.Thresholds.Check(summary)
	}

	// The report always covers everything collected, including failed
	// and exhausted streams.
	if flagOutput == "json" {
		collector.FormatJSON(os.Stdout, summary, thresholdResults)
	} else {
		collector.FormatText(os.Stdout, summary, thresholdResults)
	}

	for _, ss := range summary.Streams {
		if ss.Status == core.StatusFailed {
			return ExitError
		}
	}

	if thresholdResults != nil && !thresholdResults.Passed {
		if flagOutput == "text" {
			fmt.Fprintln(os.Stderr, "\nThreshold check failed!")
		}
		return ExitThresholdFailed
	}

	return ExitSuccess
}
