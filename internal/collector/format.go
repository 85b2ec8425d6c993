package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// FormatText writes the summary in human-readable form.
func FormatText(w io.Writer, s *Summary, thresholds *ThresholdResults) {
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "viobench - Playback Results")
	fmt.Fprintln(w, "===========================")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Run ID:          %s\n", s.RunID)
	fmt.Fprintf(w, "Duration:        %v\n", s.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "Streams:         %d\n", s.TotalStreams)
	fmt.Fprintf(w, "Frames Played:   %d\n", s.TotalIntervals)
	fmt.Fprintf(w, "Frames Missed:   %d (%.2f%%)\n", s.TotalMisses, s.MissRate)
	if s.TotalStreams > 0 {
		fmt.Fprintf(w, "Worst Stream:    #%d (%.2f%% missed)\n", s.WorstStream, s.WorstMissRate)
	}
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "By Stream:")
	for _, ss := range s.Streams {
		line := fmt.Sprintf("  #%-4d %8d frames  %6d missed (%.2f%%)  %s",
			ss.Stream, ss.Intervals, ss.Misses, ss.MissRate, ss.Status)
		if ss.Error != "" {
			line += ": " + ss.Error
		}
		fmt.Fprintln(w, line)
	}

	if thresholds != nil && len(thresholds.Results) > 0 {
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "Thresholds:")
		for _, result := range thresholds.Results {
			symbol := "✓"
			if !result.Passed {
				symbol = "✗"
			}
			fmt.Fprintf(w, "  %s %s < %s (actual: %s)\n",
				symbol, result.Name, result.Threshold, result.Actual)
		}
	}
}

// FormatJSON writes the summary in JSON form.
func FormatJSON(w io.Writer, s *Summary, thresholds *ThresholdResults) {
	output := struct {
		RunID          string              `json:"runId"`
		Duration       string              `json:"duration"`
		TotalStreams   int                 `json:"totalStreams"`
		TotalIntervals int                 `json:"totalIntervals"`
		TotalMisses    int                 `json:"totalMisses"`
		MissRate       float64             `json:"missRate"`
		WorstStream    int                 `json:"worstStream"`
		WorstMissRate  float64             `json:"worstMissRate"`
		Streams        []jsonStreamSummary `json:"streams"`
		Thresholds     *ThresholdResults   `json:"thresholds,omitempty"`
	}{
		RunID:          s.RunID,
		Duration:       s.Duration.Round(time.Millisecond).String(),
		TotalStreams:   s.TotalStreams,
		TotalIntervals: s.TotalIntervals,
		TotalMisses:    s.TotalMisses,
		MissRate:       s.MissRate,
		WorstStream:    int(s.WorstStream),
		WorstMissRate:  s.WorstMissRate,
		Streams:        make([]jsonStreamSummary, 0, len(s.Streams)),
		Thresholds:     thresholds,
	}

	for _, ss := range s.Streams {
		output.Streams = append(output.Streams, jsonStreamSummary{
			Stream:    int(ss.Stream),
			Intervals: ss.Intervals,
			Misses:    ss.Misses,
			MissRate:  ss.MissRate,
			Status:    string(ss.Status),
			BytesRead: ss.BytesRead,
			Error:     ss.Error,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(output) // stdout errors are unrecoverable
}

type jsonStreamSummary struct {
	Stream    int     `json:"stream"`
	Intervals int     `json:"intervals"`
	Misses    int     `json:"misses"`
	MissRate  float64 `json:"missRate"`
	Status    string  `json:"status"`
	BytesRead int64   `json:"bytesRead"`
	Error     string  `json:"error,omitempty"`
}
