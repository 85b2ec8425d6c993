package collector

import (
	"testing"
	"time"

	"viobench/internal/core"
)

func TestThresholds_NilAlwaysPasses(t *testing.T) {
	var th *Thresholds
	results := th.Check(&Summary{})
	if !results.Passed {
		t.Error("nil thresholds must pass")
	}
}

func TestThresholds_Check(t *testing.T) {
	// 10/200 missed overall (5%), worst stream 10/100 (10%).
	s := ComputeSummary([]core.StreamResult{
		{Stream: 0, Intervals: 100, Status: core.StatusCompleted},
		{Stream: 1, Intervals: 100, Misses: missEvents(1, 10), Status: core.StatusCompleted},
	}, time.Second)

	tests := []struct {
		name       string
		thresholds Thresholds
		wantPassed bool
		wantChecks int
	}{
		{"empty thresholds pass", Thresholds{}, true, 0},
		{"loose miss rate passes", Thresholds{MissRate: "10%"}, true, 1},
		{"tight miss rate fails", Thresholds{MissRate: "1%"}, false, 1},
		{"worst stream fails alone", Thresholds{MissRate: "10%", WorstStreamMissRate: "8%"}, false, 2},
		{"unparseable value is skipped", Thresholds{MissRate: "ten"}, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := tt.thresholds.Check(s)
			if results.Passed != tt.wantPassed {
				t.Errorf("Passed = %v, want %v", results.Passed, tt.wantPassed)
			}
			if len(results.Results) != tt.wantChecks {
				t.Errorf("got %d checks, want %d", len(results.Results), tt.wantChecks)
			}
		})
	}
}

func TestParsePercentage(t *testing.T) {
	if _, err := parsePercentage("5"); err == nil {
		t.Error("expected error for missing %% suffix")
	}
	v, err := parsePercentage(" 2.5% ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 2.5 {
		t.Errorf("expected 2.5, got %v", v)
	}
}
