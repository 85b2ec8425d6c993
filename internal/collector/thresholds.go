package collector

import (
	"fmt"
	"strconv"
	"strings"
)

// Thresholds defines pass/fail criteria for a run. Values are percentage
// strings ("1%", "2.5%"); an empty value disables that check.
type Thresholds struct {
	MissRate            string `yaml:"miss_rate"`
	WorstStreamMissRate string `yaml:"worst_stream_miss_rate"`
}

// ThresholdResult represents the outcome of a single threshold check.
type ThresholdResult struct {
	Name      string `json:"name"`
	Passed    bool   `json:"passed"`
	Threshold string `json:"threshold"`
	Actual    string `json:"actual"`
}

// ThresholdResults contains all threshold check results.
type ThresholdResults struct {
	Passed  bool              `json:"passed"`
	Results []ThresholdResult `json:"results"`
}

// Check evaluates all thresholds against the computed summary.
func (t *Thresholds) Check(s *Summary) *ThresholdResults {
	if t == nil {
		return &ThresholdResults{Passed: true, Results: nil}
	}

	results := &ThresholdResults{
		Passed:  true,
		Results: make([]ThresholdResult, 0),
	}

	results.checkRate("miss_rate", t.MissRate, s.MissRate)
	results.checkRate("worst_stream_miss_rate", t.WorstStreamMissRate, s.WorstMissRate)

	return results
}

func (r *ThresholdResults) checkRate(name, threshold string, actual float64) {
	if threshold == "" {
		return
	}
	limit, err := parsePercentage(threshold)
	if err != nil {
		return
	}

	passed := actual < limit
	if !passed {
		r.Passed = false
	}

	r.Results = append(r.Results, ThresholdResult{
		Name:      name,
		Passed:    passed,
		Threshold: threshold,
		Actual:    fmt.Sprintf("%.2f%%", actual),
	})
}

func parsePercentage(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "%") {
		return 0, fmt.Errorf("invalid percentage format: %s", s)
	}
	s = strings.TrimSuffix(s, "%")
	return strconv.ParseFloat(s, 64)
}
