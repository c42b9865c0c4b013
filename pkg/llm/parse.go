package llm

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"
)

// Metric names the evaluator is allowed to score. Anything else in a
// response is dropped.
const (
	MetricRampUpTime          = "ramp_up_time"
	MetricPerformanceClaims   = "performance_claims"
	MetricBusFactor           = "bus_factor"
	MetricDatasetQuality      = "dataset_quality"
	MetricCodeQuality         = "code_quality"
	MetricDatasetAndCodeScore = "dataset_and_code_score"
)

const latencySuffix = "_latency"

var expectedMetrics = map[string]bool{
	MetricRampUpTime:          true,
	MetricPerformanceClaims:   true,
	MetricBusFactor:           true,
	MetricDatasetQuality:      true,
	MetricCodeQuality:         true,
	MetricDatasetAndCodeScore: true,
}

var fencedBlockRegEx = regexp.MustCompile("(?s)```(?:json)?\n(.*?)```")

// Metrics is a parsed evaluator response: scores and their reported
// latencies in milliseconds, keyed by metric name.
type Metrics struct {
	Scores    map[string]float64
	Latencies map[string]int
}

// Empty reports whether no metric survived parsing.
func (m Metrics) Empty() bool {
	return len(m.Scores) == 0 && len(m.Latencies) == 0
}

// parseMetrics extracts the expected metric set from evaluator output.
// Unknown keys are dropped; values that fail coercion are dropped, not
// defaulted. Malformed content yields empty metrics.
func parseMetrics(content string) Metrics {
	m := Metrics{
		Scores:    make(map[string]float64),
		Latencies: make(map[string]int),
	}

	parsed := extractJSONObject(content)
	for key, val := range parsed {
		if name, isLatency := strings.CutSuffix(key, latencySuffix); isLatency {
			if !expectedMetrics[name] {
				continue
			}
			if ms, ok := coerceLatency(val); ok {
				m.Latencies[name] = ms
			}
			continue
		}

		if !expectedMetrics[key] {
			continue
		}

		// A nested {score, latency} object is flattened.
		if nested, ok := val.(map[string]any); ok {
			if s, ok := coerceScore(nested["score"]); ok {
				m.Scores[key] = s
			}
			if ms, ok := coerceLatency(nested["latency"]); ok {
				m.Latencies[key] = ms
			}
			continue
		}

		if s, ok := coerceScore(val); ok {
			m.Scores[key] = s
		}
	}

	return m
}

// parseDiscovery extracts a dataset URL and discovery latency from
// evaluator output.
func parseDiscovery(content string) (string, int, error) {
	parsed := extractJSONObject(content)
	url := ""
	if s, ok := parsed["dataset_url"].(string); ok {
		url = strings.TrimSpace(s)
	}
	latency := 0
	if ms, ok := coerceLatency(parsed["dataset_discovery_latency"]); ok {
		latency = ms
	}
	return url, latency, nil
}

// extractJSONObject locates the JSON object in free-form model output:
// a fenced code block if present, otherwise the last top-level {...}.
// Returns an empty map on any failure.
func extractJSONObject(content string) map[string]any {
	raw := ""
	if match := fencedBlockRegEx.FindStringSubmatch(content); match != nil {
		raw = match[1]
	} else {
		trimmed := strings.TrimSpace(content)
		start := strings.Index(trimmed, "{")
		end := strings.LastIndex(trimmed, "}")
		if start >= 0 && end > start {
			raw = trimmed[start : end+1]
		}
	}
	if raw == "" {
		return map[string]any{}
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return map[string]any{}
	}
	return parsed
}

func coerceScore(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		var f float64
		if err := json.Unmarshal([]byte(strings.TrimSpace(t)), &f); err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func coerceLatency(v any) (int, bool) {
	f, ok := coerceScore(v)
	if !ok {
		return 0, false
	}
	ms := int(math.Round(f))
	if ms < 0 {
		ms = 0
	}
	return ms, true
}
