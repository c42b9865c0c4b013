package scorecard

import (
	"github.com/mchmarny/modeltrust/pkg/llm"
)

// CategoryModel is the record category for model entries.
const CategoryModel = "MODEL"

// Record is the flat scorecard emitted for one input entry. Metrics
// default to 0 (not null) when their producing stage failed, so
// downstream consumers never see a hole; the size score always carries
// every canonical device.
type Record struct {
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`

	License        float64 `json:"license" yaml:"license"`
	LicenseLatency int     `json:"license_latency" yaml:"license_latency"`

	RampUpTime        float64 `json:"ramp_up_time" yaml:"ramp_up_time"`
	RampUpTimeLatency int     `json:"ramp_up_time_latency" yaml:"ramp_up_time_latency"`

	PerformanceClaims        float64 `json:"performance_claims" yaml:"performance_claims"`
	PerformanceClaimsLatency int     `json:"performance_claims_latency" yaml:"performance_claims_latency"`

	BusFactor        float64 `json:"bus_factor" yaml:"bus_factor"`
	BusFactorLatency int     `json:"bus_factor_latency" yaml:"bus_factor_latency"`

	DatasetQuality        float64 `json:"dataset_quality" yaml:"dataset_quality"`
	DatasetQualityLatency int     `json:"dataset_quality_latency" yaml:"dataset_quality_latency"`

	CodeQuality        float64 `json:"code_quality" yaml:"code_quality"`
	CodeQualityLatency int     `json:"code_quality_latency" yaml:"code_quality_latency"`

	DatasetAndCodeScore        float64 `json:"dataset_and_code_score" yaml:"dataset_and_code_score"`
	DatasetAndCodeScoreLatency int     `json:"dataset_and_code_score_latency" yaml:"dataset_and_code_score_latency"`

	SizeScore        map[string]float64 `json:"size_score" yaml:"size_score"`
	SizeScoreLatency int                `json:"size_score_latency" yaml:"size_score_latency"`

	// Errors carries per-stage failure reasons for degraded metrics.
	Errors map[string]string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// merge assembles a Record from direct-source metric results and the
// LLM evaluator's cross-check metrics. A direct result always beats an
// LLM-derived score for the same metric; metrics absent from both
// default to zero.
func merge(name string, direct map[string]Result, llmMetrics llm.Metrics, capacities map[string]int64) *Record {
	r := &Record{
		Name:     name,
		Category: CategoryModel,
	}

	r.License, r.LicenseLatency = scalarMetric("license", direct, llmMetrics)
	r.RampUpTime, r.RampUpTimeLatency = scalarMetric(llm.MetricRampUpTime, direct, llmMetrics)
	r.PerformanceClaims, r.PerformanceClaimsLatency = scalarMetric(llm.MetricPerformanceClaims, direct, llmMetrics)
	r.BusFactor, r.BusFactorLatency = scalarMetric(llm.MetricBusFactor, direct, llmMetrics)
	r.DatasetQuality, r.DatasetQualityLatency = scalarMetric(llm.MetricDatasetQuality, direct, llmMetrics)
	r.CodeQuality, r.CodeQualityLatency = scalarMetric(llm.MetricCodeQuality, direct, llmMetrics)
	r.DatasetAndCodeScore, r.DatasetAndCodeScoreLatency = scalarMetric(llm.MetricDatasetAndCodeScore, direct, llmMetrics)

	r.SizeScore, r.SizeScoreLatency = sizeMetric(direct, capacities)

	for metric, res := range direct {
		if res.Err != "" {
			if r.Errors == nil {
				r.Errors = make(map[string]string)
			}
			r.Errors[metric] = res.Err
		}
	}

	return r
}

func scalarMetric(name string, direct map[string]Result, llmMetrics llm.Metrics) (float64, int) {
	if res, ok := direct[name]; ok && res.Kind == KindScalar {
		return res.Value, res.LatencyMS
	}
	if v, ok := llmMetrics.Scores[name]; ok {
		return v, llmMetrics.Latencies[name]
	}
	// Attempted but failed: default, keeping the stage latency if any.
	if res, ok := direct[name]; ok {
		return 0, res.LatencyMS
	}
	return 0, 0
}

// sizeMetric guarantees one score per canonical device even when the
// size acquisition chain fully failed.
func sizeMetric(direct map[string]Result, capacities map[string]int64) (map[string]float64, int) {
	res, ok := direct["size_score"]
	if ok && res.Kind == KindPerDevice && res.Devices != nil {
		return res.Devices, res.LatencyMS
	}

	zeros := make(map[string]float64, len(capacities))
	for device := range capacities {
		zeros[device] = 0
	}
	return zeros, res.LatencyMS
}
