package scorecard

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mchmarny/modeltrust/pkg/llm"
	"github.com/mchmarny/modeltrust/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCapacities() map[string]int64 {
	return map[string]int64{
		"pi":   200_000_000,
		"nano": 1_000_000_000,
		"pc":   8_000_000_000,
		"aws":  20_000_000_000,
	}
}

func demoModel() *registry.Model {
	return &registry.Model{
		ID:        "owner/demo-model",
		Downloads: 1000,
		Likes:     50,
		License:   "MIT",
		CardData:  map[string]any{},
		Siblings: []registry.Sibling{
			{Rfilename: "model.safetensors", Size: 500_000_000},
		},
	}
}

func newTestOrchestrator(reg *stubRegistry, evaluator *stubLLM) *Orchestrator {
	return New(reg, &stubCodeHost{}, &stubVCS{cloneErr: context.Canceled}, &stubLinter{score: 0.5}, evaluator, Options{
		Capacities: testCapacities(),
	})
}

func TestProcessEntryScenario(t *testing.T) {
	reg := &stubRegistry{models: map[string]*registry.Model{"owner/demo-model": demoModel()}}
	o := newTestOrchestrator(reg, &stubLLM{})

	rec := o.ProcessEntry(context.Background(), ParseEntry(",,owner/demo-model"))
	require.NotNil(t, rec)

	assert.Equal(t, "demo-model", rec.Name)
	assert.Equal(t, CategoryModel, rec.Category)
	assert.Equal(t, 1.0, rec.License)

	// 500MB against each capacity: ratios 2.5, 0.5, 0.0625, 0.025.
	assert.Equal(t, 0.20, rec.SizeScore["pi"])
	assert.Equal(t, 0.85, rec.SizeScore["nano"])
	assert.Equal(t, 1.00, rec.SizeScore["pc"])
	assert.Equal(t, 1.00, rec.SizeScore["aws"])

	// No dataset anywhere: explicitly penalized, not omitted.
	assert.Equal(t, 0.0, rec.DatasetQuality)

	// No code or dataset link supplied.
	assert.Equal(t, 0.0, rec.DatasetAndCodeScore)
}

func TestProcessEntryDeterministic(t *testing.T) {
	reg := &stubRegistry{
		models: map[string]*registry.Model{"owner/demo-model": demoModel()},
		datasets: map[string]*registry.Dataset{
			"org/squad": {
				Downloads:   20_000,
				License:     "cc-by-4.0",
				Description: "A reading comprehension dataset built from articles.",
				Tags:        []string{"question-answering", "en", "extractive-qa"},
				CardData:    map[string]any{"dataset_info": map[string]any{"features": "ok"}},
			},
		},
	}
	evaluator := &stubLLM{
		metrics: llm.Metrics{
			Scores:    map[string]float64{llm.MetricRampUpTime: 0.8, llm.MetricBusFactor: 0.3},
			Latencies: map[string]int{llm.MetricRampUpTime: 10, llm.MetricBusFactor: 12},
		},
	}

	entry := ParseEntry(",https://huggingface.co/datasets/org/squad,owner/demo-model")

	a := newTestOrchestrator(reg, evaluator).ProcessEntry(context.Background(), entry)
	b := newTestOrchestrator(reg, evaluator).ProcessEntry(context.Background(), entry)

	// Latency fields vary run to run; the scores must not.
	assert.Equal(t, a.DatasetQuality, b.DatasetQuality)
	assert.Equal(t, a.License, b.License)
	assert.Equal(t, a.SizeScore, b.SizeScore)
	assert.Equal(t, a.RampUpTime, b.RampUpTime)
	assert.Equal(t, a.BusFactor, b.BusFactor)

	aj, err := json.Marshal(a.SizeScore)
	require.NoError(t, err)
	bj, err := json.Marshal(b.SizeScore)
	require.NoError(t, err)
	assert.Equal(t, aj, bj)
}

func TestDiscoveryOrderExplicitWins(t *testing.T) {
	reg := &stubRegistry{
		models: map[string]*registry.Model{"owner/demo-model": func() *registry.Model {
			m := demoModel()
			m.CardData = map[string]any{"datasets": []any{"org/other"}}
			return m
		}()},
		datasets: map[string]*registry.Dataset{"org/squad": {Downloads: 100}},
	}
	evaluator := &stubLLM{discoverURL: "https://huggingface.co/datasets/org/llm-pick"}
	o := newTestOrchestrator(reg, evaluator)

	rec := o.ProcessEntry(context.Background(), ParseEntry(",https://huggingface.co/datasets/org/squad,owner/demo-model"))
	require.NotNil(t, rec)

	// The explicit URL short-circuits discovery entirely.
	assert.Zero(t, evaluator.discoverCalls)
	assert.Equal(t, []string{"org/squad"}, reg.datasetIDs)
}

func TestDiscoveryPlaceholderFallsThrough(t *testing.T) {
	reg := &stubRegistry{
		models:   map[string]*registry.Model{"owner/demo-model": demoModel()},
		datasets: map[string]*registry.Dataset{"org/llm-pick": {Downloads: 100}},
	}
	evaluator := &stubLLM{discoverURL: "https://huggingface.co/datasets/org/llm-pick"}
	o := newTestOrchestrator(reg, evaluator)

	o.ProcessEntry(context.Background(), ParseEntry(",none,owner/demo-model"))
	assert.Equal(t, 1, evaluator.discoverCalls)
	assert.Equal(t, []string{"org/llm-pick"}, reg.datasetIDs)
}

func TestDiscoveryRejectsBareLLMNamesThenUsesCard(t *testing.T) {
	model := demoModel()
	model.Tags = []string{"pytorch", "dataset:bookcorpus"}
	reg := &stubRegistry{
		models:   map[string]*registry.Model{"owner/demo-model": model},
		datasets: map[string]*registry.Dataset{"bookcorpus": {Downloads: 100}},
	}
	evaluator := &stubLLM{discoverURL: "squad"} // bare name, not URL-shaped
	o := newTestOrchestrator(reg, evaluator)

	o.ProcessEntry(context.Background(), ParseEntry(",,owner/demo-model"))
	assert.Equal(t, 1, evaluator.discoverCalls)
	assert.Equal(t, []string{"bookcorpus"}, reg.datasetIDs)
}

func TestDirectDatasetQualityBeatsLLM(t *testing.T) {
	reg := &stubRegistry{
		models: map[string]*registry.Model{"owner/demo-model": demoModel()},
		datasets: map[string]*registry.Dataset{"org/squad": {
			Downloads:   20_000,
			License:     "mit",
			Description: "desc",
			Tags:        []string{"a", "b", "c"},
		}},
	}
	evaluator := &stubLLM{
		metrics: llm.Metrics{
			Scores:    map[string]float64{llm.MetricDatasetQuality: 0.99},
			Latencies: map[string]int{llm.MetricDatasetQuality: 7},
		},
	}
	o := newTestOrchestrator(reg, evaluator)

	rec := o.ProcessEntry(context.Background(), ParseEntry(",https://huggingface.co/datasets/org/squad,owner/demo-model"))
	assert.NotEqual(t, 0.99, rec.DatasetQuality)
	assert.Greater(t, rec.DatasetQuality, 0.0)
}

func TestLLMMetricsFillGaps(t *testing.T) {
	reg := &stubRegistry{models: map[string]*registry.Model{"owner/demo-model": demoModel()}}
	evaluator := &stubLLM{
		metrics: llm.Metrics{
			Scores: map[string]float64{
				llm.MetricRampUpTime:        0.8,
				llm.MetricPerformanceClaims: 0.6,
				llm.MetricBusFactor:         0.3,
			},
			Latencies: map[string]int{llm.MetricRampUpTime: 100},
		},
	}
	o := newTestOrchestrator(reg, evaluator)

	rec := o.ProcessEntry(context.Background(), ParseEntry(",,owner/demo-model"))
	assert.Equal(t, 0.8, rec.RampUpTime)
	assert.Equal(t, 100, rec.RampUpTimeLatency)
	assert.Equal(t, 0.6, rec.PerformanceClaims)
	assert.Equal(t, 0.3, rec.BusFactor)
	assert.Equal(t, 0.0, rec.CodeQuality)
}

func TestBatchResilience(t *testing.T) {
	reg := &stubRegistry{
		models: map[string]*registry.Model{
			"owner/first": demoModel(),
			"owner/third": demoModel(),
		},
		failModelID: "owner/second",
	}
	o := newTestOrchestrator(reg, &stubLLM{})

	entries := []Entry{
		{ModelRef: "owner/first"},
		{ModelRef: "owner/second"},
		{ModelRef: "owner/third"},
	}

	records := o.Run(context.Background(), entries)
	require.Len(t, records, 3)
	for i, rec := range records {
		require.NotNil(t, rec, "record %d", i)
	}

	assert.Equal(t, "first", records[0].Name)
	assert.Equal(t, "second", records[1].Name)
	assert.Equal(t, "third", records[2].Name)

	// The failed entry degrades, it does not disappear.
	assert.Equal(t, 0.0, records[1].License)
	assert.Len(t, records[1].SizeScore, 4)
	for _, v := range records[1].SizeScore {
		assert.Equal(t, 0.0, v)
	}
	assert.NotEmpty(t, records[1].Errors)

	assert.Equal(t, 1.0, records[0].License)
	assert.Equal(t, 1.0, records[2].License)
}

func TestBatchResilienceConcurrent(t *testing.T) {
	reg := &stubRegistry{
		models:      map[string]*registry.Model{"owner/first": demoModel(), "owner/third": demoModel()},
		failModelID: "owner/second",
	}
	o := New(reg, &stubCodeHost{}, &stubVCS{cloneErr: context.Canceled}, &stubLinter{}, &stubLLM{}, Options{
		Capacities: testCapacities(),
		Workers:    3,
	})

	records := o.Run(context.Background(), []Entry{
		{ModelRef: "owner/first"},
		{ModelRef: "owner/second"},
		{ModelRef: "owner/third"},
	})
	require.Len(t, records, 3)
	assert.Equal(t, "first", records[0].Name)
	assert.Equal(t, "second", records[1].Name)
	assert.Equal(t, "third", records[2].Name)
}

func TestProcessEntryNameFromRegistryURL(t *testing.T) {
	reg := &stubRegistry{models: map[string]*registry.Model{"owner/demo-model": demoModel()}}
	o := newTestOrchestrator(reg, &stubLLM{})

	// A revision path on a full registry URL must not leak into the name.
	rec := o.ProcessEntry(context.Background(), ParseEntry(",,https://huggingface.co/owner/demo-model/tree/main"))
	assert.Equal(t, "demo-model", rec.Name)
	assert.Equal(t, 1.0, rec.License)
}

func TestLocalRepoMetricsFallbackToCodeHost(t *testing.T) {
	reg := &stubRegistry{models: map[string]*registry.Model{"owner/demo-model": demoModel()}}
	ch := &stubCodeHost{counts: []int{50, 50}}
	o := New(reg, ch, &stubVCS{cloneErr: context.Canceled}, &stubLinter{}, &stubLLM{}, Options{
		Capacities: testCapacities(),
	})

	rec := o.ProcessEntry(context.Background(), ParseEntry("https://github.com/org/repo,,owner/demo-model"))
	assert.InDelta(t, 1.0, rec.BusFactor, 0.0001)
	assert.Equal(t, 1.0, rec.DatasetAndCodeScore)
}

func TestLocalRepoMetricsFromClone(t *testing.T) {
	reg := &stubRegistry{models: map[string]*registry.Model{"owner/demo-model": demoModel()}}
	vcs := &stubVCS{counts: []int{95, 5}}
	o := New(reg, &stubCodeHost{}, vcs, &stubLinter{score: 0.9}, &stubLLM{}, Options{
		Capacities: testCapacities(),
	})

	rec := o.ProcessEntry(context.Background(), ParseEntry("https://github.com/org/repo,,owner/demo-model"))
	assert.Greater(t, rec.BusFactor, 0.0)
	assert.Less(t, rec.BusFactor, 0.5)
	assert.Equal(t, 0.9, rec.CodeQuality)
}

func TestLocalRepoMetricsBackfillLicenseAndSize(t *testing.T) {
	// Registry fetch fails outright; the cloned code repository supplies
	// both the license and the weight footprint instead.
	reg := &stubRegistry{failModelID: "owner/demo-model"}
	ch := &stubCodeHost{license: "mit"}
	vcs := &stubVCS{counts: []int{10, 10}, weightBytes: 500_000_000}
	o := New(reg, ch, vcs, &stubLinter{}, &stubLLM{}, Options{
		Capacities: testCapacities(),
	})

	rec := o.ProcessEntry(context.Background(), ParseEntry("https://github.com/org/repo,,owner/demo-model"))
	assert.Equal(t, 1.0, rec.License)
	assert.Equal(t, 0.20, rec.SizeScore["pi"])
	assert.Equal(t, 0.85, rec.SizeScore["nano"])
	assert.Equal(t, 1.00, rec.SizeScore["pc"])
	assert.Equal(t, 1.00, rec.SizeScore["aws"])
}

func TestLocalRepoMetricsRegistryLicenseWins(t *testing.T) {
	// A registry-supplied license is never overridden by the repo scan.
	reg := &stubRegistry{models: map[string]*registry.Model{"owner/demo-model": demoModel()}}
	ch := &stubCodeHost{license: "gpl-3.0"}
	o := New(reg, ch, &stubVCS{counts: []int{1}}, &stubLinter{}, &stubLLM{}, Options{
		Capacities: testCapacities(),
	})

	rec := o.ProcessEntry(context.Background(), ParseEntry("https://github.com/org/repo,,owner/demo-model"))
	assert.Equal(t, 1.0, rec.License)
}

func TestLicenseFromTree(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "", licenseFromTree(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "LICENSE"), []byte("MIT License\n\nPermission is hereby granted..."), 0o600))
	assert.Equal(t, "mit", licenseFromTree(dir))

	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "COPYING"), []byte("GNU GENERAL PUBLIC LICENSE\nVersion 2"), 0o600))
	assert.Equal(t, "gpl-2.0", licenseFromTree(dir))

	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "LICENSE.txt"), []byte("Apache License\nVersion 2.0"), 0o600))
	assert.Equal(t, "apache-2.0", licenseFromTree(dir))
}
