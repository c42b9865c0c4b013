package scorecard

import (
	"context"
	"errors"

	"github.com/mchmarny/modeltrust/pkg/llm"
	"github.com/mchmarny/modeltrust/pkg/registry"
)

const testRegistryBase = "https://huggingface.co"

type stubRegistry struct {
	models      map[string]*registry.Model
	datasets    map[string]*registry.Dataset
	readme      string
	fileSizes   map[string]int64
	modelCalls  int
	datasetIDs  []string
	failModelID string
}

func (s *stubRegistry) GetModel(_ context.Context, id string) (*registry.Model, error) {
	s.modelCalls++
	if id == s.failModelID {
		return nil, errors.New("registry unavailable")
	}
	if m, ok := s.models[id]; ok {
		return m, nil
	}
	return nil, errors.New("model not found: " + id)
}

func (s *stubRegistry) GetDataset(_ context.Context, id string) (*registry.Dataset, error) {
	s.datasetIDs = append(s.datasetIDs, id)
	if d, ok := s.datasets[id]; ok {
		return d, nil
	}
	return nil, errors.New("dataset not found: " + id)
}

func (s *stubRegistry) GetReadme(_ context.Context, _ string) string {
	return s.readme
}

func (s *stubRegistry) FileSize(_ context.Context, _, filename string) (int64, error) {
	if size, ok := s.fileSizes[filename]; ok {
		return size, nil
	}
	return 0, errors.New("no content length")
}

func (s *stubRegistry) RepoURL(id string) string { return testRegistryBase + "/" + id }
func (s *stubRegistry) BaseURL() string          { return testRegistryBase }

type stubCodeHost struct {
	license string
	counts  []int
	readme  string
	err     error
}

func (s *stubCodeHost) RepoLicense(_ context.Context, _, _ string) (string, error) {
	return s.license, s.err
}

func (s *stubCodeHost) ContributorCommits(_ context.Context, _, _ string) ([]int, error) {
	return s.counts, s.err
}

func (s *stubCodeHost) Readme(_ context.Context, _, _ string) string { return s.readme }

type stubVCS struct {
	cloneErr    error
	counts      []int
	countsErr   error
	lfs         map[string]int64
	lfsErr      error
	weightBytes int64
}

func (s *stubVCS) Clone(_ context.Context, _, _ string) error         { return s.cloneErr }
func (s *stubVCS) CloneCheckout(_ context.Context, _, _ string) error { return s.cloneErr }

func (s *stubVCS) ContributorCounts(_ context.Context, _ string) ([]int, error) {
	return s.counts, s.countsErr
}

func (s *stubVCS) LFSFileSizes(_ context.Context, _ string) (map[string]int64, error) {
	return s.lfs, s.lfsErr
}

func (s *stubVCS) WeightFileBytes(_ string) int64 { return s.weightBytes }

type stubLinter struct {
	score float64
}

func (s *stubLinter) ScoreTree(_ context.Context, _ string) float64 { return s.score }

type stubLLM struct {
	metrics       llm.Metrics
	metricsErr    error
	discoverURL   string
	discoverErr   error
	discoverCalls int
}

func (s *stubLLM) EvaluateMetrics(_ context.Context, _ llm.EvalRequest) (llm.Metrics, error) {
	return s.metrics, s.metricsErr
}

func (s *stubLLM) DiscoverDataset(_ context.Context, _, _ string) (string, int, error) {
	s.discoverCalls++
	return s.discoverURL, 5, s.discoverErr
}
