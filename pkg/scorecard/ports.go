package scorecard

import (
	"context"

	"github.com/mchmarny/modeltrust/pkg/llm"
	"github.com/mchmarny/modeltrust/pkg/registry"
)

// RegistryClient is the model registry collaborator port.
type RegistryClient interface {
	GetModel(ctx context.Context, id string) (*registry.Model, error)
	GetDataset(ctx context.Context, id string) (*registry.Dataset, error)
	GetReadme(ctx context.Context, id string) string
	FileSize(ctx context.Context, id, filename string) (int64, error)
	RepoURL(id string) string
	BaseURL() string
}

// CodeHostClient is the code-hosting collaborator port.
type CodeHostClient interface {
	RepoLicense(ctx context.Context, owner, repo string) (string, error)
	ContributorCommits(ctx context.Context, owner, repo string) ([]int, error)
	Readme(ctx context.Context, owner, repo string) string
}

// VersionControlClient is the git subprocess collaborator port.
type VersionControlClient interface {
	Clone(ctx context.Context, url, dir string) error
	CloneCheckout(ctx context.Context, url, dir string) error
	ContributorCounts(ctx context.Context, dir string) ([]int, error)
	LFSFileSizes(ctx context.Context, dir string) (map[string]int64, error)
	WeightFileBytes(dir string) int64
}

// LinterClient is the static-analysis collaborator port.
type LinterClient interface {
	ScoreTree(ctx context.Context, dir string) float64
}

// LLMClient is the qualitative evaluator port.
type LLMClient interface {
	EvaluateMetrics(ctx context.Context, req llm.EvalRequest) (llm.Metrics, error)
	DiscoverDataset(ctx context.Context, modelRef, readme string) (string, int, error)
}
