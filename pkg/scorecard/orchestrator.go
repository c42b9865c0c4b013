// Package scorecard orchestrates the per-entry scoring pipeline:
// parsing input entries, invoking the registry, code host, version
// control, linter, and LLM collaborators, and merging their partial
// results into one flat record per model. No single failure aborts a
// batch.
package scorecard

import (
	"context"
	"fmt"
	"time"

	"github.com/mchmarny/modeltrust/pkg/llm"
	"github.com/mchmarny/modeltrust/pkg/registry"
	"github.com/mchmarny/modeltrust/pkg/score"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Options tunes orchestrator behavior. Zero values select defaults.
type Options struct {
	// Capacities maps canonical devices to byte capacities.
	Capacities map[string]int64
	// MaxCapacityMB normalizes the local weight-size metric.
	MaxCapacityMB float64
	// Workers bounds concurrent entry processing.
	Workers int
}

const (
	defaultMaxCapacityMB = 16 * 1024
	defaultWorkers       = 1
)

// Orchestrator fuses collaborator signals into scorecard records.
type Orchestrator struct {
	registry RegistryClient
	codehost CodeHostClient
	vcs      VersionControlClient
	linter   LinterClient
	llm      LLMClient
	opts     Options
}

// New constructs an orchestrator over the given collaborator ports.
func New(reg RegistryClient, ch CodeHostClient, vcs VersionControlClient, linter LinterClient, evaluator LLMClient, opts Options) *Orchestrator {
	if opts.Capacities == nil {
		opts.Capacities = score.DefaultCapacities()
	}
	if opts.MaxCapacityMB <= 0 {
		opts.MaxCapacityMB = defaultMaxCapacityMB
	}
	if opts.Workers < 1 {
		opts.Workers = defaultWorkers
	}
	return &Orchestrator{
		registry: reg,
		codehost: ch,
		vcs:      vcs,
		linter:   linter,
		llm:      evaluator,
		opts:     opts,
	}
}

// Run processes a batch of entries with a bounded worker pool and
// returns one record per entry, in input order. Individual entry
// failures degrade that entry only.
func (o *Orchestrator) Run(ctx context.Context, entries []Entry) []*Record {
	records := make([]*Record, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.opts.Workers)

	for i, entry := range entries {
		g.Go(func() error {
			records[i] = o.ProcessEntry(gctx, entry)
			return nil
		})
	}

	// Workers never return errors; per-entry failures are contained.
	_ = g.Wait()

	return records
}

// ProcessEntry runs the staged pipeline for one entry. It never
// returns nil and never panics past its own boundary: an unexpected
// failure yields a record with defaulted metrics and a captured error.
func (o *Orchestrator) ProcessEntry(ctx context.Context, entry Entry) (rec *Record) {
	modelID := NormalizeModelRef(entry.ModelRef, o.registry.BaseURL())
	name := ModelName(modelID)

	direct := make(map[string]Result)
	var llmMetrics llm.Metrics

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("recovered processing %s: %v", entry.ModelRef, r)
			direct["entry"] = Missing(0, fmt.Sprintf("unexpected failure: %v", r))
		}
		if rec == nil {
			rec = merge(name, direct, llmMetrics, o.opts.Capacities)
		}
	}()

	log.Debugf("processing %s (model: %s)", entry.ModelRef, modelID)

	// Model metadata feeds the license, size, and dataset stages.
	start := time.Now()
	model, modelErr := o.registry.GetModel(ctx, modelID)
	fetchMS := elapsedMS(start)

	direct["license"] = o.classifyLicense(model, modelErr, fetchMS)
	direct["size_score"] = o.deriveSize(ctx, modelID, model, modelErr, fetchMS)

	readme := o.fetchReadme(ctx, modelID, entry)

	llmMetrics = o.invokeEvaluator(ctx, entry, readme, direct)

	if entry.CodeURL != "" {
		o.localRepoMetrics(ctx, entry, direct)
	}

	direct[llm.MetricDatasetQuality] = o.resolveAndScoreDataset(ctx, entry, model, readme)

	direct[llm.MetricDatasetAndCodeScore] = linkPresenceScore(entry)

	return merge(name, direct, llmMetrics, o.opts.Capacities)
}

// classifyLicense resolves and classifies the model license. Fetch
// failures yield compatible=0 with a captured error, never a raised
// one.
func (o *Orchestrator) classifyLicense(model *registry.Model, modelErr error, latencyMS int) Result {
	if modelErr != nil {
		return Missing(latencyMS, fmt.Sprintf("license fetch: %v", modelErr))
	}
	lic, _ := model.ExtractLicense()
	res := Scalar(float64(score.Compatible(lic)), latencyMS)
	log.Debugf("license %q compatible=%v", lic, res.Value)
	return res
}

// fetchReadme prefers the model card text, falling back to the code
// host README when the entry links a code repository.
func (o *Orchestrator) fetchReadme(ctx context.Context, modelID string, entry Entry) string {
	if text := o.registry.GetReadme(ctx, modelID); text != "" {
		return text
	}
	if owner, repo, ok := parseCodeURL(entry.CodeURL); ok {
		return o.codehost.Readme(ctx, owner, repo)
	}
	return ""
}

// invokeEvaluator collects the qualitative metric set. Transport
// failures are contained here: the merge step falls back to defaults.
func (o *Orchestrator) invokeEvaluator(ctx context.Context, entry Entry, readme string, direct map[string]Result) llm.Metrics {
	start := time.Now()
	metrics, err := o.llm.EvaluateMetrics(ctx, llm.EvalRequest{
		ModelRef:    entry.ModelRef,
		Readme:      readme,
		CodeURL:     entry.CodeURL,
		DatasetLink: entry.DatasetURL,
	})
	if err != nil {
		log.Debugf("evaluator failed for %s: %v", entry.ModelRef, err)
		direct["evaluator"] = Missing(elapsedMS(start), fmt.Sprintf("evaluator: %v", err))
		return llm.Metrics{}
	}
	return metrics
}

// linkPresenceScore scores dataset-and-code accessibility from the
// presence of user-supplied links.
func linkPresenceScore(entry Entry) Result {
	if entry.CodeURL != "" || entry.DatasetURL != "" {
		return Scalar(1.0, 1)
	}
	return Scalar(0.0, 1)
}

func elapsedMS(start time.Time) int {
	return int(time.Since(start).Milliseconds())
}
