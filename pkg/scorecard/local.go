package scorecard

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mchmarny/modeltrust/pkg/codehost"
	"github.com/mchmarny/modeltrust/pkg/llm"
	"github.com/mchmarny/modeltrust/pkg/score"
	log "github.com/sirupsen/logrus"
)

// LocalMetrics are the signals computed from a checked-out repository.
type LocalMetrics struct {
	BusFactor    float64
	CodeQuality  float64
	LicenseScore float64
	Size         float64
	WeightBytes  int64
}

// localRepoMetrics clones the linked code repository into an
// entry-scoped directory and computes history, license, lint, and
// weight-footprint metrics. Bus factor and code quality are always
// written as direct results; the repository license and weight files
// back-fill the license and size metrics when the registry-side stages
// produced nothing. The clone directory is removed regardless of
// outcome; a clone failure falls back to code-host contributor stats
// for the bus factor.
func (o *Orchestrator) localRepoMetrics(ctx context.Context, entry Entry, direct map[string]Result) {
	start := time.Now()

	dir, err := os.MkdirTemp("", "modeltrust-repo-")
	if err != nil {
		direct[llm.MetricBusFactor] = Missing(elapsedMS(start), fmt.Sprintf("local metrics: %v", err))
		return
	}
	defer os.RemoveAll(dir)

	if err := o.vcs.CloneCheckout(ctx, entry.CodeURL, dir); err != nil {
		log.Debugf("clone failed for %s: %v", entry.CodeURL, err)
		o.remoteBusFactor(ctx, entry, direct, start)
		return
	}

	m := o.computeLocalMetrics(ctx, dir, o.repoLicense(ctx, entry, dir))
	latency := elapsedMS(start)

	direct[llm.MetricBusFactor] = Scalar(m.BusFactor, latency)
	direct[llm.MetricCodeQuality] = Scalar(m.CodeQuality, latency)

	if res := direct["license"]; res.Kind == KindMissing {
		direct["license"] = Scalar(m.LicenseScore, latency)
	}
	if res := direct["size_score"]; res.Kind == KindMissing && m.Size > 0 {
		direct["size_score"] = PerDevice(score.Deployability(m.WeightBytes, o.opts.Capacities), latency)
	}
}

// computeLocalMetrics gathers the local signals for a working tree. A
// history read failure zeroes the bus factor, never fails.
func (o *Orchestrator) computeLocalMetrics(ctx context.Context, dir, license string) LocalMetrics {
	weightBytes := o.vcs.WeightFileBytes(dir)
	m := LocalMetrics{
		LicenseScore: float64(score.Compatible(license)),
		Size:         score.WeightSize(weightBytes, o.opts.MaxCapacityMB),
		WeightBytes:  weightBytes,
		CodeQuality:  o.linter.ScoreTree(ctx, dir),
	}

	counts, err := o.vcs.ContributorCounts(ctx, dir)
	if err != nil {
		log.Debugf("history read failed for %s: %v", dir, err)
		return m
	}
	m.BusFactor = score.BusFactor(counts)
	return m
}

// remoteBusFactor derives the bus factor from code host contributor
// stats when no local history is available.
func (o *Orchestrator) remoteBusFactor(ctx context.Context, entry Entry, direct map[string]Result, start time.Time) {
	owner, repo, ok := parseCodeURL(entry.CodeURL)
	if !ok {
		direct[llm.MetricBusFactor] = Missing(elapsedMS(start), "local metrics: unsupported code URL")
		return
	}

	counts, err := o.codehost.ContributorCommits(ctx, owner, repo)
	if err != nil {
		direct[llm.MetricBusFactor] = Missing(elapsedMS(start), fmt.Sprintf("contributor stats: %v", err))
		return
	}
	direct[llm.MetricBusFactor] = Scalar(score.BusFactor(counts), elapsedMS(start))
}

func parseCodeURL(url string) (owner, repo string, ok bool) {
	return codehost.ParseRepoURL(url)
}

// repoLicense resolves the linked repository's license: the code host's
// structured license first, then a license file scan of the
// checked-out tree.
func (o *Orchestrator) repoLicense(ctx context.Context, entry Entry, dir string) string {
	if owner, repo, ok := parseCodeURL(entry.CodeURL); ok {
		lic, err := o.codehost.RepoLicense(ctx, owner, repo)
		if err != nil {
			log.Debugf("license lookup failed for %s: %v", entry.CodeURL, err)
		}
		if lic != "" {
			return lic
		}
	}
	return licenseFromTree(dir)
}

// licenseFiles are checked in order when the code host carries no
// structured license record.
var licenseFiles = []string{"LICENSE", "LICENSE.txt", "LICENSE.rst", "COPYING", "COPYING.txt"}

// licenseFromTree maps well-known license file text to an SPDX
// identifier. Unreadable or unrecognized files yield an empty string.
func licenseFromTree(dir string) string {
	for _, name := range licenseFiles {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		text := strings.ToLower(string(data))
		switch {
		case strings.Contains(text, "mit license"):
			return "mit"
		case strings.Contains(text, "apache license"):
			return "apache-2.0"
		case strings.Contains(text, "lesser general public license"):
			return "lgpl-2.1"
		case strings.Contains(text, "general public license"):
			return "gpl-2.0"
		case strings.Contains(text, "bsd"):
			return "bsd-3-clause"
		}
	}
	return ""
}
