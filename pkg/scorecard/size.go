package scorecard

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mchmarny/modeltrust/pkg/registry"
	"github.com/mchmarny/modeltrust/pkg/score"
	log "github.com/sirupsen/logrus"
)

// deriveSize runs the size acquisition chain and bands the total into
// per-device deployability scores. Partial totals are kept: a file
// whose size resists every step contributes zero and is logged as
// missing.
func (o *Orchestrator) deriveSize(ctx context.Context, modelID string, model *registry.Model, modelErr error, fetchMS int) Result {
	if modelErr != nil {
		return Missing(fetchMS, fmt.Sprintf("size fetch: %v", modelErr))
	}

	start := time.Now()
	total, missing := o.totalModelBytes(ctx, modelID, model.Siblings)
	latency := fetchMS + elapsedMS(start)

	if len(missing) > 0 {
		log.Debugf("no size found for %d files of %s: %v", len(missing), modelID, missing)
	}

	return PerDevice(score.Deployability(total, o.opts.Capacities), latency)
}

// totalModelBytes sums file sizes from the registry listing, probing
// Content-Length for files the listing omits, and finally falling back
// to a no-checkout clone with an LFS listing.
func (o *Orchestrator) totalModelBytes(ctx context.Context, modelID string, siblings []registry.Sibling) (int64, []string) {
	var total int64
	missing := make([]string, 0)

	for _, s := range siblings {
		size := s.Size
		if size <= 0 && s.Rfilename != "" {
			if probed, err := o.registry.FileSize(ctx, modelID, s.Rfilename); err == nil {
				size = probed
			}
		}
		if size > 0 {
			total += size
			continue
		}
		if s.Rfilename != "" {
			missing = append(missing, s.Rfilename)
		}
	}

	if len(missing) == 0 {
		return total, nil
	}

	lfs := o.lfsSizes(ctx, modelID)
	if len(lfs) == 0 {
		return total, missing
	}

	unresolved := make([]string, 0)
	for _, name := range missing {
		if size, ok := lfs[name]; ok && size > 0 {
			total += size
			continue
		}
		unresolved = append(unresolved, name)
	}
	return total, unresolved
}

// lfsSizes clones the model repository without checkout into an
// entry-scoped temp dir and lists LFS sizes. Returns nil on any
// failure; the chain degrades, never aborts.
func (o *Orchestrator) lfsSizes(ctx context.Context, modelID string) map[string]int64 {
	dir, err := os.MkdirTemp("", "modeltrust-size-")
	if err != nil {
		log.Debugf("temp dir for %s: %v", modelID, err)
		return nil
	}
	defer os.RemoveAll(dir)

	if err := o.vcs.Clone(ctx, o.registry.RepoURL(modelID), dir); err != nil {
		log.Debugf("size fallback clone failed for %s: %v", modelID, err)
		return nil
	}

	sizes, err := o.vcs.LFSFileSizes(ctx, dir)
	if err != nil {
		log.Debugf("lfs listing failed for %s: %v", modelID, err)
		return nil
	}
	return sizes
}
