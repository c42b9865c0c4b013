package scorecard

import (
	"context"
	"strings"
	"time"

	"github.com/mchmarny/modeltrust/pkg/registry"
	"github.com/mchmarny/modeltrust/pkg/score"
	log "github.com/sirupsen/logrus"
)

// datasetPlaceholders are input values that mean "no dataset given".
var datasetPlaceholders = map[string]bool{
	"none": true,
	"null": true,
	"na":   true,
	"n/a":  true,
	"-":    true,
}

// datasetRequiredFields drive the completeness sub-score.
var datasetRequiredFields = []string{"description", "license", "tags", "downloads"}

// resolveAndScoreDataset locates the model's training dataset and
// scores its registry metadata. Discovery stops at the first success:
// the explicit input URL, then LLM inference, then the model card's
// dataset declarations. No dataset found scores an explicit 0.0 --
// absence is penalized, never omitted.
func (o *Orchestrator) resolveAndScoreDataset(ctx context.Context, entry Entry, model *registry.Model, readme string) Result {
	start := time.Now()

	datasetID := o.discoverDataset(ctx, entry, model, readme)
	if datasetID == "" {
		return Scalar(0.0, elapsedMS(start))
	}

	ds, err := o.registry.GetDataset(ctx, datasetID)
	if err != nil {
		log.Debugf("dataset fetch failed for %s: %v", datasetID, err)
		return Result{Kind: KindScalar, Value: 0.0, LatencyMS: elapsedMS(start), Err: "dataset fetch: " + err.Error()}
	}

	return Scalar(scoreDataset(ds), elapsedMS(start))
}

func (o *Orchestrator) discoverDataset(ctx context.Context, entry Entry, model *registry.Model, readme string) string {
	prefix := o.registry.BaseURL() + "/datasets/"

	// Step 1: explicit input URL.
	if id := datasetIDFromURL(entry.DatasetURL, prefix); id != "" {
		return id
	}

	// Step 2: LLM inference; only URL-shaped answers are accepted.
	if url, latency, err := o.llm.DiscoverDataset(ctx, entry.ModelRef, readme); err == nil {
		if id := datasetIDFromURL(url, prefix); id != "" {
			log.Debugf("evaluator discovered dataset %s in %dms", id, latency)
			return id
		}
	} else {
		log.Debugf("dataset discovery failed for %s: %v", entry.ModelRef, err)
	}

	// Step 3: card metadata and dataset-prefixed tags.
	if model != nil {
		if candidates := model.CardDatasets(); len(candidates) > 0 {
			return candidates[0]
		}
	}

	return ""
}

// datasetIDFromURL validates the registry dataset URL shape and
// reduces it to an owner/name identifier. Placeholder and foreign
// values yield an empty string.
func datasetIDFromURL(url, prefix string) string {
	s := strings.TrimSpace(url)
	if s == "" || datasetPlaceholders[strings.ToLower(s)] {
		return ""
	}
	rest, found := strings.CutPrefix(s, prefix)
	if !found {
		return ""
	}
	parts := splitPath(rest)
	switch {
	case len(parts) >= 2:
		return parts[0] + "/" + parts[1]
	case len(parts) == 1:
		return parts[0]
	default:
		return ""
	}
}

// scoreDataset fuses the dataset's own registry metadata into the
// weighted quality score.
func scoreDataset(ds *registry.Dataset) float64 {
	lic, structured := ds.ExtractLicense()
	if lic == registry.LicenseUnknown {
		lic = ""
	}

	meta := map[string]any{
		"description": ds.Description,
		"license":     lic,
		"downloads":   ds.Downloads,
	}
	if len(ds.Tags) > 0 {
		meta["tags"] = ds.Tags
	}

	return score.DatasetQuality(score.Subscores{
		Completeness: score.FieldCompleteness(meta, datasetRequiredFields),
		Schema:       score.SchemaRichness(ds.CardData),
		Tags:         score.TagRichness(ds.Tags),
		License:      score.LicensePresence(lic, structured),
		Description:  score.DescriptionDepth(ds.Description),
		Downloads:    score.Downloads(ds.Downloads),
	})
}
