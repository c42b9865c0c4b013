package score

const (
	// Lint issues per source file tolerated before the code quality
	// score bottoms out.
	lintIssuesPerFileCeil = 150

	bytesPerMB = 1024 * 1024

	// Dataset quality weights (sum to 1.0).
	datasetCompletenessWeight = 0.30
	datasetSchemaWeight       = 0.20
	datasetTagsWeight         = 0.15
	datasetLicenseWeight      = 0.15
	datasetDescriptionWeight  = 0.10
	datasetDownloadsWeight    = 0.10
)

// CodeQuality maps a lint issue count over a source file count into
// [0,1]: zero issues per file is perfect, 150 per file is worthless.
func CodeQuality(issues, files int) float64 {
	if files < 1 {
		files = 1
	}
	avg := float64(issues) / float64(files)
	return clamp(1.0-avg/lintIssuesPerFileCeil, 0, 1)
}

// WeightSize scores the footprint of model weight files against a
// maximum hardware capacity in megabytes. Lower is better left as-is:
// the value is the consumed fraction of capacity, capped at 1.
func WeightSize(bytes int64, maxCapacityMB float64) float64 {
	if bytes <= 0 || maxCapacityMB <= 0 {
		return 0
	}
	sizeMB := float64(bytes) / bytesPerMB
	return clamp(sizeMB/maxCapacityMB, 0, 1)
}

// Subscores holds the normalized components of a dataset quality score.
type Subscores struct {
	Completeness float64
	Schema       float64
	Tags         float64
	License      float64
	Description  float64
	Downloads    float64
}

// DatasetQuality fuses dataset sub-scores into a single weighted value
// rounded to three decimal places.
func DatasetQuality(s Subscores) float64 {
	q := datasetCompletenessWeight*s.Completeness +
		datasetSchemaWeight*s.Schema +
		datasetTagsWeight*s.Tags +
		datasetLicenseWeight*s.License +
		datasetDescriptionWeight*s.Description +
		datasetDownloadsWeight*s.Downloads
	return toFixed(clamp(q, 0, 1), 3)
}
