package score

import (
	"math"
	"strings"
)

const (
	// Download count bands.
	downloadsLow  = 100
	downloadsMid  = 1000
	downloadsHigh = 10000

	// Description length (chars) that earns a full score.
	descriptionDepthCeil = 2000

	// Log-size interpolation anchors.
	logSizeFloorBytes = 1e6  // 1MB and below scores 0
	logSizeCeilBytes  = 1e10 // 10GB and above scores 1
)

// tagStoplist holds tags too generic to count as meaningful.
var tagStoplist = map[string]bool{
	"model":   true,
	"test":    true,
	"example": true,
	"demo":    true,
	"dataset": true,
}

// Downloads maps a raw download count into popularity bands.
func Downloads(n int64) float64 {
	switch {
	case n <= 0:
		return 0
	case n < downloadsLow:
		return 0.2
	case n < downloadsMid:
		return 0.5
	case n < downloadsHigh:
		return 0.8
	default:
		return 1.0
	}
}

// TagRichness scores how well an entry is tagged. Blank entries and
// tags from the stoplist are not counted.
func TagRichness(tags []string) float64 {
	meaningful := 0
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || tagStoplist[strings.ToLower(t)] {
			continue
		}
		meaningful++
	}

	switch {
	case meaningful == 0:
		return 0
	case meaningful <= 2:
		return 0.5
	case meaningful == 3:
		return 0.8
	case meaningful == 4:
		return 0.9
	default:
		return 1.0
	}
}

// DescriptionDepth scores free-text documentation by length.
func DescriptionDepth(text string) float64 {
	if text == "" {
		return 0
	}
	return math.Min(1.0, float64(len(text))/descriptionDepthCeil)
}

// LicensePresence scores whether a license is declared at all.
// A well-known permissive token or a non-empty structured license
// record earns the full score, any other declared value half.
func LicensePresence(license string, structured bool) float64 {
	s := strings.ToLower(strings.TrimSpace(license))
	if s == "" {
		return 0
	}
	if structured {
		return 1.0
	}
	for _, tok := range []string{"mit", "apache", "bsd"} {
		if strings.Contains(s, tok) {
			return 1.0
		}
	}
	return 0.5
}

// SchemaRichness scores the structure of card metadata: full score for
// explicit feature/schema info, half for a lighter configs listing.
func SchemaRichness(card map[string]any) float64 {
	if len(card) == 0 {
		return 0
	}
	for _, k := range []string{"dataset_info", "features", "schema"} {
		if v, ok := card[k]; ok && !isEmptyValue(v) {
			return 1.0
		}
	}
	if v, ok := card["configs"]; ok && !isEmptyValue(v) {
		return 0.5
	}
	return 0
}

// FieldCompleteness returns the fraction of required fields present
// with a non-empty value, rounded to two decimal places.
func FieldCompleteness(meta map[string]any, required []string) float64 {
	if len(meta) == 0 || len(required) == 0 {
		return 0
	}
	present := 0
	for _, f := range required {
		if v, ok := meta[f]; ok && !isEmptyValue(v) {
			present++
		}
	}
	return toFixed(float64(present)/float64(len(required)), 2)
}

// LogSize maps a byte size onto a logarithmic scale anchored at 1MB
// and 10GB.
func LogSize(bytes int64) float64 {
	if float64(bytes) <= logSizeFloorBytes {
		return 0
	}
	if float64(bytes) >= logSizeCeilBytes {
		return 1.0
	}
	r := (math.Log(float64(bytes)) - math.Log(logSizeFloorBytes)) /
		(math.Log(logSizeCeilBytes) - math.Log(logSizeFloorBytes))
	return clamp(r, 0, 1)
}

func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case float64:
		return false
	case int, int64:
		return false
	case bool:
		return false
	default:
		return false
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// toFixed rounds a float64 to the given precision.
func toFixed(num float64, precision int) float64 {
	output := math.Pow(10, float64(precision))
	return math.Round(num*output) / output
}
