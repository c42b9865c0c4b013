package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDownloads(t *testing.T) {
	tests := []struct {
		n    int64
		want float64
	}{
		{-1, 0},
		{0, 0},
		{1, 0.2},
		{99, 0.2},
		{100, 0.5},
		{999, 0.5},
		{1000, 0.8},
		{9999, 0.8},
		{10000, 1.0},
		{5_000_000, 1.0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Downloads(tc.n), "downloads=%d", tc.n)
	}
}

func TestDownloadsMonotonic(t *testing.T) {
	prev := 0.0
	for _, n := range []int64{0, 1, 50, 100, 500, 1000, 5000, 10000, 1_000_000} {
		s := Downloads(n)
		assert.GreaterOrEqual(t, s, prev)
		prev = s
	}
}

func TestTagRichness(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want float64
	}{
		{"nil", nil, 0},
		{"empty strings", []string{"", "  "}, 0},
		{"stoplist only", []string{"model", "test", "example"}, 0},
		{"one", []string{"pytorch"}, 0.5},
		{"two", []string{"pytorch", "en"}, 0.5},
		{"three", []string{"pytorch", "en", "text-generation"}, 0.8},
		{"four", []string{"a", "b", "c", "d"}, 0.9},
		{"five", []string{"a", "b", "c", "d", "e"}, 1.0},
		{"mixed with stoplist", []string{"model", "pytorch", "en", "", "nlp"}, 0.8},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TagRichness(tc.tags))
		})
	}
}

func TestDescriptionDepth(t *testing.T) {
	assert.Equal(t, 0.0, DescriptionDepth(""))
	assert.InDelta(t, 0.5, DescriptionDepth(string(make([]byte, 1000))), 0.001)
	assert.Equal(t, 1.0, DescriptionDepth(string(make([]byte, 2000))))
	assert.Equal(t, 1.0, DescriptionDepth(string(make([]byte, 9000))))
}

func TestLicensePresence(t *testing.T) {
	assert.Equal(t, 0.0, LicensePresence("", false))
	assert.Equal(t, 0.0, LicensePresence("   ", false))
	assert.Equal(t, 1.0, LicensePresence("MIT", false))
	assert.Equal(t, 1.0, LicensePresence("apache-2.0", false))
	assert.Equal(t, 1.0, LicensePresence("BSD-3-Clause", false))
	assert.Equal(t, 0.5, LicensePresence("proprietary", false))
	assert.Equal(t, 1.0, LicensePresence("other", true))
}

func TestSchemaRichness(t *testing.T) {
	assert.Equal(t, 0.0, SchemaRichness(nil))
	assert.Equal(t, 0.0, SchemaRichness(map[string]any{"license": "mit"}))
	assert.Equal(t, 1.0, SchemaRichness(map[string]any{"dataset_info": map[string]any{"splits": "train"}}))
	assert.Equal(t, 1.0, SchemaRichness(map[string]any{"features": []any{"text"}}))
	assert.Equal(t, 0.5, SchemaRichness(map[string]any{"configs": []any{"default"}}))
	assert.Equal(t, 0.0, SchemaRichness(map[string]any{"configs": []any{}}))
}

func TestFieldCompleteness(t *testing.T) {
	required := []string{"description", "license", "tags", "downloads"}
	assert.Equal(t, 0.0, FieldCompleteness(nil, required))
	assert.Equal(t, 0.0, FieldCompleteness(map[string]any{}, required))

	meta := map[string]any{
		"description": "a dataset",
		"license":     "mit",
		"tags":        []any{"nlp"},
		"downloads":   float64(12),
	}
	assert.Equal(t, 1.0, FieldCompleteness(meta, required))

	meta["description"] = ""
	delete(meta, "tags")
	assert.Equal(t, 0.5, FieldCompleteness(meta, required))
}

func TestLogSize(t *testing.T) {
	assert.Equal(t, 0.0, LogSize(0))
	assert.Equal(t, 0.0, LogSize(1_000_000))
	assert.Equal(t, 1.0, LogSize(10_000_000_000))
	assert.Equal(t, 1.0, LogSize(50_000_000_000))

	mid := LogSize(100_000_000)
	assert.Greater(t, mid, 0.0)
	assert.Less(t, mid, 1.0)
}

func TestLogSizeMonotonic(t *testing.T) {
	prev := -1.0
	for _, b := range []int64{0, 1, 1_000_000, 2_000_000, 50_000_000, 1_000_000_000, 10_000_000_000, 100_000_000_000} {
		s := LogSize(b)
		assert.GreaterOrEqual(t, s, prev, "bytes=%d", b)
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
		prev = s
	}
}
