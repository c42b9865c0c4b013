package gitrepo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShortlog(t *testing.T) {
	out := "   95\tAlice <alice@example.com>\n" +
		"    5\tBob <bob@example.com>\n" +
		"\n"
	assert.Equal(t, []int{95, 5}, parseShortlog(out))
}

func TestParseShortlogEmpty(t *testing.T) {
	assert.Empty(t, parseShortlog(""))
	assert.Empty(t, parseShortlog("garbage without tabs"))
}

func TestParseLFSLines(t *testing.T) {
	lines := []string{
		"4665a5ea42 - model.safetensors (1.5 GB)",
		"12ab34cd56 - pytorch_model.bin (500 MB)",
		"aabbccdd00 - tokenizer.json (2 KB)",
		"ffeeddcc11 - weights v2.bin (10 B)",
		"malformed line",
		"deadbeef00 - nounit.bin (12 XB)",
		"",
	}
	sizes := parseLFSLines(lines)

	assert.Equal(t, int64(1.5*1024*1024*1024), sizes["model.safetensors"])
	assert.Equal(t, int64(500*1024*1024), sizes["pytorch_model.bin"])
	assert.Equal(t, int64(2*1024), sizes["tokenizer.json"])
	assert.Equal(t, int64(10), sizes["weights v2.bin"])
	assert.NotContains(t, sizes, "nounit.bin")
	assert.Len(t, sizes, 4)
}

func TestWeightFileBytes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model.bin"), make([]byte, 100), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "weights.safetensors"), make([]byte, 50), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), make([]byte, 9999), 0600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "ckpt.h5"), make([]byte, 25), 0600))

	c := New()
	assert.Equal(t, int64(175), c.WeightFileBytes(dir))
	assert.Equal(t, int64(0), c.WeightFileBytes(filepath.Join(dir, "missing")))
}
