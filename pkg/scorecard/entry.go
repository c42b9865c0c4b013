package scorecard

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Entry is one parsed input line: an optional code repository URL, an
// optional dataset URL, and a model reference (bare owner/name or a
// full registry URL).
type Entry struct {
	CodeURL    string
	DatasetURL string
	ModelRef   string
}

// ParseEntry parses a "code_url,dataset_url,model_ref" line. A single
// bare token is a model reference only; commas beyond the third are
// folded back into the model field.
func ParseEntry(line string) Entry {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if len(parts) == 1 {
		return Entry{ModelRef: parts[0]}
	}
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	if len(parts) > 3 {
		parts[2] = strings.TrimSpace(strings.Join(parts[2:], ","))
		parts = parts[:3]
	}
	return Entry{CodeURL: parts[0], DatasetURL: parts[1], ModelRef: parts[2]}
}

// ReadEntries parses entries from r, skipping blank and #-prefixed
// lines.
func ReadEntries(r io.Reader) ([]Entry, error) {
	entries := make([]Entry, 0)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		s := strings.TrimSpace(scanner.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		entries = append(entries, ParseEntry(s))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read input")
	}
	return entries, nil
}

// ReadEntriesFile parses entries from the file at path.
func ReadEntriesFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open input file: %s", path)
	}
	defer f.Close()
	return ReadEntries(f)
}

// NormalizeModelRef reduces a model reference to the canonical
// owner/name identifier the registry API expects.
func NormalizeModelRef(ref, registryBase string) string {
	s := strings.TrimSpace(ref)
	rest, found := strings.CutPrefix(s, registryBase+"/")
	if !found {
		return s
	}
	parts := splitPath(rest)
	switch {
	case len(parts) >= 2:
		return parts[0] + "/" + parts[1]
	case len(parts) == 1:
		return parts[0]
	default:
		return s
	}
}

// ModelName derives the display name from a normalized model
// reference: the last path segment, skipping a trailing "main"
// revision segment. Full registry URLs go through NormalizeModelRef
// first.
func ModelName(ref string) string {
	parts := splitPath(strings.TrimSpace(ref))
	if len(parts) == 0 {
		return strings.TrimSpace(ref)
	}
	last := parts[len(parts)-1]
	if strings.EqualFold(last, "main") && len(parts) > 1 {
		return parts[len(parts)-2]
	}
	return last
}

func splitPath(s string) []string {
	parts := make([]string, 0)
	for _, p := range strings.Split(s, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
