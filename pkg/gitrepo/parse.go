package gitrepo

import (
	"strconv"
	"strings"
)

// lfsSizeUnits maps the size units emitted by git lfs ls-files -s to
// byte multipliers.
var lfsSizeUnits = map[string]int64{
	"B":  1,
	"KB": 1024,
	"MB": 1024 * 1024,
	"GB": 1024 * 1024 * 1024,
}

// parseShortlog extracts per-contributor commit counts from
// git shortlog -sne output, one "<count>\t<author>" line each.
func parseShortlog(out string) []int {
	counts := make([]int, 0)
	for _, line := range strings.Split(out, "\n") {
		parts := strings.SplitN(strings.TrimSpace(line), "\t", 2)
		if len(parts) < 2 {
			continue
		}
		fields := strings.Fields(parts[0])
		if len(fields) == 0 {
			continue
		}
		if n, err := strconv.Atoi(fields[0]); err == nil && n > 0 {
			counts = append(counts, n)
		}
	}
	return counts
}

// parseLFSLines parses git lfs ls-files -s lines shaped
// "<hash> - <filename> (<size> <unit>)" into a filename to byte-size
// map. Malformed lines are skipped.
func parseLFSLines(lines []string) map[string]int64 {
	sizes := make(map[string]int64)
	for _, line := range lines {
		parts := strings.Fields(strings.TrimSpace(line))
		if len(parts) < 5 {
			continue
		}

		// Size and unit are the trailing "(<size> <unit>)" pair; the
		// filename is everything between the marker and the paren.
		unit := strings.TrimSuffix(parts[len(parts)-1], ")")
		sizeStr := strings.TrimPrefix(parts[len(parts)-2], "(")

		mult, ok := lfsSizeUnits[unit]
		if !ok {
			continue
		}
		val, err := strconv.ParseFloat(sizeStr, 64)
		if err != nil {
			continue
		}

		name := strings.Join(parts[2:len(parts)-2], " ")
		if name == "" {
			continue
		}
		sizes[name] = int64(val * float64(mult))
	}
	return sizes
}
