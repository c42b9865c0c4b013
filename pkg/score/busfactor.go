package score

import "math"

// BusFactor measures how evenly commit authorship is spread across
// contributors: the Shannon entropy of the commit-share distribution
// normalized by the maximum possible entropy for that contributor
// count. A single contributor (or an empty history) scores 0; a
// perfectly even split scores 1.
func BusFactor(commitCounts []int) float64 {
	total := 0
	contributors := 0
	for _, c := range commitCounts {
		if c <= 0 {
			continue
		}
		total += c
		contributors++
	}
	if total == 0 || contributors <= 1 {
		return 0
	}

	entropy := 0.0
	for _, c := range commitCounts {
		if c <= 0 {
			continue
		}
		p := float64(c) / float64(total)
		entropy -= p * math.Log2(p)
	}

	maxEntropy := math.Log2(float64(contributors))
	if maxEntropy <= 0 {
		return 0
	}
	return clamp(entropy/maxEntropy, 0, 1)
}
