package plugin

// Fuzzy command matching for typo tolerance. Ratio follows the classic
// sequence-matcher definition: twice the total length of the matching blocks
// divided by the combined length of both strings.

// matchingBlockLen finds the longest common substring of a[alo:ahi] and
// b[blo:bhi] and recurses on the pieces to its left and right, returning the
// total matched length.
func matchingBlockLen(a, b string, alo, ahi, blo, bhi int) int {
	bestI, bestJ, bestSize := alo, blo, 0
	for i := alo; i < ahi; i++ {
		for j := blo; j < bhi; j++ {
			size := 0
			for i+size < ahi && j+size < bhi && a[i+size] == b[j+size] {
				size++
			}
			if size > bestSize {
				bestI, bestJ, bestSize = i, j, size
			}
		}
	}
	if bestSize == 0 {
		return 0
	}
	total := bestSize
	total += matchingBlockLen(a, b, alo, bestI, blo, bestJ)
	total += matchingBlockLen(a, b, bestI+bestSize, ahi, bestJ+bestSize, bhi)
	return total
}

// similarity returns a ratio in [0, 1].
func similarity(a, b string) float64 {
	if len(a)+len(b) == 0 {
		return 1
	}
	matched := matchingBlockLen(a, b, 0, len(a), 0, len(b))
	return 2 * float64(matched) / float64(len(a)+len(b))
}

// closestMatch returns the candidate most similar to name at or above the
// cutoff, or "" when none qualifies.
func closestMatch(name string, candidates []string, cutoff float64) string {
	best := ""
	bestRatio := 0.0
	for _, c := range candidates {
		if r := similarity(name, c); r >= cutoff && r > bestRatio {
			best = c
			bestRatio = r
		}
	}
	return best
}
