package match

import "strings"

// StringSimilarity returns a [0,1] similarity for two strings using the
// standard ratio semantics: 2*M/(len(a)+len(b)), where M is the total number
// of matched characters found by repeatedly taking the longest common
// substring and recursing on the pieces before and after it. Comparison is
// case-insensitive. Returns 0 if either string is empty and 1 for identical
// non-empty strings. Symmetric and pure.
func StringSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	m := matchingRunes(ra, rb)
	return 2.0 * float64(m) / float64(len(ra)+len(rb))
}

// Jaccard returns the Jaccard index of two token sequences treated as sets:
// |intersection| / |union|. Returns 0 if either sequence is empty.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[t] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[t] = struct{}{}
	}

	intersection := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

// matchingRunes counts the characters covered by the matching blocks of a
// and b: the longest common substring is matched first, then the regions to
// its left and right are matched recursively.
func matchingRunes(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	ai, bi, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingRunes(a[:ai], b[:bi]) +
		matchingRunes(a[ai+size:], b[bi+size:])
}

// longestCommonSubstring finds the longest run of runes common to a and b,
// returning its start offsets and length. Ties go to the earliest block.
func longestCommonSubstring(a, b []rune) (ai, bi, size int) {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] != b[j-1] {
				cur[j] = 0
				continue
			}
			cur[j] = prev[j-1] + 1
			if cur[j] > size {
				size = cur[j]
				ai = i - size
				bi = j - size
			}
		}
		prev, cur = cur, prev
		clear(cur)
	}
	return ai, bi, size
}
