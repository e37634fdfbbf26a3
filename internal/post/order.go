package post

import "sort"

// Sort returns the posts ordered most recent first by effective date
// (modification time when recorded, publish time otherwise). The sort
// is stable: posts with equal effective dates keep their relative input
// order. Drafts and future-dated posts are NOT filtered here; callers
// that need public listings filter with Published first.
func Sort(posts []Post) []Post {
	sorted := make([]Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EffectiveDate().After(sorted[j].EffectiveDate())
	})
	return sorted
}

// Latest returns the n most recent posts by effective date. When n
// exceeds the number of posts the full sorted list is returned; n <= 0
// yields an empty list.
func Latest(posts []Post, n int) []Post {
	sorted := Sort(posts)
	if n < 0 {
		n = 0
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
