package post

import "strings"

// Slug returns the canonical URL-safe identifier for the post. A
// non-empty SlugOverride wins verbatim; otherwise the slug is derived
// from the title. Derivation is deterministic and looks only at this
// post, so two posts with identical titles produce identical slugs —
// disambiguation, if wanted, is the content author's job.
func (p Post) Slug() string {
	if p.SlugOverride != "" {
		return p.SlugOverride
	}
	return Slugify(p.Title)
}

// Slugify derives a slug from a title: lower-case, whitespace runs
// become single hyphens, everything outside [a-z0-9-] is dropped,
// hyphen runs collapse, and leading/trailing hyphens are trimmed.
// A title made entirely of stripped characters yields "".
func Slugify(title string) string {
	lowered := strings.ToLower(title)

	// Whitespace runs to single hyphens first, so "C++ & Rust" keeps a
	// separator where the punctuation drops out.
	hyphenated := strings.Join(strings.Fields(lowered), "-")

	var b strings.Builder
	b.Grow(len(hyphenated))
	lastHyphen := false
	for _, r := range hyphenated {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == '-':
			if !lastHyphen {
				b.WriteRune('-')
			}
			lastHyphen = true
		}
	}

	return strings.Trim(b.String(), "-")
}
