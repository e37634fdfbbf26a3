// Package post defines the blog's post record and the pure transforms
// over it: ordering, pagination views, and slug resolution.
package post

import (
	"html/template"
	"time"
)

// Post is a single blog post as loaded from a content file.
// Records are immutable once loaded; every transform in this package
// returns a new slice and leaves its input untouched.
type Post struct {
	// Title is the post headline. Required; the loader rejects files
	// without one.
	Title string

	// Description is the short summary used in listings and search.
	Description string

	// Body is the raw Markdown content after the front matter block.
	Body string

	// HTML is the rendered Markdown fragment, produced at load time.
	HTML template.HTML

	Author string

	// PublishedAt is the publish timestamp from the front matter.
	PublishedAt time.Time

	// ModifiedAt is the last-modified timestamp, nil when the front
	// matter does not record one.
	ModifiedAt *time.Time

	// Tags in authored order; may be empty.
	Tags []string

	Featured bool
	Draft    bool

	// SlugOverride, when non-empty, is used verbatim as the post slug
	// instead of deriving one from the title.
	SlugOverride string

	// SourcePath is the content file this post was loaded from.
	SourcePath string
}

// EffectiveDate is the timestamp used for ordering: the modification
// time if recorded, otherwise the publish time.
func (p Post) EffectiveDate() time.Time {
	if p.ModifiedAt != nil {
		return *p.ModifiedAt
	}
	return p.PublishedAt
}

// Permalink is the site-relative path of the post page.
func (p Post) Permalink() string {
	return "/posts/" + p.Slug() + "/"
}

// Published reports the subset of posts that are publicly visible at
// the given instant: not drafts and not published in the future.
func Published(posts []Post, now time.Time) []Post {
	visible := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.Draft || p.PublishedAt.After(now) {
			continue
		}
		visible = append(visible, p)
	}
	return visible
}
