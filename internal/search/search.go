// Package search builds the flattened document set consumed by the
// site's client-side fuzzy search.
package search

import "github.com/wiktorkowalski/blog/internal/post"

// Document is one searchable post, flattened for serialization. The
// packaging step ships these to the browser as JSON; matching and
// ranking happen entirely on the client.
type Document struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Body        string   `json:"body"`
	Tags        []string `json:"tags"`
	Slug        string   `json:"slug"`
}

// Build emits one Document per non-draft post, in the order received.
// Drafts never reach the index regardless of what the caller passes in.
// Build does not re-sort: callers wanting ordered search results pass
// already-sorted input.
func Build(posts []post.Post) []Document {
	docs := make([]Document, 0, len(posts))
	for _, p := range posts {
		if p.Draft {
			continue
		}
		docs = append(docs, Document{
			Title:       p.Title,
			Description: p.Description,
			Body:        p.Body,
			Tags:        p.Tags,
			Slug:        p.Slug(),
		})
	}
	return docs
}
