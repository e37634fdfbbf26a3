package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func testLoader(t *testing.T, dir string, strict bool) *Loader {
	t.Helper()
	return NewLoader(dir, strict, zerolog.Nop())
}

const yamlPost = `---
title: Live Feature Flags with AWS Systems Manager and Node.js
description: Flip features at runtime without redeploying.
author: Wiktor
pubDatetime: 2023-01-01T10:00:00Z
modDatetime: 2023-06-01T10:00:00Z
slug: live-feature-flags-with-aws-systems-manager-and-nodejs
tags:
  - aws
  - nodejs
featured: true
draft: false
---

## Why feature flags

Because redeploys are slow.
`

func TestLoad_YAMLFrontMatter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "posts/feature-flags.md", yamlPost)

	store, err := testLoader(t, dir, true).Load()
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	p := store.Posts()[0]
	assert.Equal(t, "Live Feature Flags with AWS Systems Manager and Node.js", p.Title)
	assert.Equal(t, "Flip features at runtime without redeploying.", p.Description)
	assert.Equal(t, "Wiktor", p.Author)
	assert.Equal(t, time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC), p.PublishedAt)
	require.NotNil(t, p.ModifiedAt)
	assert.Equal(t, time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC), *p.ModifiedAt)
	assert.Equal(t, []string{"aws", "nodejs"}, p.Tags)
	assert.True(t, p.Featured)
	assert.False(t, p.Draft)
	assert.Equal(t, "live-feature-flags-with-aws-systems-manager-and-nodejs", p.Slug())
	assert.Contains(t, p.Body, "## Why feature flags")
	assert.Contains(t, string(p.HTML), "<h2")
}

func TestLoad_TOMLFrontMatter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "posts/toml-post.md", `+++
title = "A TOML Fronted Post"
pubDatetime = "2023-03-05"
tags = ["meta"]
+++

Body text here.
`)

	store, err := testLoader(t, dir, true).Load()
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	p := store.Posts()[0]
	assert.Equal(t, "A TOML Fronted Post", p.Title)
	assert.Equal(t, time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC), p.PublishedAt)
	assert.Nil(t, p.ModifiedAt)
	assert.Equal(t, "a-toml-fronted-post", p.Slug())
}

func TestLoad_TitleFallsBackToFilename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "posts/my-first-post.md", `---
pubDatetime: 2023-02-01
---

Hello.
`)

	store, err := testLoader(t, dir, true).Load()
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())
	assert.Equal(t, "My First Post", store.Posts()[0].Title)
}

func TestLoad_DescriptionFallsBackToExcerpt(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "posts/excerpt.md", `---
title: Excerpted
pubDatetime: 2023-02-01
---

# Heading is skipped

First real paragraph line.
`)

	store, err := testLoader(t, dir, true).Load()
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())
	assert.Equal(t, "First real paragraph line.", store.Posts()[0].Description)
}

func TestLoad_MissingDateSkippedWhenNotStrict(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "posts/ok.md", "---\ntitle: Fine\npubDatetime: 2023-01-01\n---\n\nok\n")
	writeFile(t, dir, "posts/broken.md", "---\ntitle: No Date\n---\n\nbroken\n")

	store, err := testLoader(t, dir, false).Load()
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())
	assert.Equal(t, "Fine", store.Posts()[0].Title)
}

func TestLoad_MissingDateFailsWhenStrict(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "posts/broken.md", "---\ntitle: No Date\n---\n\nbroken\n")

	_, err := testLoader(t, dir, true).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pubDatetime")
}

func TestLoad_IgnoresNonMarkdownFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "posts/notes.txt", "not a post")
	writeFile(t, dir, "posts/real.md", "---\ntitle: Real\npubDatetime: 2023-01-01\n---\n\nok\n")

	store, err := testLoader(t, dir, true).Load()
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := testLoader(t, filepath.Join(t.TempDir(), "nope"), false).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{name: "rfc3339", value: "2023-01-02T15:04:05Z", want: time.Date(2023, 1, 2, 15, 4, 5, 0, time.UTC)},
		{name: "date only", value: "2023-01-02", want: time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)},
		{name: "space separated", value: "2023-01-02 15:04:05", want: time.Date(2023, 1, 2, 15, 4, 5, 0, time.UTC)},
		{name: "empty", value: "", wantErr: true},
		{name: "garbage", value: "next tuesday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "plain line", body: "Just a line.\n\nMore.", want: "Just a line."},
		{name: "skips headings", body: "# Title\n\nReal text.", want: "Real text."},
		{name: "skips code fences", body: "```go\ncode\n```\n\nAfter the fence.", want: "After the fence."},
		{name: "empty body", body: "", want: ""},
		{name: "only headings", body: "# One\n## Two", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, excerpt(tt.body))
		})
	}
}
