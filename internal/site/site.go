// Package site orchestrates a full build: load order, filter to
// published posts, sort, and write the machine artifacts the
// presentation layer consumes — an ordered post manifest, the search
// index, per-post HTML fragments, and copied static assets.
package site

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/wiktorkowalski/blog/internal/config"
	"github.com/wiktorkowalski/blog/internal/content"
	"github.com/wiktorkowalski/blog/internal/post"
	"github.com/wiktorkowalski/blog/internal/search"
)

// Manifest is the top-level shape of posts.json. PageSize is carried so
// the rendering collaborator paginates with the same constant the site
// was configured with.
type Manifest struct {
	SiteTitle string         `json:"siteTitle"`
	BaseURL   string         `json:"baseUrl"`
	PageSize  int            `json:"pageSize"`
	Posts     []ManifestPost `json:"posts"`
}

// ManifestPost is one ordered entry in posts.json.
type ManifestPost struct {
	Slug        string     `json:"slug"`
	Permalink   string     `json:"permalink"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Author      string     `json:"author,omitempty"`
	PublishedAt time.Time  `json:"publishedAt"`
	ModifiedAt  *time.Time `json:"modifiedAt,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Featured    bool       `json:"featured,omitempty"`
}

// Builder writes build artifacts for a loaded content store.
type Builder struct {
	cfg config.Config
	log zerolog.Logger
	// now is the clock used for draft/future filtering.
	now func() time.Time
}

// NewBuilder creates a Builder for the given configuration.
func NewBuilder(cfg config.Config, log zerolog.Logger) *Builder {
	return &Builder{cfg: cfg, log: log, now: time.Now}
}

// Build runs the pipeline once: published posts are sorted most recent
// first, then posts.json, search.json, and one HTML fragment per post
// are written under the output directory, followed by static assets.
// The output directory is recreated from scratch on every build.
func (b *Builder) Build(store *content.Store) error {
	start := b.now()

	visible := post.Published(store.Posts(), start)
	sorted := post.Sort(visible)
	b.log.Info().
		Int("total", store.Len()).
		Int("published", len(sorted)).
		Msg("starting build")

	if err := os.RemoveAll(b.cfg.OutputDir); err != nil {
		return fmt.Errorf("cleaning output directory %s: %w", b.cfg.OutputDir, err)
	}
	if err := os.MkdirAll(b.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", b.cfg.OutputDir, err)
	}

	if err := b.writeManifest(sorted); err != nil {
		return err
	}
	if err := b.writeSearchIndex(sorted); err != nil {
		return err
	}
	if err := b.writeFragments(sorted); err != nil {
		return err
	}
	if err := b.copyStatic(); err != nil {
		return err
	}

	b.log.Info().
		Int("posts", len(sorted)).
		Str("outputDir", b.cfg.OutputDir).
		Dur("took", time.Since(start)).
		Msg("build finished")
	return nil
}

func (b *Builder) writeManifest(sorted []post.Post) error {
	manifest := Manifest{
		SiteTitle: b.cfg.SiteTitle,
		BaseURL:   b.cfg.BaseURL,
		PageSize:  b.cfg.PageSize,
		Posts:     make([]ManifestPost, 0, len(sorted)),
	}
	for _, p := range sorted {
		manifest.Posts = append(manifest.Posts, ManifestPost{
			Slug:        p.Slug(),
			Permalink:   p.Permalink(),
			Title:       p.Title,
			Description: p.Description,
			Author:      p.Author,
			PublishedAt: p.PublishedAt,
			ModifiedAt:  p.ModifiedAt,
			Tags:        p.Tags,
			Featured:    p.Featured,
		})
	}
	return b.writeJSON("posts.json", manifest)
}

func (b *Builder) writeSearchIndex(sorted []post.Post) error {
	return b.writeJSON("search.json", search.Build(sorted))
}

func (b *Builder) writeJSON(name string, v any) error {
	path := filepath.Join(b.cfg.OutputDir, name)
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	b.log.Debug().Str("path", path).Msg("wrote artifact")
	return nil
}

// writeFragments writes the rendered Markdown of each post to
// posts/<slug>/index.html. These are bare fragments; page chrome is the
// rendering collaborator's concern.
func (b *Builder) writeFragments(sorted []post.Post) error {
	for _, p := range sorted {
		slug := p.Slug()
		if slug == "" {
			// A title that strips down to nothing has no stable URL.
			b.log.Warn().Str("title", p.Title).Str("source", p.SourcePath).
				Msg("post has empty slug, skipping fragment")
			continue
		}
		dir := filepath.Join(b.cfg.OutputDir, "posts", slug)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		path := filepath.Join(dir, "index.html")
		if err := os.WriteFile(path, []byte(p.HTML), 0o644); err != nil {
			return fmt.Errorf("writing fragment %s: %w", path, err)
		}
	}
	return nil
}

func (b *Builder) copyStatic() error {
	if b.cfg.StaticDir == "" {
		return nil
	}
	if _, err := os.Stat(b.cfg.StaticDir); os.IsNotExist(err) {
		b.log.Debug().Str("dir", b.cfg.StaticDir).Msg("no static directory, skipping copy")
		return nil
	}
	if err := copyDirContents(b.cfg.StaticDir, b.cfg.OutputDir); err != nil {
		return fmt.Errorf("copying static assets: %w", err)
	}
	return nil
}

// copyDirContents recursively copies the contents of src into dst.
func copyDirContents(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}
		dstPath := filepath.Join(dst, relPath)

		if d.IsDir() {
			if err := os.MkdirAll(dstPath, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", dstPath, err)
			}
			return nil
		}
		return copyFile(path, dstPath)
	})
}

func copyFile(srcFile, dstFile string) error {
	srcF, err := os.Open(srcFile)
	if err != nil {
		return fmt.Errorf("opening %s: %w", srcFile, err)
	}
	defer srcF.Close()

	if err := os.MkdirAll(filepath.Dir(dstFile), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dstFile, err)
	}

	dstF, err := os.Create(dstFile)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dstFile, err)
	}
	defer dstF.Close()

	if _, err := io.Copy(dstF, srcF); err != nil {
		return fmt.Errorf("copying %s to %s: %w", srcFile, dstFile, err)
	}
	return nil
}
