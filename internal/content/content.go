// Package content loads Markdown posts with front matter from the
// content directory and materializes them as typed post records. The
// store is built once per build or server start and is read-only
// afterwards.
package content

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"

	"github.com/wiktorkowalski/blog/internal/post"
)

// Front matter may be YAML fenced with --- or TOML fenced with +++.
var matterFormats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
	frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
}

// dateFormats are tried in order when parsing front matter timestamps.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// matter is the typed front matter block of a content file.
type matter struct {
	Title       string   `yaml:"title" toml:"title"`
	Description string   `yaml:"description" toml:"description"`
	Author      string   `yaml:"author" toml:"author"`
	PubDatetime string   `yaml:"pubDatetime" toml:"pubDatetime"`
	ModDatetime string   `yaml:"modDatetime" toml:"modDatetime"`
	Slug        string   `yaml:"slug" toml:"slug"`
	Tags        []string `yaml:"tags" toml:"tags"`
	Featured    bool     `yaml:"featured" toml:"featured"`
	Draft       bool     `yaml:"draft" toml:"draft"`
}

// Store holds the loaded post collection.
type Store struct {
	posts []post.Post
}

// Posts returns the loaded posts in filesystem walk order.
func (s *Store) Posts() []post.Post {
	return s.posts
}

// Len returns the number of loaded posts.
func (s *Store) Len() int {
	return len(s.posts)
}

// Loader reads a content directory into a Store.
type Loader struct {
	dir    string
	strict bool
	log    zerolog.Logger
	md     goldmark.Markdown
	titler cases.Caser
}

// NewLoader creates a Loader for the given content directory. With
// strict set, any file that fails to parse aborts the load instead of
// being skipped.
func NewLoader(dir string, strict bool, log zerolog.Logger) *Loader {
	return &Loader{
		dir:    dir,
		strict: strict,
		log:    log,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
			),
		),
		titler: cases.Title(language.English),
	}
}

// Load walks the content directory and parses every .md file into a
// post record. Parse failures are logged and skipped unless the loader
// is strict.
func (l *Loader) Load() (*Store, error) {
	if _, err := os.Stat(l.dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("content directory %s not found", l.dir)
	}

	store := &Store{}
	walkErr := filepath.WalkDir(l.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking %s: %w", path, err)
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		p, err := l.loadFile(path)
		if err != nil {
			if l.strict {
				return err
			}
			l.log.Warn().Err(err).Str("path", path).Msg("skipping content file")
			return nil
		}

		store.posts = append(store.posts, p)
		l.log.Debug().Str("path", path).Str("slug", p.Slug()).Msg("loaded post")
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("loading content from %s: %w", l.dir, walkErr)
	}

	l.log.Info().Int("posts", store.Len()).Str("dir", l.dir).Msg("content loaded")
	return store, nil
}

func (l *Loader) loadFile(path string) (post.Post, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return post.Post{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var fm matter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm, matterFormats...)
	if err != nil {
		return post.Post{}, fmt.Errorf("parsing front matter of %s: %w", path, err)
	}

	publishedAt, err := parseDate(fm.PubDatetime)
	if err != nil {
		return post.Post{}, fmt.Errorf("post %s: %w", path, err)
	}

	var modifiedAt *time.Time
	if fm.ModDatetime != "" {
		mod, err := parseDate(fm.ModDatetime)
		if err != nil {
			return post.Post{}, fmt.Errorf("post %s: %w", path, err)
		}
		modifiedAt = &mod
	}

	title := fm.Title
	if title == "" {
		title = l.titleFromFilename(path)
	}

	var htmlBuf bytes.Buffer
	if err := l.md.Convert(body, &htmlBuf); err != nil {
		return post.Post{}, fmt.Errorf("rendering %s: %w", path, err)
	}

	description := fm.Description
	if description == "" {
		description = excerpt(string(body))
	}

	return post.Post{
		Title:        title,
		Description:  description,
		Body:         string(body),
		HTML:         template.HTML(htmlBuf.String()),
		Author:       fm.Author,
		PublishedAt:  publishedAt,
		ModifiedAt:   modifiedAt,
		Tags:         fm.Tags,
		Featured:     fm.Featured,
		Draft:        fm.Draft,
		SlugOverride: fm.Slug,
		SourcePath:   path,
	}, nil
}

// titleFromFilename turns "my-first-post.md" into "My First Post".
func (l *Loader) titleFromFilename(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	base = strings.ReplaceAll(base, "-", " ")
	base = strings.ReplaceAll(base, "_", " ")
	return l.titler.String(base)
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("missing pubDatetime")
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}

// excerptLimit caps the derived description length, in runes.
const excerptLimit = 160

// excerpt derives a short description from the Markdown body: the
// first plain-text line, skipping headings and code fences, truncated
// to excerptLimit runes.
func excerpt(body string) string {
	inFence := false
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "```") {
			inFence = !inFence
			continue
		}
		if inFence || line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		runes := []rune(line)
		if len(runes) > excerptLimit {
			return string(runes[:excerptLimit])
		}
		return line
	}
	return ""
}
