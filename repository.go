package blogkit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gookit/slog"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = errors.New("blogkit: post not found")

// Repository loads every markdown post from the posts directory and serves
// the canonical, date-sorted list to all downstream consumers. A load is a
// full rescan; posts are immutable between loads.
type Repository struct {
	cfg   SiteConfig
	log   *slog.Logger
	posts []Post
}

// NewRepository creates a Repository for the given site config.
func NewRepository(cfg SiteConfig) *Repository {
	cfg.setDefaults()
	return &Repository{cfg: cfg, log: slog.Std().Logger}
}

// SetLogger replaces the logger used for per-file load diagnostics.
func (r *Repository) SetLogger(l *slog.Logger) {
	r.log = l
}

// Load scans the posts directory, parsing and validating every .md file.
// A file that cannot be read is logged and skipped; it never fails the
// batch. Posts with validation errors are still constructed from defaulted
// values so tooling can display them.
func (r *Repository) Load() error {
	entries, err := os.ReadDir(r.cfg.PostsDir)
	if err != nil {
		return fmt.Errorf("read posts dir %s: %w", r.cfg.PostsDir, err)
	}

	var posts []Post
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") {
			continue
		}
		path := filepath.Join(r.cfg.PostsDir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			r.log.Warnf("skipping %s: %v", path, err)
			continue
		}
		slug := strings.TrimSuffix(name, ".md")
		parsed := ParseFrontmatter(string(data))

		result := Validate(parsed.Frontmatter, name)
		for _, issue := range result.Errors {
			r.log.Errorf("%s: %s: %s", name, issue.Field, issue.Message)
		}
		for _, issue := range result.Warnings {
			r.log.Warnf("%s: %s: %s", name, issue.Field, issue.Message)
		}

		posts = append(posts, Post{
			Slug:        slug,
			Frontmatter: r.buildFrontmatter(slug, parsed.Frontmatter),
			Content:     parsed.Content,
		})
	}

	// Most recent first. The sort is stable: posts sharing a pubDate keep
	// their directory encounter order.
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Frontmatter.PubDate > posts[j].Frontmatter.PubDate
	})
	r.posts = posts
	return nil
}

// buildFrontmatter applies field defaults and shape normalization to a raw
// parsed record.
func (r *Repository) buildFrontmatter(slug string, fm map[string]any) Frontmatter {
	out := Frontmatter{
		Title:       stringOr(fm, "title", titleFromSlug(slug)),
		Description: stringOr(fm, "description", r.cfg.PlaceholderDescription),
		Author:      stringOr(fm, "author", r.cfg.Author),
		PubDate:     stringOr(fm, "pubDate", time.Now().Format("2006-01-02")),
		UpdatedDate: stringOr(fm, "updatedDate", ""),
		Featured:    boolValue(fm["featured"]),
		Draft:       boolValue(fm["draft"]),
		Image:       PostImage{URL: r.cfg.PlaceholderImage},
	}

	if tags, ok := tagStrings(fm["tags"]); ok {
		out.Tags = tags
	} else {
		out.Tags = []string{}
	}

	switch v := fm["image"].(type) {
	case string:
		if v != "" {
			out.Image = PostImage{URL: v}
		}
	case map[string]string:
		if v["url"] != "" {
			out.Image = PostImage{URL: v["url"], Alt: v["alt"]}
		}
	case map[string]any:
		if url, _ := stringField(v, "url"); url != "" {
			alt, _ := stringField(v, "alt")
			out.Image = PostImage{URL: url, Alt: alt}
		}
	}

	// A series only materializes when both name and part are present.
	name, _ := stringField(fm, "seriesName")
	if part, ok := intField(fm, "seriesPart"); ok && name != "" {
		desc, _ := stringField(fm, "seriesDescription")
		out.Series = &Series{Name: name, Part: part, Description: desc}
	}

	return out
}

// GetAll returns every published (non-draft) post, most recent first.
func (r *Repository) GetAll() []Post {
	var out []Post
	for _, p := range r.posts {
		if !p.Frontmatter.Draft {
			out = append(out, p)
		}
	}
	return out
}

// GetAllWithDrafts returns every loaded post including drafts, most recent
// first. Intended for authoring tools; production output must use GetAll.
func (r *Repository) GetAllWithDrafts() []Post {
	return r.posts
}

// GetBySlug returns a single published post by slug.
func (r *Repository) GetBySlug(slug string) (Post, error) {
	for _, p := range r.GetAll() {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

// GetFeatured returns published posts marked featured.
func (r *Repository) GetFeatured() []Post {
	var out []Post
	for _, p := range r.GetAll() {
		if p.Frontmatter.Featured {
			out = append(out, p)
		}
	}
	return out
}

// GetByTag returns published posts containing the given tag.
func (r *Repository) GetByTag(tag string) []Post {
	normalized := NormalizeTag(tag)
	var out []Post
	for _, p := range r.GetAll() {
		for _, t := range p.Frontmatter.Tags {
			if NormalizeTag(t) == normalized {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// GetAllTags returns the deduplicated set of tags across published posts.
func (r *Repository) GetAllTags() []string {
	set := make(map[string]struct{})
	for _, p := range r.GetAll() {
		for _, t := range p.Frontmatter.Tags {
			set[NormalizeTag(t)] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Related returns published posts sharing at least one tag with post.
func (r *Repository) Related(post Post) []Post {
	tagSet := make(map[string]struct{})
	for _, t := range post.Frontmatter.Tags {
		tagSet[NormalizeTag(t)] = struct{}{}
	}
	var out []Post
	for _, p := range r.GetAll() {
		if p.Slug == post.Slug {
			continue
		}
		for _, t := range p.Frontmatter.Tags {
			if _, ok := tagSet[NormalizeTag(t)]; ok {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func stringOr(fm map[string]any, key, fallback string) string {
	if s, ok := stringField(fm, key); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

// boolValue coerces the boolean-ish shapes the parser can produce. The
// string "true" is true; every other non-bool value is false.
func boolValue(raw any) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

func intField(fm map[string]any, key string) (int, bool) {
	switch v := fm[key].(type) {
	case int:
		return v, true
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n, true
		}
	}
	return 0, false
}

// titleFromSlug derives a readable fallback title from a filename slug.
// e.g. "my-first-post" -> "My First Post"
func titleFromSlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
