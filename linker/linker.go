// Package linker proposes internal links between posts: post A should link
// to post B when B's title (or a significant keyword from it) appears in
// A's body and no such link exists yet.
package linker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/haasonsaas/blogkit"
)

// Suggestion proposes inserting a markdown link from one post to another.
type Suggestion struct {
	SourceSlug  string
	TargetSlug  string
	TargetTitle string
	Keyword     string // matched keyword; the full title in the simple variant
	Score       int    // 0 in the simple variant
}

var stopWords = map[string]bool{
	"about": true, "after": true, "against": true, "before": true,
	"being": true, "between": true, "could": true, "doing": true,
	"during": true, "every": true, "from": true, "have": true,
	"here": true, "into": true, "more": true, "most": true,
	"other": true, "over": true, "should": true, "some": true,
	"than": true, "that": true, "their": true, "them": true,
	"then": true, "there": true, "these": true, "they": true,
	"this": true, "those": true, "through": true, "under": true,
	"until": true, "what": true, "when": true,
	"where": true, "which": true, "while": true, "will": true,
	"with": true, "would": true, "your": true,
}

// Suggest is the simple variant: for every ordered pair of published posts,
// suggest a link when the target's exact title appears in the source body
// and the source does not already link to the target.
func Suggest(posts []blogkit.Post) []Suggestion {
	var out []Suggestion
	for _, source := range posts {
		if source.Frontmatter.Draft {
			continue
		}
		for _, target := range posts {
			if target.Slug == source.Slug || target.Frontmatter.Draft {
				continue
			}
			title := target.Frontmatter.Title
			if title == "" || !strings.Contains(source.Content, title) {
				continue
			}
			if hasLink(source.Content, target.Slug) {
				continue
			}
			out = append(out, Suggestion{
				SourceSlug:  source.Slug,
				TargetSlug:  target.Slug,
				TargetTitle: title,
				Keyword:     title,
			})
		}
	}
	return out
}

// SuggestScored is the keyword variant: match significant title keywords as
// whole words in the source body, score by keyword length and tag overlap,
// keep only the first keyword per (source, target) pair, and return the
// result grouped by source with each group sorted by score descending.
func SuggestScored(posts []blogkit.Post) []Suggestion {
	var out []Suggestion
	for _, source := range posts {
		if source.Frontmatter.Draft {
			continue
		}
		body := " " + normalizeText(source.Content) + " "
		var group []Suggestion
		for _, target := range posts {
			if target.Slug == source.Slug || target.Frontmatter.Draft {
				continue
			}
			if hasLink(source.Content, target.Slug) {
				continue
			}
			for _, kw := range TitleKeywords(target.Frontmatter.Title) {
				if !strings.Contains(body, " "+kw+" ") {
					continue
				}
				group = append(group, Suggestion{
					SourceSlug:  source.Slug,
					TargetSlug:  target.Slug,
					TargetTitle: target.Frontmatter.Title,
					Keyword:     kw,
					Score:       len(kw)*2 + sharedTagCount(source, target)*5,
				})
				break // first matched keyword wins for this pair
			}
		}
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Score > group[j].Score
		})
		out = append(out, group...)
	}
	return out
}

// TitleKeywords extracts significant keywords from a post title: lowercase,
// split on whitespace/hyphen/comma, strip non-alphanumerics, drop stop
// words and short words, and naively singularize.
func TitleKeywords(title string) []string {
	fields := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '-' || r == ','
	})
	var out []string
	for _, f := range fields {
		word := stripNonAlnum(f)
		if len(word) <= 3 || stopWords[word] {
			continue
		}
		out = append(out, singularize(word))
	}
	return out
}

// singularize strips a trailing plural suffix. It is a naive heuristic:
// "strategies" -> "strategy", "metrics" -> "metric". Irregular nouns come
// out wrong, which is acceptable for a human-reviewed suggestion tool.
func singularize(word string) string {
	if strings.HasSuffix(word, "ies") && len(word) > 4 {
		return strings.TrimSuffix(word, "ies") + "y"
	}
	if strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") {
		return strings.TrimSuffix(word, "s")
	}
	return word
}

// Apply rewrites the source file on disk, inserting a markdown link to the
// target at the first literal occurrence of the target title in the body.
// It is idempotent: if the file already links to the target, nothing is
// written. Returns whether a link was inserted.
func Apply(postsDir string, s Suggestion) (bool, error) {
	path := filepath.Join(postsDir, s.SourceSlug+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("linker: read %s: %w", path, err)
	}
	raw := string(data)
	if hasLink(raw, s.TargetSlug) {
		return false, nil
	}

	// Only touch the body: titles can legitimately appear inside the
	// frontmatter header too.
	bodyStart := 0
	if strings.HasPrefix(raw, "---\n") {
		if i := strings.Index(raw[4:], "\n---\n"); i >= 0 {
			bodyStart = 4 + i + 5
		}
	}
	body := raw[bodyStart:]
	if !strings.Contains(body, s.TargetTitle) {
		return false, nil
	}
	link := "[" + s.TargetTitle + "](/blog/" + s.TargetSlug + ")"
	updated := raw[:bodyStart] + strings.Replace(body, s.TargetTitle, link, 1)

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return false, fmt.Errorf("linker: create temp file: %w", err)
	}
	if _, err := tmp.WriteString(updated); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return false, fmt.Errorf("linker: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return false, fmt.Errorf("linker: close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return false, fmt.Errorf("linker: rename into place: %w", err)
	}
	return true, nil
}

func hasLink(content, slug string) bool {
	return strings.Contains(content, "](/blog/"+slug+")")
}

// sharedTagCount counts tags (normalized) present on both posts.
func sharedTagCount(a, b blogkit.Post) int {
	set := make(map[string]struct{}, len(a.Frontmatter.Tags))
	for _, t := range a.Frontmatter.Tags {
		set[blogkit.NormalizeTag(t)] = struct{}{}
	}
	n := 0
	for _, t := range b.Frontmatter.Tags {
		if _, ok := set[blogkit.NormalizeTag(t)]; ok {
			n++
		}
	}
	return n
}

// normalizeText lowercases and replaces every non-alphanumeric rune with a
// space, so keyword matching sees whole words only.
func normalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func stripNonAlnum(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
