package blogkit

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// knownFields is every top-level frontmatter key the pipeline understands.
var knownFields = map[string]bool{
	"title":             true,
	"description":       true,
	"author":            true,
	"pubDate":           true,
	"updatedDate":       true,
	"featured":          true,
	"draft":             true,
	"tags":              true,
	"image":             true,
	"seriesName":        true,
	"seriesPart":        true,
	"seriesDescription": true,
}

// fieldAliases maps common misspellings and synonyms to the canonical key,
// used for "did you mean" suggestions on unknown fields.
var fieldAliases = map[string]string{
	"date":       "pubDate",
	"published":  "pubDate",
	"updated":    "updatedDate",
	"category":   "tags",
	"categories": "tags",
	"desc":       "description",
	"summary":    "description",
	"img":        "image",
	"thumbnail":  "image",
}

var reTag = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
var reDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Validate classifies a parsed frontmatter record into errors and warnings.
// It is a pure function over the record and filename: no disk access, no
// side effects, and it never panics regardless of the value types present.
// The only time-dependent rule is the future-date comparison.
func Validate(fm map[string]any, filename string) ValidationResult {
	var res ValidationResult

	addError := func(field, message, suggestion string) {
		res.Errors = append(res.Errors, Issue{Field: field, Message: message, Suggestion: suggestion})
	}
	addWarning := func(field, message, suggestion string) {
		res.Warnings = append(res.Warnings, Issue{Field: field, Message: message, Suggestion: suggestion})
	}

	// Required fields, fixed order so output is deterministic.
	title, hasTitle := stringField(fm, "title")
	if !hasTitle || strings.TrimSpace(title) == "" {
		addError("title", "missing required field: title", "")
	} else if len(title) < 10 || len(title) > 60 {
		addWarning("title", fmt.Sprintf("title is %d characters; 10-60 is recommended for SEO", len(title)), "")
	}

	author, hasAuthor := stringField(fm, "author")
	if !hasAuthor || strings.TrimSpace(author) == "" {
		addError("author", "missing required field: author", "the site author will be used as a fallback at load time")
	}

	pubDate, hasPubDate := stringField(fm, "pubDate")
	switch {
	case !hasPubDate || strings.TrimSpace(pubDate) == "":
		addError("pubDate", "missing required field: pubDate", "")
	case !reDate.MatchString(pubDate):
		addError("pubDate", fmt.Sprintf("pubDate %q is not in YYYY-MM-DD format", pubDate), "use a date like 2024-01-15")
	default:
		t, err := time.Parse("2006-01-02", pubDate)
		if err != nil {
			addError("pubDate", fmt.Sprintf("pubDate %q is not a valid calendar date", pubDate), "")
		} else if t.After(time.Now()) {
			addWarning("pubDate", fmt.Sprintf("pubDate %q is in the future; the post will not look published", pubDate), "")
		}
	}

	desc, hasDesc := stringField(fm, "description")
	if !hasDesc || strings.TrimSpace(desc) == "" {
		addError("description", "missing required field: description", "")
	} else if len(desc) < 120 || len(desc) > 160 {
		addWarning("description", fmt.Sprintf("description is %d characters; 120-160 is recommended for SEO", len(desc)), "")
	}

	validateBoolField(fm, "featured", addError)
	validateBoolField(fm, "draft", addError)

	if raw, ok := fm["tags"]; ok {
		tags, ok := tagStrings(raw)
		if !ok {
			addWarning("tags", "tags should be a list of strings", "")
		} else {
			if len(tags) > 10 {
				addWarning("tags", fmt.Sprintf("%d tags; 10 or fewer is recommended", len(tags)), "")
			}
			for _, tag := range tags {
				if !reTag.MatchString(tag) {
					addWarning("tags", fmt.Sprintf("tag %q does not match lowercase-hyphen form", tag), NormalizeTag(tag))
				}
			}
		}
	}

	if raw, ok := fm["image"]; ok {
		validateImage(raw, addWarning)
	}

	// Unknown fields, sorted so output is deterministic.
	var unknown []string
	for key := range fm {
		if !knownFields[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		if canonical, ok := fieldAliases[key]; ok {
			addWarning(key, fmt.Sprintf("unknown field %q", key), fmt.Sprintf("did you mean %q?", canonical))
		} else {
			addWarning(key, fmt.Sprintf("unknown field %q will be ignored", key), "")
		}
	}

	res.Valid = len(res.Errors) == 0
	return res
}

// validateBoolField checks that an optional boolean field is a bool. The
// literal strings "true"/"false" pass silently since the loader coerces
// them; anything else non-boolean is an error.
func validateBoolField(fm map[string]any, field string, addError func(field, message, suggestion string)) {
	raw, ok := fm[field]
	if !ok {
		return
	}
	switch v := raw.(type) {
	case bool:
	case string:
		if v != "true" && v != "false" {
			addError(field, fmt.Sprintf("%s must be true or false, got %q", field, v), "")
		}
	default:
		addError(field, fmt.Sprintf("%s must be true or false", field), "")
	}
}

func validateImage(raw any, addWarning func(field, message, suggestion string)) {
	var url, alt string
	var hasURL, hasAlt bool
	switch v := raw.(type) {
	case string:
		url, hasURL = v, v != ""
	case map[string]string:
		url, hasURL = v["url"], v["url"] != ""
		alt, hasAlt = v["alt"], v["alt"] != ""
	case map[string]any:
		url, hasURL = stringField(v, "url")
		alt, hasAlt = stringField(v, "alt")
	default:
		addWarning("image", "image should be an object with url and alt", "")
		return
	}
	_ = alt
	if !hasURL {
		addWarning("image", "image is missing a url; the placeholder image will be used", "")
	} else if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		addWarning("image", fmt.Sprintf("image url %q should be an absolute http(s) URL", url), "")
	}
	if hasURL && !hasAlt {
		addWarning("image", "image is missing alt text", "add a short description for accessibility")
	}
}

// stringField returns fm[key] if present and a string.
func stringField(fm map[string]any, key string) (string, bool) {
	v, ok := fm[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// tagStrings coerces the accepted tag shapes into a flat []string: a string
// slice, a permissive []any of strings, or a single comma-delimited string.
func tagStrings(raw any) ([]string, bool) {
	switch v := raw.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	case string:
		return SplitTags(v), true
	}
	return nil, false
}

// NormalizeTag rewrites a free-form tag into lowercase-hyphen form.
func NormalizeTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	tag = strings.Join(strings.Fields(tag), "-")
	return tag
}

// SplitTags splits a comma-delimited tag string into trimmed parts.
func SplitTags(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
