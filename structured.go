package blogkit

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BlogPostingData builds the schema.org BlogPosting object graph for a post.
// Image URLs are derived from the post title with the canonical slugifier,
// so they point at exactly the files the image generator produces.
func BlogPostingData(post Post, cfg SiteConfig) map[string]interface{} {
	cfg.setDefaults()
	postURL := BuildURL(cfg.URL, "blog", post.Slug)

	images := make([]string, 0, len(ImageSizes))
	base := strings.TrimSuffix(cfg.URL, "/")
	for _, size := range ImageSizes {
		images = append(images, base+"/generated/"+ImageFilename(size.Width, size.Height, post.Frontmatter.Title))
	}

	modified := post.Frontmatter.UpdatedDate
	if modified == "" {
		modified = post.Frontmatter.PubDate
	}

	words := WordCount(post.Content)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Frontmatter.Title,
		"description":   post.Frontmatter.Description,
		"image":         images,
		"url":           postURL,
		"datePublished": post.Frontmatter.PubDate,
		"dateModified":  modified,
		"wordCount":     words,
		"timeRequired":  ReadingTime(words),
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
		"author": map[string]string{
			"@type": "Person",
			"name":  post.Frontmatter.Author,
		},
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		},
	}
	if len(post.Frontmatter.Tags) > 0 {
		data["keywords"] = strings.Join(post.Frontmatter.Tags, ", ")
	}
	return data
}

// BlogPostingJSONLD returns the JSON-LD string for a BlogPosting schema.
func BlogPostingJSONLD(post Post, cfg SiteConfig) string {
	return marshalJSONLD(BlogPostingData(post, cfg))
}

// WebsiteJSONLD returns the JSON-LD string for the site-level WebSite schema.
func WebsiteJSONLD(cfg SiteConfig) string {
	cfg.setDefaults()
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Name,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	return marshalJSONLD(data)
}

// Breadcrumb is one segment of a BreadcrumbList trail.
type Breadcrumb struct {
	Name string
	URL  string
}

// BreadcrumbJSONLD returns the JSON-LD string for a BreadcrumbList schema.
func BreadcrumbJSONLD(crumbs []Breadcrumb) string {
	items := make([]map[string]interface{}, 0, len(crumbs))
	for i, c := range crumbs {
		items = append(items, map[string]interface{}{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     c.Name,
			"item":     c.URL,
		})
	}
	return marshalJSONLD(map[string]interface{}{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": items,
	})
}

func marshalJSONLD(data map[string]interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// WordCount counts whitespace-delimited tokens in a markdown body.
func WordCount(body string) int {
	return len(strings.Fields(body))
}

// ReadingTime returns an ISO-8601 duration for reading wordCount words at
// 200 words per minute, e.g. "PT4M".
func ReadingTime(wordCount int) string {
	minutes := (wordCount + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("PT%dM", minutes)
}

// ValidateStructuredData lints a generated BlogPosting object for SEO
// problems. It operates on derived output, not raw frontmatter: a post can
// pass frontmatter validation and still produce weak structured data.
func ValidateStructuredData(data map[string]interface{}) []string {
	var issues []string

	headline, _ := data["headline"].(string)
	if len(headline) < 10 {
		issues = append(issues, fmt.Sprintf("headline is %d characters; at least 10 required", len(headline)))
	}

	desc, _ := data["description"].(string)
	if len(desc) < 50 || len(desc) > 160 {
		issues = append(issues, fmt.Sprintf("description is %d characters; 50-160 required", len(desc)))
	}

	switch imgs := data["image"].(type) {
	case []string:
		if len(imgs) == 0 {
			issues = append(issues, "no images present; at least 1 required")
		}
	case []interface{}:
		if len(imgs) == 0 {
			issues = append(issues, "no images present; at least 1 required")
		}
	default:
		issues = append(issues, "no images present; at least 1 required")
	}

	keywords, _ := data["keywords"].(string)
	tags := FilterEmpty(strings.Split(keywords, ","))
	if len(tags) < 1 || len(tags) > 10 {
		issues = append(issues, fmt.Sprintf("%d keywords; 1-10 required", len(tags)))
	}

	return issues
}
