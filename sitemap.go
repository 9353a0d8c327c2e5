package blogkit

import (
	"encoding/xml"
	"fmt"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// GenerateSitemap serializes the site root plus one URL per published post.
// Posts must already be draft-filtered (Repository.GetAll).
func GenerateSitemap(posts []Post, cfg SiteConfig) (string, error) {
	cfg.setDefaults()
	urls := []sitemapURL{
		{Loc: BuildURL(cfg.URL)},
	}
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(cfg.URL, "blog", p.Slug),
			LastMod: p.Frontmatter.PubDate,
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	out, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("sitemap: marshal: %w", err)
	}
	return xml.Header + string(out) + "\n", nil
}
