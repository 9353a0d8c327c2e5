package blogkit

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

// feedItemLimit caps both feeds at the most recent posts.
const feedItemLimit = 50

// cdata marshals its text inside a CDATA section. The encoder splits any
// literal "]]>" in the text, so titles and descriptions can never break
// the section.
type cdata struct {
	Text string `xml:",cdata"`
}

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	AtomNS  string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title          string    `xml:"title"`
	Link           string    `xml:"link"`
	Description    string    `xml:"description"`
	Language       string    `xml:"language"`
	ManagingEditor string    `xml:"managingEditor,omitempty"`
	WebMaster      string    `xml:"webMaster,omitempty"`
	LastBuildDate  string    `xml:"lastBuildDate"`
	PubDate        string    `xml:"pubDate"`
	AtomLink       atomLink  `xml:"atom:link"`
	Items          []rssItem `xml:"item"`
}

type rssItem struct {
	Title       cdata    `xml:"title"`
	Link        string   `xml:"link"`
	Description cdata    `xml:"description"`
	PubDate     string   `xml:"pubDate"`
	GUID        rssGUID  `xml:"guid"`
	Categories  []string `xml:"category"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type atomFeed struct {
	XMLName  xml.Name    `xml:"feed"`
	XMLNS    string      `xml:"xmlns,attr"`
	Title    cdata       `xml:"title"`
	Subtitle string      `xml:"subtitle"`
	Links    []atomLink  `xml:"link"`
	ID       string      `xml:"id"`
	Updated  string      `xml:"updated"`
	Entries  []atomEntry `xml:"entry"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr,omitempty"`
	Type string `xml:"type,attr,omitempty"`
}

type atomEntry struct {
	Title      cdata          `xml:"title"`
	Link       atomLink       `xml:"link"`
	ID         string         `xml:"id"`
	Published  string         `xml:"published"`
	Updated    string         `xml:"updated"`
	Summary    cdata          `xml:"summary"`
	Categories []atomCategory `xml:"category"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

// GenerateRSS serializes the most recent posts into an RSS 2.0 document.
// Posts must already be draft-filtered and date-sorted (Repository.GetAll).
// An unparseable pubDate propagates as an error: it means bad data slipped
// past validation, and a broken feed is worse than a failed build.
func GenerateRSS(posts []Post, cfg SiteConfig) (string, error) {
	cfg.setDefaults()
	posts = capPosts(posts)

	lastBuild := time.Now()
	items := make([]rssItem, 0, len(posts))
	for i, p := range posts {
		t, err := time.Parse("2006-01-02", p.Frontmatter.PubDate)
		if err != nil {
			return "", fmt.Errorf("rss: post %s has unparseable pubDate %q: %w", p.Slug, p.Frontmatter.PubDate, err)
		}
		if i == 0 {
			lastBuild = t
		}
		postURL := BuildURL(cfg.URL, "blog", p.Slug)
		items = append(items, rssItem{
			Title:       cdata{p.Frontmatter.Title},
			Link:        postURL,
			Description: cdata{p.Frontmatter.Description},
			PubDate:     t.Format(time.RFC1123Z),
			GUID:        rssGUID{IsPermaLink: true, Value: postURL},
			Categories:  p.Frontmatter.Tags,
		})
	}

	feed := rssXML{
		Version: "2.0",
		AtomNS:  "http://www.w3.org/2005/Atom",
		Channel: rssChannel{
			Title:          cfg.Name,
			Link:           cfg.URL,
			Description:    cfg.Description,
			Language:       cfg.Language,
			ManagingEditor: editorField(cfg),
			WebMaster:      editorField(cfg),
			LastBuildDate:  lastBuild.Format(time.RFC1123Z),
			PubDate:        lastBuild.Format(time.RFC1123Z),
			AtomLink: atomLink{
				Href: strings.TrimSuffix(cfg.URL, "/") + "/rss.xml",
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Items: items,
		},
	}

	out, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("rss: marshal: %w", err)
	}
	return xml.Header + string(out) + "\n", nil
}

// GenerateAtom serializes the most recent posts into an Atom 1.0 document.
// A post's published and updated timestamps are both its pubDate; there is
// no separate modified-date tracking.
func GenerateAtom(posts []Post, cfg SiteConfig) (string, error) {
	cfg.setDefaults()
	posts = capPosts(posts)

	updated := time.Now()
	entries := make([]atomEntry, 0, len(posts))
	for i, p := range posts {
		t, err := time.Parse("2006-01-02", p.Frontmatter.PubDate)
		if err != nil {
			return "", fmt.Errorf("atom: post %s has unparseable pubDate %q: %w", p.Slug, p.Frontmatter.PubDate, err)
		}
		if i == 0 {
			updated = t
		}
		postURL := BuildURL(cfg.URL, "blog", p.Slug)
		cats := make([]atomCategory, 0, len(p.Frontmatter.Tags))
		for _, tag := range p.Frontmatter.Tags {
			cats = append(cats, atomCategory{Term: tag})
		}
		entries = append(entries, atomEntry{
			Title:      cdata{p.Frontmatter.Title},
			Link:       atomLink{Href: postURL, Rel: "alternate", Type: "text/html"},
			ID:         postURL,
			Published:  t.Format(time.RFC3339),
			Updated:    t.Format(time.RFC3339),
			Summary:    cdata{p.Frontmatter.Description},
			Categories: cats,
		})
	}

	feed := atomFeed{
		XMLNS:    "http://www.w3.org/2005/Atom",
		Title:    cdata{cfg.Name},
		Subtitle: cfg.Description,
		Links: []atomLink{
			{Href: strings.TrimSuffix(cfg.URL, "/") + "/atom.xml", Rel: "self", Type: "application/atom+xml"},
			{Href: BuildURL(cfg.URL), Rel: "alternate", Type: "text/html"},
		},
		ID:      BuildURL(cfg.URL),
		Updated: updated.Format(time.RFC3339),
		Entries: entries,
	}

	out, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("atom: marshal: %w", err)
	}
	return xml.Header + string(out) + "\n", nil
}

func capPosts(posts []Post) []Post {
	if len(posts) > feedItemLimit {
		return posts[:feedItemLimit]
	}
	return posts
}

func editorField(cfg SiteConfig) string {
	if cfg.Email == "" {
		return ""
	}
	return cfg.Email + " (" + cfg.Author + ")"
}
