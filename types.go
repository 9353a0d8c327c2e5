package blogkit

// Post is the core content type loaded from a markdown file on disk.
// The slug is derived from the filename and never regenerated.
type Post struct {
	Slug        string
	Frontmatter Frontmatter
	Content     string
}

// Frontmatter holds the structured metadata parsed from a post's header.
type Frontmatter struct {
	Title       string
	Description string
	Author      string
	PubDate     string // YYYY-MM-DD
	UpdatedDate string // optional, YYYY-MM-DD
	Featured    bool
	Draft       bool
	Tags        []string
	Image       PostImage
	Series      *Series
}

// PostImage is the hero/social image attached to a post.
type PostImage struct {
	URL string
	Alt string
}

// Series marks a post as part of a multi-part series. It only materializes
// when both a name and a part number are present in the frontmatter.
type Series struct {
	Name        string
	Part        int
	Description string
}

// Issue is a single validation finding for one frontmatter field.
type Issue struct {
	Field      string
	Message    string
	Suggestion string
}

// ValidationResult classifies one frontmatter record. Errors block
// production use of the post; warnings are advisory.
type ValidationResult struct {
	Valid    bool
	Errors   []Issue
	Warnings []Issue
}
