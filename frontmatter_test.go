package blogkit

import (
	"reflect"
	"testing"
)

func TestParseFrontmatterScalars(t *testing.T) {
	raw := "---\n" +
		"title: \"Hello World\"\n" +
		"author: 'Jonathan Haas'\n" +
		"pubDate: 2024-01-15\n" +
		"---\n" +
		"Body text.\n"
	got := ParseFrontmatter(raw)

	tests := []struct {
		key      string
		expected string
	}{
		{"title", "Hello World"},
		{"author", "Jonathan Haas"},
		{"pubDate", "2024-01-15"},
	}
	for _, tt := range tests {
		if got.Frontmatter[tt.key] != tt.expected {
			t.Errorf("Frontmatter[%q] = %v, want %q", tt.key, got.Frontmatter[tt.key], tt.expected)
		}
	}
	if got.Content != "Body text." {
		t.Errorf("Content = %q, want %q", got.Content, "Body text.")
	}
}

func TestParseFrontmatterNoDelimiter(t *testing.T) {
	raw := "# Just a heading\n\nNo frontmatter here.\n"
	got := ParseFrontmatter(raw)
	if len(got.Frontmatter) != 0 {
		t.Errorf("Frontmatter = %v, want empty", got.Frontmatter)
	}
	if got.Content != "# Just a heading\n\nNo frontmatter here." {
		t.Errorf("Content = %q", got.Content)
	}
}

func TestParseFrontmatterArray(t *testing.T) {
	raw := "---\n" +
		"tags:\n" +
		"  - go\n" +
		"  - \"product-design\"\n" +
		"title: T\n" +
		"---\n"
	got := ParseFrontmatter(raw)
	tags, ok := got.Frontmatter["tags"].([]string)
	if !ok {
		t.Fatalf("tags = %T(%v), want []string", got.Frontmatter["tags"], got.Frontmatter["tags"])
	}
	if !reflect.DeepEqual(tags, []string{"go", "product-design"}) {
		t.Errorf("tags = %v, want [go product-design]", tags)
	}
	if got.Frontmatter["title"] != "T" {
		t.Errorf("title after array = %v, want T", got.Frontmatter["title"])
	}
}

func TestParseFrontmatterInlineDashOpensArray(t *testing.T) {
	raw := "---\n" +
		"tags: - go\n" +
		"  - testing\n" +
		"---\n"
	got := ParseFrontmatter(raw)
	tags, ok := got.Frontmatter["tags"].([]string)
	if !ok || !reflect.DeepEqual(tags, []string{"go", "testing"}) {
		t.Errorf("tags = %v, want [go testing]", got.Frontmatter["tags"])
	}
}

func TestParseFrontmatterMultilineScalar(t *testing.T) {
	raw := "---\n" +
		"description:\n" +
		"  first line\n" +
		"  second line\n" +
		"title: T\n" +
		"---\n"
	got := ParseFrontmatter(raw)
	if got.Frontmatter["description"] != "first line\nsecond line" {
		t.Errorf("description = %q, want multi-line scalar", got.Frontmatter["description"])
	}
}

func TestParseFrontmatterStrayQuoteOpensScalar(t *testing.T) {
	// A value that is just a quote character opens a multi-line scalar,
	// implicitly closed by the next key line.
	raw := "---\n" +
		"description: \"\n" +
		"  hand-edited text\n" +
		"title: T\n" +
		"---\n"
	got := ParseFrontmatter(raw)
	if got.Frontmatter["description"] != "hand-edited text" {
		t.Errorf("description = %q, want %q", got.Frontmatter["description"], "hand-edited text")
	}
	if got.Frontmatter["title"] != "T" {
		t.Errorf("title = %v, want T", got.Frontmatter["title"])
	}
}

func TestParseFrontmatterEmptyValueBeforeKey(t *testing.T) {
	raw := "---\n" +
		"subtitle:\n" +
		"title: T\n" +
		"---\n"
	got := ParseFrontmatter(raw)
	if got.Frontmatter["subtitle"] != "" {
		t.Errorf("subtitle = %v, want empty string", got.Frontmatter["subtitle"])
	}
}

func TestParseFrontmatterNestedImage(t *testing.T) {
	raw := "---\n" +
		"image:\n" +
		"  url: \"https://example.com/pic.png\"\n" +
		"  alt: A picture\n" +
		"title: T\n" +
		"---\n"
	got := ParseFrontmatter(raw)
	img, ok := got.Frontmatter["image"].(map[string]string)
	if !ok {
		t.Fatalf("image = %T, want map[string]string", got.Frontmatter["image"])
	}
	if img["url"] != "https://example.com/pic.png" {
		t.Errorf("image url = %q", img["url"])
	}
	if img["alt"] != "A picture" {
		t.Errorf("image alt = %q", img["alt"])
	}
	if got.Frontmatter["title"] != "T" {
		t.Errorf("title after nested object = %v, want T", got.Frontmatter["title"])
	}
}

func TestParseFrontmatterOnlyImageNests(t *testing.T) {
	// Other keys with empty values never open a nested object; indented
	// key-value continuation lines accumulate as scalar content instead.
	raw := "---\n" +
		"series:\n" +
		"  name: Pricing\n" +
		"---\n"
	got := ParseFrontmatter(raw)
	if _, ok := got.Frontmatter["series"].(map[string]string); ok {
		t.Errorf("series should not parse as a nested object: %v", got.Frontmatter["series"])
	}
}

func TestParseFrontmatterUnclosedBlock(t *testing.T) {
	raw := "---\ntitle: T\nauthor: A\n"
	got := ParseFrontmatter(raw)
	if got.Frontmatter["title"] != "T" || got.Frontmatter["author"] != "A" {
		t.Errorf("Frontmatter = %v", got.Frontmatter)
	}
	if got.Content != "" {
		t.Errorf("Content = %q, want empty for unclosed block", got.Content)
	}
}

func TestParseFrontmatterCRLF(t *testing.T) {
	raw := "---\r\ntitle: T\r\n---\r\nBody.\r\n"
	got := ParseFrontmatter(raw)
	if got.Frontmatter["title"] != "T" {
		t.Errorf("title = %v, want T", got.Frontmatter["title"])
	}
	if got.Content != "Body." {
		t.Errorf("Content = %q, want %q", got.Content, "Body.")
	}
}

func TestParseFrontmatterStrayLinesSkipped(t *testing.T) {
	raw := "---\n" +
		"???\n" +
		"title: T\n" +
		"---\n"
	got := ParseFrontmatter(raw)
	if got.Frontmatter["title"] != "T" {
		t.Errorf("title = %v, want T", got.Frontmatter["title"])
	}
	if len(got.Frontmatter) != 1 {
		t.Errorf("Frontmatter = %v, want only title", got.Frontmatter)
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"quoted"`, "quoted"},
		{`'quoted'`, "quoted"},
		{`plain`, "plain"},
		{`"mismatched'`, `"mismatched'`},
		{`"`, `"`},
		{``, ``},
	}
	for _, tt := range tests {
		if got := unquote(tt.input); got != tt.expected {
			t.Errorf("unquote(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
