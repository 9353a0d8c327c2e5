package blogkit

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func testConfig(t *testing.T) SiteConfig {
	t.Helper()
	return SiteConfig{
		Name:             "Test Blog",
		URL:              "https://example.com",
		Author:           "Jonathan Haas",
		PostsDir:         t.TempDir(),
		PlaceholderImage: "https://example.com/images/placeholder.png",
	}
}

func writePost(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func loadRepo(t *testing.T, cfg SiteConfig) *Repository {
	t.Helper()
	repo := NewRepository(cfg)
	if err := repo.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return repo
}

func TestRepositoryDefaults(t *testing.T) {
	cfg := testConfig(t)
	writePost(t, cfg.PostsDir, "my-first-post.md", "---\npubDate: 2024-01-15\n---\nBody.\n")
	repo := loadRepo(t, cfg)

	posts := repo.GetAll()
	if len(posts) != 1 {
		t.Fatalf("len(posts) = %d, want 1", len(posts))
	}
	p := posts[0]
	if p.Slug != "my-first-post" {
		t.Errorf("Slug = %q, want my-first-post", p.Slug)
	}
	if p.Frontmatter.Title != "My First Post" {
		t.Errorf("Title = %q, want title derived from slug", p.Frontmatter.Title)
	}
	if p.Frontmatter.Author != "Jonathan Haas" {
		t.Errorf("Author = %q, want site author fallback", p.Frontmatter.Author)
	}
	if p.Frontmatter.Featured {
		t.Error("Featured should default to false")
	}
	if p.Frontmatter.Draft {
		t.Error("Draft should default to false")
	}
	if len(p.Frontmatter.Tags) != 0 {
		t.Errorf("Tags = %v, want empty", p.Frontmatter.Tags)
	}
	if p.Frontmatter.Image.URL != cfg.PlaceholderImage {
		t.Errorf("Image.URL = %q, want placeholder", p.Frontmatter.Image.URL)
	}
	if p.Content != "Body." {
		t.Errorf("Content = %q, want Body.", p.Content)
	}
}

func TestRepositoryTagCoercion(t *testing.T) {
	cfg := testConfig(t)
	writePost(t, cfg.PostsDir, "tagged.md",
		"---\npubDate: 2024-01-15\ntags: \"ai, product-design, SaaS\"\n---\nBody.\n")
	repo := loadRepo(t, cfg)

	posts := repo.GetAll()
	if len(posts) != 1 {
		t.Fatalf("len(posts) = %d, want 1", len(posts))
	}
	// Trimmed, split, and NOT case-changed at the repository layer.
	want := []string{"ai", "product-design", "SaaS"}
	if !reflect.DeepEqual(posts[0].Frontmatter.Tags, want) {
		t.Errorf("Tags = %v, want %v", posts[0].Frontmatter.Tags, want)
	}
}

func TestRepositorySortStability(t *testing.T) {
	cfg := testConfig(t)
	writePost(t, cfg.PostsDir, "alpha.md", "---\npubDate: 2024-01-01\n---\nA\n")
	writePost(t, cfg.PostsDir, "bravo.md", "---\npubDate: 2024-01-02\n---\nB\n")
	writePost(t, cfg.PostsDir, "charlie.md", "---\npubDate: 2024-01-01\n---\nC\n")

	var first []string
	for i := 0; i < 3; i++ {
		repo := loadRepo(t, cfg)
		var slugs []string
		for _, p := range repo.GetAll() {
			slugs = append(slugs, p.Slug)
		}
		want := []string{"bravo", "alpha", "charlie"}
		if !reflect.DeepEqual(slugs, want) {
			t.Fatalf("order = %v, want %v (descending, stable on ties)", slugs, want)
		}
		if first == nil {
			first = slugs
		} else if !reflect.DeepEqual(slugs, first) {
			t.Fatalf("order changed between loads: %v vs %v", slugs, first)
		}
	}
}

func TestRepositoryDraftExclusion(t *testing.T) {
	cfg := testConfig(t)
	writePost(t, cfg.PostsDir, "published.md",
		"---\npubDate: 2024-01-01\nfeatured: true\ntags:\n  - go\n---\nHi\n")
	writePost(t, cfg.PostsDir, "hidden.md",
		"---\npubDate: 2024-01-02\ndraft: true\nfeatured: true\ntags:\n  - go\n---\nHi\n")
	repo := loadRepo(t, cfg)

	if got := len(repo.GetAll()); got != 1 {
		t.Errorf("GetAll() len = %d, want 1", got)
	}
	if got := len(repo.GetAllWithDrafts()); got != 2 {
		t.Errorf("GetAllWithDrafts() len = %d, want 2", got)
	}
	for _, p := range repo.GetFeatured() {
		if p.Slug == "hidden" {
			t.Error("draft appeared in GetFeatured")
		}
	}
	for _, p := range repo.GetByTag("go") {
		if p.Slug == "hidden" {
			t.Error("draft appeared in GetByTag")
		}
	}
	if _, err := repo.GetBySlug("hidden"); err != ErrNotFound {
		t.Errorf("GetBySlug(draft) = %v, want ErrNotFound", err)
	}
}

func TestRepositoryDraftStringCoercion(t *testing.T) {
	cfg := testConfig(t)
	writePost(t, cfg.PostsDir, "string-draft.md", "---\npubDate: 2024-01-01\ndraft: \"true\"\n---\nHi\n")
	repo := loadRepo(t, cfg)
	if len(repo.GetAll()) != 0 {
		t.Error("draft: \"true\" should coerce to a draft post")
	}
}

func TestRepositoryGetByTagNormalizes(t *testing.T) {
	cfg := testConfig(t)
	writePost(t, cfg.PostsDir, "a.md", "---\npubDate: 2024-01-01\ntags: \"SaaS\"\n---\nHi\n")
	repo := loadRepo(t, cfg)
	if got := len(repo.GetByTag("saas")); got != 1 {
		t.Errorf("GetByTag(saas) len = %d, want 1", got)
	}
}

func TestRepositoryGetAllTags(t *testing.T) {
	cfg := testConfig(t)
	writePost(t, cfg.PostsDir, "a.md", "---\npubDate: 2024-01-01\ntags: \"go, web\"\n---\nHi\n")
	writePost(t, cfg.PostsDir, "b.md", "---\npubDate: 2024-01-02\ntags: \"web, ai\"\n---\nHi\n")
	repo := loadRepo(t, cfg)
	want := []string{"ai", "go", "web"}
	if got := repo.GetAllTags(); !reflect.DeepEqual(got, want) {
		t.Errorf("GetAllTags() = %v, want %v", got, want)
	}
}

func TestRepositorySeriesMaterialization(t *testing.T) {
	cfg := testConfig(t)
	writePost(t, cfg.PostsDir, "part-two.md",
		"---\npubDate: 2024-01-01\nseriesName: Pricing Deep Dive\nseriesPart: 2\n---\nHi\n")
	writePost(t, cfg.PostsDir, "nameless.md",
		"---\npubDate: 2024-01-02\nseriesPart: 1\n---\nHi\n")
	repo := loadRepo(t, cfg)

	p, err := repo.GetBySlug("part-two")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if p.Frontmatter.Series == nil {
		t.Fatal("Series = nil, want materialized series")
	}
	if p.Frontmatter.Series.Name != "Pricing Deep Dive" || p.Frontmatter.Series.Part != 2 {
		t.Errorf("Series = %+v", p.Frontmatter.Series)
	}

	q, err := repo.GetBySlug("nameless")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if q.Frontmatter.Series != nil {
		t.Errorf("Series = %+v, want nil when name is missing", q.Frontmatter.Series)
	}
}

func TestRepositoryRelated(t *testing.T) {
	cfg := testConfig(t)
	writePost(t, cfg.PostsDir, "a.md", "---\npubDate: 2024-01-01\ntags: \"go, web\"\n---\nHi\n")
	writePost(t, cfg.PostsDir, "b.md", "---\npubDate: 2024-01-02\ntags: \"go\"\n---\nHi\n")
	writePost(t, cfg.PostsDir, "c.md", "---\npubDate: 2024-01-03\ntags: \"rust\"\n---\nHi\n")
	repo := loadRepo(t, cfg)

	a, err := repo.GetBySlug("a")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	related := repo.Related(a)
	if len(related) != 1 || related[0].Slug != "b" {
		t.Errorf("Related = %v, want [b]", related)
	}
}

func TestRepositorySkipsNonMarkdown(t *testing.T) {
	cfg := testConfig(t)
	writePost(t, cfg.PostsDir, "post.md", "---\npubDate: 2024-01-01\n---\nHi\n")
	writePost(t, cfg.PostsDir, "notes.txt", "not a post")
	repo := loadRepo(t, cfg)
	if got := len(repo.GetAllWithDrafts()); got != 1 {
		t.Errorf("loaded %d posts, want 1", got)
	}
}

func TestRepositoryMissingDir(t *testing.T) {
	cfg := testConfig(t)
	cfg.PostsDir = filepath.Join(cfg.PostsDir, "does-not-exist")
	repo := NewRepository(cfg)
	if err := repo.Load(); err == nil {
		t.Error("Load of missing directory should fail")
	}
}
