package blogkit

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SiteConfig holds all configuration for a blogkit site.
type SiteConfig struct {
	Name        string `yaml:"name"`        // Site name (default "Blog")
	URL         string `yaml:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `yaml:"description"` // Site description for feeds and meta tags
	Author      string `yaml:"author"`      // Default post author and JSON-LD author
	Email       string `yaml:"email"`       // managingEditor/webMaster address for RSS
	Language    string `yaml:"language"`    // RSS channel language (default "en-us")

	PostsDir  string `yaml:"posts_dir"`  // Markdown post directory (default "src/content/blog")
	PublicDir string `yaml:"public_dir"` // Dev static directory (default "public")
	DistDir   string `yaml:"dist_dir"`   // Build output directory (default "dist")

	PlaceholderImage       string `yaml:"placeholder_image"`       // Image URL used when a post has none
	PlaceholderDescription string `yaml:"placeholder_description"` // Description used when a post has none
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Author == "" {
		c.Author = c.Name
	}
	if c.Language == "" {
		c.Language = "en-us"
	}
	if c.PostsDir == "" {
		c.PostsDir = "src/content/blog"
	}
	if c.PublicDir == "" {
		c.PublicDir = "public"
	}
	if c.DistDir == "" {
		c.DistDir = "dist"
	}
	if c.PlaceholderImage == "" {
		c.PlaceholderImage = c.URL + "/images/placeholder.png"
	}
	if c.PlaceholderDescription == "" {
		c.PlaceholderDescription = "No description provided."
	}
}

// LoadConfig reads a YAML site config from path and applies defaults.
// A missing file is not an error: defaults plus environment overrides
// are enough to run every tool.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return SiteConfig{}, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return SiteConfig{}, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.Name = EnvOr("SITE_NAME", cfg.Name)
	cfg.URL = EnvOr("SITE_URL", cfg.URL)
	cfg.Description = EnvOr("SITE_DESCRIPTION", cfg.Description)
	cfg.Author = EnvOr("SITE_AUTHOR", cfg.Author)
	cfg.Email = EnvOr("SITE_EMAIL", cfg.Email)
	cfg.PostsDir = EnvOr("POSTS_DIR", cfg.PostsDir)

	cfg.setDefaults()
	return cfg, nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
