package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gookit/slog"

	"github.com/haasonsaas/blogkit"
	"github.com/haasonsaas/blogkit/ogimage"
)

// runImages generates all three image sizes for every published post. A
// failure on one image is logged and the batch continues.
func runImages(cfg blogkit.SiteConfig, logger *slog.Logger) error {
	repo := blogkit.NewRepository(cfg)
	repo.SetLogger(logger)
	if err := repo.Load(); err != nil {
		return err
	}

	gen, err := ogimage.NewGenerator(filepath.Join(cfg.PublicDir, "generated"))
	if err != nil {
		return err
	}

	created, skipped, failed := 0, 0, 0
	for _, post := range repo.GetAll() {
		for _, size := range blogkit.ImageSizes {
			path, wrote, err := gen.Generate(ogimage.Spec{
				Width:  size.Width,
				Height: size.Height,
				Text:   post.Frontmatter.Title,
			})
			if err != nil {
				logger.Errorf("%s: %v", post.Slug, err)
				failed++
				continue
			}
			if wrote {
				logger.Infof("generated %s", path)
				created++
			} else {
				skipped++
			}
		}
	}
	logger.Infof("images: %d generated, %d up to date, %d failed", created, skipped, failed)
	return nil
}

// runOG generates the single site-level 1200x630 OpenGraph card.
func runOG(cfg blogkit.SiteConfig, logger *slog.Logger) error {
	gen, err := ogimage.NewGenerator(filepath.Join(cfg.PublicDir, "generated"))
	if err != nil {
		return err
	}
	path, wrote, err := gen.Generate(ogimage.Spec{
		Width:  1200,
		Height: 630,
		Text:   cfg.Name,
	})
	if err != nil {
		return err
	}
	if wrote {
		logger.Infof("generated %s", path)
	} else {
		logger.Infof("%s is up to date", path)
	}
	return nil
}

// runFeeds writes rss.xml, atom.xml, and sitemap.xml to both the public
// and the build output directories.
func runFeeds(cfg blogkit.SiteConfig, logger *slog.Logger) error {
	repo := blogkit.NewRepository(cfg)
	repo.SetLogger(logger)
	if err := repo.Load(); err != nil {
		return err
	}
	posts := repo.GetAll()

	rss, err := blogkit.GenerateRSS(posts, cfg)
	if err != nil {
		return err
	}
	atom, err := blogkit.GenerateAtom(posts, cfg)
	if err != nil {
		return err
	}
	sitemap, err := blogkit.GenerateSitemap(posts, cfg)
	if err != nil {
		return err
	}

	outputs := []struct {
		name    string
		content string
	}{
		{"rss.xml", rss},
		{"atom.xml", atom},
		{"sitemap.xml", sitemap},
	}
	for _, dir := range []string{cfg.PublicDir, cfg.DistDir} {
		for _, out := range outputs {
			path := filepath.Join(dir, out.name)
			if err := writeFileAtomic(path, []byte(out.content)); err != nil {
				return err
			}
			logger.Infof("wrote %s", path)
		}
	}
	return nil
}

// writeFileAtomic writes to a temp file in the target directory and renames
// it into place, so a crash mid-write never leaves a truncated output file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
