package main

import (
	"github.com/gookit/slog"

	"github.com/haasonsaas/blogkit"
	"github.com/haasonsaas/blogkit/linker"
)

// runLinks prints scored internal-link suggestions grouped by source post.
// With apply set it also rewrites the source files, inserting each link at
// the first occurrence of the target title. Applying is idempotent: posts
// that already link to the target are left untouched.
func runLinks(cfg blogkit.SiteConfig, logger *slog.Logger, apply bool) error {
	repo := blogkit.NewRepository(cfg)
	repo.SetLogger(logger)
	if err := repo.Load(); err != nil {
		return err
	}

	suggestions := linker.SuggestScored(repo.GetAll())
	if len(suggestions) == 0 {
		logger.Info("no link suggestions")
		return nil
	}

	current := ""
	for _, s := range suggestions {
		if s.SourceSlug != current {
			current = s.SourceSlug
			logger.Infof("%s:", current)
		}
		logger.Infof("  -> %s (keyword %q, score %d)", s.TargetSlug, s.Keyword, s.Score)

		if !apply {
			continue
		}
		inserted, err := linker.Apply(cfg.PostsDir, s)
		if err != nil {
			logger.Errorf("  apply failed: %v", err)
			continue
		}
		if inserted {
			logger.Infof("  linked %q in %s.md", s.TargetTitle, s.SourceSlug)
		}
	}
	return nil
}
