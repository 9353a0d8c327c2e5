package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gookit/slog"

	"github.com/haasonsaas/blogkit"
)

// runValidate checks frontmatter across all posts, or only the given files.
// It reports every error and warning and fails (exit 1 via the returned
// error) when any post has at least one error-level issue.
func runValidate(cfg blogkit.SiteConfig, logger *slog.Logger, files []string) error {
	if len(files) == 0 {
		entries, err := os.ReadDir(cfg.PostsDir)
		if err != nil {
			return fmt.Errorf("read posts dir %s: %w", cfg.PostsDir, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md") {
				files = append(files, filepath.Join(cfg.PostsDir, entry.Name()))
			}
		}
	}

	failed := 0
	warned := 0
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Errorf("%s: %v", path, err)
			failed++
			continue
		}
		name := filepath.Base(path)
		parsed := blogkit.ParseFrontmatter(string(data))
		result := blogkit.Validate(parsed.Frontmatter, name)

		for _, issue := range result.Errors {
			logger.Errorf("%s: [%s] %s%s", name, issue.Field, issue.Message, suffix(issue.Suggestion))
		}
		for _, issue := range result.Warnings {
			logger.Warnf("%s: [%s] %s%s", name, issue.Field, issue.Message, suffix(issue.Suggestion))
		}
		if !result.Valid {
			failed++
		} else if len(result.Warnings) > 0 {
			warned++
		} else {
			logger.Infof("%s: ok", name)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d posts have errors", failed, len(files))
	}
	logger.Infof("validated %d posts: %d clean, %d with warnings", len(files), len(files)-warned, warned)
	return nil
}

func suffix(suggestion string) string {
	if suggestion == "" {
		return ""
	}
	return " (" + suggestion + ")"
}
