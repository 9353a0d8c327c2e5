package main

import (
	"fmt"
	"os"

	"github.com/gookit/slog"
	"github.com/gookit/slog/handler"
	"github.com/joho/godotenv"

	"github.com/haasonsaas/blogkit"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Site settings come from blogkit.yml with .env/environment overrides.
	_ = godotenv.Load()

	logger := newLogger()
	cfg, err := blogkit.LoadConfig("blogkit.yml")
	if err != nil {
		logger.Errorf("load config: %v", err)
		os.Exit(1)
	}

	var runErr error
	switch os.Args[1] {
	case "images":
		runErr = runImages(cfg, logger)
	case "og":
		runErr = runOG(cfg, logger)
	case "feeds":
		runErr = runFeeds(cfg, logger)
	case "validate":
		runErr = runValidate(cfg, logger, os.Args[2:])
	case "links":
		apply := len(os.Args) > 2 && os.Args[2] == "-apply"
		runErr = runLinks(cfg, logger, apply)
	case "version":
		fmt.Printf("blogkit %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if runErr != nil {
		logger.Errorf("%v", runErr)
		os.Exit(1)
	}
}

// newLogger builds the colored console logger used by every command:
// errors red, warnings yellow, per the console handler's level colors.
func newLogger() *slog.Logger {
	h := handler.NewConsoleHandler(slog.AllLevels)
	return slog.NewWithHandlers(h)
}

func printUsage() {
	fmt.Println(`blogkit - content pipeline tools for a markdown blog

Usage:
  blogkit <command> [arguments]

Commands:
  images            Generate social-preview images for every published post
  og                Generate the site-level OpenGraph image
  feeds             Write rss.xml, atom.xml, and sitemap.xml
  validate [files]  Validate post frontmatter (exit 1 on any error)
  links [-apply]    Suggest internal links; -apply inserts them
  version           Print the blogkit version
  help              Show this help message

Examples:
  blogkit validate
  blogkit validate src/content/blog/my-post.md
  blogkit links -apply`)
}
