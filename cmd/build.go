package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wiktorkowalski/blog/internal/config"
	"github.com/wiktorkowalski/blog/internal/content"
	"github.com/wiktorkowalski/blog/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the site artifacts from the content directory",
	Long: `The build command loads Markdown posts from the content directory,
filters out drafts and future-dated posts, sorts the rest most recent
first, and writes posts.json, search.json, per-post HTML fragments, and
static assets to the configured output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuildProcess(appConfig)
	},
}

func runBuildProcess(cfg config.Config) error {
	store, err := content.NewLoader(cfg.ContentDir, cfg.Strict, log).Load()
	if err != nil {
		return err
	}
	return site.NewBuilder(cfg, log).Build(store)
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
