package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wiktorkowalski/blog/internal/content"
	"github.com/wiktorkowalski/blog/internal/post"
)

var (
	listLimit  int
	listDrafts bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Prints the ordered post list",
	Long: `The list command loads the content directory and prints the posts the
site would show, most recent first: effective date, slug, and title.
Use --limit for a "latest N" view and --drafts to include unpublished
posts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := content.NewLoader(appConfig.ContentDir, appConfig.Strict, log).Load()
		if err != nil {
			return err
		}

		posts := store.Posts()
		if !listDrafts {
			posts = post.Published(posts, time.Now())
		}

		if listLimit > 0 {
			posts = post.Latest(posts, listLimit)
		} else {
			posts = post.Sort(posts)
		}

		for _, p := range posts {
			markers := ""
			if p.Featured {
				markers += " [featured]"
			}
			if p.Draft {
				markers += " [draft]"
			}
			tags := ""
			if len(p.Tags) > 0 {
				tags = "  #" + strings.Join(p.Tags, " #")
			}
			fmt.Printf("%s  %-50s  %s%s%s\n",
				p.EffectiveDate().Format("2006-01-02"), p.Slug(), p.Title, markers, tags)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "show only the latest N posts (0 = all)")
	listCmd.Flags().BoolVar(&listDrafts, "drafts", false, "include drafts and future-dated posts")
	rootCmd.AddCommand(listCmd)
}
