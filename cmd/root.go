// Package cmd implements the wp-post-copier CLI using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Flag variables.
var (
	flagList    string
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "wp-post-copier [url]",
	Short: "Syndicate articles from a source website into WordPress drafts",
	Long: `wp-post-copier fetches a source article, extracts its title, body,
featured image, publish date, tags and slug, and recreates it as a draft
post on the configured WordPress site.

With a URL argument a single article is syndicated; without one, URLs are
read line by line from the list file.

Examples:
  wp-post-copier https://source.example.com/some-article
  wp-post-copier --list posts.list --config wp-login.config
  wp-post-copier -v https://source.example.com/some-article`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSyndicate,

	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVarP(&flagList, "list", "l", "posts.list", "File with one source URL per line")
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "wp-login.config", "Configuration file")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Echo diagnostic detail to the console")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
