// Package cmd — pipeline wiring.
// Builds the stages from the loaded configuration and runs single-URL or
// batch mode: config load → logger → fetcher/extractor/platform → pipeline.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vinybk/wp-post-copier/config"
	"github.com/vinybk/wp-post-copier/core/extract"
	"github.com/vinybk/wp-post-copier/core/fetch"
	"github.com/vinybk/wp-post-copier/core/logging"
	"github.com/vinybk/wp-post-copier/core/pipeline"
	"github.com/vinybk/wp-post-copier/core/runlog"
	"github.com/vinybk/wp-post-copier/core/wordpress"
)

const (
	postLogPath  = "post-log.txt"
	errorLogPath = "error-log.txt"
)

func runSyndicate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	logger, err := logging.New(flagVerbose, errorLogPath)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	rewriter := extract.NewLinkRewriter(cfg.SiteURL, logger)
	p := pipeline.New(
		fetch.New(),
		extract.New(rewriter, logger),
		wordpress.NewClient(cfg, logger),
		runlog.New(postLogPath),
		logger,
		os.Stdout,
	)

	ctx := context.Background()

	if len(args) == 1 {
		p.Syndicate(ctx, args[0])
	} else {
		if _, err := p.SyndicateList(ctx, flagList); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stdout, "Done. Posts created: %d\n", p.Created())
	return nil
}
