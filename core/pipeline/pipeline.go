// Package pipeline sequences the syndication stages for each input URL:
// fetch → extract → existence check → media upload → tag resolution →
// post creation. Stages run strictly one after another; batch mode
// processes URLs one at a time in file order. The target API has no
// create-if-absent operation, so sequential execution is what keeps the
// check-then-create sequence safe.
package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/vinybk/wp-post-copier/core"
	"github.com/vinybk/wp-post-copier/core/runlog"
)

// Pipeline drives one syndication run. No state persists across URLs
// except the created counter and the append-only logs.
type Pipeline struct {
	fetcher   core.Fetcher
	extractor core.Extractor
	platform  core.Platform
	runlog    *runlog.Log
	logger    *zap.Logger
	out       io.Writer

	created int
}

// New wires a Pipeline from its stages. out receives per-URL progress
// lines; pass os.Stdout for normal CLI use.
func New(fetcher core.Fetcher, extractor core.Extractor, platform core.Platform, log *runlog.Log, logger *zap.Logger, out io.Writer) *Pipeline {
	return &Pipeline{
		fetcher:   fetcher,
		extractor: extractor,
		platform:  platform,
		runlog:    log,
		logger:    logger,
		out:       out,
	}
}

// Created returns the number of posts created so far in this run.
func (p *Pipeline) Created() int { return p.created }

// Syndicate runs the full per-URL state machine. Failures never escape:
// every outcome is reported in the returned PublishResult, the error log,
// and (for created/failed posts) the run log.
func (p *Pipeline) Syndicate(ctx context.Context, pageURL string) core.PublishResult {
	result, err := p.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return p.fail(pageURL, "", "", err)
	}

	post, err := p.extractor.Extract(ctx, result.HTML, pageURL)
	if err != nil {
		return p.fail(pageURL, "", "", err)
	}

	if p.platform.PostExists(ctx, post.Slug) {
		p.logger.Debug("post already exists, skipping",
			zap.String("url", pageURL),
			zap.String("slug", post.Slug))
		fmt.Fprintf(p.out, "- Skipped (already exists): %s\n", post.Slug)
		return core.PublishResult{Slug: post.Slug, Status: core.StatusSkippedDuplicate}
	}

	media := core.MediaReference{SourceImageURL: post.ImageURL}
	if post.ImageURL != "" {
		id, err := p.platform.UploadMedia(ctx, post.ImageURL)
		if err != nil {
			// Proceed without a featured image.
			p.logger.Error("media upload failed", zap.Error(err))
		} else {
			media.MediaID = id
		}
	}

	var tagIDs []int
	for _, resolution := range p.platform.ResolveTags(ctx, post.Tags) {
		tagIDs = append(tagIDs, resolution.TagID)
	}

	link, err := p.platform.CreatePost(ctx, post, media.MediaID, tagIDs)
	if err != nil {
		return p.fail(pageURL, post.Slug, post.Title, err)
	}

	p.created++
	if err := p.runlog.Created(link); err != nil {
		p.logger.Error("run log write failed", zap.Error(err))
	}
	fmt.Fprintf(p.out, "✓ Created: %s\n", link)
	return core.PublishResult{Slug: post.Slug, Link: link, Status: core.StatusCreated}
}

// SyndicateList processes non-empty lines of the list file in order.
// One URL failing never halts the rest. The returned error covers only an
// unreadable list file.
func (p *Pipeline) SyndicateList(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening list file %s: %w", path, err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("reading list file %s: %w", path, err)
	}

	for i, pageURL := range urls {
		fmt.Fprintf(p.out, "[%d/%d] Processing %s\n", i+1, len(urls), pageURL)
		p.Syndicate(ctx, pageURL)
	}
	return p.created, nil
}

// fail records a terminal per-URL failure. slug and title are empty when
// the URL never made it past extraction; the run log line then carries
// the URL itself.
func (p *Pipeline) fail(pageURL string, slug string, title string, err error) core.PublishResult {
	p.logger.Error("syndication failed",
		zap.String("url", pageURL),
		zap.Error(err))

	label := title
	if label == "" {
		label = pageURL
	}
	if logErr := p.runlog.Failed(label); logErr != nil {
		p.logger.Error("run log write failed", zap.Error(logErr))
	}
	fmt.Fprintf(p.out, "✗ Failed: %s\n", label)
	return core.PublishResult{Slug: slug, Status: core.StatusFailed, Err: err}
}
