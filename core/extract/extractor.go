// Package extract implements the Extractor interface.
// It turns a rendered source page into a SourcePost by:
//  1. Resolving each field through a fixed selector fallback chain
//  2. Capturing tag names from the inline tag widget, then removing it
//     along with the other known noise blocks
//  3. Repairing mis-encoded characters and rewriting same-origin links
package extract

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/goliatone/go-slug"
	"go.uber.org/zap"

	"github.com/vinybk/wp-post-copier/core"
)

const (
	titleSelector = "h1.entry-title"
	bodySelector  = "div.entry-content"
	tagSelector   = "div.post-tags, footer.entry-footer .tags-links"

	fallbackTitle = "Untitled Post"
	fallbackBody  = "<p>No content found</p>"
)

// noiseSelectors are sub-blocks removed from the article body.
// The tag widget is handled separately so its entries can be captured first.
var noiseSelectors = []string{
	"div.ez-toc-container", "#toc_container",
	"div.sharedaddy", "div.share-buttons", "div.social-share",
}

// dateSelectors are tried in order; the first parseable value wins.
var dateSelectors = []struct {
	selector string
	attr     string
}{
	{"time.entry-date", "datetime"},
	{`meta[property="article:published_time"]`, "content"},
	{`meta[name="pubdate"]`, "content"},
	{"time", "datetime"},
}

// HTMLExtractor parses source pages with fixed selector chains.
type HTMLExtractor struct {
	rewriter *LinkRewriter // nil disables link rewriting
	logger   *zap.Logger
}

// New creates an HTMLExtractor. rewriter may be nil.
func New(rewriter *LinkRewriter, logger *zap.Logger) *HTMLExtractor {
	return &HTMLExtractor{rewriter: rewriter, logger: logger}
}

// Extract parses html fetched from pageURL into a SourcePost.
// It fails with core.ExtractionError only when the HTML cannot be parsed;
// missing fields fall through their fallback chains instead.
func (e *HTMLExtractor) Extract(ctx context.Context, html string, pageURL string) (*core.SourcePost, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &core.ExtractionError{URL: pageURL, Err: fmt.Errorf("parsing HTML: %w", err)}
	}

	title := extractTitle(doc)
	body, tags := e.extractBody(ctx, doc, pageURL)
	image := extractImage(doc, pageURL)
	date := extractPublishDate(doc)
	postSlug := deriveSlug(pageURL, title)

	e.logger.Debug("extracted post",
		zap.String("url", pageURL),
		zap.String("title", title),
		zap.String("slug", postSlug),
		zap.Int("tags", len(tags)))

	return &core.SourcePost{
		URL:         pageURL,
		Title:       title,
		BodyHTML:    body,
		ImageURL:    image,
		PublishDate: date,
		Tags:        tags,
		Slug:        postSlug,
	}, nil
}

// extractTitle resolves the title chain:
// designated heading → og:title → <title> → literal fallback.
func extractTitle(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find(titleSelector).First().Text()); t != "" {
		return t
	}
	if t, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if t = strings.TrimSpace(t); t != "" {
			return t
		}
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return fallbackTitle
}

// extractBody returns the cleaned body HTML and the captured tag names.
func (e *HTMLExtractor) extractBody(ctx context.Context, doc *goquery.Document, pageURL string) (string, []string) {
	container := doc.Find(bodySelector).First()
	if container.Length() == 0 {
		return fallbackBody, nil
	}

	// Capture tag names before the widget is removed.
	var tags []string
	tagWidget := container.Find(tagSelector)
	tagWidget.Find("a").Each(func(_ int, s *goquery.Selection) {
		if name := strings.TrimSpace(s.Text()); name != "" {
			tags = append(tags, name)
		}
	})
	tagWidget.Remove()

	for _, sel := range noiseSelectors {
		container.Find(sel).Remove()
	}

	if e.rewriter != nil {
		e.rewriter.Rewrite(ctx, container, pageURL)
	}

	body, err := container.Html()
	if err != nil {
		return fallbackBody, tags
	}
	return RepairEncoding(body), tags
}

// extractImage resolves og:image → first body image → none.
// Relative URLs are resolved against the page URL.
func extractImage(doc *goquery.Document, pageURL string) string {
	if src, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok {
		if src = strings.TrimSpace(src); src != "" {
			return resolveAgainst(pageURL, src)
		}
	}
	if src, ok := doc.Find(bodySelector).First().Find("img[src]").First().Attr("src"); ok {
		if src = strings.TrimSpace(src); src != "" {
			return resolveAgainst(pageURL, src)
		}
	}
	return ""
}

// extractPublishDate walks the date chain, falling back to now.
func extractPublishDate(doc *goquery.Document) time.Time {
	for _, candidate := range dateSelectors {
		var parsed time.Time
		doc.Find(candidate.selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			raw, ok := s.Attr(candidate.attr)
			if !ok || strings.TrimSpace(raw) == "" {
				return true
			}
			t, err := dateparse.ParseAny(strings.TrimSpace(raw))
			if err != nil {
				return true
			}
			parsed = t
			return false
		})
		if !parsed.IsZero() {
			return parsed
		}
	}
	return time.Now()
}

// deriveSlug takes the last non-empty URL path segment, falling back to a
// normalized form of the title. The result is never empty and never
// contains a path separator.
func deriveSlug(pageURL string, title string) string {
	if parsed, err := url.Parse(pageURL); err == nil {
		if segment := lastPathSegment(parsed.Path); segment != "" {
			return segment
		}
	}
	if normalized, err := slug.Normalize(title); err == nil && normalized != "" {
		return normalized
	}
	return "untitled-post"
}

// resolveAgainst resolves a possibly-relative reference against base.
func resolveAgainst(base string, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}
