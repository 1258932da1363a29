// Package extract — same-origin link rewriting.
// Anchors pointing back at the source site are redirected to the target
// site when an equivalent post exists there, probed with a live request.
package extract

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// LinkRewriter rewrites intra-site anchors into target-site equivalents.
type LinkRewriter struct {
	targetBase string // target site base URL, no trailing slash
	client     *http.Client
	logger     *zap.Logger
}

// NewLinkRewriter creates a LinkRewriter probing against targetBase.
func NewLinkRewriter(targetBase string, logger *zap.Logger) *LinkRewriter {
	return &LinkRewriter{
		targetBase: strings.TrimSuffix(targetBase, "/"),
		client:     &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// Rewrite walks every anchor in the body whose host matches the source
// page's host, derives the final path segment as a candidate slug, and
// probes the equivalent target URL. A success response rewrites the href
// in place; "not found" keeps the original; any other failure is logged
// and the link is left unchanged. Anchors are probed sequentially.
func (r *LinkRewriter) Rewrite(ctx context.Context, body *goquery.Selection, pageURL string) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return
	}
	sourceHost := parsed.Host

	body.Find("a[href]").Each(func(_ int, anchor *goquery.Selection) {
		href, _ := anchor.Attr("href")
		link, err := url.Parse(href)
		if err != nil || link.Host != sourceHost {
			return
		}

		linkSlug := lastPathSegment(link.Path)
		if linkSlug == "" {
			return
		}
		candidate := r.targetBase + "/" + linkSlug

		switch status, err := r.probe(ctx, candidate); {
		case err != nil:
			r.logger.Error("link probe failed",
				zap.String("href", href),
				zap.String("candidate", candidate),
				zap.Error(err))
		case status >= 200 && status < 300:
			anchor.SetAttr("href", candidate)
			r.logger.Debug("rewrote link",
				zap.String("from", href),
				zap.String("to", candidate))
		case status == http.StatusNotFound:
			// No equivalent post on the target, keep the original link.
		default:
			r.logger.Error("link probe returned unexpected status",
				zap.String("candidate", candidate),
				zap.Int("status", status))
		}
	})
}

// probe issues a GET against the candidate URL and reports the status.
func (r *LinkRewriter) probe(ctx context.Context, candidate string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, candidate, nil)
	if err != nil {
		return 0, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

// lastPathSegment returns the final non-empty segment of a URL path.
func lastPathSegment(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}
