package wordpress

import (
	"context"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/vinybk/wp-post-copier/core"
)

// PostExists reports whether a post with the slug already exists,
// published or draft.
//
// The public URL is checked first; a success response means a published
// post exists. A "not found" is inconclusive and falls through to the
// authenticated draft query. Any other public-probe failure is a
// verification error: logged, then the draft check still runs. A failing
// draft check is treated as "does not exist" — duplicate drafts are
// recoverable, silently skipped posts are not.
func (c *Client) PostExists(ctx context.Context, slug string) bool {
	switch status, err := c.probePublished(ctx, slug); {
	case err != nil:
		c.logger.Error("cannot verify published post",
			zap.Error(&core.VerificationError{Slug: slug, Err: err}))
	case status >= 200 && status < 300:
		return true
	case status != http.StatusNotFound:
		c.logger.Error("cannot verify published post",
			zap.String("slug", slug),
			zap.Int("status", status))
	}

	exists, err := c.draftExists(ctx, slug)
	if err != nil {
		c.logger.Error("draft check failed, assuming post does not exist",
			zap.String("slug", slug),
			zap.Error(err))
		return false
	}
	return exists
}

// probePublished issues an unauthenticated GET against the public post URL.
func (c *Client) probePublished(ctx context.Context, slug string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.siteURL+"/"+slug, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

// draftExists queries the REST API for a draft with the exact slug.
func (c *Client) draftExists(ctx context.Context, slug string) (bool, error) {
	query := url.Values{"slug": {slug}, "status": {"draft"}}
	req, err := c.newRequest(ctx, http.MethodGet, c.apiBase+"/posts?"+query.Encode(), nil)
	if err != nil {
		return false, err
	}

	var posts []struct {
		ID int `json:"id"`
	}
	if err := c.doJSON(req, &posts); err != nil {
		return false, err
	}
	return len(posts) > 0, nil
}
