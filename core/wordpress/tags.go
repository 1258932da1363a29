package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/vinybk/wp-post-copier/core"
)

// ResolveTags maps each tag name to a platform tag id, creating tags that
// do not exist yet. Names are resolved independently; a failure drops that
// one name from the result and the rest still apply.
func (c *Client) ResolveTags(ctx context.Context, names []string) []core.TagResolution {
	var resolved []core.TagResolution
	for _, name := range names {
		id, err := c.resolveTag(ctx, name)
		if err != nil {
			c.logger.Error("tag dropped",
				zap.Error(&core.TaxonomyError{Tag: name, Err: err}))
			continue
		}
		resolved = append(resolved, core.TagResolution{Name: name, TagID: id})
	}
	return resolved
}

// resolveTag searches for an existing tag by name, creating it on a miss.
func (c *Client) resolveTag(ctx context.Context, name string) (int, error) {
	query := url.Values{"search": {name}}
	req, err := c.newRequest(ctx, http.MethodGet, c.apiBase+"/tags?"+query.Encode(), nil)
	if err != nil {
		return 0, err
	}

	var matches []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	if err := c.doJSON(req, &matches); err != nil {
		return 0, err
	}
	for _, match := range matches {
		if strings.EqualFold(match.Name, name) {
			return match.ID, nil
		}
	}

	return c.createTag(ctx, name)
}

// createTag registers a new tag and returns its id.
func (c *Client) createTag(ctx context.Context, name string) (int, error) {
	payload, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return 0, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, c.apiBase+"/tags", bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	var created struct {
		ID int `json:"id"`
	}
	if err := c.doJSON(req, &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}
