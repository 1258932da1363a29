// Package wordpress implements the Platform interface against the
// WordPress REST API. All /wp/v2 calls use basic auth with an
// application password; the published-post probe hits the public site.
package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/vinybk/wp-post-copier/config"
)

// Client talks to one WordPress site.
type Client struct {
	siteURL    string
	apiBase    string
	user       string
	password   string
	authorID   int
	categoryID int

	http   *http.Client
	logger *zap.Logger
}

// NewClient creates a Client from the loaded configuration.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		siteURL:    cfg.SiteURL,
		apiBase:    cfg.APIBase,
		user:       cfg.User,
		password:   cfg.AppPassword,
		authorID:   cfg.AuthorID,
		categoryID: cfg.CategoryID,
		http:       &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
}

// newRequest builds an authenticated API request.
func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.user, c.password)
	return req, nil
}

// doJSON executes req and decodes a JSON response body into out.
// Non-2xx statuses are returned as errors with a response excerpt.
func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status %d: %s", resp.StatusCode, excerpt(body))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// excerpt truncates a response body for error messages.
func excerpt(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
