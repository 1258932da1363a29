package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/vinybk/wp-post-copier/core"
)

// syndicationExcerpt is the fixed excerpt attached to every created draft.
const syndicationExcerpt = "Syndicated from the original article."

// wpDateFormat is the local-time format the posts endpoint expects.
const wpDateFormat = "2006-01-02T15:04:05"

type postPayload struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Status        string `json:"status"`
	Slug          string `json:"slug"`
	Date          string `json:"date"`
	Excerpt       string `json:"excerpt"`
	Author        int    `json:"author"`
	Categories    []int  `json:"categories"`
	Tags          []int  `json:"tags,omitempty"`
	FeaturedMedia int    `json:"featured_media,omitempty"`
}

// CreatePost submits the draft and returns the platform permalink.
// mediaID zero omits the featured image from the payload.
func (c *Client) CreatePost(ctx context.Context, post *core.SourcePost, mediaID int, tagIDs []int) (string, error) {
	payload := postPayload{
		Title:         post.Title,
		Content:       post.BodyHTML,
		Status:        "draft",
		Slug:          post.Slug,
		Date:          post.PublishDate.Format(wpDateFormat),
		Excerpt:       syndicationExcerpt,
		Author:        c.authorID,
		Categories:    []int{c.categoryID},
		Tags:          tagIDs,
		FeaturedMedia: mediaID,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &core.PublishError{Title: post.Title, Err: err}
	}
	req, err := c.newRequest(ctx, http.MethodPost, c.apiBase+"/posts", bytes.NewReader(body))
	if err != nil {
		return "", &core.PublishError{Title: post.Title, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	var created struct {
		ID   int    `json:"id"`
		Link string `json:"link"`
	}
	if err := c.doJSON(req, &created); err != nil {
		return "", &core.PublishError{Title: post.Title, Err: err}
	}
	return created.Link, nil
}
