// Package core defines the pipeline types and interfaces for wp-post-copier.
// Each stage of the syndication pipeline is a clean, testable interface.
package core

import (
	"context"
	"time"
)

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// SourcePost is the structured article extracted from a source page.
// It is produced once per input URL and never mutated afterwards.
type SourcePost struct {
	URL         string
	Title       string
	BodyHTML    string
	ImageURL    string // empty when the page has no usable image
	PublishDate time.Time
	Tags        []string // document order, as found in the tag widget
	Slug        string   // never empty, never contains a path separator
}

// MediaReference ties a source image URL to the uploaded platform asset.
// MediaID is zero exactly when no image was found or the upload failed.
type MediaReference struct {
	SourceImageURL string
	MediaID        int
}

// TagResolution maps one source tag name to a platform tag identifier.
type TagResolution struct {
	Name  string
	TagID int
}

// Status is the terminal outcome of processing one input URL.
type Status string

const (
	StatusCreated          Status = "created"
	StatusSkippedDuplicate Status = "skipped-duplicate"
	StatusFailed           Status = "failed"
)

// PublishResult records the outcome of one pipeline run for one URL.
type PublishResult struct {
	Slug   string
	Link   string // permalink of the created draft, empty otherwise
	Status Status
	Err    error // non-nil only when Status is StatusFailed
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor pulls a structured post out of raw HTML.
// pageURL is the URL the HTML was fetched from; it drives slug
// derivation and same-origin link rewriting.
type Extractor interface {
	Extract(ctx context.Context, html string, pageURL string) (*SourcePost, error)
}

// Platform is the target content-management surface the pipeline writes to.
// Implementations handle their own degradation policy: PostExists and
// ResolveTags never fail the caller, they log and return what they know.
type Platform interface {
	// PostExists reports whether a post with the slug already exists,
	// published or draft. Indeterminate checks lean toward false so a
	// legitimate new post is never silently skipped.
	PostExists(ctx context.Context, slug string) bool

	// UploadMedia downloads imageURL and re-uploads it as a media
	// attachment, returning the platform media id.
	UploadMedia(ctx context.Context, imageURL string) (int, error)

	// ResolveTags maps tag names to platform tag ids, creating missing
	// tags. Names that fail to resolve are omitted from the result.
	ResolveTags(ctx context.Context, names []string) []TagResolution

	// CreatePost submits the draft and returns its permalink.
	// mediaID zero means no featured image.
	CreatePost(ctx context.Context, post *SourcePost, mediaID int, tagIDs []int) (string, error)
}
