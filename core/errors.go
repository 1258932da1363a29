// Package core — error taxonomy.
// Each pipeline stage has its own error type so the orchestrator can apply
// the per-stage failure policy: abort the URL, degrade, or record and move on.
package core

import "fmt"

// FetchError signals a transport failure or non-success status while
// retrieving a source page. Terminal for the current URL.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch %s: %v", e.URL, e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// ExtractionError signals HTML that could not be parsed into a post.
// Terminal for the current URL.
type ExtractionError struct {
	URL string
	Err error
}

func (e *ExtractionError) Error() string { return fmt.Sprintf("extract %s: %v", e.URL, e.Err) }
func (e *ExtractionError) Unwrap() error { return e.Err }

// VerificationError signals an indeterminate existence probe. The pipeline
// treats it as "not a duplicate" so new posts are never silently skipped.
type VerificationError struct {
	Slug string
	Err  error
}

func (e *VerificationError) Error() string { return fmt.Sprintf("verify slug %q: %v", e.Slug, e.Err) }
func (e *VerificationError) Unwrap() error { return e.Err }

// UploadError signals a failed media download or upload. Downgrades to
// "no featured image", never fatal to post creation.
type UploadError struct {
	ImageURL string
	Err      error
}

func (e *UploadError) Error() string { return fmt.Sprintf("upload media %s: %v", e.ImageURL, e.Err) }
func (e *UploadError) Unwrap() error { return e.Err }

// TaxonomyError signals a single tag that failed to resolve. That tag is
// omitted; the remaining tags still apply.
type TaxonomyError struct {
	Tag string
	Err error
}

func (e *TaxonomyError) Error() string { return fmt.Sprintf("resolve tag %q: %v", e.Tag, e.Err) }
func (e *TaxonomyError) Unwrap() error { return e.Err }

// PublishError signals a failed post-creation request. Recorded as a
// failure line in the run log; no retry.
type PublishError struct {
	Title string
	Err   error
}

func (e *PublishError) Error() string { return fmt.Sprintf("publish %q: %v", e.Title, e.Err) }
func (e *PublishError) Unwrap() error { return e.Err }

// ConfigError signals a missing or unreadable configuration file or a
// missing required key. Fatal at startup, before any pipeline work.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string { return fmt.Sprintf("config %s: %v", e.Path, e.Err) }
func (e *ConfigError) Unwrap() error { return e.Err }
