package wordpress

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path"
	"strings"

	"github.com/vinybk/wp-post-copier/core"
)

const (
	fallbackFilename    = "image.jpg"
	fallbackContentType = "image/jpeg"
)

// UploadMedia downloads the image and re-uploads it as a media attachment,
// returning the platform media id. Callers treat any error as "no featured
// image"; an upload failure never blocks post creation.
func (c *Client) UploadMedia(ctx context.Context, imageURL string) (int, error) {
	data, contentType, err := c.downloadImage(ctx, imageURL)
	if err != nil {
		return 0, &core.UploadError{ImageURL: imageURL, Err: err}
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename=%q`, filenameFromURL(imageURL)))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return 0, &core.UploadError{ImageURL: imageURL, Err: err}
	}
	if _, err := part.Write(data); err != nil {
		return 0, &core.UploadError{ImageURL: imageURL, Err: err}
	}
	if err := writer.Close(); err != nil {
		return 0, &core.UploadError{ImageURL: imageURL, Err: err}
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.apiBase+"/media", &buf)
	if err != nil {
		return 0, &core.UploadError{ImageURL: imageURL, Err: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var media struct {
		ID        int    `json:"id"`
		SourceURL string `json:"source_url"`
	}
	if err := c.doJSON(req, &media); err != nil {
		return 0, &core.UploadError{ImageURL: imageURL, Err: err}
	}
	if media.ID == 0 || media.SourceURL == "" {
		return 0, &core.UploadError{ImageURL: imageURL, Err: fmt.Errorf("response missing media id or source_url")}
	}
	return media.ID, nil
}

// downloadImage fetches the binary payload and its declared content type.
func (c *Client) downloadImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("download status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading image body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = fallbackContentType
	}
	return data, contentType, nil
}

// filenameFromURL derives a filename from the URL's final path segment.
func filenameFromURL(imageURL string) string {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return fallbackFilename
	}
	name := path.Base(parsed.Path)
	if name == "" || name == "." || name == "/" || !strings.Contains(name, ".") {
		return fallbackFilename
	}
	return name
}
