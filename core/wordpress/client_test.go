package wordpress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vinybk/wp-post-copier/config"
	"github.com/vinybk/wp-post-copier/core"
)

func newTestClient(server *httptest.Server) *Client {
	return NewClient(&config.Config{
		SiteURL:     server.URL,
		APIBase:     server.URL + "/wp-json/wp/v2",
		User:        "editor",
		AppPassword: "secret",
		AuthorID:    7,
		CategoryID:  12,
	}, zap.NewNop())
}

func requireBasicAuth(t *testing.T, r *http.Request) {
	t.Helper()
	user, pass, ok := r.BasicAuth()
	require.True(t, ok, "expected basic auth on %s %s", r.Method, r.URL.Path)
	require.Equal(t, "editor", user)
	require.Equal(t, "secret", pass)
}

func TestPostExistsPublished(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/my-post" {
			_, _, ok := r.BasicAuth()
			require.False(t, ok, "public probe must be unauthenticated")
			w.WriteHeader(http.StatusOK)
			return
		}
		t.Errorf("unexpected request %s after definitive public hit", r.URL.Path)
	}))
	defer server.Close()

	require.True(t, newTestClient(server).PostExists(context.Background(), "my-post"))
}

func TestPostExistsDraft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/my-post":
			w.WriteHeader(http.StatusNotFound)
		case "/wp-json/wp/v2/posts":
			requireBasicAuth(t, r)
			require.Equal(t, "my-post", r.URL.Query().Get("slug"))
			require.Equal(t, "draft", r.URL.Query().Get("status"))
			fmt.Fprint(w, `[{"id": 42}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	require.True(t, newTestClient(server).PostExists(context.Background(), "my-post"))
}

func TestPostExistsNeither(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/wp-json/wp/v2/posts" {
			fmt.Fprint(w, `[]`)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	require.False(t, newTestClient(server).PostExists(context.Background(), "my-post"))
}

func TestPostExistsFailOpen(t *testing.T) {
	// Public probe errors and the draft query errors too: the check must
	// come back "does not exist" so the post is still created.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	require.False(t, newTestClient(server).PostExists(context.Background(), "my-post"))
}

func TestUploadMedia(t *testing.T) {
	var uploaded struct {
		filename    string
		contentType string
		size        int
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/images/lead-photo.png":
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte("png-bytes"))
		case "/wp-json/wp/v2/media":
			requireBasicAuth(t, r)
			require.NoError(t, r.ParseMultipartForm(1<<20))
			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer file.Close()
			data, err := io.ReadAll(file)
			require.NoError(t, err)
			uploaded.filename = header.Filename
			uploaded.contentType = header.Header.Get("Content-Type")
			uploaded.size = len(data)
			fmt.Fprintf(w, `{"id": 99, "source_url": "%s/wp-content/uploads/lead-photo.png"}`, r.Host)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	id, err := newTestClient(server).UploadMedia(context.Background(), server.URL+"/images/lead-photo.png")
	require.NoError(t, err)
	require.Equal(t, 99, id)
	require.Equal(t, "lead-photo.png", uploaded.filename)
	require.Equal(t, "image/png", uploaded.contentType)
	require.Equal(t, len("png-bytes"), uploaded.size)
}

func TestUploadMediaDownloadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server).UploadMedia(context.Background(), server.URL+"/gone.jpg")
	require.Error(t, err)

	var uploadErr *core.UploadError
	require.True(t, errors.As(err, &uploadErr))
}

func TestUploadMediaMissingSourceURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/wp-json/wp/v2/media" {
			fmt.Fprint(w, `{"id": 99}`)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpg"))
	}))
	defer server.Close()

	_, err := newTestClient(server).UploadMedia(context.Background(), server.URL+"/pic.jpg")
	require.Error(t, err)
}

func TestFilenameFromURL(t *testing.T) {
	require.Equal(t, "pic.jpg", filenameFromURL("https://cdn.example.com/a/b/pic.jpg?w=800"))
	require.Equal(t, "image.jpg", filenameFromURL("https://cdn.example.com/"))
	require.Equal(t, "image.jpg", filenameFromURL("https://cdn.example.com/noextension"))
}

func TestResolveTagsSearchHitAndCreate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requireBasicAuth(t, r)
		switch {
		case r.URL.Path == "/wp-json/wp/v2/tags" && r.Method == http.MethodGet:
			if r.URL.Query().Get("search") == "Golang" {
				fmt.Fprint(w, `[{"id": 3, "name": "golang"}]`)
			} else {
				fmt.Fprint(w, `[]`)
			}
		case r.URL.Path == "/wp-json/wp/v2/tags" && r.Method == http.MethodPost:
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, "Brand New", body["name"])
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"id": 8}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	resolved := newTestClient(server).ResolveTags(context.Background(), []string{"Golang", "Brand New"})
	require.Equal(t, []core.TagResolution{
		{Name: "Golang", TagID: 3},
		{Name: "Brand New", TagID: 8},
	}, resolved)
}

func TestResolveTagsPartialFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("search") == "bad" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if r.Method == http.MethodGet {
			fmt.Fprint(w, `[{"id": 5, "name": "good"}]`)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	resolved := newTestClient(server).ResolveTags(context.Background(), []string{"bad", "good"})
	require.Equal(t, []core.TagResolution{{Name: "good", TagID: 5}}, resolved)
}

func TestCreatePost(t *testing.T) {
	var got postPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wp-json/wp/v2/posts", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		requireBasicAuth(t, r)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id": 123, "link": "https://target.example.com/?p=123"}`)
	}))
	defer server.Close()

	post := &core.SourcePost{
		Title:       "Great Article",
		BodyHTML:    "<p>body</p>",
		Slug:        "great-article",
		PublishDate: time.Date(2023, 4, 5, 10, 30, 0, 0, time.UTC),
	}

	link, err := newTestClient(server).CreatePost(context.Background(), post, 99, []int{3, 8})
	require.NoError(t, err)
	require.Equal(t, "https://target.example.com/?p=123", link)

	require.Equal(t, "Great Article", got.Title)
	require.Equal(t, "<p>body</p>", got.Content)
	require.Equal(t, "draft", got.Status)
	require.Equal(t, "great-article", got.Slug)
	require.Equal(t, "2023-04-05T10:30:00", got.Date)
	require.Equal(t, syndicationExcerpt, got.Excerpt)
	require.Equal(t, 7, got.Author)
	require.Equal(t, []int{12}, got.Categories)
	require.Equal(t, []int{3, 8}, got.Tags)
	require.Equal(t, 99, got.FeaturedMedia)
}

func TestCreatePostOmitsZeroMedia(t *testing.T) {
	var raw map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		fmt.Fprint(w, `{"id": 124, "link": "https://target.example.com/?p=124"}`)
	}))
	defer server.Close()

	post := &core.SourcePost{Title: "No Image", Slug: "no-image", PublishDate: time.Now()}
	_, err := newTestClient(server).CreatePost(context.Background(), post, 0, nil)
	require.NoError(t, err)

	_, hasMedia := raw["featured_media"]
	require.False(t, hasMedia)
	_, hasTags := raw["tags"]
	require.False(t, hasTags)
}

func TestCreatePostFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	post := &core.SourcePost{Title: "Denied", Slug: "denied", PublishDate: time.Now()}
	_, err := newTestClient(server).CreatePost(context.Background(), post, 0, nil)
	require.Error(t, err)

	var publishErr *core.PublishError
	require.True(t, errors.As(err, &publishErr))
	require.Equal(t, "Denied", publishErr.Title)
}
