package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vinybk/wp-post-copier/core"
)

func TestFetchSendsBrowserHeaders(t *testing.T) {
	var gotUA, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer server.Close()

	result, err := New().Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, result.StatusCode)
	require.Contains(t, result.HTML, "ok")

	require.True(t, strings.HasPrefix(gotUA, "Mozilla/5.0"), "User-Agent %q should look like a browser", gotUA)
	require.True(t, strings.HasPrefix(gotAccept, "text/html"), "Accept %q should favor text/html", gotAccept)
}

func TestFetchNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := New().Fetch(context.Background(), server.URL)
	require.Error(t, err)

	var fetchErr *core.FetchError
	require.True(t, errors.As(err, &fetchErr))
	require.Equal(t, server.URL, fetchErr.URL)
}

func TestFetchTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	_, err := New().Fetch(context.Background(), server.URL)
	require.Error(t, err)

	var fetchErr *core.FetchError
	require.True(t, errors.As(err, &fetchErr))
}
