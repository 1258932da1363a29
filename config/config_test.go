package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vinybk/wp-post-copier/core"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wp-login.config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
# credentials
WP_SITE_URL = "https://target.example.com/"
WP_API_BASE='https://target.example.com/wp-json/wp/v2'
WP_USER=editor
WP_APP_PASSWORD = "abcd efgh ijkl"
AUTHOR_ID=7
CATEGORY_ID=12
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://target.example.com", cfg.SiteURL)
	require.Equal(t, "https://target.example.com/wp-json/wp/v2", cfg.APIBase)
	require.Equal(t, "editor", cfg.User)
	require.Equal(t, "abcd efgh ijkl", cfg.AppPassword)
	require.Equal(t, 7, cfg.AuthorID)
	require.Equal(t, 12, cfg.CategoryID)
}

func TestLoadDefaultsAuthorAndCategory(t *testing.T) {
	path := writeConfig(t, `
WP_SITE_URL=https://target.example.com
WP_API_BASE=https://target.example.com/wp-json/wp/v2
WP_USER=editor
WP_APP_PASSWORD=secret
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, cfg.AuthorID)
	require.Equal(t, 1, cfg.CategoryID)
}

func TestLoadMissingRequiredKey(t *testing.T) {
	path := writeConfig(t, `
WP_SITE_URL=https://target.example.com
WP_USER=editor
WP_APP_PASSWORD=secret
`)

	_, err := Load(path)
	require.Error(t, err)

	var cfgErr *core.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	require.Contains(t, cfgErr.Error(), "WP_API_BASE")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.config"))
	require.Error(t, err)

	var cfgErr *core.ConfigError
	require.True(t, errors.As(err, &cfgErr))
}

func TestLoadInvalidAuthorID(t *testing.T) {
	path := writeConfig(t, `
WP_SITE_URL=https://target.example.com
WP_API_BASE=https://target.example.com/wp-json/wp/v2
WP_USER=editor
WP_APP_PASSWORD=secret
AUTHOR_ID=editor-in-chief
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadIgnoresMalformedLines(t *testing.T) {
	path := writeConfig(t, `
this line has no separator
WP_SITE_URL=https://target.example.com
WP_API_BASE=https://target.example.com/wp-json/wp/v2
WP_USER=editor
WP_APP_PASSWORD=secret
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "editor", cfg.User)
}
