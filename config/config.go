// Package config loads the wp-post-copier configuration file.
// The file is plain key=value text; values may be quoted, surrounding
// whitespace and quote characters are stripped, and lines starting with
// '#' are ignored.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vinybk/wp-post-copier/core"
)

// Recognized keys.
const (
	keySiteURL     = "WP_SITE_URL"
	keyAPIBase     = "WP_API_BASE"
	keyUser        = "WP_USER"
	keyAppPassword = "WP_APP_PASSWORD"
	keyAuthorID    = "AUTHOR_ID"
	keyCategoryID  = "CATEGORY_ID"
)

// Config holds the target-platform settings for one run. Loaded once
// before any pipeline work and never mutated.
type Config struct {
	SiteURL     string // public base URL of the target site
	APIBase     string // REST base URL, e.g. https://site/wp-json/wp/v2
	User        string
	AppPassword string
	AuthorID    int
	CategoryID  int
}

// Load reads and parses the configuration file at path.
// Any failure is a core.ConfigError, fatal to the whole run.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &core.ConfigError{Path: path, Err: err}
	}
	defer f.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		values[strings.TrimSpace(key)] = cleanValue(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, &core.ConfigError{Path: path, Err: err}
	}

	cfg := &Config{
		SiteURL:     strings.TrimSuffix(values[keySiteURL], "/"),
		APIBase:     strings.TrimSuffix(values[keyAPIBase], "/"),
		User:        values[keyUser],
		AppPassword: values[keyAppPassword],
		AuthorID:    1,
		CategoryID:  1,
	}

	for key, value := range map[string]string{
		keySiteURL:     cfg.SiteURL,
		keyAPIBase:     cfg.APIBase,
		keyUser:        cfg.User,
		keyAppPassword: cfg.AppPassword,
	} {
		if value == "" {
			return nil, &core.ConfigError{Path: path, Err: fmt.Errorf("missing required key %s", key)}
		}
	}

	if raw, ok := values[keyAuthorID]; ok {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &core.ConfigError{Path: path, Err: fmt.Errorf("invalid %s %q", keyAuthorID, raw)}
		}
		cfg.AuthorID = id
	}
	if raw, ok := values[keyCategoryID]; ok {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &core.ConfigError{Path: path, Err: fmt.Errorf("invalid %s %q", keyCategoryID, raw)}
		}
		cfg.CategoryID = id
	}

	return cfg, nil
}

// cleanValue strips surrounding whitespace and quote characters.
func cleanValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}
