package tutorial

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/porter-saathi/saathi/internal/config"
	"github.com/porter-saathi/saathi/internal/i18n"
)

// Source resolves one walkthrough entry.
type Source interface {
	Entry(ctx context.Context, category string, locale i18n.Locale) (Entry, error)
}

// Client fetches walkthroughs from the backend REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a backend client from runtime config.
func NewClient(cfg config.BackendConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond},
	}
}

// Entry fetches one walkthrough in the requested language.
func (c *Client) Entry(ctx context.Context, category string, locale i18n.Locale) (Entry, error) {
	path := fmt.Sprintf("/api/v1/tutorials/%s?lang=%s", url.PathEscape(category), i18n.Tag(locale))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Entry{}, fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return Entry{}, fmt.Errorf("fetch %s: HTTP %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var entry Entry
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		return Entry{}, fmt.Errorf("decode %s response: %w", path, err)
	}
	if entry.Category == "" {
		entry.Category = category
	}
	return entry, nil
}

// Resilient wraps a Source so backend failures degrade to the embedded
// catalog instead of failing navigation.
type Resilient struct {
	Primary Source
	Logger  *slog.Logger
}

func (r Resilient) Entry(ctx context.Context, category string, locale i18n.Locale) (Entry, error) {
	if r.Primary != nil {
		entry, err := r.Primary.Entry(ctx, category, locale)
		if err == nil {
			return entry, nil
		}
		if r.Logger != nil {
			r.Logger.Warn("tutorial backend unavailable, using embedded catalog",
				"category", category, "error", err)
		}
	}
	return Lookup(category, locale)
}
