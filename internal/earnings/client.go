package earnings

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/porter-saathi/saathi/internal/config"
)

// Client talks to the earnings backend REST API.
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

// Overview fetches today's and last week's totals.
func (c *Client) Overview(ctx context.Context) (Overview, error) {
	var out Overview
	if err := c.getJSON(ctx, "/api/v1/earnings", &out); err != nil {
		return Overview{}, err
	}
	return out, nil
}

// Weekly fetches the current-week breakdown with growth percentage.
func (c *Client) Weekly(ctx context.Context) (Weekly, error) {
	var out Weekly
	if err := c.getJSON(ctx, "/api/v1/earnings/weekly", &out); err != nil {
		return Weekly{}, err
	}
	return out, nil
}

// getJSON performs one GET roundtrip and decodes a JSON body.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("fetch %s: HTTP %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
