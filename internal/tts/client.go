// Package tts turns reply text into PCM audio via the remote synthesis
// service.
package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/porter-saathi/saathi/internal/config"
	"github.com/porter-saathi/saathi/internal/i18n"
)

// Clip is one synthesized utterance as mono s16le PCM.
type Clip struct {
	PCM        []byte
	SampleRate int
}

// Client calls the synthesis endpoint. Audio comes back as raw linear16
// at the requested sample rate.
type Client struct {
	endpoint   string
	apiKey     string
	voice      string
	sampleRate int
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient builds a Client from configuration. The API key is read
// from the configured environment variable.
func NewClient(cfg config.TTSConfig, logger *slog.Logger) (*Client, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("tts: %s is not set", cfg.APIKeyEnv)
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		apiKey:     key,
		voice:      cfg.Voice,
		sampleRate: cfg.SampleRate,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}, nil
}

type synthesisRequest struct {
	Text string `json:"text"`
}

// Synthesize converts text to one audio clip.
func (c *Client) Synthesize(ctx context.Context, text string, locale i18n.Locale) (Clip, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return Clip{}, fmt.Errorf("tts: parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("model", c.voice)
	q.Set("encoding", "linear16")
	q.Set("sample_rate", strconv.Itoa(c.sampleRate))
	q.Set("language", i18n.Tag(locale))
	u.RawQuery = q.Encode()

	body, err := json.Marshal(synthesisRequest{Text: text})
	if err != nil {
		return Clip{}, fmt.Errorf("tts: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return Clip{}, fmt.Errorf("tts: build request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Clip{}, fmt.Errorf("tts: synthesis request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Clip{}, fmt.Errorf("tts: synthesis returned %d: %s", resp.StatusCode, detail)
	}

	pcm, err := io.ReadAll(resp.Body)
	if err != nil {
		return Clip{}, fmt.Errorf("tts: read audio: %w", err)
	}
	if len(pcm) == 0 {
		return Clip{}, fmt.Errorf("tts: synthesis returned no audio")
	}

	c.logger.Debug("synthesized clip",
		"bytes", len(pcm),
		"elapsed_ms", time.Since(started).Milliseconds())

	return Clip{PCM: pcm, SampleRate: c.sampleRate}, nil
}
