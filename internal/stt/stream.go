// Package stt streams captured audio to the remote recognizer over a
// websocket and yields interim and final transcript events.
package stt

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/porter-saathi/saathi/internal/config"
	"github.com/porter-saathi/saathi/internal/i18n"
)

// Event is one recognizer message. Interim events carry the current
// hypothesis; Final marks a settled segment.
type Event struct {
	Text  string
	Final bool
}

// Stream is one live recognition connection. Events is closed when the
// server ends the stream or the connection drops.
type Stream interface {
	Send(pcm []byte) error
	Events() <-chan Event
	CloseSend() error
	Close() error
}

// Client dials recognition streams against a configured endpoint.
type Client struct {
	endpoint   string
	apiKey     string
	model      string
	sampleRate int
	logger     *slog.Logger
}

// NewClient builds a Client from configuration. The API key is read
// from the configured environment variable.
func NewClient(cfg config.SpeechConfig, logger *slog.Logger) (*Client, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("stt: %s is not set", cfg.APIKeyEnv)
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		apiKey:     key,
		model:      cfg.Model,
		sampleRate: cfg.SampleRate,
		logger:     logger,
	}, nil
}

// Dial opens a recognition stream for one capture session.
func (c *Client) Dial(locale i18n.Locale) (Stream, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("stt: parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("model", c.model)
	q.Set("encoding", "linear16")
	q.Set("sample_rate", fmt.Sprintf("%d", c.sampleRate))
	q.Set("channels", "1")
	q.Set("language", i18n.Tag(locale))
	q.Set("interim_results", "true")
	u.RawQuery = q.Encode()

	header := http.Header{}
	header.Set("Authorization", "Token "+c.apiKey)

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), header)
	if err != nil {
		return nil, fmt.Errorf("stt: dial %s: %w", u.Host, err)
	}

	s := &wsStream{
		conn:   conn,
		events: make(chan Event, 16),
		logger: c.logger,
	}
	go s.readLoop()
	return s, nil
}

type wsStream struct {
	conn   *websocket.Conn
	events chan Event
	logger *slog.Logger

	writeMu sync.Mutex
	closed  bool
}

// serverMessage mirrors the recognizer's result frame shape.
type serverMessage struct {
	Channel struct {
		Alternatives []struct {
			Transcript string `json:"transcript"`
		} `json:"alternatives"`
	} `json:"channel"`
	IsFinal bool `json:"is_final"`
}

func (s *wsStream) Send(pcm []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.closed {
		return nil
	}
	return s.conn.WriteMessage(websocket.BinaryMessage, pcm)
}

func (s *wsStream) Events() <-chan Event {
	return s.events
}

// CloseSend tells the server no more audio is coming. Pending results
// still arrive on Events until the server closes the stream.
func (s *wsStream) CloseSend() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "end of audio"))
}

func (s *wsStream) Close() error {
	s.writeMu.Lock()
	s.closed = true
	s.writeMu.Unlock()
	return s.conn.Close()
}

func (s *wsStream) readLoop() {
	defer close(s.events)
	for {
		msgType, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("recognizer stream dropped", "error", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var parsed serverMessage
		if err := json.Unmarshal(msg, &parsed); err != nil {
			s.logger.Warn("unparseable recognizer message", "error", err)
			continue
		}
		if len(parsed.Channel.Alternatives) == 0 {
			continue
		}
		text := parsed.Channel.Alternatives[0].Transcript
		if text == "" && !parsed.IsFinal {
			continue
		}
		s.events <- Event{Text: text, Final: parsed.IsFinal}
	}
}
