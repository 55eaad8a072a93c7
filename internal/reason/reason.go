// Package reason calls the remote generative service for utterances no
// deterministic rule can answer. Every failure mode collapses into one
// network-error result so the caller speaks a single recovery line.
package reason

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/porter-saathi/saathi/internal/config"
	"github.com/porter-saathi/saathi/internal/i18n"
	"github.com/porter-saathi/saathi/internal/intent"
	"github.com/porter-saathi/saathi/internal/snapshot"
)

// ErrNetwork is the single failure result for transport errors, empty
// completions, and unusable payloads alike.
var ErrNetwork = errors.New("reasoning service unavailable")

// Persona selects the system-prompt behavior for a request.
type Persona string

const (
	// PersonaDiagnostic asks one clarifying question before advising and
	// watches for distress the keyword rules missed.
	PersonaDiagnostic Persona = "diagnostic"
	// PersonaDirect answers immediately, grounded in the snapshot figures.
	PersonaDirect Persona = "direct"
)

// Turn is one prior exchange in a guided conversation.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Request carries everything the model needs for one answer.
type Request struct {
	Persona   Persona
	Utterance string
	Locale    i18n.Locale
	Screen    intent.Screen
	Snapshot  snapshot.Snapshot
	History   []Turn
}

type completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Service is a thin single-attempt client. It never retries; a failed
// call surfaces immediately so the user is not left waiting on a dead
// connection.
type Service struct {
	client   completer
	model    string
	maxTurns int
	logger   *slog.Logger
}

// New builds a Service from configuration. The API key is read from the
// configured environment variable at construction time.
func New(cfg config.ReasonConfig, logger *slog.Logger) (*Service, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("reason: %s is not set", cfg.APIKeyEnv)
	}
	clientCfg := openai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Service{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		maxTurns: cfg.MaxTurns,
		logger:   logger,
	}, nil
}

// Answer runs one completion and returns the spoken reply text.
func (s *Service) Answer(ctx context.Context, req Request) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    s.model,
		Messages: s.messages(req),
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		s.logger.Warn("completion failed", "error", err)
		return "", ErrNetwork
	}
	if len(resp.Choices) == 0 {
		s.logger.Warn("completion returned no choices")
		return "", ErrNetwork
	}

	text, err := extractReply(resp.Choices[0].Message.Content)
	if err != nil {
		s.logger.Warn("completion reply unparseable", "error", err)
		return "", ErrNetwork
	}
	if text == "" {
		s.logger.Warn("completion returned empty reply")
		return "", ErrNetwork
	}
	return text, nil
}

func (s *Service) messages(req Request) []openai.ChatCompletionMessage {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(req)},
	}
	for _, turn := range clipHistory(req.History, s.maxTurns) {
		role := openai.ChatMessageRoleUser
		if turn.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Text})
	}
	return append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Utterance,
	})
}

// clipHistory keeps only the most recent maxTurns exchanges so prompts
// stay bounded in long guided sessions.
func clipHistory(history []Turn, maxTurns int) []Turn {
	if maxTurns <= 0 {
		return history
	}
	limit := maxTurns * 2
	if len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}

type replyPayload struct {
	ResponseText string `json:"response_text"`
}

// extractReply pulls the spoken text out of the JSON object the model
// was instructed to return. A payload that is not that object is a
// parse failure, never spoken verbatim.
func extractReply(content string) (string, error) {
	var payload replyPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &payload); err != nil {
		return "", fmt.Errorf("decode reply payload: %w", err)
	}
	return strings.TrimSpace(payload.ResponseText), nil
}
