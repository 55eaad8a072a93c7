// Package speech owns the single microphone capture slot. At most one
// listening session exists at a time; starting a new one revokes the
// previous session before any audio flows.
package speech

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/porter-saathi/saathi/internal/config"
	"github.com/porter-saathi/saathi/internal/fsm"
	"github.com/porter-saathi/saathi/internal/i18n"
)

// ErrNoSpeech means the session ended without hearing anything usable.
// Callers treat this as a quiet cabin, not a failure.
var ErrNoSpeech = errors.New("no speech detected")

// ErrRevoked means a newer session or an explicit stop took the slot.
var ErrRevoked = errors.New("listening session revoked")

// Listener runs one capture-and-recognize pass and returns the final
// transcript. It must honor ctx cancellation.
type Listener interface {
	Listen(ctx context.Context, locale i18n.Locale) (string, error)
}

// Manager serializes access to the capture slot.
type Manager struct {
	listener Listener
	timeout  time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	state   fsm.VoiceState
	cancel  context.CancelFunc
	session int
}

// NewManager builds a Manager with the configured listen timeout.
func NewManager(listener Listener, cfg config.SpeechConfig, logger *slog.Logger) *Manager {
	timeout := time.Duration(cfg.ListenTimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Manager{
		listener: listener,
		timeout:  timeout,
		logger:   logger,
		state:    fsm.VoiceIdle,
	}
}

// State reports the capture slot's lifecycle state.
func (m *Manager) State() fsm.VoiceState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Start runs one listening session and blocks until a final transcript,
// a timeout, or revocation. Calling Start while a session is live
// revokes that session first; its caller gets ErrRevoked.
func (m *Manager) Start(ctx context.Context, locale i18n.Locale) (string, error) {
	m.mu.Lock()
	if m.cancel != nil {
		m.logger.Info("revoking previous listening session")
		m.cancel()
	}
	sessionCtx, cancel := context.WithTimeout(ctx, m.timeout)
	m.cancel = cancel
	m.session++
	id := m.session
	m.state = fsm.VoiceListening
	m.mu.Unlock()

	text, err := m.listener.Listen(sessionCtx, locale)

	m.mu.Lock()
	current := m.session == id
	if current {
		m.cancel = nil
		m.state = fsm.VoiceIdle
	}
	m.mu.Unlock()
	cancel()

	if !current {
		return "", ErrRevoked
	}

	switch {
	case err == nil && text == "":
		return "", ErrNoSpeech
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(sessionCtx.Err(), context.DeadlineExceeded):
		if text != "" {
			return text, nil
		}
		return "", ErrNoSpeech
	case errors.Is(err, context.Canceled) || errors.Is(sessionCtx.Err(), context.Canceled):
		return "", ErrRevoked
	case err != nil:
		m.logger.Error("listening session failed", "error", err)
		return "", err
	}
	return text, nil
}

// Stop revokes the live session, if any, and returns once the slot is
// released.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel == nil {
		return
	}
	m.cancel()
	m.cancel = nil
	m.session++
	m.state, _ = fsm.TransitionVoice(m.state, fsm.VoiceStop)
	m.state, _ = fsm.TransitionVoice(m.state, fsm.VoiceDone)
}
