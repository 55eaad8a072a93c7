package speech

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/porter-saathi/saathi/internal/config"
	"github.com/porter-saathi/saathi/internal/fsm"
	"github.com/porter-saathi/saathi/internal/i18n"
	"github.com/porter-saathi/saathi/internal/logging"
)

// scriptedListener returns a fixed result, optionally after blocking
// until its context is cancelled.
type scriptedListener struct {
	mu        sync.Mutex
	text      string
	err       error
	blocking  bool
	started   chan struct{}
	startOnce sync.Once
	calls     int
}

func (l *scriptedListener) Listen(ctx context.Context, _ i18n.Locale) (string, error) {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()
	l.startOnce.Do(func() {
		if l.started != nil {
			close(l.started)
		}
	})
	if l.blocking {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return l.text, l.err
}

func newManager(listener Listener, timeoutMS int) *Manager {
	return NewManager(listener, config.SpeechConfig{ListenTimeoutMS: timeoutMS}, logging.Discard())
}

func TestStartReturnsTranscript(t *testing.T) {
	listener := &scriptedListener{text: "aaj ki kamai kitna hai"}
	manager := newManager(listener, 15000)

	text, err := manager.Start(context.Background(), i18n.Hindi)
	require.NoError(t, err)
	require.Equal(t, "aaj ki kamai kitna hai", text)
	require.Equal(t, fsm.VoiceIdle, manager.State())
}

func TestStartEmptyTranscriptIsNoSpeech(t *testing.T) {
	manager := newManager(&scriptedListener{text: ""}, 15000)

	_, err := manager.Start(context.Background(), i18n.Hindi)
	require.ErrorIs(t, err, ErrNoSpeech)
}

func TestStartTimeoutIsNoSpeech(t *testing.T) {
	manager := newManager(&scriptedListener{blocking: true}, 20)

	started := time.Now()
	_, err := manager.Start(context.Background(), i18n.Hindi)
	require.ErrorIs(t, err, ErrNoSpeech)
	require.Less(t, time.Since(started), 2*time.Second)
	require.Equal(t, fsm.VoiceIdle, manager.State())
}

func TestStartSurfacesHardErrors(t *testing.T) {
	micErr := errors.New("microphone: no audio input devices found")
	manager := newManager(&scriptedListener{err: micErr}, 15000)

	_, err := manager.Start(context.Background(), i18n.Hindi)
	require.ErrorIs(t, err, micErr)
	require.NotErrorIs(t, err, ErrNoSpeech)
}

func TestSecondStartRevokesFirst(t *testing.T) {
	first := &scriptedListener{blocking: true, started: make(chan struct{})}
	manager := newManager(first, 5000)

	type result struct {
		text string
		err  error
	}
	firstDone := make(chan result, 1)
	go func() {
		text, err := manager.Start(context.Background(), i18n.Hindi)
		firstDone <- result{text, err}
	}()
	<-first.started

	// Swap in an immediate listener for the second session.
	manager.listener = &scriptedListener{text: "doosra sawal"}

	text, err := manager.Start(context.Background(), i18n.Hindi)
	require.NoError(t, err)
	require.Equal(t, "doosra sawal", text)

	got := <-firstDone
	require.ErrorIs(t, got.err, ErrRevoked)
	require.Empty(t, got.text)
	require.Equal(t, fsm.VoiceIdle, manager.State())
}

func TestStopRevokesLiveSession(t *testing.T) {
	listener := &scriptedListener{blocking: true, started: make(chan struct{})}
	manager := newManager(listener, 5000)

	done := make(chan error, 1)
	go func() {
		_, err := manager.Start(context.Background(), i18n.Hindi)
		done <- err
	}()
	<-listener.started
	require.Equal(t, fsm.VoiceListening, manager.State())

	manager.Stop()
	require.ErrorIs(t, <-done, ErrRevoked)
	require.Equal(t, fsm.VoiceIdle, manager.State())

	// Stop with no live session is harmless.
	manager.Stop()
}

func TestStartDefaultsTimeout(t *testing.T) {
	manager := newManager(&scriptedListener{text: "ok"}, 0)
	require.Equal(t, 15*time.Second, manager.timeout)
}
