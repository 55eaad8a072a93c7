// Package playback owns the single shared speech output. Every spoken
// reply goes through the engine; starting a new clip always preempts
// whatever is currently audible.
package playback

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/porter-saathi/saathi/internal/audio"
	"github.com/porter-saathi/saathi/internal/fsm"
	"github.com/porter-saathi/saathi/internal/i18n"
	"github.com/porter-saathi/saathi/internal/tts"
)

// Synthesizer produces audio for cleaned reply text.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, locale i18n.Locale) (tts.Clip, error)
}

// Handle tracks one clip from start to completion.
type Handle interface {
	Done() <-chan struct{}
	Stop()
}

// Sink plays one PCM clip and reports its lifetime through a Handle.
type Sink interface {
	Play(pcm []byte, sampleRate int) (Handle, error)
}

// FallbackSpeaker voices text without the synthesis service, used when
// synthesis fails so the driver is never left in silence.
type FallbackSpeaker interface {
	Speak(ctx context.Context, text string, locale i18n.Locale) error
}

// PulseSink adapts the Pulse output to the engine's Sink interface.
type PulseSink struct {
	Sink *audio.Sink
}

func (p PulseSink) Play(pcm []byte, sampleRate int) (Handle, error) {
	return p.Sink.Play(pcm, sampleRate)
}

// Engine serializes speech output. It is safe for concurrent use; the
// newest Speak call wins and earlier clips are cut off.
type Engine struct {
	synth     Synthesizer
	sink      Sink
	fallback  FallbackSpeaker
	logger    *slog.Logger
	dumpAudio bool

	mu      sync.Mutex
	state   fsm.PlaybackState
	current Handle
	gen     uint64
}

// NewEngine wires the synthesis client, the speaker sink, and the
// degraded fallback speaker.
func NewEngine(synth Synthesizer, sink Sink, fallback FallbackSpeaker, logger *slog.Logger, dumpAudio bool) *Engine {
	return &Engine{
		synth:     synth,
		sink:      sink,
		fallback:  fallback,
		logger:    logger,
		dumpAudio: dumpAudio,
		state:     fsm.PlaybackIdle,
	}
}

// State reports the current output lifecycle state.
func (e *Engine) State() fsm.PlaybackState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Halt cuts off the current clip, if any.
func (e *Engine) Halt() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.haltLocked()
}

func (e *Engine) haltLocked() {
	// Bumping the generation abandons any Speak still waiting on
	// synthesis; its clip is dropped before it reaches the sink.
	e.gen++
	if e.current != nil {
		e.current.Stop()
		e.current = nil
	}
	e.state, _ = fsm.TransitionPlayback(e.state, fsm.PlaybackHalt)
}

// Speak voices one reply. Markup is stripped first; text that is empty
// after cleaning resolves immediately with no synthesis call. The
// returned handle's Done channel closes when the clip finishes or is
// preempted by a later Speak.
func (e *Engine) Speak(ctx context.Context, text string, locale i18n.Locale) (Handle, error) {
	cleaned := CleanForSpeech(text)
	if cleaned == "" {
		return doneHandle{}, nil
	}

	e.mu.Lock()
	e.haltLocked()
	gen := e.gen
	e.state, _ = fsm.TransitionPlayback(e.state, fsm.PlaybackFetch)
	e.mu.Unlock()

	clip, err := e.synth.Synthesize(ctx, cleaned, locale)
	if e.superseded(gen) {
		// A later Speak or a Halt arrived while synthesis was in
		// flight; only the newest request may reach the sink.
		return doneHandle{}, nil
	}
	if err != nil {
		e.logger.Warn("synthesis failed", "error", err)
		e.mu.Lock()
		e.state, _ = fsm.TransitionPlayback(e.state, fsm.PlaybackHalt)
		e.mu.Unlock()
		if e.fallback != nil {
			if ferr := e.fallback.Speak(ctx, cleaned, locale); ferr == nil {
				return doneHandle{}, nil
			}
			e.logger.Warn("fallback speech failed")
		}
		return nil, fmt.Errorf("speak: %w", err)
	}

	e.dump(clip)

	handle, err := e.sink.Play(clip.PCM, clip.SampleRate)
	if err != nil {
		e.mu.Lock()
		e.state, _ = fsm.TransitionPlayback(e.state, fsm.PlaybackHalt)
		e.mu.Unlock()
		return nil, fmt.Errorf("speak: %w", err)
	}

	e.mu.Lock()
	if e.gen != gen {
		e.mu.Unlock()
		handle.Stop()
		return handle, nil
	}
	e.current = handle
	e.state, _ = fsm.TransitionPlayback(e.state, fsm.PlaybackStart)
	e.mu.Unlock()

	go func() {
		<-handle.Done()
		e.mu.Lock()
		defer e.mu.Unlock()
		// A later Speak may already own the output.
		if e.current == handle {
			e.current = nil
			e.state, _ = fsm.TransitionPlayback(e.state, fsm.PlaybackEnd)
		}
	}()

	return handle, nil
}

func (e *Engine) superseded(gen uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gen != gen
}

// Wait blocks until nothing is playing or ctx ends. Used before process
// exit so replies are never cut off mid sentence.
func (e *Engine) Wait(ctx context.Context) {
	for {
		e.mu.Lock()
		current := e.current
		e.mu.Unlock()
		if current == nil {
			return
		}
		select {
		case <-current.Done():
			// Give the completion watcher a beat to clear the slot.
			time.Sleep(time.Millisecond)
		case <-ctx.Done():
			return
		}
	}
}

// dump writes the clip as a timestamped WAV when audio dumping is on.
func (e *Engine) dump(clip tts.Clip) {
	if !e.dumpAudio || len(clip.PCM) == 0 {
		return
	}

	dir, err := debugDir()
	if err != nil {
		e.logger.Warn("unable to resolve debug dir", "error", err)
		return
	}
	path := filepath.Join(dir, fmt.Sprintf("speech-%s.wav", time.Now().Format("20060102-150405.000")))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		e.logger.Warn("unable to create audio dump", "error", err)
		return
	}
	defer file.Close()

	if err := tts.WriteWAV(file, clip.PCM, clip.SampleRate, 1); err != nil {
		e.logger.Warn("unable to write audio dump", "error", err)
	}
}

func debugDir() (string, error) {
	state := strings.TrimSpace(os.Getenv("XDG_STATE_HOME"))
	if state == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		state = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(state, "saathi", "debug")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// doneHandle is an already-finished clip.
type doneHandle struct{}

func (doneHandle) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

func (doneHandle) Stop() {}
