// Package emergency runs the voice confirmation flow for the safety
// screen. The user is asked to confirm out loud before any emergency
// guidance is given; anything other than a clear yes cancels.
package emergency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/porter-saathi/saathi/internal/fsm"
	"github.com/porter-saathi/saathi/internal/i18n"
	"github.com/porter-saathi/saathi/internal/intent"
	"github.com/porter-saathi/saathi/internal/logging"
	"github.com/porter-saathi/saathi/internal/playback"
	"github.com/porter-saathi/saathi/internal/speech"
)

// Contact is one fixed national emergency service.
type Contact struct {
	Name    string
	Service intent.Service
	Number  string
}

// Contacts returns the services shown on the safety screen. The numbers
// are nationwide and never fetched remotely.
func Contacts() []Contact {
	return []Contact{
		{Name: "Ambulance", Service: intent.ServiceAmbulance, Number: intent.ServiceAmbulance.Number()},
		{Name: "Police", Service: intent.ServicePolice, Number: intent.ServicePolice.Number()},
		{Name: "Fire", Service: intent.ServiceFire, Number: intent.ServiceFire.Number()},
	}
}

// Result is the terminal outcome of one confirmation flow.
type Result string

const (
	ResultConfirmed Result = "confirmed"
	ResultCancelled Result = "cancelled"
)

// Speaker voices prompts and exposes clip completion for sequencing.
type Speaker interface {
	Speak(ctx context.Context, text string, locale i18n.Locale) (playback.Handle, error)
}

// Session is the capture slot used to hear the confirmation answer.
type Session interface {
	Start(ctx context.Context, locale i18n.Locale) (string, error)
	Stop()
}

// Flow drives one prompt-listen-confirm pass.
type Flow struct {
	Speaker Speaker
	Session Session
	Logger  *slog.Logger

	mu    sync.Mutex
	state fsm.EmergencyState
}

func (f *Flow) logger() *slog.Logger {
	if f.Logger == nil {
		return logging.Discard()
	}
	return f.Logger
}

// State reports the flow's confirmation state.
func (f *Flow) State() fsm.EmergencyState {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == "" {
		return fsm.EmergencyIdle
	}
	return f.state
}

func (f *Flow) transition(event fsm.EmergencyEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == "" {
		f.state = fsm.EmergencyIdle
	}
	next, err := fsm.TransitionEmergency(f.state, event)
	if err != nil {
		f.logger().Error("emergency state error", "error", err)
		return
	}
	f.state = next
}

// Run speaks the confirmation prompt, waits for it to finish, listens
// for the answer, and resolves to confirmed or cancelled. Listening
// starts only after the prompt has fully played so the microphone never
// hears the assistant's own voice.
func (f *Flow) Run(ctx context.Context, locale i18n.Locale) (Result, error) {
	f.transition(fsm.EmergencyTrigger)
	defer f.Session.Stop()

	var answer string
	for attempt := 0; ; attempt++ {
		if err := f.prompt(ctx, locale); err != nil {
			f.transition(fsm.EmergencyDismiss)
			return "", err
		}

		var err error
		answer, err = f.Session.Start(ctx, locale)
		if err == nil {
			break
		}
		switch {
		case errors.Is(err, speech.ErrNoSpeech):
			// Silence never answers the question. The prompt repeats
			// once; a second silence resets without speaking a
			// cancellation the driver never asked for.
			if attempt == 0 {
				continue
			}
			f.transition(fsm.EmergencyDismiss)
			return ResultCancelled, nil
		case errors.Is(err, speech.ErrRevoked):
			f.transition(fsm.EmergencyDismiss)
			return "", err
		default:
			f.logger().Error("confirmation listening failed", "error", err)
			f.transition(fsm.EmergencyDeny)
			f.speak(ctx, i18n.T(i18n.KeyMicError, locale), locale)
			return ResultCancelled, nil
		}
	}

	if !Affirmative(answer, locale) {
		f.transition(fsm.EmergencyDeny)
		f.speak(ctx, i18n.T(i18n.KeyCancelled, locale), locale)
		return ResultCancelled, nil
	}

	f.transition(fsm.EmergencyAffirm)
	reassurance := strings.Join([]string{
		i18n.T(i18n.KeyStayCalm, locale),
		i18n.T(i18n.KeyBreatheSlowly, locale),
		i18n.T(i18n.KeyEmergencyHelp, locale),
	}, " ")
	f.speak(ctx, reassurance, locale)
	return ResultConfirmed, nil
}

func (f *Flow) prompt(ctx context.Context, locale i18n.Locale) error {
	handle, err := f.Speaker.Speak(ctx, i18n.T(i18n.KeyConfirmPrompt, locale), locale)
	if err != nil {
		return fmt.Errorf("confirmation prompt: %w", err)
	}
	select {
	case <-handle.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Flow) speak(ctx context.Context, text string, locale i18n.Locale) {
	if _, err := f.Speaker.Speak(ctx, text, locale); err != nil {
		f.logger().Warn("emergency speech failed", "error", err)
	}
}

// Affirmative reports whether an answer confirms the emergency. The
// locale's yes word always counts, and the common Hindi and English
// forms count in every locale.
func Affirmative(answer string, locale i18n.Locale) bool {
	normalized := " " + strings.ToLower(strings.Join(strings.Fields(answer), " ")) + " "
	words := []string{"yes", "haan", "han", "हाँ", "हां", i18n.T(i18n.KeyYes, locale)}
	for _, w := range words {
		w = strings.ToLower(w)
		if w == "" {
			continue
		}
		if strings.Contains(normalized, " "+w+" ") {
			return true
		}
	}
	return false
}
