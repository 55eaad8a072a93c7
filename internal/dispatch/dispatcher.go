// Package dispatch turns one utterance into one spoken response. It
// fetches a fresh earnings snapshot, runs the deterministic rules, and
// falls back to the reasoning service for anything unmatched.
package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/porter-saathi/saathi/internal/earnings"
	"github.com/porter-saathi/saathi/internal/i18n"
	"github.com/porter-saathi/saathi/internal/intent"
	"github.com/porter-saathi/saathi/internal/logging"
	"github.com/porter-saathi/saathi/internal/playback"
	"github.com/porter-saathi/saathi/internal/reason"
	"github.com/porter-saathi/saathi/internal/snapshot"
	"github.com/porter-saathi/saathi/internal/tutorial"
)

// Speaker voices replies.
type Speaker interface {
	Speak(ctx context.Context, text string, locale i18n.Locale) (playback.Handle, error)
}

// Reasoner answers utterances the rules cannot.
type Reasoner interface {
	Answer(ctx context.Context, req reason.Request) (string, error)
}

// Response is the resolved effect of one utterance.
type Response struct {
	Outcome  intent.Kind
	Reply    string
	Navigate intent.Screen
	Tutorial *tutorial.Entry
	Degraded bool
}

// Dispatcher serializes utterance handling. It tracks the active screen
// and, inside a guided session, the running conversation.
type Dispatcher struct {
	Earnings  earnings.Source
	Tutorials tutorial.Source
	Reasoner  Reasoner
	Speaker   Speaker
	Logger    *slog.Logger

	mu     sync.Mutex
	screen intent.Screen
	turns  []reason.Turn
}

func (d *Dispatcher) logger() *slog.Logger {
	if d.Logger == nil {
		return logging.Discard()
	}
	return d.Logger
}

// Screen reports the screen utterances are currently routed against.
func (d *Dispatcher) Screen() intent.Screen {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.screen == "" {
		return intent.ScreenHome
	}
	return d.screen
}

// SetScreen moves routing to another screen. Leaving the guided session
// drops its conversation history.
func (d *Dispatcher) SetScreen(screen intent.Screen) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.screen == intent.ScreenGuruChat && screen != intent.ScreenGuruChat {
		d.turns = nil
	}
	d.screen = screen
}

// EnterGuidedSession switches to the guru chat screen, resets the
// conversation, and speaks the intro line. The intro becomes the first
// assistant turn so the model knows it already greeted the user.
func (d *Dispatcher) EnterGuidedSession(ctx context.Context, locale i18n.Locale) error {
	intro := i18n.T(i18n.KeyGuruIntro, locale)

	d.mu.Lock()
	d.screen = intent.ScreenGuruChat
	d.turns = []reason.Turn{{Role: reason.RoleAssistant, Text: intro}}
	d.mu.Unlock()

	_, err := d.Speaker.Speak(ctx, intro, locale)
	return err
}

// Handle resolves one utterance end to end and speaks the reply.
func (d *Dispatcher) Handle(ctx context.Context, utterance string, locale i18n.Locale) (Response, error) {
	snap, err := snapshot.Fetch(ctx, d.Earnings)
	if err != nil {
		// Routing still works against zero figures.
		d.logger().Warn("snapshot unavailable", "error", err)
		snap = snapshot.Snapshot{}
	}

	screen := d.Screen()
	outcome := intent.Route(intent.Utterance{Text: utterance, Locale: locale}, snap, screen)
	d.logger().Info("routed utterance", "outcome", outcome.Kind.String(), "screen", string(screen))

	response := Response{Outcome: outcome.Kind, Reply: outcome.Reply, Navigate: outcome.Navigate}

	switch outcome.Kind {
	case intent.KindRemoteFallback:
		response = d.remoteAnswer(ctx, utterance, locale, screen, snap)
	case intent.KindTutorialNavigate:
		entry, terr := d.Tutorials.Entry(ctx, outcome.Category, locale)
		if terr != nil {
			d.logger().Warn("tutorial lookup failed", "category", outcome.Category, "error", terr)
		} else {
			response.Tutorial = &entry
			response.Reply = i18n.T(i18n.KeyTutorialOpened, locale) + " " + entry.Title
		}
	}

	if response.Navigate != "" {
		d.SetScreen(response.Navigate)
	}
	d.recordTurns(screen, utterance, response.Reply)

	if response.Reply != "" {
		if _, serr := d.Speaker.Speak(ctx, response.Reply, locale); serr != nil {
			return response, serr
		}
	}
	return response, nil
}

// remoteAnswer calls the reasoning service. Every failure resolves to
// the single spoken network-error line, never a retry.
func (d *Dispatcher) remoteAnswer(ctx context.Context, utterance string, locale i18n.Locale, screen intent.Screen, snap snapshot.Snapshot) Response {
	persona := reason.PersonaDirect
	if screen == intent.ScreenGuruChat {
		persona = reason.PersonaDiagnostic
	}

	d.mu.Lock()
	history := append([]reason.Turn(nil), d.turns...)
	d.mu.Unlock()

	text, err := d.Reasoner.Answer(ctx, reason.Request{
		Persona:   persona,
		Utterance: utterance,
		Locale:    locale,
		Screen:    screen,
		Snapshot:  snap,
		History:   history,
	})
	if err != nil {
		if !errors.Is(err, reason.ErrNetwork) {
			d.logger().Error("reasoning failed", "error", err)
		}
		return Response{
			Outcome:  intent.KindRemoteFallback,
			Reply:    i18n.T(i18n.KeyNetworkError, locale),
			Degraded: true,
		}
	}
	return Response{Outcome: intent.KindRemoteFallback, Reply: text}
}

// recordTurns appends the exchange to the guided-session conversation.
// Outside the guided session no history is kept.
func (d *Dispatcher) recordTurns(screen intent.Screen, utterance, reply string) {
	if screen != intent.ScreenGuruChat {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.turns = append(d.turns, reason.Turn{Role: reason.RoleUser, Text: utterance})
	if reply != "" {
		d.turns = append(d.turns, reason.Turn{Role: reason.RoleAssistant, Text: reply})
	}
}

// Turns returns a copy of the guided-session conversation.
func (d *Dispatcher) Turns() []reason.Turn {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]reason.Turn(nil), d.turns...)
}
