package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/porter-saathi/saathi/internal/earnings"
	"github.com/porter-saathi/saathi/internal/i18n"
	"github.com/porter-saathi/saathi/internal/intent"
	"github.com/porter-saathi/saathi/internal/logging"
	"github.com/porter-saathi/saathi/internal/playback"
	"github.com/porter-saathi/saathi/internal/reason"
	"github.com/porter-saathi/saathi/internal/tutorial"
)

type doneHandle struct{}

func (doneHandle) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

func (doneHandle) Stop() {}

type spySpeaker struct {
	spoken []string
}

func (s *spySpeaker) Speak(_ context.Context, text string, _ i18n.Locale) (playback.Handle, error) {
	s.spoken = append(s.spoken, text)
	return doneHandle{}, nil
}

type scriptedReasoner struct {
	answer string
	err    error
	reqs   []reason.Request
}

func (r *scriptedReasoner) Answer(_ context.Context, req reason.Request) (string, error) {
	r.reqs = append(r.reqs, req)
	return r.answer, r.err
}

func newDispatcher(speaker *spySpeaker, reasoner Reasoner) *Dispatcher {
	return &Dispatcher{
		Earnings:  earnings.Resilient{Logger: logging.Discard()},
		Tutorials: tutorial.Resilient{Logger: logging.Discard()},
		Reasoner:  reasoner,
		Speaker:   speaker,
		Logger:    logging.Discard(),
	}
}

func TestHandleToleratesNilLogger(t *testing.T) {
	speaker := &spySpeaker{}
	d := &Dispatcher{
		Earnings:  earnings.Resilient{},
		Tutorials: tutorial.Resilient{},
		Reasoner:  &scriptedReasoner{err: errors.New("upstream exploded")},
		Speaker:   speaker,
	}

	// Both the Info routing line and the Error reasoning line fire here.
	resp, err := d.Handle(context.Background(), "mausam kaisa rahega", i18n.Hindi)
	require.NoError(t, err)
	require.True(t, resp.Degraded)
	require.Equal(t, i18n.T(i18n.KeyNetworkError, i18n.Hindi), resp.Reply)
}

func TestHandleEmergencyNumberIsLocal(t *testing.T) {
	speaker := &spySpeaker{}
	reasoner := &scriptedReasoner{}
	d := newDispatcher(speaker, reasoner)

	resp, err := d.Handle(context.Background(), "ambulance ka number batao", i18n.Hindi)
	require.NoError(t, err)
	require.Equal(t, intent.KindEmergencyNumber, resp.Outcome)
	require.Contains(t, resp.Reply, "108")
	require.Empty(t, reasoner.reqs)
	require.Equal(t, []string{resp.Reply}, speaker.spoken)
}

func TestHandleEarningsUsesFreshSnapshot(t *testing.T) {
	speaker := &spySpeaker{}
	d := newDispatcher(speaker, &scriptedReasoner{})

	resp, err := d.Handle(context.Background(), "aaj ki kamai kitna hai", i18n.Hindi)
	require.NoError(t, err)
	require.Equal(t, intent.KindEarningsAnswer, resp.Outcome)
	// Demo figures from the degraded earnings source.
	require.Contains(t, resp.Reply, "₹950")
	require.Contains(t, resp.Reply, "₹9650")
}

func TestHandleTutorialNavigates(t *testing.T) {
	speaker := &spySpeaker{}
	d := newDispatcher(speaker, &scriptedReasoner{})

	resp, err := d.Handle(context.Background(), "challan kaise bhare", i18n.Hindi)
	require.NoError(t, err)
	require.Equal(t, intent.KindTutorialNavigate, resp.Outcome)
	require.Equal(t, intent.ScreenGuru, resp.Navigate)
	require.NotNil(t, resp.Tutorial)
	require.Equal(t, "challan", resp.Tutorial.Category)
	require.Equal(t, intent.ScreenGuru, d.Screen())
	require.Contains(t, speaker.spoken[0], resp.Tutorial.Title)
}

func TestHandleFallbackAsksReasoner(t *testing.T) {
	speaker := &spySpeaker{}
	reasoner := &scriptedReasoner{answer: "Agle dhabe par aaram kijiye."}
	d := newDispatcher(speaker, reasoner)

	resp, err := d.Handle(context.Background(), "mujhe neend aa rahi hai", i18n.Hindi)
	require.NoError(t, err)
	require.Equal(t, intent.KindRemoteFallback, resp.Outcome)
	require.Equal(t, "Agle dhabe par aaram kijiye.", resp.Reply)
	require.False(t, resp.Degraded)

	require.Len(t, reasoner.reqs, 1)
	require.Equal(t, reason.PersonaDirect, reasoner.reqs[0].Persona)
	require.Equal(t, intent.ScreenHome, reasoner.reqs[0].Screen)
}

func TestHandleFallbackNetworkErrorSpeaksOneLine(t *testing.T) {
	speaker := &spySpeaker{}
	reasoner := &scriptedReasoner{err: reason.ErrNetwork}
	d := newDispatcher(speaker, reasoner)

	resp, err := d.Handle(context.Background(), "mujhe neend aa rahi hai", i18n.Hindi)
	require.NoError(t, err)
	require.True(t, resp.Degraded)
	require.Equal(t, i18n.T(i18n.KeyNetworkError, i18n.Hindi), resp.Reply)
	require.Len(t, reasoner.reqs, 1)
	require.Equal(t, []string{resp.Reply}, speaker.spoken)
}

func TestGuidedSessionConversation(t *testing.T) {
	speaker := &spySpeaker{}
	reasoner := &scriptedReasoner{answer: "Pehle Parivahan website kholiye."}
	d := newDispatcher(speaker, reasoner)

	require.NoError(t, d.EnterGuidedSession(context.Background(), i18n.Hindi))
	require.Equal(t, intent.ScreenGuruChat, d.Screen())
	require.Equal(t, i18n.T(i18n.KeyGuruIntro, i18n.Hindi), speaker.spoken[0])

	// Tutorial vocabulary stays conversational inside the session.
	resp, err := d.Handle(context.Background(), "challan kaise bhare", i18n.Hindi)
	require.NoError(t, err)
	require.Equal(t, intent.KindRemoteFallback, resp.Outcome)
	require.Equal(t, reason.PersonaDiagnostic, reasoner.reqs[0].Persona)

	turns := d.Turns()
	require.Len(t, turns, 3)
	require.Equal(t, reason.RoleAssistant, turns[0].Role)
	require.Equal(t, "challan kaise bhare", turns[1].Text)
	require.Equal(t, "Pehle Parivahan website kholiye.", turns[2].Text)

	// History accompanies the next request.
	_, err = d.Handle(context.Background(), "phir kya karu", i18n.Hindi)
	require.NoError(t, err)
	require.Len(t, reasoner.reqs[1].History, 3)

	// Leaving the session drops the conversation.
	d.SetScreen(intent.ScreenHome)
	require.Empty(t, d.Turns())
}

func TestHandleEmergencyRedirectChangesScreen(t *testing.T) {
	speaker := &spySpeaker{}
	d := newDispatcher(speaker, &scriptedReasoner{})

	resp, err := d.Handle(context.Background(), "accident ho gaya madad karo", i18n.Hindi)
	require.NoError(t, err)
	require.Equal(t, intent.KindEmergencyRedirect, resp.Outcome)
	require.Equal(t, intent.ScreenSuraksha, d.Screen())
}
