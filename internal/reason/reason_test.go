package reason

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"

	"github.com/porter-saathi/saathi/internal/config"
	"github.com/porter-saathi/saathi/internal/i18n"
	"github.com/porter-saathi/saathi/internal/intent"
	"github.com/porter-saathi/saathi/internal/logging"
)

type fakeCompleter struct {
	calls    int
	lastReq  openai.ChatCompletionRequest
	response openai.ChatCompletionResponse
	err      error
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	f.lastReq = req
	return f.response, f.err
}

func completion(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func testService(fake *fakeCompleter) *Service {
	return &Service{
		client:   fake,
		model:    "gpt-4o-mini",
		maxTurns: 4,
		logger:   logging.Discard(),
	}
}

func TestAnswerParsesJSONReply(t *testing.T) {
	fake := &fakeCompleter{response: completion(`{"response_text": "हाइवे पर रुकिए और 1033 पर कॉल करें।"}`)}
	svc := testService(fake)

	text, err := svc.Answer(context.Background(), Request{
		Persona:   PersonaDirect,
		Utterance: "गाड़ी खराब हो गई",
		Locale:    i18n.Hindi,
		Screen:    intent.ScreenHome,
	})
	require.NoError(t, err)
	require.Equal(t, "हाइवे पर रुकिए और 1033 पर कॉल करें।", text)
	require.Equal(t, 1, fake.calls)
	require.Equal(t, "gpt-4o-mini", fake.lastReq.Model)
	require.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, fake.lastReq.ResponseFormat.Type)
}

func TestAnswerNonJSONReplyIsNetworkError(t *testing.T) {
	fake := &fakeCompleter{response: completion("I cannot answer in JSON today")}
	svc := testService(fake)

	text, err := svc.Answer(context.Background(), Request{Persona: PersonaDirect, Locale: i18n.English})
	require.ErrorIs(t, err, ErrNetwork)
	require.Empty(t, text)
	require.Equal(t, 1, fake.calls)
}

func TestAnswerTransportFailureIsSingleAttempt(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("dial tcp: connection refused")}
	svc := testService(fake)

	_, err := svc.Answer(context.Background(), Request{Persona: PersonaDirect, Locale: i18n.English})
	require.ErrorIs(t, err, ErrNetwork)
	require.Equal(t, 1, fake.calls)
}

func TestAnswerEmptyChoicesIsNetworkError(t *testing.T) {
	fake := &fakeCompleter{}
	svc := testService(fake)

	_, err := svc.Answer(context.Background(), Request{Persona: PersonaDirect, Locale: i18n.English})
	require.ErrorIs(t, err, ErrNetwork)
}

func TestAnswerEmptyReplyIsNetworkError(t *testing.T) {
	fake := &fakeCompleter{response: completion(`{"response_text": ""}`)}
	svc := testService(fake)

	_, err := svc.Answer(context.Background(), Request{Persona: PersonaDirect, Locale: i18n.English})
	require.ErrorIs(t, err, ErrNetwork)
}

func TestMessagesCarryPersonaAndHistory(t *testing.T) {
	fake := &fakeCompleter{response: completion("ok")}
	svc := testService(fake)

	history := []Turn{
		{Role: RoleUser, Text: "challan kaise bhare"},
		{Role: RoleAssistant, Text: "Pehle Parivahan website kholiye."},
	}
	_, err := svc.Answer(context.Background(), Request{
		Persona:   PersonaDiagnostic,
		Utterance: "phir kya karu",
		Locale:    i18n.Hindi,
		Screen:    intent.ScreenGuruChat,
		History:   history,
	})
	require.NoError(t, err)

	msgs := fake.lastReq.Messages
	require.Len(t, msgs, 4)
	require.Equal(t, openai.ChatMessageRoleSystem, msgs[0].Role)
	require.Contains(t, msgs[0].Content, "clarifying question")
	require.Contains(t, msgs[0].Content, "Hindi")
	require.Contains(t, msgs[0].Content, "guru-chat")
	require.Equal(t, openai.ChatMessageRoleUser, msgs[1].Role)
	require.Equal(t, openai.ChatMessageRoleAssistant, msgs[2].Role)
	require.Equal(t, "phir kya karu", msgs[3].Content)
}

func TestClipHistoryKeepsMostRecent(t *testing.T) {
	history := make([]Turn, 12)
	for i := range history {
		history[i] = Turn{Role: RoleUser, Text: string(rune('a' + i))}
	}

	clipped := clipHistory(history, 2)
	require.Len(t, clipped, 4)
	require.Equal(t, history[8:], clipped)

	require.Len(t, clipHistory(history, 0), 12)
}

func configFor(env string) config.ReasonConfig {
	return config.ReasonConfig{
		Model:     "gpt-4o-mini",
		APIKeyEnv: env,
		MaxTurns:  4,
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	t.Setenv("SAATHI_TEST_REASON_KEY", "")

	_, err := New(configFor("SAATHI_TEST_REASON_KEY"), logging.Discard())
	require.Error(t, err)

	t.Setenv("SAATHI_TEST_REASON_KEY", "sk-test")
	svc, err := New(configFor("SAATHI_TEST_REASON_KEY"), logging.Discard())
	require.NoError(t, err)
	require.NotNil(t, svc)
}
