package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefaultsToHelp(t *testing.T) {
	parsed, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, CommandHelp, parsed.Command)
	require.True(t, parsed.ShowHelp)
}

func TestParseCommands(t *testing.T) {
	for _, cmd := range []Command{CommandListen, CommandChat, CommandEmergency, CommandStatus, CommandStop, CommandCancel, CommandDevices, CommandDoctor, CommandVersion} {
		parsed, err := Parse([]string{string(cmd)})
		require.NoError(t, err, cmd)
		require.Equal(t, cmd, parsed.Command)
		require.False(t, parsed.ShowHelp)
	}
}

func TestParseAskCollectsUtterance(t *testing.T) {
	parsed, err := Parse([]string{"--locale", "hi-IN", "ask", "aaj", "ki", "kamai", "kitna", "hai"})
	require.NoError(t, err)
	require.Equal(t, CommandAsk, parsed.Command)
	require.Equal(t, "hi-IN", parsed.Locale)
	require.Equal(t, "aaj ki kamai kitna hai", parsed.Utterance)
}

func TestParseAskWithoutTextFails(t *testing.T) {
	_, err := Parse([]string{"ask"})
	require.Error(t, err)
}

func TestParseFlags(t *testing.T) {
	parsed, err := Parse([]string{"--config", "/tmp/saathi.yaml", "--locale", "ta-IN", "status"})
	require.NoError(t, err)
	require.Equal(t, CommandStatus, parsed.Command)
	require.Equal(t, "/tmp/saathi.yaml", parsed.ConfigPath)
	require.Equal(t, "ta-IN", parsed.Locale)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]string{"--config"})
	require.Error(t, err)

	_, err = Parse([]string{"--locale"})
	require.Error(t, err)

	_, err = Parse([]string{"--frobnicate"})
	require.Error(t, err)

	_, err = Parse([]string{"teleport"})
	require.Error(t, err)

	_, err = Parse([]string{"status", "extra"})
	require.Error(t, err)
}

func TestParseVersionFlag(t *testing.T) {
	parsed, err := Parse([]string{"--version"})
	require.NoError(t, err)
	require.Equal(t, CommandVersion, parsed.Command)
}

func TestHelpTextMentionsCommands(t *testing.T) {
	text := HelpText("saathi")
	for _, want := range []string{"ask", "listen", "chat", "emergency", "doctor", "--locale"} {
		require.Contains(t, text, want)
	}
}
