package config

import (
	"fmt"
	"strings"
)

var knownLocales = map[string]struct{}{
	"en": {}, "hi": {}, "te": {}, "ta": {},
}

// Validate enforces config invariants and returns non-fatal warnings.
func Validate(cfg Config) ([]Warning, error) {
	warnings := make([]Warning, 0)

	locale := strings.ToLower(strings.TrimSpace(cfg.Locale))
	if locale == "" {
		return nil, fmt.Errorf("locale must not be empty")
	}
	if i := strings.IndexAny(locale, "-_"); i >= 0 {
		locale = locale[:i]
	}
	if _, ok := knownLocales[locale]; !ok {
		warnings = append(warnings, Warning{
			Message: fmt.Sprintf("locale %q is not a supported locale; responses fall back to English", cfg.Locale),
		})
	}

	if strings.TrimSpace(cfg.Backend.BaseURL) == "" {
		return nil, fmt.Errorf("backend.base_url must not be empty")
	}
	if cfg.Backend.TimeoutMS <= 0 {
		return nil, fmt.Errorf("backend.timeout_ms must be > 0")
	}

	endpoint := strings.TrimSpace(cfg.Speech.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("speech.endpoint must not be empty")
	}
	if !strings.HasPrefix(endpoint, "ws://") && !strings.HasPrefix(endpoint, "wss://") {
		return nil, fmt.Errorf("speech.endpoint must be a ws:// or wss:// URL")
	}
	if strings.TrimSpace(cfg.Speech.APIKeyEnv) == "" {
		return nil, fmt.Errorf("speech.api_key_env must not be empty")
	}
	if cfg.Speech.SampleRate <= 0 {
		return nil, fmt.Errorf("speech.sample_rate must be > 0")
	}
	if cfg.Speech.ListenTimeoutMS <= 0 {
		return nil, fmt.Errorf("speech.listen_timeout_ms must be > 0")
	}

	ttsEndpoint := strings.TrimSpace(cfg.TTS.Endpoint)
	if ttsEndpoint == "" {
		return nil, fmt.Errorf("tts.endpoint must not be empty")
	}
	if !strings.HasPrefix(ttsEndpoint, "http://") && !strings.HasPrefix(ttsEndpoint, "https://") {
		return nil, fmt.Errorf("tts.endpoint must be an http:// or https:// URL")
	}
	if strings.TrimSpace(cfg.TTS.APIKeyEnv) == "" {
		return nil, fmt.Errorf("tts.api_key_env must not be empty")
	}
	if cfg.TTS.SampleRate <= 0 {
		return nil, fmt.Errorf("tts.sample_rate must be > 0")
	}

	if strings.TrimSpace(cfg.Reason.Model) == "" {
		return nil, fmt.Errorf("reason.model must not be empty")
	}
	if strings.TrimSpace(cfg.Reason.APIKeyEnv) == "" {
		return nil, fmt.Errorf("reason.api_key_env must not be empty")
	}
	if cfg.Reason.MaxTurns <= 0 {
		return nil, fmt.Errorf("reason.max_turns must be > 0")
	}

	if cfg.Playback.FallbackCmd.Raw != "" && len(cfg.Playback.FallbackCmd.Argv) == 0 {
		return nil, fmt.Errorf("playback.fallback_cmd is configured but empty")
	}
	if len(cfg.Playback.FallbackCmd.Argv) == 0 {
		warnings = append(warnings, Warning{
			Message: "playback.fallback_cmd is unset; synthesis failures will be silent",
		})
	}

	return warnings, nil
}
