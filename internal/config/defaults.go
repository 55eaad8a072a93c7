package config

// Default returns the canonical runtime configuration used when no file is present.
func Default() Config {
	fallbackSpeak := "espeak-ng"

	return Config{
		Locale: "hi-IN",
		Backend: BackendConfig{
			BaseURL:   "http://127.0.0.1:8080",
			TimeoutMS: 4000,
		},
		Speech: SpeechConfig{
			Endpoint:        "wss://api.deepgram.com/v1/listen",
			APIKeyEnv:       "DEEPGRAM_API_KEY",
			Model:           "nova-2-general",
			SampleRate:      16000,
			ListenTimeoutMS: 15000,
		},
		TTS: TTSConfig{
			Endpoint:   "https://api.deepgram.com/v1/speak",
			APIKeyEnv:  "DEEPGRAM_API_KEY",
			Voice:      "aura-asteria",
			SampleRate: 16000,
		},
		Reason: ReasonConfig{
			Model:     "gpt-4o-mini",
			APIKeyEnv: "OPENAI_API_KEY",
			MaxTurns:  12,
		},
		Audio: AudioConfig{
			Input:    "default",
			Fallback: "default",
		},
		Playback: PlaybackConfig{
			FallbackCmd: CommandConfig{Raw: fallbackSpeak, Argv: mustParseArgv(fallbackSpeak)},
		},
		Debug: DebugConfig{},
	}
}
