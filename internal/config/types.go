// Package config resolves, parses, validates, and defaults saathi configuration.
package config

// Config is the fully materialized runtime configuration used by saathi.
type Config struct {
	Locale   string         `yaml:"locale"`
	Backend  BackendConfig  `yaml:"backend"`
	Speech   SpeechConfig   `yaml:"speech"`
	TTS      TTSConfig      `yaml:"tts"`
	Reason   ReasonConfig   `yaml:"reason"`
	Audio    AudioConfig    `yaml:"audio"`
	Playback PlaybackConfig `yaml:"playback"`
	Debug    DebugConfig    `yaml:"debug"`
}

// BackendConfig locates the earnings/tutorial REST backend.
type BackendConfig struct {
	BaseURL   string `yaml:"base_url"`
	TimeoutMS int    `yaml:"timeout_ms"`
}

// SpeechConfig controls the streaming recognizer and capture session policy.
type SpeechConfig struct {
	Endpoint        string `yaml:"endpoint"`
	APIKeyEnv       string `yaml:"api_key_env"`
	Model           string `yaml:"model"`
	SampleRate      int    `yaml:"sample_rate"`
	ListenTimeoutMS int    `yaml:"listen_timeout_ms"`
}

// TTSConfig controls the remote synthesis service.
type TTSConfig struct {
	Endpoint   string `yaml:"endpoint"`
	APIKeyEnv  string `yaml:"api_key_env"`
	Voice      string `yaml:"voice"`
	SampleRate int    `yaml:"sample_rate"`
}

// ReasonConfig controls the generative reasoning fallback.
type ReasonConfig struct {
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`
	MaxTurns  int    `yaml:"max_turns"`
}

// AudioConfig controls preferred and fallback input-source selection.
type AudioConfig struct {
	Input    string `yaml:"input"`
	Fallback string `yaml:"fallback"`
}

// PlaybackConfig controls the degraded on-device synthesis fallback.
type PlaybackConfig struct {
	FallbackCmd CommandConfig `yaml:"fallback_cmd"`
}

// CommandConfig stores a raw command string and its parsed argv form.
// The locale tag and text to speak are appended as trailing arguments.
type CommandConfig struct {
	Raw  string
	Argv []string
}

// UnmarshalYAML parses a scalar command string into argv form.
func (c *CommandConfig) UnmarshalYAML(unmarshal func(any) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	argv, err := parseArgv(raw)
	if err != nil {
		return err
	}
	c.Raw = raw
	c.Argv = argv
	return nil
}

// DebugConfig controls optional debug artifact output.
type DebugConfig struct {
	EnableAudioDump bool `yaml:"audio_dump"`
}

// Warning is a non-fatal parse/validation message.
type Warning struct {
	Message string
}
