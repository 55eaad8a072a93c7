// Package doctor runs readiness diagnostics for config, credentials,
// audio, and the remote services.
package doctor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/porter-saathi/saathi/internal/audio"
	"github.com/porter-saathi/saathi/internal/config"
)

// Check is one doctor assertion result.
type Check struct {
	Name    string
	Pass    bool
	Message string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		if !check.Pass {
			status = "FAIL"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Run executes environment, credential, and service checks for a loaded
// config.
func Run(cfg config.Loaded) Report {
	checks := []Check{{
		Name:    "config",
		Pass:    true,
		Message: fmt.Sprintf("loaded %q", cfg.Path),
	}}

	for _, warning := range cfg.Warnings {
		checks = append(checks, Check{
			Name:    "config.warning",
			Pass:    true,
			Message: warning.Message,
		})
	}

	checks = append(checks,
		checkAPIKey("speech.api_key", cfg.Config.Speech.APIKeyEnv),
		checkAPIKey("tts.api_key", cfg.Config.TTS.APIKeyEnv),
		checkAPIKey("reason.api_key", cfg.Config.Reason.APIKeyEnv),
		checkEndpoint("speech.endpoint", cfg.Config.Speech.Endpoint, "ws://", "wss://"),
		checkEndpoint("tts.endpoint", cfg.Config.TTS.Endpoint, "http://", "https://"),
		checkCommand(cfg.Config.Playback.FallbackCmd.Argv, "playback.fallback_cmd"),
		checkAudioSelection(cfg.Config),
		checkBackendHealth(cfg.Config),
	)

	return Report{Checks: checks}
}

// checkAPIKey verifies the configured credential variable is set. The
// value itself never appears in the report.
func checkAPIKey(name, env string) Check {
	if strings.TrimSpace(env) == "" {
		return Check{Name: name, Pass: false, Message: "no environment variable configured"}
	}
	if os.Getenv(env) == "" {
		return Check{Name: name, Pass: false, Message: fmt.Sprintf("%s is not set", env)}
	}
	return Check{Name: name, Pass: true, Message: fmt.Sprintf("%s is set", env)}
}

// checkEndpoint validates an endpoint carries an expected scheme.
func checkEndpoint(name, endpoint string, schemes ...string) Check {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return Check{Name: name, Pass: false, Message: "endpoint is empty"}
	}
	for _, scheme := range schemes {
		if strings.HasPrefix(endpoint, scheme) {
			return Check{Name: name, Pass: true, Message: endpoint}
		}
	}
	return Check{Name: name, Pass: false, Message: fmt.Sprintf("expected scheme %s", strings.Join(schemes, " or "))}
}

// checkCommand validates that argv contains a runnable command.
func checkCommand(argv []string, name string) Check {
	if len(argv) == 0 {
		return Check{Name: name, Pass: false, Message: "command is empty"}
	}
	return checkBinary(argv[0], fmt.Sprintf("%s command is available", name))
}

// checkBinary validates that a binary exists in PATH.
func checkBinary(bin string, okMsg string) Check {
	path, err := exec.LookPath(bin)
	if err != nil {
		return Check{Name: bin, Pass: false, Message: fmt.Sprintf("binary not found in PATH: %s", bin)}
	}
	return Check{Name: bin, Pass: true, Message: fmt.Sprintf("found at %s (%s)", path, okMsg)}
}

// checkAudioSelection runs live device selection to surface microphone
// problems before a listening session does.
func checkAudioSelection(cfg config.Config) Check {
	selection, err := audio.SelectDevice(context.Background(), cfg.Audio.Input, cfg.Audio.Fallback)
	if err != nil {
		return Check{Name: "audio.device", Pass: false, Message: err.Error()}
	}
	message := fmt.Sprintf("selected %q", selection.Device.ID)
	if selection.Warning != "" {
		message = message + " (" + selection.Warning + ")"
	}
	return Check{Name: "audio.device", Pass: true, Message: message}
}

// checkBackendHealth probes the earnings backend health endpoint.
func checkBackendHealth(cfg config.Config) Check {
	base := strings.TrimSpace(cfg.Backend.BaseURL)
	if base == "" {
		return Check{Name: "backend.health", Pass: true, Message: "no backend configured, demo figures will be used"}
	}

	url := strings.TrimRight(base, "/") + "/health"
	client := http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return Check{Name: "backend.health", Pass: false, Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 256))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Check{Name: "backend.health", Pass: false, Message: fmt.Sprintf("HTTP %d from %s", resp.StatusCode, url)}
	}
	return Check{Name: "backend.health", Pass: true, Message: fmt.Sprintf("healthy at %s", url)}
}
