package playback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/porter-saathi/saathi/internal/i18n"
)

const commandTimeout = 20 * time.Second

// CommandSpeaker voices text through an external synthesizer binary,
// espeak-ng by default. The configured argv is run with "-v <language>"
// and the text appended, which matches the espeak family of tools.
type CommandSpeaker struct {
	Argv   []string
	Logger *slog.Logger
}

func (c CommandSpeaker) Speak(ctx context.Context, text string, locale i18n.Locale) error {
	if len(c.Argv) == 0 {
		return errors.New("no fallback command configured")
	}

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	args := append(append([]string{}, c.Argv[1:]...), "-v", languageSubtag(locale), text)
	cmd := exec.CommandContext(ctx, c.Argv[0], args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("run %s: %w: %s", c.Argv[0], err, strings.TrimSpace(string(out)))
	}

	if c.Logger != nil {
		c.Logger.Info("spoke via fallback command", "command", c.Argv[0])
	}
	return nil
}

// languageSubtag maps a locale to the short language code the espeak
// family expects.
func languageSubtag(locale i18n.Locale) string {
	tag := i18n.Tag(locale)
	if i := strings.Index(tag, "-"); i > 0 {
		return tag[:i]
	}
	return tag
}
