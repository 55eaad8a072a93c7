package speech

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/porter-saathi/saathi/internal/audio"
	"github.com/porter-saathi/saathi/internal/i18n"
	"github.com/porter-saathi/saathi/internal/logging"
	"github.com/porter-saathi/saathi/internal/stt"
)

// Dialer opens one recognition stream.
type Dialer interface {
	Dial(locale i18n.Locale) (stt.Stream, error)
}

// StreamListener captures from the selected microphone and streams it
// to the recognizer. One utterance is recognized per session; the first
// final segment ends the pass.
type StreamListener struct {
	Dialer     Dialer
	Input      string
	Fallback   string
	SampleRate int
	Logger     *slog.Logger
}

func (l *StreamListener) logger() *slog.Logger {
	if l.Logger == nil {
		return logging.Discard()
	}
	return l.Logger
}

func (l *StreamListener) Listen(ctx context.Context, locale i18n.Locale) (string, error) {
	selection, err := audio.SelectDevice(ctx, l.Input, l.Fallback)
	if err != nil {
		return "", fmt.Errorf("microphone: %w", err)
	}
	if selection.Warning != "" {
		l.logger().Warn("microphone fallback", "detail", selection.Warning)
	}

	capture, err := audio.StartCapture(ctx, selection.Device, l.SampleRate)
	if err != nil {
		return "", fmt.Errorf("microphone: %w", err)
	}
	defer capture.Close()

	stream, err := l.Dialer.Dial(locale)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	go func() {
		for chunk := range capture.Chunks() {
			if err := stream.Send(chunk); err != nil {
				l.logger().Warn("audio send failed", "error", err)
				return
			}
		}
		_ = stream.CloseSend()
	}()

	var finals []string
	for {
		select {
		case <-ctx.Done():
			// A timeout may still have settled segments worth keeping.
			return stt.Assemble(finals), ctx.Err()
		case ev, ok := <-stream.Events():
			if !ok {
				return stt.Assemble(finals), nil
			}
			if ev.Final && ev.Text != "" {
				finals = append(finals, ev.Text)
				return stt.Assemble(finals), nil
			}
		}
	}
}
