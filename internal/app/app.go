// Package app wires configuration, audio, speech, and dispatch into the
// saathi command surface.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/porter-saathi/saathi/internal/audio"
	"github.com/porter-saathi/saathi/internal/cli"
	"github.com/porter-saathi/saathi/internal/config"
	"github.com/porter-saathi/saathi/internal/dispatch"
	"github.com/porter-saathi/saathi/internal/doctor"
	"github.com/porter-saathi/saathi/internal/earnings"
	"github.com/porter-saathi/saathi/internal/emergency"
	"github.com/porter-saathi/saathi/internal/i18n"
	"github.com/porter-saathi/saathi/internal/ipc"
	"github.com/porter-saathi/saathi/internal/logging"
	"github.com/porter-saathi/saathi/internal/playback"
	"github.com/porter-saathi/saathi/internal/reason"
	"github.com/porter-saathi/saathi/internal/speech"
	"github.com/porter-saathi/saathi/internal/stt"
	"github.com/porter-saathi/saathi/internal/tts"
	"github.com/porter-saathi/saathi/internal/tutorial"
	"github.com/porter-saathi/saathi/internal/version"
)

type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	r := Runner{Stdout: stdout, Stderr: stderr}
	return r.Execute(ctx, args)
}

func (r Runner) Execute(ctx context.Context, args []string) int {
	parsed, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, cli.HelpText("saathi"))
		return 2
	}

	if parsed.ShowHelp {
		fmt.Fprint(r.Stdout, cli.HelpText("saathi"))
		return 0
	}

	if parsed.Command == cli.CommandVersion {
		fmt.Fprintln(r.Stdout, version.String())
		return 0
	}

	// Credentials commonly live in a local .env during development.
	_ = godotenv.Load()

	logRuntime, err := logging.New()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: setup logging: %v\n", err)
		return 1
	}
	defer func() { _ = logRuntime.Close() }()

	logger := r.Logger
	if logger == nil {
		logger = logRuntime.Logger
	}

	cfgLoaded, err := config.Load(parsed.ConfigPath)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("load config failed", "error", err.Error())
		return 1
	}
	for _, w := range cfgLoaded.Warnings {
		fmt.Fprintf(r.Stderr, "warning: %s\n", w.Message)
		logger.Warn("config warning", "message", w.Message)
	}

	locale := i18n.Normalize(cfgLoaded.Config.Locale)
	if parsed.Locale != "" {
		locale = i18n.Normalize(parsed.Locale)
	}

	logger.Info("command start",
		"command", parsed.Command,
		"config", cfgLoaded.Path,
		"locale", string(locale),
		"log", logRuntime.Path,
	)

	switch parsed.Command {
	case cli.CommandDoctor:
		report := doctor.Run(cfgLoaded)
		fmt.Fprintln(r.Stdout, report.String())
		if report.OK() {
			return 0
		}
		return 1
	case cli.CommandDevices:
		return r.commandDevices(ctx)
	case cli.CommandStatus:
		return r.commandStatus(ctx)
	case cli.CommandStop:
		return r.forwardOrFail(ctx, "stop")
	case cli.CommandCancel:
		return r.forwardOrFail(ctx, "cancel")
	case cli.CommandAsk:
		return r.commandAsk(ctx, cfgLoaded.Config, locale, parsed.Utterance, logger)
	case cli.CommandListen:
		return r.commandListen(ctx, cfgLoaded.Config, locale, logger)
	case cli.CommandChat:
		return r.commandChat(ctx, cfgLoaded.Config, locale, logger)
	case cli.CommandEmergency:
		return r.commandEmergency(ctx, cfgLoaded.Config, locale, logger)
	default:
		fmt.Fprintf(r.Stderr, "error: unsupported command %q\n", parsed.Command)
		return 2
	}
}

func (r Runner) commandDevices(ctx context.Context) int {
	devices, err := audio.ListDevices(ctx)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if len(devices) == 0 {
		fmt.Fprintln(r.Stdout, "no audio devices found")
		return 1
	}

	for _, device := range devices {
		defaultMark := " "
		if device.Default {
			defaultMark = "*"
		}
		availability := "yes"
		if !device.Available {
			availability = "no"
		}
		muted := "no"
		if device.Muted {
			muted = "yes"
		}
		fmt.Fprintf(
			r.Stdout,
			"%s id=%s | description=%q | state=%s | available=%s | muted=%s\n",
			defaultMark,
			device.ID,
			device.Description,
			device.State,
			availability,
			muted,
		)
	}

	return 0
}

func (r Runner) commandStatus(ctx context.Context) int {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintln(r.Stdout, "idle")
		return 0
	}

	resp, handled, err := tryForward(ctx, socketPath, "status")
	if handled {
		if err != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			return 1
		}
		if resp.State == "" {
			resp.State = "idle"
		}
		fmt.Fprintln(r.Stdout, resp.State)
		return 0
	}

	fmt.Fprintln(r.Stdout, "idle")
	return 0
}

func (r Runner) forwardOrFail(ctx context.Context, command string) int {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	resp, handled, err := tryForward(ctx, socketPath, command)
	if !handled {
		fmt.Fprintln(r.Stderr, "error: no active saathi session")
		return 1
	}
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if resp.Message != "" {
		fmt.Fprintln(r.Stdout, resp.Message)
	}
	return 0
}

func (r Runner) commandAsk(ctx context.Context, cfg config.Config, locale i18n.Locale, utterance string, logger *slog.Logger) int {
	assistant, err := buildAssistant(cfg, logger, false)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	defer assistant.Close()

	if code := r.respond(ctx, assistant, utterance, locale); code != 0 {
		return code
	}
	assistant.engine.Wait(ctx)
	return 0
}

func (r Runner) commandListen(ctx context.Context, cfg config.Config, locale i18n.Locale, logger *slog.Logger) int {
	assistant, err := buildAssistant(cfg, logger, true)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	defer assistant.Close()

	return r.runOwned(ctx, assistant, func(runCtx context.Context) int {
		transcript, code := r.listenOnce(runCtx, assistant, locale)
		if code != 0 || transcript == "" {
			return code
		}
		if rc := r.respond(runCtx, assistant, transcript, locale); rc != 0 {
			return rc
		}
		assistant.engine.Wait(runCtx)
		return 0
	})
}

func (r Runner) commandChat(ctx context.Context, cfg config.Config, locale i18n.Locale, logger *slog.Logger) int {
	assistant, err := buildAssistant(cfg, logger, true)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	defer assistant.Close()

	return r.runOwned(ctx, assistant, func(runCtx context.Context) int {
		if err := assistant.dispatcher.EnterGuidedSession(runCtx, locale); err != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			return 1
		}
		assistant.engine.Wait(runCtx)

		for runCtx.Err() == nil {
			transcript, code := r.listenOnce(runCtx, assistant, locale)
			if code != 0 {
				return code
			}
			if transcript == "" {
				fmt.Fprintln(r.Stdout, "session ended")
				return 0
			}
			if rc := r.respond(runCtx, assistant, transcript, locale); rc != 0 {
				return rc
			}
			assistant.engine.Wait(runCtx)
		}
		return 0
	})
}

func (r Runner) commandEmergency(ctx context.Context, cfg config.Config, locale i18n.Locale, logger *slog.Logger) int {
	assistant, err := buildAssistant(cfg, logger, true)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	defer assistant.Close()

	return r.runOwned(ctx, assistant, func(runCtx context.Context) int {
		flow := &emergency.Flow{
			Speaker: assistant.engine,
			Session: assistant.session,
			Logger:  logger,
		}
		result, err := flow.Run(runCtx, locale)
		if err != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			return 1
		}

		fmt.Fprintln(r.Stdout, string(result))
		if result == emergency.ResultConfirmed {
			for _, contact := range emergency.Contacts() {
				fmt.Fprintf(r.Stdout, "%s: %s\n", contact.Name, contact.Number)
			}
		}
		assistant.engine.Wait(runCtx)
		return 0
	})
}

// listenOnce captures one utterance. An empty transcript with code 0
// means the cabin stayed quiet or the session was revoked.
func (r Runner) listenOnce(ctx context.Context, a *assistant, locale i18n.Locale) (string, int) {
	handle, err := a.engine.Speak(ctx, i18n.T(i18n.KeyListening, locale), locale)
	if err == nil {
		select {
		case <-handle.Done():
		case <-ctx.Done():
			return "", 0
		}
	}

	transcript, err := a.session.Start(ctx, locale)
	switch {
	case err == nil:
		fmt.Fprintf(r.Stdout, "you: %s\n", transcript)
		return transcript, 0
	case errors.Is(err, speech.ErrNoSpeech):
		fmt.Fprintln(r.Stdout, "no speech detected")
		return "", 0
	case errors.Is(err, speech.ErrRevoked):
		fmt.Fprintln(r.Stdout, "cancelled")
		return "", 0
	default:
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		if _, serr := a.engine.Speak(ctx, i18n.T(i18n.KeyMicError, locale), locale); serr == nil {
			a.engine.Wait(ctx)
		}
		return "", 1
	}
}

// respond dispatches one utterance and prints the resolved effects.
func (r Runner) respond(ctx context.Context, a *assistant, utterance string, locale i18n.Locale) int {
	resp, err := a.dispatcher.Handle(ctx, utterance, locale)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	if resp.Reply != "" {
		fmt.Fprintf(r.Stdout, "saathi: %s\n", resp.Reply)
	}
	if resp.Navigate != "" {
		fmt.Fprintf(r.Stdout, "screen: %s\n", resp.Navigate)
	}
	if resp.Tutorial != nil {
		fmt.Fprintf(r.Stdout, "%s\n", resp.Tutorial.Title)
		for i, step := range resp.Tutorial.Steps {
			fmt.Fprintf(r.Stdout, "  %d. %s\n", i+1, step)
		}
	}
	return 0
}

// runOwned claims the single-instance socket, serves control commands
// on it, and runs fn as the session owner.
func (r Runner) runOwned(ctx context.Context, a *assistant, fn func(context.Context) int) int {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	listener, err := ipc.Acquire(ctx, socketPath, 180*time.Millisecond, 8)
	if err != nil {
		if errors.Is(err, ipc.ErrAlreadyRunning) {
			fmt.Fprintln(r.Stderr, "error: another saathi session is already running")
			return 1
		}
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	defer func() {
		_ = listener.Close()
		_ = os.Remove(socketPath)
	}()

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	serverCtx, cancelServer := context.WithCancel(ctx)
	defer cancelServer()

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- ipc.Serve(serverCtx, listener, a.controlHandler(cancelRun))
	}()

	code := fn(runCtx)

	cancelServer()
	if serverErr := <-serverErrCh; serverErr != nil {
		fmt.Fprintf(r.Stderr, "error: ipc server failed: %v\n", serverErr)
		return 1
	}
	return code
}

func tryForward(ctx context.Context, socketPath string, command string) (ipc.Response, bool, error) {
	resp, err := ipc.Send(ctx, socketPath, ipc.Request{Command: command}, 220*time.Millisecond)
	if err == nil {
		if resp.OK {
			return resp, true, nil
		}
		return resp, true, errors.New(resp.Error)
	}
	if ipc.Unreachable(err) {
		return ipc.Response{}, false, nil
	}
	return ipc.Response{}, true, fmt.Errorf("forward command %q: %w", command, err)
}

// assistant bundles the long-lived pieces one command invocation uses.
type assistant struct {
	engine     *playback.Engine
	session    *speech.Manager
	dispatcher *dispatch.Dispatcher
	sink       *audio.Sink
}

// buildAssistant constructs the speech output path and, when withMic is
// set, the capture path too. Backends degrade rather than fail: a
// missing reasoning key means the network-error line, a missing backend
// means demo figures.
func buildAssistant(cfg config.Config, logger *slog.Logger, withMic bool) (*assistant, error) {
	ttsClient, err := tts.NewClient(cfg.TTS, logger)
	if err != nil {
		return nil, err
	}

	sink, err := audio.NewSink()
	if err != nil {
		return nil, err
	}

	engine := playback.NewEngine(
		ttsClient,
		playback.PulseSink{Sink: sink},
		playback.CommandSpeaker{Argv: cfg.Playback.FallbackCmd.Argv, Logger: logger},
		logger,
		cfg.Debug.EnableAudioDump,
	)

	var session *speech.Manager
	if withMic {
		sttClient, err := stt.NewClient(cfg.Speech, logger)
		if err != nil {
			sink.Close()
			return nil, err
		}
		listener := &speech.StreamListener{
			Dialer:     sttClient,
			Input:      cfg.Audio.Input,
			Fallback:   cfg.Audio.Fallback,
			SampleRate: cfg.Speech.SampleRate,
			Logger:     logger,
		}
		session = speech.NewManager(listener, cfg.Speech, logger)
	}

	var reasoner dispatch.Reasoner
	if svc, rerr := reason.New(cfg.Reason, logger); rerr != nil {
		logger.Warn("reasoning service unavailable", "error", rerr)
		reasoner = offlineReasoner{}
	} else {
		reasoner = svc
	}

	var earningsPrimary earnings.Source
	var tutorialPrimary tutorial.Source
	if strings.TrimSpace(cfg.Backend.BaseURL) != "" {
		earningsPrimary = earnings.NewClient(cfg.Backend)
		tutorialPrimary = tutorial.NewClient(cfg.Backend)
	}

	dispatcher := &dispatch.Dispatcher{
		Earnings:  earnings.Resilient{Primary: earningsPrimary, Logger: logger},
		Tutorials: tutorial.Resilient{Primary: tutorialPrimary, Logger: logger},
		Reasoner:  reasoner,
		Speaker:   engine,
		Logger:    logger,
	}

	return &assistant{
		engine:     engine,
		session:    session,
		dispatcher: dispatcher,
		sink:       sink,
	}, nil
}

func (a *assistant) Close() {
	a.engine.Halt()
	if a.session != nil {
		a.session.Stop()
	}
	_ = a.sink.Close()
}

// controlHandler serves the cross-process control commands while this
// process owns the session socket.
func (a *assistant) controlHandler(cancelRun context.CancelFunc) ipc.HandlerFunc {
	return func(_ context.Context, req ipc.Request) ipc.Response {
		switch req.Command {
		case "status":
			return ipc.Response{OK: true, State: a.status()}
		case "stop", "cancel":
			if a.session != nil {
				a.session.Stop()
			}
			a.engine.Halt()
			cancelRun()
			return ipc.Response{OK: true, Message: "stopped"}
		default:
			return ipc.Response{OK: false, Error: fmt.Sprintf("unknown command %q", req.Command)}
		}
	}
}

func (a *assistant) status() string {
	voice := "idle"
	if a.session != nil {
		voice = string(a.session.State())
	}
	return fmt.Sprintf("voice=%s playback=%s screen=%s",
		voice, a.engine.State(), a.dispatcher.Screen())
}

// offlineReasoner stands in when no reasoning credentials exist; every
// fallback resolves to the spoken network-error line.
type offlineReasoner struct{}

func (offlineReasoner) Answer(context.Context, reason.Request) (string, error) {
	return "", reason.ErrNetwork
}
