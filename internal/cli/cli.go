package cli

import (
	"errors"
	"fmt"
	"strings"
)

type Command string

const (
	CommandAsk       Command = "ask"
	CommandListen    Command = "listen"
	CommandChat      Command = "chat"
	CommandEmergency Command = "emergency"
	CommandStatus    Command = "status"
	CommandStop      Command = "stop"
	CommandCancel    Command = "cancel"
	CommandDevices   Command = "devices"
	CommandDoctor    Command = "doctor"
	CommandVersion   Command = "version"
	CommandHelp      Command = "help"
)

var validCommands = map[Command]struct{}{
	CommandAsk:       {},
	CommandListen:    {},
	CommandChat:      {},
	CommandEmergency: {},
	CommandStatus:    {},
	CommandStop:      {},
	CommandCancel:    {},
	CommandDevices:   {},
	CommandDoctor:    {},
	CommandVersion:   {},
	CommandHelp:      {},
}

type Parsed struct {
	Command    Command
	ConfigPath string
	Locale     string
	Utterance  string
	ShowHelp   bool
}

// Parse reads flags and one command. "ask" consumes the remaining
// arguments as the typed utterance; every other command takes none.
func Parse(args []string) (Parsed, error) {
	parsed := Parsed{Command: CommandHelp, ShowHelp: true}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-h", "--help":
			parsed.ShowHelp = true
			parsed.Command = CommandHelp
		case "--version":
			parsed.ShowHelp = false
			parsed.Command = CommandVersion
		case "--config":
			i++
			if i >= len(args) {
				return Parsed{}, errors.New("--config requires a path")
			}
			parsed.ConfigPath = args[i]
		case "--locale":
			i++
			if i >= len(args) {
				return Parsed{}, errors.New("--locale requires a language tag")
			}
			parsed.Locale = args[i]
		default:
			if strings.HasPrefix(arg, "-") {
				return Parsed{}, fmt.Errorf("unknown flag: %s", arg)
			}

			cmd := Command(arg)
			if _, ok := validCommands[cmd]; !ok {
				return Parsed{}, fmt.Errorf("unknown command: %s", arg)
			}

			parsed.Command = cmd
			parsed.ShowHelp = cmd == CommandHelp

			if cmd == CommandAsk {
				if i == len(args)-1 {
					return Parsed{}, errors.New("ask requires the question text")
				}
				parsed.Utterance = strings.Join(args[i+1:], " ")
				return parsed, nil
			}
			if i != len(args)-1 {
				return Parsed{}, fmt.Errorf("unexpected arguments after command %q", arg)
			}
		}
	}

	return parsed, nil
}

func HelpText(binaryName string) string {
	return fmt.Sprintf(`Usage:
  %[1]s [--config PATH] [--locale TAG] <command>

Commands:
  ask TEXT...   Answer a typed question and speak the reply
  listen        Capture one voice query and answer it
  chat          Start a guided conversation session
  emergency     Run the voice emergency confirmation flow
  status        Print current session state
  stop          Stop the active listening session
  cancel        Cancel the active session and discard it
  devices       List available input devices
  doctor        Run configuration and environment checks
  version       Print version information
  help          Show this help

Flags:
  --config PATH   Config file path (default: $XDG_CONFIG_HOME/saathi/config.yaml)
  --locale TAG    Override the configured language (en-IN, hi-IN, te-IN, ta-IN)
  -h, --help      Show help
  --version       Show version
`, binaryName)
}
