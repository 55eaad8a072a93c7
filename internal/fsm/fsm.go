// Package fsm defines the explicit state machines for voice capture,
// audio playback, and the emergency confirmation flow.
package fsm

import "fmt"

// VoiceState is the lifecycle state of the single capture session slot.
type VoiceState string

// VoiceEvent drives VoiceState transitions.
type VoiceEvent string

const (
	VoiceIdle      VoiceState = "idle"
	VoiceListening VoiceState = "listening"
	VoiceStopping  VoiceState = "stopping"
)

const (
	VoiceStart  VoiceEvent = "start"
	VoiceResult VoiceEvent = "result"
	VoiceError  VoiceEvent = "error"
	VoiceStop   VoiceEvent = "stop"
	VoiceDone   VoiceEvent = "done"
)

// TransitionVoice applies one event to a voice-session state.
func TransitionVoice(current VoiceState, event VoiceEvent) (VoiceState, error) {
	switch current {
	case VoiceIdle:
		switch event {
		case VoiceStart:
			return VoiceListening, nil
		default:
			return current, invalidTransition(string(current), string(event))
		}
	case VoiceListening:
		switch event {
		case VoiceResult, VoiceError:
			return VoiceIdle, nil
		case VoiceStop:
			return VoiceStopping, nil
		default:
			return current, invalidTransition(string(current), string(event))
		}
	case VoiceStopping:
		switch event {
		case VoiceDone, VoiceError:
			return VoiceIdle, nil
		default:
			return current, invalidTransition(string(current), string(event))
		}
	default:
		return current, fmt.Errorf("unknown voice state %q", current)
	}
}

// PlaybackState is the lifecycle state of the shared audio output.
type PlaybackState string

// PlaybackEvent drives PlaybackState transitions.
type PlaybackEvent string

const (
	PlaybackIdle     PlaybackState = "idle"
	PlaybackFetching PlaybackState = "fetching"
	PlaybackPlaying  PlaybackState = "playing"
)

const (
	PlaybackFetch PlaybackEvent = "fetch"
	PlaybackStart PlaybackEvent = "start"
	PlaybackEnd   PlaybackEvent = "end"
	PlaybackHalt  PlaybackEvent = "halt"
)

// TransitionPlayback applies one event to a playback-session state.
func TransitionPlayback(current PlaybackState, event PlaybackEvent) (PlaybackState, error) {
	// Halt is legal from any state; a new request always preempts.
	if event == PlaybackHalt {
		return PlaybackIdle, nil
	}

	switch current {
	case PlaybackIdle:
		switch event {
		case PlaybackFetch:
			return PlaybackFetching, nil
		default:
			return current, invalidTransition(string(current), string(event))
		}
	case PlaybackFetching:
		switch event {
		case PlaybackStart:
			return PlaybackPlaying, nil
		default:
			return current, invalidTransition(string(current), string(event))
		}
	case PlaybackPlaying:
		switch event {
		case PlaybackEnd:
			return PlaybackIdle, nil
		default:
			return current, invalidTransition(string(current), string(event))
		}
	default:
		return current, fmt.Errorf("unknown playback state %q", current)
	}
}

// EmergencyState is the confirmation flow state.
type EmergencyState string

// EmergencyEvent drives EmergencyState transitions.
type EmergencyEvent string

const (
	EmergencyIdle       EmergencyState = "idle"
	EmergencyConfirming EmergencyState = "confirming"
	EmergencyConfirmed  EmergencyState = "confirmed"
	EmergencyCancelled  EmergencyState = "cancelled"
)

const (
	EmergencyTrigger EmergencyEvent = "trigger"
	EmergencyAffirm  EmergencyEvent = "affirm"
	EmergencyDeny    EmergencyEvent = "deny"
	EmergencyDismiss EmergencyEvent = "dismiss"
)

// TransitionEmergency applies one event to an emergency-flow state.
func TransitionEmergency(current EmergencyState, event EmergencyEvent) (EmergencyState, error) {
	switch current {
	case EmergencyIdle:
		switch event {
		case EmergencyTrigger:
			return EmergencyConfirming, nil
		default:
			return current, invalidTransition(string(current), string(event))
		}
	case EmergencyConfirming:
		switch event {
		case EmergencyAffirm:
			return EmergencyConfirmed, nil
		case EmergencyDeny:
			return EmergencyCancelled, nil
		case EmergencyDismiss:
			// An aborted prompt resets without an answer.
			return EmergencyIdle, nil
		default:
			return current, invalidTransition(string(current), string(event))
		}
	case EmergencyConfirmed, EmergencyCancelled:
		switch event {
		case EmergencyDismiss:
			return EmergencyIdle, nil
		default:
			return current, invalidTransition(string(current), string(event))
		}
	default:
		return current, fmt.Errorf("unknown emergency state %q", current)
	}
}

func invalidTransition(state string, event string) error {
	return fmt.Errorf("invalid transition: %s --(%s)--> ?", state, event)
}
