package fsm

import "testing"

func TestVoiceTransitions(t *testing.T) {
	cases := []struct {
		from    VoiceState
		event   VoiceEvent
		want    VoiceState
		wantErr bool
	}{
		{VoiceIdle, VoiceStart, VoiceListening, false},
		{VoiceListening, VoiceResult, VoiceIdle, false},
		{VoiceListening, VoiceError, VoiceIdle, false},
		{VoiceListening, VoiceStop, VoiceStopping, false},
		{VoiceStopping, VoiceDone, VoiceIdle, false},
		{VoiceStopping, VoiceError, VoiceIdle, false},
		{VoiceIdle, VoiceResult, VoiceIdle, true},
		{VoiceIdle, VoiceStop, VoiceIdle, true},
		{VoiceListening, VoiceStart, VoiceListening, true},
	}

	for _, tc := range cases {
		got, err := TransitionVoice(tc.from, tc.event)
		if tc.wantErr != (err != nil) {
			t.Fatalf("%s --(%s)-->: err = %v, wantErr = %v", tc.from, tc.event, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("%s --(%s)--> %s, want %s", tc.from, tc.event, got, tc.want)
		}
	}
}

func TestPlaybackHaltFromAnyState(t *testing.T) {
	for _, from := range []PlaybackState{PlaybackIdle, PlaybackFetching, PlaybackPlaying} {
		got, err := TransitionPlayback(from, PlaybackHalt)
		if err != nil {
			t.Fatalf("halt from %s: %v", from, err)
		}
		if got != PlaybackIdle {
			t.Fatalf("halt from %s: got %s, want idle", from, got)
		}
	}
}

func TestPlaybackTransitions(t *testing.T) {
	cases := []struct {
		from    PlaybackState
		event   PlaybackEvent
		want    PlaybackState
		wantErr bool
	}{
		{PlaybackIdle, PlaybackFetch, PlaybackFetching, false},
		{PlaybackFetching, PlaybackStart, PlaybackPlaying, false},
		{PlaybackPlaying, PlaybackEnd, PlaybackIdle, false},
		{PlaybackIdle, PlaybackStart, PlaybackIdle, true},
		{PlaybackPlaying, PlaybackFetch, PlaybackPlaying, true},
	}

	for _, tc := range cases {
		got, err := TransitionPlayback(tc.from, tc.event)
		if tc.wantErr != (err != nil) {
			t.Fatalf("%s --(%s)-->: err = %v, wantErr = %v", tc.from, tc.event, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("%s --(%s)--> %s, want %s", tc.from, tc.event, got, tc.want)
		}
	}
}

func TestEmergencyTransitions(t *testing.T) {
	cases := []struct {
		from    EmergencyState
		event   EmergencyEvent
		want    EmergencyState
		wantErr bool
	}{
		{EmergencyIdle, EmergencyTrigger, EmergencyConfirming, false},
		{EmergencyConfirming, EmergencyAffirm, EmergencyConfirmed, false},
		{EmergencyConfirming, EmergencyDeny, EmergencyCancelled, false},
		{EmergencyConfirming, EmergencyDismiss, EmergencyIdle, false},
		{EmergencyConfirmed, EmergencyDismiss, EmergencyIdle, false},
		{EmergencyCancelled, EmergencyDismiss, EmergencyIdle, false},
		{EmergencyIdle, EmergencyAffirm, EmergencyIdle, true},
		{EmergencyConfirmed, EmergencyTrigger, EmergencyConfirmed, true},
	}

	for _, tc := range cases {
		got, err := TransitionEmergency(tc.from, tc.event)
		if tc.wantErr != (err != nil) {
			t.Fatalf("%s --(%s)-->: err = %v, wantErr = %v", tc.from, tc.event, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("%s --(%s)--> %s, want %s", tc.from, tc.event, got, tc.want)
		}
	}
}
