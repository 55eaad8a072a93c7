// Package intent routes one utterance to exactly one dispatch outcome
// through an ordered list of matchers. The router is a pure function;
// navigation and speech are effects carried in the outcome, not
// performed here.
package intent

import "github.com/porter-saathi/saathi/internal/i18n"

// Screen identifies the screen an utterance arrived from or routes to.
type Screen string

const (
	ScreenHome        Screen = "home"
	ScreenGuru        Screen = "guru"
	ScreenGuruChat    Screen = "guru-chat"
	ScreenSuraksha    Screen = "suraksha"
	ScreenEmpowerment Screen = "empowerment"
)

// Service names one fixed emergency service.
type Service string

const (
	ServiceAmbulance Service = "ambulance"
	ServicePolice    Service = "police"
	ServiceFire      Service = "fire"
)

// Number returns the fixed national emergency number for a service.
func (s Service) Number() string {
	switch s {
	case ServiceAmbulance:
		return "108"
	case ServicePolice:
		return "100"
	case ServiceFire:
		return "101"
	default:
		return ""
	}
}

// Kind tags the dispatch outcome variant.
type Kind int

const (
	// KindRemoteFallback signals the caller to invoke the reasoning service.
	KindRemoteFallback Kind = iota
	KindEmergencyNumber
	KindEarningsAnswer
	KindEmergencyRedirect
	KindTutorialNavigate
	KindEmpowermentRedirect
)

func (k Kind) String() string {
	switch k {
	case KindEmergencyNumber:
		return "emergency-number"
	case KindEarningsAnswer:
		return "earnings-answer"
	case KindEmergencyRedirect:
		return "emergency-redirect"
	case KindTutorialNavigate:
		return "tutorial-navigate"
	case KindEmpowermentRedirect:
		return "empowerment-redirect"
	default:
		return "remote-fallback"
	}
}

// Utterance is one transcribed or typed user input event.
type Utterance struct {
	Text   string
	Locale i18n.Locale
}

// Outcome is the single dispatch decision for one utterance. Exactly one
// Kind is produced per utterance; Navigate is empty when no navigation
// side effect is requested.
type Outcome struct {
	Kind     Kind
	Service  Service
	Reply    string
	Category string
	Navigate Screen
}
