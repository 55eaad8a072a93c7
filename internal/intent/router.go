package intent

import (
	"strings"

	"github.com/porter-saathi/saathi/internal/i18n"
	"github.com/porter-saathi/saathi/internal/snapshot"
)

// ruleContext is the read-only input every matcher sees.
type ruleContext struct {
	query  string
	locale i18n.Locale
	snap   snapshot.Snapshot
	screen Screen
}

type rule struct {
	name  string
	match func(ruleContext) bool
	build func(ruleContext) Outcome
}

// rules are evaluated in priority order; the first match wins and no
// later rule runs. Anything unmatched falls through to the reasoning
// service.
var rules = []rule{
	{
		name: "emergency-number",
		match: func(rc ruleContext) bool {
			return serviceFor(rc.query) != "" && containsAny(rc.query, numberWords)
		},
		build: func(rc ruleContext) Outcome {
			service := serviceFor(rc.query)
			return Outcome{
				Kind:    KindEmergencyNumber,
				Service: service,
				Reply:   i18n.T(serviceKey(service), rc.locale),
			}
		},
	},
	{
		name: "earnings",
		match: func(rc ruleContext) bool {
			return containsAny(rc.query, earningsWords)
		},
		build: func(rc ruleContext) Outcome {
			return Outcome{
				Kind:  KindEarningsAnswer,
				Reply: earningsAnswer(rc.query, rc.snap, rc.locale),
			}
		},
	},
	{
		name: "emergency",
		match: func(rc ruleContext) bool {
			return containsAny(rc.query, distressWords)
		},
		build: func(rc ruleContext) Outcome {
			return Outcome{
				Kind:     KindEmergencyRedirect,
				Reply:    i18n.T(i18n.KeyStayCalm, rc.locale) + " " + i18n.T(i18n.KeyEmergencyFound, rc.locale),
				Navigate: ScreenSuraksha,
			}
		},
	},
	{
		name: "tutorial",
		match: func(rc ruleContext) bool {
			// Inside a guided session the same words are conversation,
			// not navigation commands.
			if rc.screen == ScreenGuruChat {
				return false
			}
			return tutorialCategory(rc.query) != ""
		},
		build: func(rc ruleContext) Outcome {
			return Outcome{
				Kind:     KindTutorialNavigate,
				Category: tutorialCategory(rc.query),
				Navigate: ScreenGuru,
			}
		},
	},
	{
		name: "empowerment",
		match: func(rc ruleContext) bool {
			return containsAny(rc.query, empowermentWords)
		},
		build: func(rc ruleContext) Outcome {
			return Outcome{
				Kind:     KindEmpowermentRedirect,
				Reply:    i18n.T(i18n.KeyEmpowerment, rc.locale),
				Navigate: ScreenEmpowerment,
			}
		},
	},
}

// Route maps one utterance to one outcome. It is a pure function of its
// arguments: same utterance, snapshot, and screen always produce the
// same outcome, and nothing is mutated.
func Route(utt Utterance, snap snapshot.Snapshot, screen Screen) Outcome {
	rc := ruleContext{
		query:  strings.ToLower(utt.Text),
		locale: utt.Locale,
		snap:   snap,
		screen: screen,
	}
	for _, r := range rules {
		if r.match(rc) {
			return r.build(rc)
		}
	}
	return Outcome{Kind: KindRemoteFallback}
}

func serviceFor(query string) Service {
	switch {
	case containsAny(query, ambulanceWords):
		return ServiceAmbulance
	case containsAny(query, policeWords):
		return ServicePolice
	case containsAny(query, fireWords):
		return ServiceFire
	default:
		return ""
	}
}

func serviceKey(service Service) i18n.Key {
	switch service {
	case ServicePolice:
		return i18n.KeyPoliceNumber
	case ServiceFire:
		return i18n.KeyFireNumber
	default:
		return i18n.KeyAmbulanceNumber
	}
}

func tutorialCategory(query string) string {
	for _, bucket := range tutorialBuckets {
		if containsAny(query, bucket.words) {
			return bucket.category
		}
	}
	return ""
}
