package intent

import "strings"

// Keyword tables for the deterministic matchers. Matching is plain
// substring containment on the lowercased utterance; every table carries
// English, Hindi, Telugu, and Tamil forms so a transcript in any
// supported locale hits the same rule.

var ambulanceWords = []string{
	"ambulance", "एम्बुलेंस", "एंबुलेंस", "అంబులెన్స్", "ஆம்புலன்ஸ்",
}

var policeWords = []string{
	"police", "पुलिस", "పోలీస్", "போலீஸ்", "காவல்",
}

var fireWords = []string{
	"fire", "आग", "फायर", "అగ్ని", "மంట", "தீ", "தீயணைப்பு",
}

var numberWords = []string{
	"number", "नंबर", "नम्बर", "helpline", "हेल्पलाइन",
	"నంబర్", "నెంబర్", "எண்", "ஹெல்ப்லைன்",
}

// The "how much" markers are earnings vocabulary in their own right, so
// "kitna kamaya aaj" lands on the earnings rule even though "kamaya" is
// not in the table.
var earningsWords = append([]string{
	"earning", "earnings", "income", "money", "paisa", "kamai", "kamaya",
	"revenue", "trips", "weekly", "today",
	"कमाई", "कमाया", "पैसा", "पैसे", "आमदनी", "आय",
	"ఆదాయం", "డబ్బు", "సంపాదన",
	"வருமானம்", "பணம்", "சம்பாதனை",
}, simpleMarkers...)

// simpleMarkers select the short two line earnings answer over the
// detailed breakdown.
var simpleMarkers = []string{
	"kitna", "कितना", "कितनी", "batao", "बताओ", "how much", "dikhao", "दिखाओ",
	"ఎంత", "చెప్పు", "எவ்வளவு", "சொல்லு",
}

var distressWords = []string{
	"help", "accident", "urgent", "danger", "hurt", "injured",
	"madad", "bachao", "मदद", "बचाओ", "दुर्घटना", "खतरा", "चोट",
	"సహాయం", "ప్రమాదం", "గాయం", "உதவி", "விபத்து", "ஆபத்து", "காயம்",
}

// tutorialBuckets are checked in declaration order; the first bucket
// with a hit wins.
var tutorialBuckets = []struct {
	category string
	words    []string
}{
	{
		category: "challan",
		words: []string{
			"challan", "traffic", "fine", "penalty",
			"चालान", "ट्रैफिक", "जुर्माना",
			"చలాన్", "ట్రాఫిక్", "జరిమానా",
			"சலான்", "அபராதம்",
		},
	},
	{
		category: "insurance",
		words: []string{
			"insurance", "claim", "damage", "bima",
			"बीमा", "क्लेम", "नुकसान",
			"భీమా", "బీమా", "క్లెయిమ్",
			"காப்பீடு", "கிளைம்",
		},
	},
	{
		category: "digilocker",
		words: []string{
			"digilocker", "document", "papers", "license", "licence", "kagaz",
			"डिजिलॉकर", "दस्तावेज", "कागज", "लाइसेंस",
			"డిజిలాకర్", "పత్రాలు", "లైసెన్స్",
			"ஆவணம்", "உரிமம்",
		},
	},
	{
		category: "customer",
		words: []string{
			"customer", "behavior", "behaviour", "service", "grahak",
			"ग्राहक", "व्यवहार", "सेवा",
			"కస్టమర్", "వినియోగదారు",
			"வாடிக்கையாளர்", "சேவை",
		},
	},
}

var empowermentWords = []string{
	"scheme", "loan", "subsidy", "government", "upgrade", "truck",
	"vehicle", "rights", "legal", "fine", "police", "payment", "dispute",
	"yojana", "योजना", "लोन", "कर्ज", "सब्सिडी", "सरकार", "अधिकार",
	"कानूनी", "भुगतान", "विवाद", "ट्रक", "गाड़ी",
	"పథకం", "రుణం", "ప్రభుత్వం", "హక్కులు", "చట్టపరమైన",
	"திட்டம்", "கடன்", "அரசு", "உரிமைகள்", "சட்ட",
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
