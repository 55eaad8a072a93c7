// Package tutorial serves the guided walkthrough content behind the
// guru screen. Content comes from the backend when reachable and from
// the embedded catalog otherwise, so guidance works offline.
package tutorial

import (
	"fmt"

	"github.com/porter-saathi/saathi/internal/i18n"
)

// Entry is one walkthrough shown on the guru screen.
type Entry struct {
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Steps    []string `json:"steps"`
}

// Categories lists the known walkthrough categories in display order.
func Categories() []string {
	return []string{"challan", "insurance", "digilocker", "customer"}
}

type localizedEntry struct {
	title map[i18n.Locale]string
	steps map[i18n.Locale][]string
}

var catalog = map[string]localizedEntry{
	"challan": {
		title: map[i18n.Locale]string{
			i18n.English: "Paying a traffic challan",
			i18n.Hindi:   "ट्रैफिक चालान कैसे भरें",
		},
		steps: map[i18n.Locale][]string{
			i18n.English: {
				"Open the Parivahan website or the mParivahan app.",
				"Choose e-challan and enter your vehicle number.",
				"Check the challan details and the fine amount.",
				"Pay with UPI and save the receipt on your phone.",
			},
			i18n.Hindi: {
				"Parivahan website ya mParivahan app kholiye.",
				"E-challan chunkar apna gaadi number daaliye.",
				"Challan ki jaankari aur jurmana check kijiye.",
				"UPI se bhugtan karke receipt phone mein save kijiye.",
			},
		},
	},
	"insurance": {
		title: map[i18n.Locale]string{
			i18n.English: "Filing an insurance claim",
			i18n.Hindi:   "बीमा क्लेम कैसे करें",
		},
		steps: map[i18n.Locale][]string{
			i18n.English: {
				"Take photos of the damage from all sides.",
				"Call your insurance company's claim number.",
				"Share your policy number and the incident details.",
				"Keep the claim reference number they give you.",
			},
			i18n.Hindi: {
				"Nuksan ki photo har taraf se lijiye.",
				"Apni bima company ke claim number par call kijiye.",
				"Policy number aur ghatna ki jaankari dijiye.",
				"Unka diya claim reference number sambhal kar rakhiye.",
			},
		},
	},
	"digilocker": {
		title: map[i18n.Locale]string{
			i18n.English: "Keeping documents in DigiLocker",
			i18n.Hindi:   "डिजिलॉकर में दस्तावेज़ कैसे रखें",
		},
		steps: map[i18n.Locale][]string{
			i18n.English: {
				"Install the DigiLocker app and sign in with Aadhaar.",
				"Fetch your driving licence and vehicle RC.",
				"Documents in DigiLocker are valid at checkpoints.",
			},
			i18n.Hindi: {
				"DigiLocker app install karke Aadhaar se sign in kijiye.",
				"Apna driving licence aur gaadi ki RC fetch kijiye.",
				"DigiLocker ke documents checkpoint par maanya hain.",
			},
		},
	},
	"customer": {
		title: map[i18n.Locale]string{
			i18n.English: "Handling customers well",
			i18n.Hindi:   "ग्राहक से अच्छा व्यवहार",
		},
		steps: map[i18n.Locale][]string{
			i18n.English: {
				"Call the customer before reaching the pickup point.",
				"Confirm the goods and the drop location politely.",
				"If there is a dispute, use in-app support instead of arguing.",
			},
			i18n.Hindi: {
				"Pickup par pahunchne se pehle customer ko call kijiye.",
				"Saman aur drop location aaram se confirm kijiye.",
				"Vivad ho to behes ki jagah app ke support ka istemal kijiye.",
			},
		},
	},
}

// Lookup returns the embedded walkthrough for a category, localized
// with English fallback.
func Lookup(category string, locale i18n.Locale) (Entry, error) {
	entry, ok := catalog[category]
	if !ok {
		return Entry{}, fmt.Errorf("unknown tutorial category %q", category)
	}

	title, ok := entry.title[locale]
	if !ok {
		title = entry.title[i18n.English]
	}
	steps, ok := entry.steps[locale]
	if !ok {
		steps = entry.steps[i18n.English]
	}

	out := Entry{Category: category, Title: title, Steps: make([]string, len(steps))}
	copy(out.Steps, steps)
	return out, nil
}
