// Package i18n provides the typed translation catalog used for every
// spoken or displayed string in the assistant core.
package i18n

import "strings"

// Locale is a normalized two-letter language tag.
type Locale string

const (
	English Locale = "en"
	Hindi   Locale = "hi"
	Telugu  Locale = "te"
	Tamil   Locale = "ta"
)

// Supported lists every locale the catalog carries, in a fixed order.
var Supported = []Locale{English, Hindi, Telugu, Tamil}

// Normalize maps a BCP-47 style tag ("hi-IN") to a catalog locale.
// Unknown tags fall back to English.
func Normalize(tag string) Locale {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return English
	}
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	switch Locale(tag) {
	case English, Hindi, Telugu, Tamil:
		return Locale(tag)
	default:
		return English
	}
}

// Tag returns the BCP-47 tag handed to speech services for a locale.
func Tag(locale Locale) string {
	switch locale {
	case Hindi:
		return "hi-IN"
	case Telugu:
		return "te-IN"
	case Tamil:
		return "ta-IN"
	default:
		return "en-IN"
	}
}
