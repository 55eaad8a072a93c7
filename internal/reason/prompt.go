package reason

import (
	"encoding/json"
	"fmt"

	"github.com/porter-saathi/saathi/internal/i18n"
)

// systemPrompt assembles the persona instructions, language contract,
// and screen grounding for one request. The model must answer in the
// caller's language and return a JSON object so the reply can be fed
// straight to speech synthesis.
func systemPrompt(req Request) string {
	persona := directInstructions
	if req.Persona == PersonaDiagnostic {
		persona = diagnosticInstructions
	}

	grounding, err := json.Marshal(req.Snapshot)
	if err != nil {
		grounding = []byte("{}")
	}

	return fmt.Sprintf(
		"%s\n\n"+
			"You are Saathi, a voice assistant for truck drivers in India. "+
			"The driver is currently on the %q screen. "+
			"Respond only in %s (%s), in short spoken sentences a driver can follow while working. "+
			"Never use markdown, bullet points, or special characters. "+
			"Current earnings data visible to the driver: %s\n\n"+
			"Return a JSON object with a single key \"response_text\" containing your spoken reply.",
		persona,
		req.Screen,
		languageName(req.Locale), i18n.Tag(req.Locale),
		grounding,
	)
}

const diagnosticInstructions = "" +
	"Before giving advice, ask one short clarifying question to understand the driver's situation. " +
	"If the driver describes an accident, injury, breakdown on a highway, or any danger, " +
	"tell them to stay calm and call 108 for an ambulance, 100 for police, or 101 for fire services, and skip the clarifying question."

const directInstructions = "" +
	"Answer the driver's question directly using the earnings data provided. " +
	"If the question is about money, quote exact rupee figures from the data rather than estimating."

func languageName(locale i18n.Locale) string {
	switch locale {
	case i18n.Hindi:
		return "Hindi"
	case i18n.Telugu:
		return "Telugu"
	case i18n.Tamil:
		return "Tamil"
	default:
		return "English"
	}
}
