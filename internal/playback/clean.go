package playback

import "strings"

// markupStripper removes characters speech engines read aloud or
// mispronounce. Replies sometimes arrive with markdown emphasis even
// though the model is told not to use it.
var markupStripper = strings.NewReplacer(
	"*", "",
	"#", "",
	"_", " ",
	"`", "",
	"!", ".",
)

// CleanForSpeech normalizes reply text for synthesis. The result is
// empty when the input carried no speakable content.
func CleanForSpeech(text string) string {
	cleaned := markupStripper.Replace(text)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if strings.Trim(cleaned, ". ") == "" {
		return ""
	}
	return cleaned
}
