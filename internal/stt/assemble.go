package stt

import "strings"

// Assemble joins final segments into one utterance. Recognizers pad
// segment boundaries inconsistently, so interior whitespace is
// collapsed to single spaces.
func Assemble(finalSegments []string) string {
	if len(finalSegments) == 0 {
		return ""
	}
	joined := strings.Join(finalSegments, " ")
	return strings.Join(strings.Fields(joined), " ")
}
