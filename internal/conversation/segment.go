package conversation

import "strings"

// ExtractSegment cuts the fragment of text that sits between a start keyword
// and the nearest end keyword. Start keywords are tried in the order given and
// the first one present in the text wins, even when a later keyword appears
// earlier in the message. The segment ends at the end keyword with the lowest
// index after the start, or at the end of the text when none matches.
//
// With an empty start list the segment begins at the start of the text, so a
// call with no keywords at all is just a trim. Matching is plain substring
// matching; callers are expected to pass text already run through
// NormalizeText.
func ExtractSegment(text string, startKeys, endKeys []string) string {
	start := 0
	if len(startKeys) > 0 {
		start = -1
		for _, key := range startKeys {
			if idx := strings.Index(text, key); idx >= 0 {
				start = idx + len(key)
				break
			}
		}
		if start < 0 {
			return ""
		}
	}

	rest := text[start:]
	end := len(rest)
	for _, key := range endKeys {
		if idx := strings.Index(rest, key); idx >= 0 && idx < end {
			end = idx
		}
	}

	return strings.TrimSpace(rest[:end])
}
