package transcription

import (
	"fmt"
	"strings"
)

// FormatTranscript renders a result as speaker-attributed plain text.
// Diarized utterances become "[Speaker N]: <text>" lines separated by one
// blank line; a non-diarized result is the plain text block. Pure and
// deterministic: the same result always yields byte-identical output.
func FormatTranscript(result Result) string {
	lines := make([]string, 0, len(result.Utterances))
	for _, u := range result.Utterances {
		text := collapseWhitespace(u.Text)
		if u.Speaker >= 0 {
			lines = append(lines, fmt.Sprintf("[Speaker %d]: %s", u.Speaker, text))
		} else {
			lines = append(lines, text)
		}
	}
	return strings.Join(lines, "\n\n")
}

// collapseWhitespace trims and reduces internal whitespace runs to single
// spaces. Punctuation from the service is left untouched.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
