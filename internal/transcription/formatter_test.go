package transcription

import "testing"

// TestFormatTranscriptDiarized checks the exact speaker-attributed layout.
func TestFormatTranscriptDiarized(t *testing.T) {
	result := Result{Utterances: []Utterance{
		{Speaker: 0, Text: "Hello, welcome to the show."},
		{Speaker: 1, Text: "Thank you for having me."},
	}}

	want := "[Speaker 0]: Hello, welcome to the show.\n\n[Speaker 1]: Thank you for having me."
	if got := FormatTranscript(result); got != want {
		t.Fatalf("FormatTranscript = %q, want %q", got, want)
	}
}

// TestFormatTranscriptNonDiarized checks plain output without a speaker
// prefix.
func TestFormatTranscriptNonDiarized(t *testing.T) {
	result := Result{Utterances: []Utterance{{Speaker: -1, Text: "This is a test."}}}
	if got := FormatTranscript(result); got != "This is a test." {
		t.Fatalf("FormatTranscript = %q", got)
	}
}

// TestFormatTranscriptCollapsesWhitespace checks internal whitespace runs
// become single spaces while punctuation is untouched.
func TestFormatTranscriptCollapsesWhitespace(t *testing.T) {
	result := Result{Utterances: []Utterance{
		{Speaker: 4, Text: "  Well,   yes...\tprobably.\n"},
	}}
	want := "[Speaker 4]: Well, yes... probably."
	if got := FormatTranscript(result); got != want {
		t.Fatalf("FormatTranscript = %q, want %q", got, want)
	}
}

// TestFormatTranscriptEmptyResult checks an empty utterance list yields
// empty output.
func TestFormatTranscriptEmptyResult(t *testing.T) {
	if got := FormatTranscript(Result{}); got != "" {
		t.Fatalf("FormatTranscript = %q, want empty", got)
	}
}

// TestFormatTranscriptDeterministic checks repeated calls are
// byte-identical.
func TestFormatTranscriptDeterministic(t *testing.T) {
	result := Result{Utterances: []Utterance{
		{Speaker: 2, Text: "First turn."},
		{Speaker: 0, Text: "Second turn."},
		{Speaker: 2, Text: "Third turn."},
	}}
	first := FormatTranscript(result)
	second := FormatTranscript(result)
	if first != second {
		t.Fatalf("formatter not deterministic: %q vs %q", first, second)
	}
}

// TestFormatTranscriptNonContiguousSpeakers checks speaker ids are used
// as received, without renumbering.
func TestFormatTranscriptNonContiguousSpeakers(t *testing.T) {
	result := Result{Utterances: []Utterance{
		{Speaker: 0, Text: "Intro."},
		{Speaker: 7, Text: "Guest."},
	}}
	want := "[Speaker 0]: Intro.\n\n[Speaker 7]: Guest."
	if got := FormatTranscript(result); got != want {
		t.Fatalf("FormatTranscript = %q, want %q", got, want)
	}
}
