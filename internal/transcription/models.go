package transcription

// Request carries the per-file submission options.
type Request struct {
	Language string // short language code, empty for auto-detect
	Diarize  bool
}

// Utterance is one speaker turn of a transcript. Speaker is -1 when
// diarization was not requested.
type Utterance struct {
	Speaker int
	Text    string
	Start   float64 // seconds, 0 when the service gave no timing
	End     float64
}

// Result is the typed transcript produced at the service boundary.
// Utterances are in chronological order as received.
type Result struct {
	Utterances []Utterance
}

// Wire types for the service's JSON response. Parsing into Result happens
// once, in the client; nothing downstream sees these.

type listenResponse struct {
	Results listenResults `json:"results"`
}

type listenResults struct {
	Utterances []wireUtterance `json:"utterances"`
	Channels   []wireChannel   `json:"channels"`
}

type wireUtterance struct {
	Speaker    int     `json:"speaker"`
	Transcript string  `json:"transcript"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
}

type wireChannel struct {
	Alternatives []wireAlternative `json:"alternatives"`
}

type wireAlternative struct {
	Transcript string     `json:"transcript"`
	Words      []wireWord `json:"words"`
}

type wireWord struct {
	Word           string  `json:"word"`
	PunctuatedWord string  `json:"punctuated_word"`
	Speaker        *int    `json:"speaker"`
	Start          float64 `json:"start"`
	End            float64 `json:"end"`
}
