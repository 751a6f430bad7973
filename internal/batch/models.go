package batch

import "github.com/avask/scribe/internal/domain"

// Failure records one file that could not be transcribed.
type Failure struct {
	Path    string
	Kind    domain.Kind
	Message string
}

// Summary aggregates the outcome of one batch run. Discarded after
// reporting; nothing is persisted across runs.
type Summary struct {
	RunID     string
	Attempted int
	Succeeded int
	Failures  []Failure
	Fatal     bool
}

// Failed returns the number of files that failed.
func (s *Summary) Failed() int {
	return len(s.Failures)
}
