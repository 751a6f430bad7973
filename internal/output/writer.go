package output

import (
	"os"

	"github.com/avask/scribe/internal/domain"
	"github.com/avask/scribe/internal/media"
	"github.com/avask/scribe/pkg/logger"
)

// Writer persists formatted transcripts next to their source media files.
type Writer struct {
	logger *logger.Logger
}

// NewWriter creates a new transcript writer.
func NewWriter(logger *logger.Logger) *Writer {
	return &Writer{logger: logger.Named("output")}
}

// Write saves the transcript as <stem>.<ext> beside the input file,
// replacing any previous output. Returns the path written.
func (w *Writer) Write(file media.MediaFile, transcript, ext string) (string, error) {
	outPath := file.OutputPath(ext)
	if err := os.WriteFile(outPath, []byte(transcript), 0o644); err != nil {
		return "", domain.NewError(domain.KindWrite, file.Path, "failed to write transcript", err)
	}

	w.logger.Debug("Wrote transcript",
		logger.String("file", file.Name()),
		logger.String("output", outPath),
		logger.Int("bytes", len(transcript)),
	)
	return outPath, nil
}
