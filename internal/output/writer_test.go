package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/avask/scribe/internal/domain"
	"github.com/avask/scribe/internal/media"
	"github.com/avask/scribe/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error", Format: "json"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

// TestWriteCreatesSiblingFile checks the transcript lands next to the
// source with the requested extension.
func TestWriteCreatesSiblingFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "interview.mp3")
	if err := os.WriteFile(src, []byte("audio"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	file := media.MediaFile{Path: src, Ext: ".mp3"}

	w := NewWriter(testLogger(t))
	outPath, err := w.Write(file, "hello world", "txt")
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if outPath != filepath.Join(dir, "interview.txt") {
		t.Fatalf("outPath = %q", outPath)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "hello world" {
		t.Fatalf("content = %q", data)
	}
}

// TestWriteOverwritesPreviousOutput checks re-runs replace prior output
// rather than appending or versioning.
func TestWriteOverwritesPreviousOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "clip.wav")
	if err := os.WriteFile(src, []byte("audio"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	file := media.MediaFile{Path: src, Ext: ".wav"}

	w := NewWriter(testLogger(t))
	if _, err := w.Write(file, "first version", "txt"); err != nil {
		t.Fatalf("first Write() error = %v", err)
	}
	outPath, err := w.Write(file, "second version", "txt")
	if err != nil {
		t.Fatalf("second Write() error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "second version" {
		t.Fatalf("content = %q, want latest write only", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 2 { // source + single output
		t.Fatalf("entries = %d, want 2", len(entries))
	}
}

// TestWriteFailureIsClassified checks filesystem failures map to the
// write kind.
func TestWriteFailureIsClassified(t *testing.T) {
	file := media.MediaFile{Path: filepath.Join(t.TempDir(), "missing", "a.mp3"), Ext: ".mp3"}

	w := NewWriter(testLogger(t))
	_, err := w.Write(file, "text", "txt")
	if domain.KindOf(err) != domain.KindWrite {
		t.Fatalf("kind = %v, want write error", domain.KindOf(err))
	}
}
