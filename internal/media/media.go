package media

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/avask/scribe/internal/domain"
)

// supportedExtensions lists the media formats the remote service accepts.
var supportedExtensions = map[string]bool{
	".mp4":  true,
	".mp3":  true,
	".wav":  true,
	".m4a":  true,
	".flac": true,
	".ogg":  true,
	".webm": true,
}

// contentTypes maps file extensions to the content-type hint sent with
// each upload.
var contentTypes = map[string]string{
	".mp4":  "audio/mp4",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".flac": "audio/flac",
	".ogg":  "audio/ogg",
	".webm": "audio/webm",
}

// defaultContentType is used when the extension has no known mapping.
const defaultContentType = "audio/mpeg"

// MediaFile is one discovered input file. Immutable once discovered.
type MediaFile struct {
	Path string // absolute path
	Ext  string // lower-cased extension including the dot
}

// Name returns the base name of the file.
func (m MediaFile) Name() string {
	return filepath.Base(m.Path)
}

// OutputPath derives the sibling output path: same directory, same stem,
// the given extension.
func (m MediaFile) OutputPath(ext string) string {
	stem := strings.TrimSuffix(m.Path, filepath.Ext(m.Path))
	return stem + "." + strings.TrimPrefix(ext, ".")
}

// ContentType returns the content-type hint for the file's extension.
func (m MediaFile) ContentType() string {
	if ct, ok := contentTypes[m.Ext]; ok {
		return ct
	}
	return defaultContentType
}

// SupportedExtensions returns the recognized extensions without dots, in
// sorted order, for help text and log messages.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(supportedExtensions))
	for ext := range supportedExtensions {
		exts = append(exts, strings.TrimPrefix(ext, "."))
	}
	sort.Strings(exts)
	return exts
}

// Discover lists supported media files directly inside dir (non-recursive),
// sorted lexicographically by name so batch runs are reproducible. An empty
// result is not an error; a missing or non-directory path is.
func Discover(dir string) ([]MediaFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, domain.NewError(domain.KindDirectoryNotFound, dir, "directory does not exist", err)
	}
	if !info.IsDir() {
		return nil, domain.NewError(domain.KindDirectoryNotFound, dir, "path is not a directory", nil)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, domain.NewError(domain.KindDirectoryNotFound, dir, "failed to read directory", err)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	var files []MediaFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !supportedExtensions[ext] {
			continue
		}
		files = append(files, MediaFile{
			Path: filepath.Join(absDir, entry.Name()),
			Ext:  ext,
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name() < files[j].Name()
	})

	return files, nil
}
