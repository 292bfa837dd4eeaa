package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// EnvHome overrides the data directory.
const EnvHome = "MFE_HOME"

// BaseDir returns the root data directory ($MFE_HOME or ~/.mfe).
func BaseDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".mfe"), nil
}

// contentFilePath returns the path of the content file for slug below dir.
func contentFilePath(dir, slug string) (string, error) {
	if slug == "" {
		return "", fmt.Errorf("storage error: empty slug")
	}
	if strings.ContainsAny(slug, `/\`) || strings.Contains(slug, "..") {
		return "", fmt.Errorf("storage error: invalid slug %q", slug)
	}
	return filepath.Join(dir, slug+".md"), nil
}

// SaveContent atomically writes data to <dir>/<slug>.md and returns the path.
func SaveContent(dir, slug string, data []byte) (string, error) {
	path, err := contentFilePath(dir, slug)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage error creating directories: %w", err)
	}
	if err := WriteFileAtomic(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteFileAtomic writes to a temp file next to path, then renames it.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, perm); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// Slugify derives a file name from a title: lower case letters and digits,
// with every other run of characters collapsed to a single dash.
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
