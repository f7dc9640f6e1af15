// Package fileops reads and rewrites conflicted files. Writes go through
// a temp file in the same directory so a crash never leaves a
// half-written file, and the original permission bits are kept.
package fileops

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConflictedFile is a file's content plus the metadata needed to write it
// back faithfully.
type ConflictedFile struct {
	Path    string
	Content string
	Mode    os.FileMode
}

// Read loads a file for resolution, capturing its mode.
func Read(path string) (*ConflictedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error getting file info: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return &ConflictedFile{
		Path:    path,
		Content: string(content),
		Mode:    info.Mode().Perm(),
	}, nil
}

// WriteResolved replaces the file's content atomically, preserving the
// mode captured at read time.
func (f *ConflictedFile) WriteResolved(content string) error {
	dir := filepath.Dir(f.Path)
	tmp, err := os.CreateTemp(dir, ".weavr-*")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("error writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("error closing temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, f.Mode); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("error setting file mode: %w", err)
	}
	if err := os.Rename(tmpPath, f.Path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("error replacing file: %w", err)
	}
	return nil
}
