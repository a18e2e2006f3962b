// Package writer persists a finalized file set to a destination project
// directory. Writes are guarded by an advisory file lock and performed
// atomically per file; the destination is cleared and recreated for every
// job. Two processes that ignore the lock can still race on the same
// destination; that hazard is accepted, not solved here.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"github.com/harrison/testforge/internal/models"
)

// Write locks the destination, clears and recreates it, then writes every
// file in the set. File paths are interpreted relative to destDir; a path
// that would escape the destination is rejected.
func Write(destDir string, files models.FileSet) error {
	if destDir == "" {
		return fmt.Errorf("destination directory is required")
	}

	if err := os.MkdirAll(filepath.Dir(destDir), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	lock := flock.New(destDir + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", destDir, err)
	}
	defer lock.Unlock()

	if err := os.RemoveAll(destDir); err != nil {
		return fmt.Errorf("failed to clear destination %s: %w", destDir, err)
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("failed to create destination %s: %w", destDir, err)
	}

	for _, relPath := range files.Paths() {
		target, err := resolve(destDir, relPath)
		if err != nil {
			return err
		}
		if err := atomicWrite(target, []byte(files[relPath])); err != nil {
			return fmt.Errorf("failed to write %s: %w", relPath, err)
		}
	}

	return nil
}

// resolve joins a relative file path onto the destination and rejects
// anything that would land outside it.
func resolve(destDir, relPath string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("file path %q escapes the destination directory", relPath)
	}
	return filepath.Join(destDir, cleaned), nil
}

// atomicWrite writes data via a temp file and rename in the target's
// directory, so readers never observe a partial file.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()
	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	tempFile = nil
	return nil
}
