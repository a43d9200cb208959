package ipynb

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// TempFilePrefix is the prefix used for temporary atomic write files.
	TempFilePrefix = ".nbmcp-tmp-"

	defaultFileMode os.FileMode = 0o644
)

// writeFileAtomic writes data to a file atomically by writing to a temp file
// in the same directory and then renaming it over the target.
// The temp file is removed on every path that does not reach the rename.
func writeFileAtomic(filename string, data []byte) error {
	dir := filepath.Dir(filename)

	perm := defaultFileMode
	if info, err := os.Stat(filename); err == nil {
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", filename)
		}
		perm = info.Mode().Perm()
	}

	tmpFile, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmpFile.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}

	return nil
}
