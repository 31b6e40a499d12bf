package manifest

import (
	"errors"
	"os"
	"path/filepath"

	"setup-lint/internal/logger"
)

// FileName is the manifest file looked up by Resolve.
const FileName = "package.json"

const defaultPerm os.FileMode = 0o644

// Resolve walks from start towards the filesystem root and returns the path
// of the first package.json it finds.
func Resolve(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", &IoError{Op: "resolve", Path: start, Err: err}
	}

	for {
		candidate := filepath.Join(dir, FileName)
		info, err := os.Stat(candidate)
		switch {
		case err == nil && !info.IsDir():
			logger.Debug("[DEBUG] Found manifest at %s\n", candidate)
			return candidate, nil
		case err != nil && !errors.Is(err, os.ErrNotExist):
			return "", &IoError{Op: "stat", Path: candidate, Err: err}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", &NotFoundError{Start: start}
		}
		dir = parent
	}
}

// Read returns the manifest file contents.
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IoError{Op: "read", Path: path, Err: err}
	}
	return data, nil
}

// Write overwrites the manifest file, keeping its current permission bits.
func Write(path string, data []byte) error {
	perm := defaultPerm
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	logger.Debug("[DEBUG] Writing manifest to %s:\n%s", path, data)
	if err := os.WriteFile(path, data, perm); err != nil {
		return &IoError{Op: "write", Path: path, Err: err}
	}
	return nil
}
