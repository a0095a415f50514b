// Package fileutil provides utility functions for working with file paths and
// file operations.
package fileutil

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/flowlint/flowlint/pkg/logger"
)

var log = logger.New("fileutil:fileutil")

// ResolvePath normalizes a user-supplied path into a cleaned absolute path.
// Relative paths are resolved against the current working directory. An empty
// path is rejected.
//
// All file operations on user input (read, stat, watch) should go through this
// so that traversal components like .. are normalized before use.
func ResolvePath(path string) (string, error) {
	if path == "" {
		return "", errors.New("path cannot be empty")
	}

	cleanPath := filepath.Clean(path)
	if filepath.IsAbs(cleanPath) {
		return cleanPath, nil
	}

	abs, err := filepath.Abs(cleanPath)
	if err != nil {
		log.Printf("Failed to resolve path %q: %v", path, err)
		return "", err
	}
	return abs, nil
}

// FileExists checks if a file exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists checks if a directory exists.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsExecutable checks if a file exists and has any execute bit set.
func IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	return info.Mode().Perm()&0o111 != 0
}
