package utils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/nodewee/ocr2text/pkg/constants"
)

// IsCommandAvailable checks if a command resolves to an executable
func IsCommandAvailable(command string) bool {
	_, err := exec.LookPath(command)
	return err == nil
}

// FindExecutable returns the first candidate that resolves to an executable.
// Candidates may be bare command names, absolute paths or glob patterns.
func FindExecutable(candidates ...string) (string, bool) {
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if strings.ContainsAny(candidate, "*?[") {
			matches, _ := filepath.Glob(candidate)
			for i := len(matches) - 1; i >= 0; i-- {
				if IsCommandAvailable(matches[i]) {
					return matches[i], true
				}
			}
			continue
		}
		if path, err := exec.LookPath(candidate); err == nil {
			return path, true
		}
	}
	return "", false
}

// FileExtension returns the lower-cased extension of path without the dot
func FileExtension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// ReadInputFile reads a regular file no larger than maxSize bytes
func ReadInputFile(path string, maxSize int64) ([]byte, error) {
	if path == "" {
		return nil, NewValidationError("input file path cannot be empty", nil)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewNotFoundError(fmt.Sprintf("input file does not exist: %s", path), err)
		}
		if os.IsPermission(err) {
			return nil, NewPermissionError(fmt.Sprintf("cannot access input file: %s", path), err)
		}
		return nil, WrapError(err, ErrorTypeIO, "failed to stat input file")
	}
	if info.IsDir() {
		return nil, NewValidationError(fmt.Sprintf("input path is a directory: %s", path), nil)
	}
	if maxSize > 0 && info.Size() > maxSize {
		return nil, NewValidationError(
			fmt.Sprintf("file too large: %d bytes (max %d bytes)", info.Size(), maxSize), nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapError(err, ErrorTypeIO, "failed to read input file")
	}
	return data, nil
}

// WriteOutputFile writes content to path, creating parent directories as needed
func WriteOutputFile(path string, content []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return WrapError(err, ErrorTypeIO, "failed to create output directory")
		}
	}
	if err := os.WriteFile(path, content, constants.DefaultFilePermission); err != nil {
		return WrapError(err, ErrorTypeIO, "failed to write output file")
	}
	return nil
}
