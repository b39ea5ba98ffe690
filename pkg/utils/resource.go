package utils

import (
	"fmt"
	"os"
	"sync"

	"github.com/nodewee/ocr2text/pkg/logger"
)

// ResourceManager tracks temporary files and removes them on Cleanup
type ResourceManager struct {
	mu         sync.Mutex
	logger     *logger.Logger
	baseDir    string
	tempFiles  []string
	cleanupFns []func() error
}

// NewResourceManager creates a resource manager rooted at baseDir (os.TempDir when empty)
func NewResourceManager(baseDir string, log *logger.Logger) *ResourceManager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &ResourceManager{
		logger:  log,
		baseDir: baseDir,
	}
}

// WriteTempFile stores data in a new temporary file and tracks it for cleanup
func (rm *ResourceManager) WriteTempFile(pattern string, data []byte) (string, error) {
	f, err := os.CreateTemp(rm.baseDir, pattern)
	if err != nil {
		return "", NewIOError("failed to create temporary file", err)
	}
	name := f.Name()

	rm.mu.Lock()
	rm.tempFiles = append(rm.tempFiles, name)
	rm.mu.Unlock()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", NewIOError("failed to write temporary file", err)
	}
	if err := f.Close(); err != nil {
		return "", NewIOError("failed to close temporary file", err)
	}

	rm.logger.Debug("Created temporary file: %s", name)
	return name, nil
}

// RegisterCleanupFunc registers a function to run on Cleanup
func (rm *ResourceManager) RegisterCleanupFunc(fn func() error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.cleanupFns = append(rm.cleanupFns, fn)
}

// TempFiles returns the paths currently tracked
func (rm *ResourceManager) TempFiles() []string {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return append([]string(nil), rm.tempFiles...)
}

// Cleanup removes all tracked resources. It is safe to call more than once.
func (rm *ResourceManager) Cleanup() error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	var errs []error

	for _, fn := range rm.cleanupFns {
		if err := fn(); err != nil {
			errs = append(errs, err)
			rm.logger.Warn("Cleanup function failed: %v", err)
		}
	}

	for _, file := range rm.tempFiles {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("failed to remove temp file %s: %w", file, err))
			rm.logger.Warn("Failed to remove temporary file: %s, error: %v", file, err)
		} else {
			rm.logger.Debug("Removed temporary file: %s", file)
		}
	}

	rm.tempFiles = rm.tempFiles[:0]
	rm.cleanupFns = rm.cleanupFns[:0]

	if len(errs) > 0 {
		return NewIOError(fmt.Sprintf("cleanup failed with %d errors", len(errs)), errs[0])
	}
	return nil
}
