package generator

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ArtifactWriter persists generated files. Paths are slash separated and
// relative to the writer root.
type ArtifactWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
}

// NewFilesystemWriter returns an ArtifactWriter that writes under root.
func NewFilesystemWriter(root string) ArtifactWriter {
	return &filesystemWriter{root: filepath.Clean(root)}
}

type filesystemWriter struct {
	root string
}

func (w *filesystemWriter) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" {
		return errors.New("generator: write requires path")
	}
	target := filepath.Join(w.root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("generator: ensure dir for %s: %w", path, err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("generator: write %s: %w", path, err)
	}
	return nil
}

// MemoryWriter keeps generated files in memory. It backs dry runs and tests.
type MemoryWriter struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemoryWriter constructs an empty MemoryWriter.
func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{files: map[string][]byte{}}
}

func (w *MemoryWriter) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = append([]byte(nil), data...)
	return nil
}

// Files returns a copy of the written files keyed by path.
func (w *MemoryWriter) Files() map[string][]byte {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return maps.Clone(w.files)
}
