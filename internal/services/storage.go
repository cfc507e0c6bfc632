package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CacheStorage keeps downloaded corpus files under a single root directory.
type CacheStorage interface {
	EnsureDir() error
	Path(name string) string
	Exists(names ...string) bool
	Save(name string, r io.Reader) error
}

type cacheStorage struct {
	rootPath string
}

func NewCacheStorage(rootPath string) CacheStorage {
	return &cacheStorage{
		rootPath: rootPath,
	}
}

func (s *cacheStorage) EnsureDir() error {
	if err := os.MkdirAll(s.rootPath, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	return nil
}

func (s *cacheStorage) Path(name string) string {
	return filepath.Join(s.rootPath, filepath.FromSlash(name))
}

func (s *cacheStorage) Exists(names ...string) bool {
	for _, name := range names {
		info, err := os.Stat(s.Path(name))
		if err != nil || info.IsDir() || info.Size() == 0 {
			return false
		}
	}
	return true
}

// Save writes r to name atomically, so a failed download never leaves a
// truncated file that Exists would accept.
func (s *cacheStorage) Save(name string, r io.Reader) error {
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("invalid cache path: %s", name)
	}

	filePath := s.Path(name)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(filePath), ".download-*")
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}

	if err := os.Rename(tmp.Name(), filePath); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}
