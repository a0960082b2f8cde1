package remote

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileCache stores raw bank service responses on disk so repeated
// quiz sessions do not hit the service for the same bank.
type FileCache struct {
	rootDir string
}

func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{
		rootDir: cacheDirectory,
	}
}

func (f *FileCache) filePath(bankID string) string {
	return filepath.Join(f.rootDir, bankID+".json")
}

func (cache *FileCache) cache(bankID string, f func() ([]byte, error)) ([]byte, error) {
	localFilePath := cache.filePath(bankID)
	if _, err := os.Stat(localFilePath); err == nil {
		contents, err := cache.read(bankID)
		if err != nil {
			return nil, fmt.Errorf("cache.read > %w", err)
		}
		return contents, nil
	}

	contents, err := f()
	if err != nil {
		return nil, fmt.Errorf("fetch bank for cache > %w", err)
	}

	if err := os.MkdirAll(cache.rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll > %w", err)
	}
	file, err := os.Create(localFilePath)
	if err != nil {
		return nil, fmt.Errorf("os.Create > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	if _, err := file.Write(contents); err != nil {
		return contents, fmt.Errorf("file.Write > %w", err)
	}
	return contents, nil
}

func (cache *FileCache) read(bankID string) ([]byte, error) {
	file, err := os.Open(cache.filePath(bankID))
	if err != nil {
		return nil, fmt.Errorf("os.Open > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll > %w", err)
	}
	return contents, nil
}
