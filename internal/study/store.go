package study

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Keys for the four independently persisted collections.
const (
	blobTasks         = "tasks"
	blobCourses       = "courses"
	blobSessions      = "sessions"
	blobNotifications = "notifications"
)

// BlobStore persists the study collections as independently keyed blobs.
type BlobStore interface {
	// Save writes one blob, replacing any previous value.
	Save(key string, data []byte) error

	// Load reads one blob. A missing key returns nil data and nil error.
	Load(key string) ([]byte, error)
}

// FileStore keeps each blob as a JSON file in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Save implements BlobStore.
func (s *FileStore) Save(key string, data []byte) error {
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		return fmt.Errorf("write blob %s: %w", key, err)
	}
	return nil
}

// Load implements BlobStore.
func (s *FileStore) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", key, err)
	}
	return data, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
