package blobstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists blobs as JSON files under a directory. It is the default
// backend for host-local runs where no Redis is available.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Get reads and unmarshals the blob at key
func (f *FileStore) Get(_ context.Context, key string, dest interface{}) error {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// Set marshals value and overwrites the blob at key. The write goes through a
// temp file and rename so a crash mid-write never leaves a truncated blob.
func (f *FileStore) Set(_ context.Context, key string, value interface{}) error {
	jsonBytes, err := json.Marshal(value)
	if err != nil {
		return err
	}

	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, jsonBytes, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path(key))
}

// Delete removes the blob at key
func (f *FileStore) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close is a no-op for the file backend
func (f *FileStore) Close() error {
	return nil
}
