package service

import (
	"fmt"
	"os"
	"path/filepath"
)

// MediaStore persists uploaded files under a media root directory.
type MediaStore struct {
	root string
}

// NewMediaStore creates a MediaStore rooted at the given directory.
func NewMediaStore(root string) *MediaStore {
	return &MediaStore{root: root}
}

// SavePostImage writes the uploaded image under posts/<original filename>
// and returns the relative path stored on the post record.
func (m *MediaStore) SavePostImage(filename string, content []byte) (string, error) {
	rel := filepath.Join("posts", filepath.Base(filename))
	abs := filepath.Join(m.root, rel)

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create media directory: %w", err)
	}
	if err := os.WriteFile(abs, content, 0o644); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return filepath.ToSlash(rel), nil
}
