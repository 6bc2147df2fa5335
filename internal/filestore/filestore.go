package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store persists uploaded files and hands back an opaque reference. The
// reference is what gets stored on lessons and announcements; callers
// never see the underlying layout.
type Store interface {
	Save(originalName string, r io.Reader) (string, error)
}

// DiskStore writes uploads under a single directory with random names,
// keeping only the original extension. maxBytes caps a single upload.
type DiskStore struct {
	dir      string
	maxBytes int64
}

func NewDiskStore(dir string, maxBytes int64) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir, maxBytes: maxBytes}, nil
}

func (s *DiskStore) Save(originalName string, r io.Reader) (string, error) {
	name := uuid.New().String() + filepath.Ext(originalName)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write upload: %w", err)
	}
	if n > s.maxBytes {
		os.Remove(f.Name())
		return "", fmt.Errorf("upload exceeds %d bytes", s.maxBytes)
	}

	return "/uploads/" + name, nil
}
