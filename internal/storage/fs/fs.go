package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Storage keeps uploaded media (avatars, post and message images) on
// local disk under a single directory, served statically by the router.
type Storage struct {
	rootPath string
}

func New(rootPath string) (*Storage, error) {
	// filepath.Clean prevents path traversal like "uploads/../"
	p := filepath.Clean(rootPath)

	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory %s: %w", p, err)
	}

	return &Storage{rootPath: p}, nil
}

// Root returns the directory uploads are written to.
func (s *Storage) Root() string {
	return s.rootPath
}

// Save writes uploaded file data under a generated name and returns
// that name. The original filename is discarded; only its (cleaned)
// extension survives.
func (s *Storage) Save(fileData io.Reader, originalExtension string) (string, error) {
	cleanExtension := filepath.Ext(filepath.Clean("f" + originalExtension))
	filename := uuid.NewString() + cleanExtension
	fullPath := filepath.Join(s.rootPath, filename)

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, fileData); err != nil {
		os.Remove(fullPath) // best effort
		return "", fmt.Errorf("failed to copy file data: %w", err)
	}

	return filename, nil
}

// Read opens a stored file for reading.
func (s *Storage) Read(filename string) (io.ReadCloser, error) {
	fullPath := filepath.Join(s.rootPath, filepath.Base(filename))

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("upload not found: %w", err)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Delete removes a single stored file. A file that is already gone is
// not an error.
func (s *Storage) Delete(filename string) error {
	fullPath := filepath.Join(s.rootPath, filepath.Base(filename))

	err := os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
