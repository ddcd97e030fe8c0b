// Package local provides a filesystem-backed object store for raw
// uploaded files. Objects live under a base directory, addressed by
// slash-separated relative paths.
package local

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docsage/docsage/internal/core/domain"
	"github.com/docsage/docsage/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ObjectStore = (*Store)(nil)

// Store writes objects to the local filesystem.
type Store struct {
	basePath string
}

// NewStore creates a local object store rooted at baseDir. If baseDir
// is empty, defaults to ~/.docsage/uploads.
func NewStore(baseDir string) (*Store, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".docsage", "uploads")
	}

	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	return &Store{basePath: baseDir}, nil
}

// Put writes data under the given path, creating parents as needed.
func (s *Store) Put(_ context.Context, path string, data []byte) error {
	fullPath, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0700); err != nil {
		return fmt.Errorf("creating object directory: %w", err)
	}

	if err := os.WriteFile(fullPath, data, 0600); err != nil {
		return fmt.Errorf("writing object: %w", err)
	}
	return nil
}

// Get reads the bytes stored under the given path.
func (s *Store) Get(_ context.Context, path string) ([]byte, error) {
	fullPath, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(fullPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading object: %w", err)
	}
	return data, nil
}

// Delete removes the object at the given path. Missing objects are
// not an error.
func (s *Store) Delete(_ context.Context, path string) error {
	fullPath, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("deleting object: %w", err)
	}
	return nil
}

// resolve maps an object path to a filesystem path, rejecting paths
// that would escape the base directory.
func (s *Store) resolve(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty object path: %w", domain.ErrInvalidInput)
	}

	cleaned := filepath.Clean(filepath.FromSlash(path))
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("object path escapes store root: %w", domain.ErrInvalidInput)
	}

	return filepath.Join(s.basePath, cleaned), nil
}
