package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Storage keeps raw uploads under basePath and final merged artifacts under
// basePath/artifacts/{year}/{month}.
type Storage struct {
	basePath string
}

func New(basePath string) (*Storage, error) {
	if basePath == "" {
		basePath = "./data/storage"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Storage{basePath: basePath}, nil
}

func (s *Storage) Save(_ context.Context, key string, data io.Reader) error {
	path := filepath.Join(s.basePath, key)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (s *Storage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	path := filepath.Join(s.basePath, key)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}

// SaveArtifact routes a final artifact to artifacts/{year}/{month}/{filename}
// and returns the stored path.
func (s *Storage) SaveArtifact(_ context.Context, data []byte, filename, month, year string) (string, error) {
	dir := filepath.Join(s.basePath, "artifacts", sanitizeSegment(year), sanitizeSegment(month))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}

	path := filepath.Join(dir, sanitizeSegment(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return path, nil
}

// sanitizeSegment keeps a caller-supplied value a single path segment.
func sanitizeSegment(segment string) string {
	segment = filepath.Base(strings.TrimSpace(segment))
	if segment == "" || segment == "." || segment == ".." || segment == string(filepath.Separator) {
		return "_"
	}
	return segment
}
