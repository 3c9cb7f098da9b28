package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local stores objects as files under a base directory, served by the
// /uploads static route.
type Local struct {
	basePath string
}

func NewLocal(basePath string) (*Local, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Local{basePath: basePath}, nil
}

func (l *Local) Save(_ context.Context, name string, r io.Reader, _ int64) (string, error) {
	path := filepath.Join(l.basePath, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return "/uploads/" + name, nil
}

func (l *Local) Delete(_ context.Context, name string) error {
	err := os.Remove(filepath.Join(l.basePath, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
