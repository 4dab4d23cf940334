package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileRepository keeps one JSON file per key under a directory.
type FileRepository struct {
	fs  afero.Fs
	dir string
}

func NewFileRepository(fs afero.Fs, dir string) (*FileRepository, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileRepository{fs: fs, dir: dir}, nil
}

func (r *FileRepository) path(key string) string {
	return filepath.Join(r.dir, key+".json")
}

func (r *FileRepository) Load(_ context.Context, key string) ([]byte, bool, error) {
	if !validKey(key) {
		return nil, false, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	raw, err := afero.ReadFile(r.fs, r.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return raw, true, nil
}

// Save writes through a temp file and rename so a crash never leaves a torn value.
func (r *FileRepository) Save(_ context.Context, key string, value []byte) error {
	if !validKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	target := r.path(key)
	tmp := target + ".tmp"
	if err := afero.WriteFile(r.fs, tmp, value, 0o644); err != nil {
		return err
	}
	return r.fs.Rename(tmp, target)
}

func (r *FileRepository) Delete(_ context.Context, key string) error {
	if !validKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	err := r.fs.Remove(r.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (r *FileRepository) Close() error { return nil }
