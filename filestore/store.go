// Package filestore implements the byte-level FileStore used for datasets,
// models and charts on top of an afero file system.
package filestore

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

type Store struct {
	Fs   afero.Fs
	Root string
}

func NewMemStore() *Store {
	return &Store{Fs: afero.NewMemMapFs()}
}

func (s *Store) Load(ctx context.Context, path string) ([]byte, error) {
	content, err := afero.ReadFile(s.Fs, s.resolve(path))
	if err != nil {
		return nil, errors.Wrapf(err, "filestore couldn't load %s", path)
	}
	return content, nil
}

func (s *Store) Save(ctx context.Context, path string, content []byte) error {
	full := s.resolve(path)
	if err := s.Fs.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return errors.Wrapf(err, "filestore couldn't create directory for %s", path)
	}
	if err := afero.WriteFile(s.Fs, full, content, 0644); err != nil {
		return errors.Wrapf(err, "filestore couldn't save %s", path)
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, path string) (bool, error) {
	_, err := s.Fs.Stat(s.resolve(path))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "filestore couldn't stat %s", path)
	}
	return true, nil
}

func (s *Store) resolve(path string) string {
	if s.Root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.Root, path)
}
