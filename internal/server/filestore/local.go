package filestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/todoapi/internal/filex"
)

// LocalStore keeps attachments on local disk under a root directory. Public
// URLs are built from a configured base URL, the files are expected to be
// served by a reverse proxy or a static file server.
type LocalStore struct {
	root    string
	baseURL string
}

// NewLocalStore builds a disk-backed Store rooted at dir. baseURL is the
// public prefix the stored keys are reachable under.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	root, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &LocalStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// pathFor maps a storage key to its on-disk location.
func (s *LocalStore) pathFor(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}

func (s *LocalStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	key := newStorageKey(originalName)

	p := s.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o770); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}

	f, err := os.Create(p)
	if err != nil {
		return "", fmt.Errorf("create: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(p)
		return "", fmt.Errorf("write: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close: %w", err)
	}

	return key, nil
}

func (s *LocalStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(s.pathFor(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat: %w", err)
	}
	return true, nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	ok, err := s.Exists(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := os.Remove(s.pathFor(key)); err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

func (s *LocalStore) URL(key string) string {
	return s.baseURL + "/" + key
}
