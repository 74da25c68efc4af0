package local

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeptools/gw-invoice/storages"
)

// Store writes objects under a directory
type Store struct {
	conf *storages.Conf
}

var _ storages.Store = (*Store)(nil)

// Register makes "local" available to storages.New
func Register() {
	storages.RegisterFactory("local", func(conf *storages.Conf) (storages.Store, error) {
		return NewStore(conf)
	})
}

func NewStore(conf *storages.Conf) (*Store, error) {
	if conf.Dir == "" {
		return nil, errors.New("local: dir is required")
	}
	if err := os.MkdirAll(conf.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("local: %w", err)
	}
	return &Store{conf: conf}, nil
}

// Put writes body atomically and returns a file:// location
func (s *Store) Put(ctx context.Context, name string, body []byte, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key, err := s.conf.ObjectKey(name)
	if err != nil {
		return "", err
	}
	target := filepath.Join(s.conf.Dir, filepath.FromSlash(key))
	if rel, err := filepath.Rel(s.conf.Dir, target); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", storages.ErrInvalidName, name)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("local: %w", err)
	}
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return "", fmt.Errorf("local: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return "", fmt.Errorf("local: %w", err)
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	return "file://" + filepath.ToSlash(abs), nil
}
