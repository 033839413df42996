// Package localfs persists the store snapshot as a JSON file, so a restart
// can present cached state while the full refresh runs.
package localfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DocuuAI/docsyncd/internal/core/domain"
)

type Store struct {
	path string
}

func New(path string) (*Store, error) {
	if path == "" {
		path = "./data/snapshot.json"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &Store{path: path}, nil
}

// Save writes atomically: a half-written snapshot must never replace a good
// one.
func (s *Store) Save(_ context.Context, data []byte) error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

func (s *Store) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.WrapError(domain.ErrNotFound, "load snapshot", err)
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return data, nil
}
