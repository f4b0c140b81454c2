package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// TokenStore persists the employer session token across restarts. It is the
// only client state that survives a restart.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

type fileTokenStore struct {
	path string
}

// NewFileTokenStore persists the token in a single file under the given
// path, created with owner-only permissions.
func NewFileTokenStore(path string) TokenStore {
	return &fileTokenStore{path: path}
}

func (s *fileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *fileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *fileTokenStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
