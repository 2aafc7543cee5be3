package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"startupconnect/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// sessionFile is the on-disk shape, the analog of the serialized user object
// the browser client kept in local storage.
type sessionFile struct {
	Token string `json:"token"`
	User  struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	} `json:"user"`
}

// FileStore persists the session as a JSON file. A corrupt or unreadable file
// reads as "no session" rather than an error.
type FileStore struct {
	path string

	mu     sync.RWMutex
	cached *entity.Session

	subscribers
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Current() (entity.Session, bool) {
	s.mu.RLock()
	if s.cached != nil {
		defer s.mu.RUnlock()
		return *s.cached, true
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil {
		return *s.cached, true
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return entity.Session{}, false
	}

	var f sessionFile
	if err := json.Unmarshal(raw, &f); err != nil || f.Token == "" {
		return entity.Session{}, false
	}

	sess := f.toSession()
	s.cached = &sess

	return sess, true
}

func (s *FileStore) Set(_ context.Context, sess entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var f sessionFile
	f.Token = sess.Token
	f.User.ID = sess.User.ID
	f.User.Email = sess.User.Email
	f.User.Name = sess.User.Name
	f.User.Role = sess.User.Role.String()

	raw, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}

	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("os.WriteFile: %w", err)
	}

	s.cached = &sess

	return nil
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()

	s.cached = nil

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.mu.Unlock()
		return fmt.Errorf("os.Remove: %w", err)
	}
	s.mu.Unlock()

	s.notify()

	return nil
}

func (s *FileStore) Token() string {
	sess, ok := s.Current()
	if !ok {
		return ""
	}

	return sess.Token
}

func (s *FileStore) OnClear(fn func()) {
	s.add(fn)
}

func (f sessionFile) toSession() entity.Session {
	// Role comes from disk; an unknown value degrades to the zero role rather
	// than failing the read.
	role, _ := parseRoleLenient(f.User.Role)

	return entity.Session{
		Token: f.Token,
		User: entity.User{
			ID:    f.User.ID,
			Email: f.User.Email,
			Name:  f.User.Name,
			Role:  role,
		},
	}
}
