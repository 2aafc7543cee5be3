package session

import (
	"context"
	"sync"

	"startupconnect/internal/domain/entity"
)

// Store holds the persisted login session. It replaces the ambient
// local-storage lookups of the old client with one injectable dependency:
// resource clients read the token through it, and logout is an explicit
// invalidation event subscribers can observe.
//
// Reads never fail: an empty store means "not logged in", not an error.
// Writes happen only at login and logout.
type Store interface {
	Current() (entity.Session, bool)
	Set(ctx context.Context, s entity.Session) error
	Clear(ctx context.Context) error

	// Token returns the bearer token or "" when no session exists. Satisfies
	// the round-tripper token source.
	Token() string

	// OnClear registers a callback invoked after every successful Clear.
	OnClear(fn func())
}

// subscribers is the shared OnClear bookkeeping for store implementations.
type subscribers struct {
	mu  sync.Mutex
	fns []func()
}

func (s *subscribers) add(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fns = append(s.fns, fn)
}

func (s *subscribers) notify() {
	s.mu.Lock()
	fns := make([]func(), len(s.fns))
	copy(fns, s.fns)
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
