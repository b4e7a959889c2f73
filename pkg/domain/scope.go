package domain

import (
	"sync"

	"github.com/google/uuid"
)

// Scope is the attribute bag for one loop invocation. Scopes form a tree
// that mirrors loop nesting: a nested loop's scope points at the enclosing
// loop's scope as its parent. The parent link is set at creation and never
// changes.
//
// A Scope lives for the duration of the enclosing Run call; callers must
// not retain it afterwards. All accessors are safe for concurrent use, so
// a single scope can back overlapping iterations in the concurrent engine.
type Scope struct {
	id     string
	parent *Scope

	mu    sync.RWMutex
	attrs map[string]any
}

// NewScope creates a root scope with no parent.
func NewScope() *Scope {
	return &Scope{
		id:    uuid.NewString(),
		attrs: make(map[string]any),
	}
}

// Child creates a scope one level below s.
func (s *Scope) Child() *Scope {
	return &Scope{
		id:     uuid.NewString(),
		parent: s,
		attrs:  make(map[string]any),
	}
}

// ID returns the scope's unique identity. Two scopes are the same scope
// iff their IDs are equal; exception handlers rely on this to distinguish
// "same context" from sibling or parent contexts.
func (s *Scope) ID() string {
	return s.id
}

// Parent returns the enclosing scope, or nil for a root scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Get returns the attribute stored under key, with ok reporting presence.
func (s *Scope) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.attrs[key]
	return v, ok
}

// Put stores value under key, replacing any previous value.
func (s *Scope) Put(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs[key] = value
}

// GetOrPut returns the existing attribute under key, or stores and returns
// value if the key is absent. The check-and-insert is atomic, which lets
// concurrent iterations race to install a shared counter exactly once.
func (s *Scope) GetOrPut(key string, value any) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.attrs[key]; ok {
		return v
	}
	s.attrs[key] = value
	return value
}
