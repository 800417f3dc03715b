// Package session tracks the live console of every logged-in operator.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Closer interface {
	Close()
}

type entry[T Closer] struct {
	console   T
	expiresAt time.Time
}

// Registry maps session IDs to their consoles until the session token expires
type Registry[T Closer] struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]entry[T]
	now      func() time.Time
}

func NewRegistry[T Closer]() *Registry[T] {
	return &Registry[T]{sessions: make(map[uuid.UUID]entry[T]), now: time.Now}
}

// Put stores console under id until expiresAt, closing any console it replaces
func (r *Registry[T]) Put(id uuid.UUID, console T, expiresAt time.Time) {
	r.mu.Lock()
	old, ok := r.sessions[id]
	r.sessions[id] = entry[T]{console: console, expiresAt: expiresAt}
	r.mu.Unlock()

	if ok {
		old.console.Close()
	}
}

// Get returns the console of id. An expired console is closed and dropped.
func (r *Registry[T]) Get(id uuid.UUID) (T, bool) {
	r.mu.RLock()
	e, ok := r.sessions[id]
	r.mu.RUnlock()

	if ok && !r.now().Before(e.expiresAt) {
		r.Remove(id)
		ok = false
	}
	if !ok {
		var zero T
		return zero, false
	}
	return e.console, true
}

// Remove closes and forgets the console of id. It reports whether one existed.
func (r *Registry[T]) Remove(id uuid.UUID) bool {
	r.mu.Lock()
	e, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		e.console.Close()
	}
	return ok
}

// Sweep closes every expired console and returns the sessions it dropped
func (r *Registry[T]) Sweep() []uuid.UUID {
	now := r.now()
	var expired []entry[T]
	var ids []uuid.UUID

	r.mu.Lock()
	for id, e := range r.sessions {
		if !now.Before(e.expiresAt) {
			expired = append(expired, e)
			ids = append(ids, id)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, e := range expired {
		e.console.Close()
	}
	return ids
}

func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// CloseAll empties the registry, used on shutdown
func (r *Registry[T]) CloseAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[uuid.UUID]entry[T])
	r.mu.Unlock()

	for _, e := range sessions {
		e.console.Close()
	}
}
