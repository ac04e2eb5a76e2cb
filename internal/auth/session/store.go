// Package session holds the client-side view of who is signed in and the
// lifecycle controller that keeps it in step with the identity service.
package session

import (
	"sync"

	"moortracker/internal/auth/models"
)

// State is an immutable snapshot of the session store.
// Loading=true means "not yet known", never "unauthenticated".
type State struct {
	User    *models.User
	Error   string
	Loading bool
	Version uint64
}

// IsAuthenticated reports whether a user is present.
func (s State) IsAuthenticated() bool {
	return s.User != nil
}

// Observer is notified synchronously after every store mutation.
// Under concurrent writers observers may see snapshots out of order; Version is monotonic.
type Observer func(State)

type observerEntry struct {
	id uint64
	fn Observer
}

// Store is the single source of truth for the current identity.
// SetUser is the only mutator exposed outside this package.
type Store struct {
	mu        sync.RWMutex
	state     State
	observers []observerEntry
	nextID    uint64
}

// NewStore returns an empty store in the loading state.
func NewStore() *Store {
	return &Store{state: State{Loading: true}}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetUser replaces the current user (nil signs out locally) and notifies observers.
func (s *Store) SetUser(user *models.User) {
	s.apply(func(st *State) {
		st.User = user
	})
}

// Subscribe registers an observer and returns its unsubscribe func.
// Calling the returned func more than once is safe.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	entryID := s.nextID
	s.observers = append(s.observers, observerEntry{id: entryID, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, o := range s.observers {
				if o.id == entryID {
					s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
					return
				}
			}
		})
	}
}

// resolveInitial applies the result of the initial user fetch.
func (s *Store) resolveInitial(user *models.User, errMsg string) {
	s.apply(func(st *State) {
		st.User = user
		st.Error = errMsg
		st.Loading = false
	})
}

// detach drops every observer; the owning scope has ended.
func (s *Store) detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = nil
}

func (s *Store) apply(mutate func(*State)) {
	s.mu.Lock()
	mutate(&s.state)
	s.state.Version++
	snapshot := s.state
	observers := make([]Observer, len(s.observers))
	for i, o := range s.observers {
		observers[i] = o.fn
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
}
