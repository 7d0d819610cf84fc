// File: internal/store/store.go
package store

import (
	"sync"

	"github.com/docagent/chatclient/internal/domain"
)

// Hook observes a completed transition. Hooks run synchronously after the
// state has been replaced; they receive snapshots and must not dispatch.
// Persistence is wired in as a hook so the reducer stays free of I/O.
type Hook func(old, new domain.ConversationState)

// Store owns the conversation state. Every dispatch applies one transition
// atomically and replaces the root state wholesale, so readers always see
// a consistent snapshot.
type Store struct {
	mu      sync.Mutex
	reducer *Reducer
	state   domain.ConversationState
	hooks   []Hook
}

// New creates an empty store around the given reducer.
func New(reducer *Reducer) *Store {
	return &Store{reducer: reducer}
}

// Subscribe registers a post-transition hook.
func (s *Store) Subscribe(h Hook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, h)
}

// Dispatch applies an action and returns the resulting state.
func (s *Store) Dispatch(action Action) domain.ConversationState {
	s.mu.Lock()
	old := s.state
	s.state = s.reducer.Apply(old, action)
	state := s.state
	hooks := s.hooks
	s.mu.Unlock()

	for _, h := range hooks {
		h(old, state)
	}
	return state
}

// State returns the current snapshot.
func (s *Store) State() domain.ConversationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
