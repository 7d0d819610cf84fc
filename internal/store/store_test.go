// File: internal/store/store_test.go
package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docagent/chatclient/internal/domain"
)

func TestDispatchReplacesStateAndReturnsSnapshot(t *testing.T) {
	s := New(testReducer())

	returned := s.Dispatch(CreateChat{})

	assert.Equal(t, returned, s.State())
	require.Len(t, s.State().Chats, 1)
}

func TestHooksSeeOldAndNewState(t *testing.T) {
	s := New(testReducer())

	var gotOld, gotNew domain.ConversationState
	var calls int
	s.Subscribe(func(old, new domain.ConversationState) {
		calls++
		gotOld, gotNew = old, new
	})

	s.Dispatch(SetUsername{Name: "Carol"})

	assert.Equal(t, 1, calls)
	assert.Empty(t, gotOld.Username)
	assert.Equal(t, "carol", gotNew.Username)
}

func TestHookRunsAfterEveryTransition(t *testing.T) {
	s := New(testReducer())

	var calls int
	s.Subscribe(func(_, _ domain.ConversationState) { calls++ })

	s.Dispatch(CreateChat{})
	s.Dispatch(SetLoading{Value: true})
	s.Dispatch(unknownAction{})

	assert.Equal(t, 3, calls)
}

// Concurrent dispatchers must each observe a fully applied transition;
// no chat may be lost to an interleaved read-modify-write.
func TestConcurrentDispatches(t *testing.T) {
	s := New(NewReducer())

	const n = 32
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			s.Dispatch(CreateChat{})
		}()
	}
	wg.Wait()

	assert.Len(t, s.State().Chats, n)
}
