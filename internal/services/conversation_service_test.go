// File: internal/services/conversation_service_test.go
package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docagent/chatclient/internal/domain"
	"github.com/docagent/chatclient/internal/services"
	"github.com/docagent/chatclient/internal/services/agent"
	"github.com/docagent/chatclient/internal/storage"
	"github.com/docagent/chatclient/internal/store"
)

type fakeProvider struct {
	askFn       func(ctx context.Context, content, username string) (string, error)
	uploadFn    func(ctx context.Context, files []agent.File, username string) error
	askCalls    int
	uploadCalls int
}

func (f *fakeProvider) Ask(ctx context.Context, content, username string) (string, error) {
	f.askCalls++
	if f.askFn == nil {
		return "ok", nil
	}
	return f.askFn(ctx, content, username)
}

func (f *fakeProvider) Upload(ctx context.Context, files []agent.File, username string) error {
	f.uploadCalls++
	if f.uploadFn == nil {
		return nil
	}
	return f.uploadFn(ctx, files, username)
}

func newService(t *testing.T, provider agent.Provider) (*services.ConversationService, *store.Store) {
	t.Helper()
	st := store.New(store.NewReducer())
	svc, err := services.NewConversationService(st, provider, &services.NoOpLogger{})
	require.NoError(t, err)
	return svc, st
}

// The §8-style happy path: a fresh chat, one send, a successful reply.
func TestSendMessageResolvesPlaceholder(t *testing.T) {
	provider := &fakeProvider{}
	svc, _ := newService(t, provider)

	// The user message and the loading placeholder must both be visible
	// before the webhook call goes out.
	provider.askFn = func(ctx context.Context, content, username string) (string, error) {
		chat, ok := svc.State().ActiveChat()
		require.True(t, ok)
		require.Len(t, chat.Messages, 2)
		assert.Equal(t, "Hello", chat.Messages[0].Content)
		assert.Equal(t, domain.SenderUser, chat.Messages[0].Sender)
		assert.True(t, chat.Messages[1].IsLoading)
		assert.Equal(t, domain.SenderAgent, chat.Messages[1].Sender)
		assert.Empty(t, chat.Messages[1].Content)
		return "Hi there", nil
	}

	state := svc.NewChat()
	require.Len(t, state.Chats, 1)
	assert.Equal(t, domain.DefaultChatTitle, state.Chats[0].Title)
	assert.Equal(t, state.Chats[0].ID, state.ActiveChatID)

	svc.SendMessage(context.Background(), "Hello")

	chat, ok := svc.State().ActiveChat()
	require.True(t, ok)
	require.Len(t, chat.Messages, 2)
	assert.Equal(t, "Hi there", chat.Messages[1].Content)
	assert.False(t, chat.Messages[1].IsLoading)
	assert.Equal(t, "Hello", chat.Title)
}

func TestSendMessageFailureYieldsApology(t *testing.T) {
	provider := &fakeProvider{
		askFn: func(ctx context.Context, content, username string) (string, error) {
			return "", errors.New("connection reset")
		},
	}
	svc, _ := newService(t, provider)

	svc.NewChat()
	svc.SendMessage(context.Background(), "Hello")

	state := svc.State()
	require.Len(t, state.Chats, 1)
	chat := state.Chats[0]
	require.Len(t, chat.Messages, 2)
	assert.Equal(t, services.ErrorReply, chat.Messages[1].Content)
	assert.False(t, chat.Messages[1].IsLoading)
}

func TestSendMessageWithoutActiveChatIsNoOp(t *testing.T) {
	provider := &fakeProvider{}
	svc, _ := newService(t, provider)

	svc.SendMessage(context.Background(), "Hello")

	assert.Zero(t, provider.askCalls)
	assert.Empty(t, svc.State().Chats)
}

func TestSendMessagePassesNormalizedUsername(t *testing.T) {
	var gotUsername string
	provider := &fakeProvider{
		askFn: func(ctx context.Context, content, username string) (string, error) {
			gotUsername = username
			return "ok", nil
		},
	}
	svc, _ := newService(t, provider)

	svc.SetUsername("Dana")
	svc.NewChat()
	svc.SendMessage(context.Background(), "Hello")

	assert.Equal(t, "dana", gotUsername)
}

// Switching chats while a send is in flight must not redirect the reply:
// it resolves against the chat that was active at dispatch time.
func TestSendMessageResolvesAgainstOriginalChat(t *testing.T) {
	provider := &fakeProvider{}
	svc, _ := newService(t, provider)

	target := svc.NewChat().ActiveChatID
	other := svc.NewChat().ActiveChatID
	svc.SelectChat(target)

	provider.askFn = func(ctx context.Context, content, username string) (string, error) {
		svc.SelectChat(other)
		return "late reply", nil
	}

	svc.SendMessage(context.Background(), "Hello")

	state := svc.State()
	original, ok := state.FindChat(target)
	require.True(t, ok)
	require.Len(t, original.Messages, 2)
	assert.Equal(t, "late reply", original.Messages[1].Content)

	otherChat, ok := state.FindChat(other)
	require.True(t, ok)
	assert.Empty(t, otherChat.Messages)
	assert.Equal(t, other, state.ActiveChatID)
}

func TestUploadFilesEmptySelection(t *testing.T) {
	provider := &fakeProvider{}
	svc, st := newService(t, provider)
	svc.SetUsername("dana")

	var sawUploading bool
	st.Subscribe(func(_, new domain.ConversationState) {
		if new.IsUploadingFiles {
			sawUploading = true
		}
	})

	err := svc.UploadFiles(context.Background(), nil)

	assert.ErrorIs(t, err, services.ErrNothingToUpload)
	assert.Zero(t, provider.uploadCalls)
	assert.False(t, sawUploading)
}

func TestUploadFilesRequiresUsername(t *testing.T) {
	provider := &fakeProvider{}
	svc, _ := newService(t, provider)

	err := svc.UploadFiles(context.Background(), []agent.File{{Name: "a.txt", Data: []byte("x")}})

	assert.ErrorIs(t, err, services.ErrUsernameRequired)
	assert.Zero(t, provider.uploadCalls)
}

func TestUploadFilesSuccess(t *testing.T) {
	svcHolder := struct{ svc *services.ConversationService }{}
	provider := &fakeProvider{
		uploadFn: func(ctx context.Context, files []agent.File, username string) error {
			// The uploading flag is raised for the duration of the call.
			assert.True(t, svcHolder.svc.State().IsUploadingFiles)
			assert.Equal(t, "dana", username)
			return nil
		},
	}
	svc, _ := newService(t, provider)
	svcHolder.svc = svc

	svc.SetUsername("Dana")
	err := svc.UploadFiles(context.Background(), []agent.File{{Name: "a.txt", Data: []byte("x")}})

	require.NoError(t, err)
	state := svc.State()
	assert.True(t, state.HasUploadedFiles)
	assert.False(t, state.IsUploadingFiles)
}

func TestUploadFilesFailureLeavesFlagUnset(t *testing.T) {
	provider := &fakeProvider{
		uploadFn: func(ctx context.Context, files []agent.File, username string) error {
			return errors.New("upstream down")
		},
	}
	svc, _ := newService(t, provider)
	svc.SetUsername("dana")

	err := svc.UploadFiles(context.Background(), []agent.File{{Name: "a.txt", Data: []byte("x")}})

	assert.Error(t, err)
	state := svc.State()
	assert.False(t, state.HasUploadedFiles)
	assert.False(t, state.IsUploadingFiles)
}

type memKV map[string]string

func (m memKV) Read(key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m memKV) Write(key, value string) error {
	m[key] = value
	return nil
}

func TestRehydrateRestoresSavedState(t *testing.T) {
	saved := []domain.Chat{
		{ID: "c1", Title: "Saved chat", Messages: []domain.Message{}},
		{ID: "c2", Title: "Older chat", Messages: []domain.Message{}},
	}
	doc, err := storage.EncodeChats(saved)
	require.NoError(t, err)

	kv := memKV{
		storage.KeyChats:         doc,
		storage.KeyUsername:      "dana",
		storage.KeyFilesUploaded: "true",
	}

	svc, _ := newService(t, &fakeProvider{})
	svc.Rehydrate(storage.NewPersister(kv, &services.NoOpLogger{}))

	state := svc.State()
	require.Len(t, state.Chats, 2)
	assert.Equal(t, "c1", state.ActiveChatID)
	assert.Equal(t, "dana", state.Username)
	assert.True(t, state.HasUploadedFiles)
}

func TestRehydrateWithEmptyStore(t *testing.T) {
	svc, _ := newService(t, &fakeProvider{})

	svc.Rehydrate(storage.NewPersister(memKV{}, &services.NoOpLogger{}))

	state := svc.State()
	assert.Empty(t, state.Chats)
	assert.Empty(t, state.Username)
	assert.False(t, state.HasUploadedFiles)
}

// End to end through the persistence hook: dispatches made by the service
// land in the KV, and a second service rehydrates to the same chats.
func TestStatePersistsAcrossRestarts(t *testing.T) {
	kv := memKV{}

	st := store.New(store.NewReducer())
	persister := storage.NewPersister(kv, &services.NoOpLogger{})
	st.Subscribe(persister.OnTransition)
	svc, err := services.NewConversationService(st, &fakeProvider{}, &services.NoOpLogger{})
	require.NoError(t, err)

	svc.NewChat()
	svc.SendMessage(context.Background(), "remember this")

	// "Restart": a fresh store rehydrated from the same KV.
	svc2, err := services.NewConversationService(store.New(store.NewReducer()), &fakeProvider{}, &services.NoOpLogger{})
	require.NoError(t, err)
	svc2.Rehydrate(persister)

	state := svc2.State()
	require.Len(t, state.Chats, 1)
	require.Len(t, state.Chats[0].Messages, 2)
	assert.Equal(t, "remember this", state.Chats[0].Messages[0].Content)
	assert.Equal(t, "remember this", state.Chats[0].Title)
}
