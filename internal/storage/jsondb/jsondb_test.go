package jsondb

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unilife-dev/unilife/internal/domain"
)

func TestNew(t *testing.T) {
	t.Run("creates data directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "data")
		store, err := New(dir)

		require.NoError(t, err)
		assert.NotNil(t, store)
		_, err = os.Stat(dir)
		assert.NoError(t, err)
	})
}

func TestLoadMissingCollection(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	// a collection that was never saved loads as empty, not as an error
	assert.Empty(t, store.LoadUsers())
	assert.Empty(t, store.LoadPosts())
	assert.Empty(t, store.LoadComments())
	assert.Empty(t, store.LoadMessages())
}

func TestLoadCorruptCollection(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte("{not json"), 0o600))

	assert.Empty(t, store.LoadUsers())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	users := []domain.User{
		{Id: "1", Nickname: "alice", Email: "alice@x.com", Password: "p"},
		{Id: "2", Nickname: "bob", Email: "bob@x.com", Password: "q"},
	}
	require.NoError(t, store.UpdateUsers(func([]domain.User) ([]domain.User, error) {
		return users, nil
	}))

	loaded := store.LoadUsers()
	require.Len(t, loaded, 2)
	assert.Equal(t, users, loaded)
}

func TestUpdatePreservesOrder(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	for _, id := range []string{"a", "b", "c"} {
		id := id
		require.NoError(t, store.UpdateMessages(func(msgs []domain.Message) ([]domain.Message, error) {
			return append(msgs, domain.Message{Id: id}), nil
		}))
	}

	msgs := store.LoadMessages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "a", msgs[0].Id)
	assert.Equal(t, "b", msgs[1].Id)
	assert.Equal(t, "c", msgs[2].Id)
}

func TestUpdateErrorAbortsSave(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.UpdateUsers(func([]domain.User) ([]domain.User, error) {
		return []domain.User{{Id: "1"}}, nil
	}))

	updateErr := errors.New("rejected")
	err = store.UpdateUsers(func([]domain.User) ([]domain.User, error) {
		return nil, updateErr
	})
	assert.ErrorIs(t, err, updateErr)

	// collection stays as it was before the failed cycle
	require.Len(t, store.LoadUsers(), 1)
}

func TestNoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, store.UpdatePosts(func([]domain.Post) ([]domain.Post, error) {
		return []domain.Post{{Id: "p1"}}, nil
	}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "posts.json", entries[0].Name())
}

func TestConcurrentUpdatesSerialize(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.UpdateComments(func(comments []domain.Comment) ([]domain.Comment, error) {
				return append(comments, domain.Comment{Id: "c"}), nil
			})
		}()
	}
	wg.Wait()

	// every load-modify-save cycle ran in isolation, so no appends lost
	assert.Len(t, store.LoadComments(), n)
}
