package persistence

import (
	"context"
	"testing"

	"github.com/eventpass/backend/internal/domain/shared"
	"github.com/eventpass/backend/internal/domain/ticketing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoredThread(t *testing.T, repo *GormChatRepository, eventID uuid.UUID, passcode string) *ticketing.ChatThread {
	t.Helper()
	thread, err := ticketing.NewChatThread(eventID, passcode)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), thread))
	return thread
}

func TestGormChatRepositoryFindByEventAndPasscode(t *testing.T) {
	ctx := context.Background()
	repo := NewGormChatRepository(newTestDB(t))
	eventID := uuid.New()

	t.Run("round trips a thread with messages", func(t *testing.T) {
		thread := newStoredThread(t, repo, eventID, "passcode1")
		require.NoError(t, thread.Append("Where do I park?"))
		require.NoError(t, thread.Append("Is there a dress code?"))
		require.NoError(t, repo.Save(ctx, thread))

		found, err := repo.FindByEventAndPasscode(ctx, eventID, "passcode1")
		require.NoError(t, err)
		require.Len(t, found.Messages, 2)
		assert.Equal(t, "Where do I park?", found.Messages[0].Content)
		assert.Equal(t, "Is there a dress code?", found.Messages[1].Content)
	})

	t.Run("missing thread yields not found", func(t *testing.T) {
		_, err := repo.FindByEventAndPasscode(ctx, eventID, "unknown")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormChatRepositoryFindByEvent(t *testing.T) {
	ctx := context.Background()
	repo := NewGormChatRepository(newTestDB(t))
	eventID := uuid.New()

	newStoredThread(t, repo, eventID, "passcode1")
	newStoredThread(t, repo, eventID, "passcode2")
	newStoredThread(t, repo, uuid.New(), "passcode3")

	threads, err := repo.FindByEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Len(t, threads, 2)
}

func TestGormChatRepositorySaveWithLock(t *testing.T) {
	ctx := context.Background()
	repo := NewGormChatRepository(newTestDB(t))
	eventID := uuid.New()

	t.Run("persists when version matches", func(t *testing.T) {
		thread := newStoredThread(t, repo, eventID, "passcode1")
		require.NoError(t, thread.Append("First message"))
		require.NoError(t, repo.SaveWithLock(ctx, thread))

		found, err := repo.FindByEventAndPasscode(ctx, eventID, "passcode1")
		require.NoError(t, err)
		assert.Len(t, found.Messages, 1)
	})

	t.Run("rejects a thread that was never inserted", func(t *testing.T) {
		thread, err := ticketing.NewChatThread(eventID, "passcode-unsaved")
		require.NoError(t, err)
		require.NoError(t, thread.Append("First message"))

		// The version predicate updates nothing for a missing row, so the
		// create path has to go through Save instead.
		err = repo.SaveWithLock(ctx, thread)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		require.NoError(t, repo.Save(ctx, thread))
		found, err := repo.FindByEventAndPasscode(ctx, eventID, "passcode-unsaved")
		require.NoError(t, err)
		assert.Len(t, found.Messages, 1)
	})

	t.Run("rejects a stale version", func(t *testing.T) {
		thread := newStoredThread(t, repo, eventID, "passcode2")

		stale, err := repo.FindByEventAndPasscode(ctx, eventID, "passcode2")
		require.NoError(t, err)

		require.NoError(t, thread.Append("wins the race"))
		require.NoError(t, repo.SaveWithLock(ctx, thread))

		require.NoError(t, stale.Append("loses the race"))
		err = repo.SaveWithLock(ctx, stale)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestGormChatRepositoryDeleteByEvent(t *testing.T) {
	ctx := context.Background()
	repo := NewGormChatRepository(newTestDB(t))
	eventID := uuid.New()

	newStoredThread(t, repo, eventID, "passcode1")
	newStoredThread(t, repo, eventID, "passcode2")
	kept := newStoredThread(t, repo, uuid.New(), "passcode3")

	require.NoError(t, repo.DeleteByEvent(ctx, eventID))

	threads, err := repo.FindByEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Empty(t, threads)

	_, err = repo.FindByEventAndPasscode(ctx, kept.EventID, "passcode3")
	assert.NoError(t, err)
}
