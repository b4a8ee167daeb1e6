package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewallace/notekeep/internal/domain/model"
)

// createTestUser inserts a user to satisfy the notes foreign key.
func createTestUser(t *testing.T, db *DB, email string) *model.User {
	t.Helper()

	user, err := NewUserRepo(db).Create(context.Background(), email, "test-hash")
	require.NoError(t, err)
	return user
}

func TestNoteRepo_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNoteRepo(db)
	ctx := context.Background()
	owner := createTestUser(t, db, "a@x.com")

	created, err := repo.Create(ctx, owner.ID, "T", "body")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, owner.ID, created.UserID)
	assert.Equal(t, "T", created.Title)
	assert.Equal(t, "body", created.Content)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.Get(ctx, created.ID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "T", got.Title)
}

func TestNoteRepo_CreateEmptyContent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNoteRepo(db)
	ctx := context.Background()
	owner := createTestUser(t, db, "a@x.com")

	created, err := repo.Create(ctx, owner.ID, "T", "")
	require.NoError(t, err)
	assert.Equal(t, "", created.Content)
}

func TestNoteRepo_ListByOwnerNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNoteRepo(db)
	ctx := context.Background()
	owner := createTestUser(t, db, "a@x.com")

	for _, title := range []string{"first", "second", "third"} {
		_, err := repo.Create(ctx, owner.ID, title, "")
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	notes, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "third", notes[0].Title)
	assert.Equal(t, "second", notes[1].Title)
	assert.Equal(t, "first", notes[2].Title)
}

func TestNoteRepo_ListByOwnerEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNoteRepo(db)
	owner := createTestUser(t, db, "a@x.com")

	notes, err := repo.ListByOwner(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestNoteRepo_OwnershipIsolation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNoteRepo(db)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice@x.com")
	bob := createTestUser(t, db, "bob@x.com")

	note, err := repo.Create(ctx, alice.ID, "private", "secret")
	require.NoError(t, err)

	// Bob cannot see, update, or delete Alice's note: all operations behave
	// exactly as if the note did not exist.
	got, err := repo.Get(ctx, note.ID, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	updated, err := repo.Update(ctx, note.ID, bob.ID, "stolen", "stolen")
	require.NoError(t, err)
	assert.Nil(t, updated)

	deleted, err := repo.Delete(ctx, note.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	bobNotes, err := repo.ListByOwner(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobNotes)

	// The note is untouched for Alice.
	still, err := repo.Get(ctx, note.ID, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, still)
	assert.Equal(t, "private", still.Title)
	assert.Equal(t, "secret", still.Content)
}

func TestNoteRepo_UpdateRefreshesTimestamp(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNoteRepo(db)
	ctx := context.Background()
	owner := createTestUser(t, db, "a@x.com")

	created, err := repo.Create(ctx, owner.ID, "A", "B")
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)

	updated, err := repo.Update(ctx, created.ID, owner.ID, "C", "B")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "C", updated.Title)
	assert.Equal(t, "B", updated.Content)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt),
		"updated_at %v should be strictly after created_at %v", updated.UpdatedAt, updated.CreatedAt)
}

func TestNoteRepo_UpdateMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNoteRepo(db)
	owner := createTestUser(t, db, "a@x.com")

	updated, err := repo.Update(context.Background(), 9999, owner.ID, "T", "C")
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestNoteRepo_DeleteTwice(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNoteRepo(db)
	ctx := context.Background()
	owner := createTestUser(t, db, "a@x.com")

	note, err := repo.Create(ctx, owner.ID, "T", "")
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, note.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deletedAgain, err := repo.Delete(ctx, note.ID, owner.ID)
	require.NoError(t, err)
	assert.False(t, deletedAgain)
}
