package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewallace/notekeep/internal/domain/port/driven"
)

func TestUserRepo_CreateAndGetByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, "a@x.com", "hash-1")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "a@x.com", created.Email)
	assert.Equal(t, "hash-1", created.PasswordHash)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.IsZero())

	got, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "a@x.com", got.Email)
}

func TestUserRepo_GetByEmailMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)

	got, err := repo.GetByEmail(context.Background(), "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepo_GetByEmailIsCaseSensitive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, "a@x.com", "hash-1")
	require.NoError(t, err)

	got, err := repo.GetByEmail(ctx, "A@X.COM")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepo_CreateDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, "a@x.com", "hash-1")
	require.NoError(t, err)

	dup, err := repo.Create(ctx, "a@x.com", "hash-2")
	require.Error(t, err)
	assert.ErrorIs(t, err, driven.ErrDuplicateEmail)
	assert.Nil(t, dup)
}

func TestUserRepo_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, "a@x.com", "hash-1")
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.Email, got.Email)

	missing, err := repo.GetByID(ctx, created.ID+1000)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
