package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewallace/notekeep/internal/domain/model"
)

// mockNoteStore records Update calls so partial-update merging can be asserted.
type mockNoteStore struct {
	existing *model.Note

	updateCalled  bool
	updateTitle   string
	updateContent string
}

func (m *mockNoteStore) ListByOwner(_ context.Context, _ int64) ([]model.Note, error) {
	return nil, nil
}

func (m *mockNoteStore) Get(_ context.Context, noteID, ownerID int64) (*model.Note, error) {
	if m.existing != nil && m.existing.ID == noteID && m.existing.UserID == ownerID {
		return m.existing, nil
	}
	return nil, nil
}

func (m *mockNoteStore) Create(_ context.Context, ownerID int64, title, content string) (*model.Note, error) {
	return &model.Note{ID: 1, UserID: ownerID, Title: title, Content: content}, nil
}

func (m *mockNoteStore) Update(_ context.Context, noteID, ownerID int64, title, content string) (*model.Note, error) {
	m.updateCalled = true
	m.updateTitle = title
	m.updateContent = content
	return &model.Note{ID: noteID, UserID: ownerID, Title: title, Content: content}, nil
}

func (m *mockNoteStore) Delete(_ context.Context, noteID, ownerID int64) (bool, error) {
	return m.existing != nil && m.existing.ID == noteID && m.existing.UserID == ownerID, nil
}

func strPtr(s string) *string { return &s }

func TestNoteService_UpdateTitleOnlyKeepsContent(t *testing.T) {
	store := &mockNoteStore{existing: &model.Note{ID: 7, UserID: 1, Title: "A", Content: "B"}}
	svc := NewNoteService(store)

	note, err := svc.Update(context.Background(), 7, 1, strPtr("C"), nil)
	require.NoError(t, err)
	require.NotNil(t, note)

	assert.True(t, store.updateCalled)
	assert.Equal(t, "C", store.updateTitle)
	assert.Equal(t, "B", store.updateContent, "omitted content must keep its stored value")
}

func TestNoteService_UpdateContentOnlyKeepsTitle(t *testing.T) {
	store := &mockNoteStore{existing: &model.Note{ID: 7, UserID: 1, Title: "A", Content: "B"}}
	svc := NewNoteService(store)

	_, err := svc.Update(context.Background(), 7, 1, nil, strPtr("D"))
	require.NoError(t, err)

	assert.Equal(t, "A", store.updateTitle)
	assert.Equal(t, "D", store.updateContent)
}

func TestNoteService_UpdateCanSetEmptyValues(t *testing.T) {
	store := &mockNoteStore{existing: &model.Note{ID: 7, UserID: 1, Title: "A", Content: "B"}}
	svc := NewNoteService(store)

	// An explicitly supplied empty string is an update, not an omission.
	_, err := svc.Update(context.Background(), 7, 1, strPtr(""), strPtr(""))
	require.NoError(t, err)

	assert.Equal(t, "", store.updateTitle)
	assert.Equal(t, "", store.updateContent)
}

func TestNoteService_UpdateMissingDoesNotWrite(t *testing.T) {
	store := &mockNoteStore{}
	svc := NewNoteService(store)

	note, err := svc.Update(context.Background(), 7, 1, strPtr("C"), nil)
	require.NoError(t, err)
	assert.Nil(t, note)
	assert.False(t, store.updateCalled, "absent note must not be written")
}

func TestNoteService_UpdateForeignOwnerDoesNotWrite(t *testing.T) {
	store := &mockNoteStore{existing: &model.Note{ID: 7, UserID: 1, Title: "A", Content: "B"}}
	svc := NewNoteService(store)

	note, err := svc.Update(context.Background(), 7, 2, strPtr("C"), nil)
	require.NoError(t, err)
	assert.Nil(t, note)
	assert.False(t, store.updateCalled)
}

func TestNoteService_Delete(t *testing.T) {
	store := &mockNoteStore{existing: &model.Note{ID: 7, UserID: 1}}
	svc := NewNoteService(store)
	ctx := context.Background()

	deleted, err := svc.Delete(ctx, 7, 1)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(ctx, 7, 2)
	require.NoError(t, err)
	assert.False(t, deleted)
}
