package application

import (
	"context"

	"github.com/ewallace/notekeep/internal/domain/model"
	"github.com/ewallace/notekeep/internal/domain/port/driven"
)

// NoteService provides ownership-scoped note operations. It depends only on
// the NoteStore port; the owner id always comes from a resolved identity,
// never from request input.
type NoteService struct {
	notes driven.NoteStore
}

// NewNoteService creates a NoteService backed by the given store.
func NewNoteService(notes driven.NoteStore) *NoteService {
	return &NoteService{notes: notes}
}

// List returns the owner's notes, newest first.
func (s *NoteService) List(ctx context.Context, ownerID int64) ([]model.Note, error) {
	return s.notes.ListByOwner(ctx, ownerID)
}

// Get returns a single note, or nil, nil when it does not exist for this owner.
func (s *NoteService) Get(ctx context.Context, noteID, ownerID int64) (*model.Note, error) {
	return s.notes.Get(ctx, noteID, ownerID)
}

// Create inserts a new note for the owner.
func (s *NoteService) Create(ctx context.Context, ownerID int64, title, content string) (*model.Note, error) {
	return s.notes.Create(ctx, ownerID, title, content)
}

// Update applies a partial update: a nil title or content keeps the stored
// value. The prior state is fetched first, scoped to the owner; when the note
// is absent nothing is written and nil, nil is returned.
func (s *NoteService) Update(ctx context.Context, noteID, ownerID int64, title, content *string) (*model.Note, error) {
	existing, err := s.notes.Get(ctx, noteID, ownerID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	newTitle := existing.Title
	if title != nil {
		newTitle = *title
	}
	newContent := existing.Content
	if content != nil {
		newContent = *content
	}

	return s.notes.Update(ctx, noteID, ownerID, newTitle, newContent)
}

// Delete removes the owner's note. Returns true iff a note was removed.
func (s *NoteService) Delete(ctx context.Context, noteID, ownerID int64) (bool, error) {
	return s.notes.Delete(ctx, noteID, ownerID)
}
