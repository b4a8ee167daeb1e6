package driven

import (
	"context"

	"github.com/ewallace/notekeep/internal/domain/model"
)

// NoteStore defines the driven port for note persistence. Every operation
// that targets a single note matches on (note id, owner id) together; there
// is deliberately no way to address a note by id alone, so a note belonging
// to another owner is indistinguishable from a note that does not exist.
type NoteStore interface {
	// ListByOwner returns all notes owned by ownerID, newest first by
	// creation time.
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Note, error)

	// Get retrieves a single note scoped to its owner.
	// Returns nil, nil if no such note exists for that owner.
	Get(ctx context.Context, noteID, ownerID int64) (*model.Note, error)

	// Create inserts a new note for ownerID and returns the stored record.
	Create(ctx context.Context, ownerID int64, title, content string) (*model.Note, error)

	// Update writes both fields and a refreshed updated_at for the note scoped
	// to its owner, then returns the final state. Returns nil, nil without
	// writing when no note matches.
	Update(ctx context.Context, noteID, ownerID int64, title, content string) (*model.Note, error)

	// Delete removes the note scoped to its owner. Returns true iff a row was
	// actually deleted.
	Delete(ctx context.Context, noteID, ownerID int64) (bool, error)
}
