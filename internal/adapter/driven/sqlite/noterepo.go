package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ewallace/notekeep/internal/domain/model"
	"github.com/ewallace/notekeep/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.NoteStore = (*NoteRepo)(nil)

// NoteRepo is the SQLite implementation of the NoteStore port interface.
// Every single-note query binds (id, user_id) together so notes never leak
// across owners.
type NoteRepo struct {
	db *DB
}

// NewNoteRepo creates a new NoteRepo backed by the given DB.
func NewNoteRepo(db *DB) *NoteRepo {
	return &NoteRepo{db: db}
}

// ListByOwner returns all notes owned by ownerID, newest first. The secondary
// id ordering keeps results stable for notes created in the same instant.
func (r *NoteRepo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Note, error) {
	const query = `
		SELECT id, user_id, title, content, created_at, updated_at
		FROM notes
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Reader.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list notes for user %d: %w", ownerID, err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		note, err := scanNote(rows.Scan)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes for user %d: %w", ownerID, err)
	}

	return notes, nil
}

// Get retrieves a single note scoped to its owner. Returns nil, nil when no
// note matches both ids.
func (r *NoteRepo) Get(ctx context.Context, noteID, ownerID int64) (*model.Note, error) {
	const query = `
		SELECT id, user_id, title, content, created_at, updated_at
		FROM notes
		WHERE id = ? AND user_id = ?
	`

	row := r.db.Reader.QueryRowContext(ctx, query, noteID, ownerID)
	note, err := scanNote(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return note, nil
}

// Create inserts a new note for ownerID and re-reads the stored record.
func (r *NoteRepo) Create(ctx context.Context, ownerID int64, title, content string) (*model.Note, error) {
	const query = `INSERT INTO notes (user_id, title, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	result, err := r.db.Writer.ExecContext(ctx, query, ownerID, title, content, now, now)
	if err != nil {
		return nil, fmt.Errorf("create note for user %d: %w", ownerID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create note for user %d: %w", ownerID, err)
	}

	note, err := r.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, fmt.Errorf("create note for user %d: inserted row %d not found", ownerID, id)
	}
	return note, nil
}

// Update writes both fields and a refreshed updated_at for the note scoped to
// its owner, then re-reads the final state. Returns nil, nil when no row
// matched (absent or foreign-owned).
func (r *NoteRepo) Update(ctx context.Context, noteID, ownerID int64, title, content string) (*model.Note, error) {
	const query = `UPDATE notes SET title = ?, content = ?, updated_at = ? WHERE id = ? AND user_id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, title, content, time.Now().UTC(), noteID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("update note %d for user %d: %w", noteID, ownerID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update note %d for user %d: %w", noteID, ownerID, err)
	}
	if affected == 0 {
		return nil, nil
	}

	return r.Get(ctx, noteID, ownerID)
}

// Delete removes the note scoped to its owner. Returns true iff a row was
// actually deleted.
func (r *NoteRepo) Delete(ctx context.Context, noteID, ownerID int64) (bool, error) {
	const query = `DELETE FROM notes WHERE id = ? AND user_id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, noteID, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete note %d for user %d: %w", noteID, ownerID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete note %d for user %d: %w", noteID, ownerID, err)
	}

	return affected > 0, nil
}

// scanNote maps a note row into a model.Note using the given scan function,
// so it works for both sql.Row and sql.Rows.
func scanNote(scan func(dest ...any) error) (*model.Note, error) {
	var note model.Note
	var createdAt, updatedAt string

	err := scan(&note.ID, &note.UserID, &note.Title, &note.Content, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan note: %w", err)
	}

	note.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at for note %d: %w", note.ID, err)
	}
	note.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at for note %d: %w", note.ID, err)
	}

	return &note, nil
}
