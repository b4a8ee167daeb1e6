package model

import "time"

// Note is a private text note. UserID identifies the owner and is immutable
// after creation; every store operation on a note matches on both the note id
// and the owner id.
type Note struct {
	ID        int64
	UserID    int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
