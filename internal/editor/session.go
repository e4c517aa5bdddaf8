// Package editor implements the edit screen: a session editing either a
// new note or one loaded from the store.
package editor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/starford/quicknote/internal/apperr"
	"github.com/starford/quicknote/internal/models"
)

// Store is the part of the note store an edit session writes through.
type Store interface {
	Insert(ctx context.Context, n models.Note) (models.Note, error)
	Update(ctx context.Context, n models.Note) error
	GetByID(ctx context.Context, id int64) (models.Note, error)
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the time source used to stamp saves.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// Session is one visit to the edit screen.
type Session struct {
	store Store
	note  models.Note
	now   func() time.Time
}

func newSession(st Store, opts []Option) *Session {
	s := &Session{store: st, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenNew starts a session for a note that does not exist yet.
func OpenNew(st Store, opts ...Option) *Session {
	return newSession(st, opts)
}

// OpenExisting loads note id into a new session. A stale id yields
// apperr.ErrNotFound.
func OpenExisting(ctx context.Context, st Store, id int64, opts ...Option) (*Session, error) {
	n, err := st.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("editor: open %d: %w", id, err)
	}
	s := newSession(st, opts)
	s.note = n
	return s, nil
}

// IsNew reports whether the session has not been saved to the store yet.
func (s *Session) IsNew() bool {
	return !s.note.Persisted()
}

// Note returns the note as last loaded or saved.
func (s *Session) Note() models.Note {
	return s.note
}

// Text is the text the editor is populated with.
func (s *Session) Text() string {
	return s.note.Text
}

// Save stores text and reports whether the editor should close.
//
// Empty text is ignored: nothing is written and the editor stays open.
// Saving an existing note that was deleted in the meantime fails with
// apperr.ErrConflict; the note is not recreated.
func (s *Session) Save(ctx context.Context, text string) (bool, error) {
	if text == "" {
		return false, nil
	}

	n := s.note
	n.Text = text
	n.Touch(s.now())

	if !n.Persisted() {
		inserted, err := s.store.Insert(ctx, n)
		if err != nil {
			return false, fmt.Errorf("editor: insert: %w", err)
		}
		s.note = inserted
		return true, nil
	}

	if err := s.store.Update(ctx, n); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return false, fmt.Errorf("editor: note %d was deleted: %w", n.ID, apperr.ErrConflict)
		}
		return false, fmt.Errorf("editor: update: %w", err)
	}
	s.note = n
	return true, nil
}
