package listview

import (
	"context"
	"fmt"

	"github.com/starford/quicknote/internal/apperr"
	"github.com/starford/quicknote/internal/models"
)

// SwipePrompt is the confirmation question shown before a swipe delete.
const SwipePrompt = "Delete Note ?"

// Source is the part of the note store the list needs for batch actions.
type Source interface {
	Delete(ctx context.Context, ids ...int64) error
	GetAll(ctx context.Context) ([]models.Note, error)
}

// BatchResult reports the outcome of a selection action.
type BatchResult struct {
	Deleted int    `json:"deleted"`
	Message string `json:"message"`
}

// DeleteSelected deletes every checked note one by one, reloads the list from
// src and ends multi-select. A store fault stops the loop; notes already
// deleted stay deleted.
func (m *Model) DeleteSelected(ctx context.Context, src Source) (BatchResult, error) {
	checked := m.Selected()
	if len(checked) == 0 {
		return BatchResult{Message: "No Note(s) selected"}, nil
	}

	deleted := 0
	var delErr error
	for _, n := range checked {
		if err := src.Delete(ctx, n.ID); err != nil {
			delErr = fmt.Errorf("listview: delete %d: %w", n.ID, err)
			break
		}
		deleted++
	}

	m.exitMultiSelect()
	notes, err := src.GetAll(ctx)
	if err != nil {
		// The list can no longer be rebuilt; drop what is known to be gone.
		for _, n := range checked[:deleted] {
			m.remove(n.ID)
		}
		if delErr == nil {
			delErr = fmt.Errorf("listview: reload: %w", err)
		}
	} else {
		m.Reload(notes)
	}

	res := BatchResult{
		Deleted: deleted,
		Message: fmt.Sprintf("%d Note(s) Delete successfully !", deleted),
	}
	return res, delErr
}

// ShareSelected returns the single checked note and ends multi-select.
// It fails with apperr.ErrShareUnavailable unless exactly one note is checked.
func (m *Model) ShareSelected() (models.Note, error) {
	if !m.CanShare() {
		return models.Note{}, apperr.ErrShareUnavailable
	}
	n := m.Selected()[0]
	m.exitMultiSelect()
	return n, nil
}

// RequestSwipeDelete marks id for deletion pending confirmation and returns
// the prompt to show. The store is not touched.
func (m *Model) RequestSwipeDelete(id int64) (string, error) {
	if m.mode != ModeNormal {
		return "", ErrWrongMode
	}
	if m.indexOf(id) < 0 {
		return "", fmt.Errorf("listview: note %d: %w", id, apperr.ErrNotFound)
	}
	m.pendingID = id
	m.hasPending = true
	return SwipePrompt, nil
}

// PendingDelete returns the note awaiting swipe confirmation.
func (m *Model) PendingDelete() (models.Note, bool) {
	if !m.hasPending {
		return models.Note{}, false
	}
	return m.Note(m.pendingID)
}

// ConfirmSwipeDelete deletes the pending note from src and drops it from the list.
func (m *Model) ConfirmSwipeDelete(ctx context.Context, src Source) (models.Note, error) {
	n, ok := m.PendingDelete()
	if !ok {
		return models.Note{}, apperr.ErrNoPendingDelete
	}
	if err := src.Delete(ctx, n.ID); err != nil {
		return models.Note{}, fmt.Errorf("listview: delete %d: %w", n.ID, err)
	}
	m.clearPending()
	m.remove(n.ID)
	return n, nil
}

// CancelSwipeDelete discards the pending delete, leaving the list untouched.
// It reports whether anything was pending.
func (m *Model) CancelSwipeDelete() bool {
	had := m.hasPending
	m.clearPending()
	return had
}

func (m *Model) clearPending() {
	m.pendingID = 0
	m.hasPending = false
}
