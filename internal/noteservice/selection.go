package noteservice

import (
	"context"
	"log/slog"

	"github.com/starford/quicknote/internal/listview"
	"github.com/starford/quicknote/internal/models"
	"github.com/starford/quicknote/internal/share"
	"github.com/starford/quicknote/internal/sse"
)

// Dispatch feeds a gesture to the list and returns its effect with the
// resulting screen.
func (s *Service) Dispatch(ev listview.Event) (listview.Effect, Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()
	eff := s.list.Dispatch(ev)
	switch eff.Kind {
	case listview.EffectEnteredMultiSelect, listview.EffectSelectionChanged, listview.EffectExitedMultiSelect:
		s.publishSelectionLocked()
	}
	return eff, s.screenLocked()
}

// DeleteSelected removes every checked note and reloads the list.
func (s *Service) DeleteSelected(ctx context.Context) (listview.BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	checked := s.list.Selected()
	res, err := s.list.DeleteSelected(ctx, s.store)
	for _, id := range models.IDs(checked[:res.Deleted]) {
		s.events.PublishNoteEvent(sse.KindDeleted, id)
	}
	if len(checked) > 0 {
		s.publishSelectionLocked()
	}
	if err != nil {
		s.logger.Error("batch delete failed",
			slog.Int("deleted", res.Deleted),
			slog.Int("selected", len(checked)),
			slog.String("error", err.Error()))
		return res, err
	}
	return res, nil
}

// ShareSelected returns the share payload for the single checked note.
func (s *Service) ShareSelected() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.list.ShareSelected()
	if err != nil {
		return "", err
	}
	s.publishSelectionLocked()
	return share.Format(n, s.appName, s.loc), nil
}

// RequestSwipeDelete asks for confirmation before deleting id.
func (s *Service) RequestSwipeDelete(id int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.RequestSwipeDelete(id)
}

// ConfirmSwipeDelete deletes the note awaiting confirmation.
func (s *Service) ConfirmSwipeDelete(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.list.ConfirmSwipeDelete(ctx, s.store)
	if err != nil {
		return 0, err
	}
	s.events.PublishNoteEvent(sse.KindDeleted, n.ID)
	return n.ID, nil
}

// CancelSwipeDelete drops the pending delete.
func (s *Service) CancelSwipeDelete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.CancelSwipeDelete()
}
