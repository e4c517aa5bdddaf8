package api

import (
	"errors"
	"net/http"

	"github.com/starford/quicknote/internal/listview"
)

func (h *Handler) gesture(w http.ResponseWriter, ev listview.Event) {
	eff, screen := h.svc.Dispatch(ev)
	resp := GestureResponse{Effect: eff.Kind.String(), Screen: screen}
	if eff.Kind == listview.EffectOpenEditor {
		id := eff.ID
		resp.Open = &id
	}
	writeJSON(w, http.StatusOK, resp)
}

// Tap handles POST /api/notes/{id}/tap.
//
//	@Summary		Tap a note
//	@Description	Opens the editor in normal mode, toggles the note in multi-select.
//	@Tags			gestures
//	@Produce		json
//	@Param			id	path		int	true	"Note id"
//	@Success		200	{object}	GestureResponse
//	@Security		BearerAuth
//	@Router			/notes/{id}/tap [post]
func (h *Handler) Tap(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(w, r)
	if !ok {
		return
	}
	h.gesture(w, listview.Tap(id))
}

// LongPress handles POST /api/notes/{id}/long-press.
//
//	@Summary		Long-press a note
//	@Tags			gestures
//	@Produce		json
//	@Param			id	path		int	true	"Note id"
//	@Success		200	{object}	GestureResponse
//	@Security		BearerAuth
//	@Router			/notes/{id}/long-press [post]
func (h *Handler) LongPress(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(w, r)
	if !ok {
		return
	}
	h.gesture(w, listview.LongPress(id))
}

// DismissSelection handles DELETE /api/selection.
//
//	@Summary		Close the selection action bar
//	@Tags			selection
//	@Produce		json
//	@Success		200	{object}	GestureResponse
//	@Security		BearerAuth
//	@Router			/selection [delete]
func (h *Handler) DismissSelection(w http.ResponseWriter, _ *http.Request) {
	h.gesture(w, listview.Dismiss())
}

// DeleteSelection handles POST /api/selection/delete.
//
//	@Summary		Delete every selected note
//	@Tags			selection
//	@Produce		json
//	@Success		200	{object}	BatchDeleteResponse
//	@Failure		500	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/selection/delete [post]
func (h *Handler) DeleteSelection(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.DeleteSelected(r.Context())
	if err != nil {
		writeError(w, "delete selection", err)
		return
	}
	writeJSON(w, http.StatusOK, BatchDeleteResponse{Deleted: res.Deleted, Message: res.Message})
}

// ShareSelection handles POST /api/selection/share.
//
//	@Summary		Share the single selected note
//	@Tags			selection
//	@Produce		json
//	@Success		200	{object}	ShareResponse
//	@Failure		409	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/selection/share [post]
func (h *Handler) ShareSelection(w http.ResponseWriter, _ *http.Request) {
	text, err := h.svc.ShareSelected()
	if err != nil {
		writeError(w, "share selection", err)
		return
	}
	writeJSON(w, http.StatusOK, ShareResponse{Text: text})
}

// Swipe handles POST /api/notes/{id}/swipe.
//
//	@Summary		Swipe a note to request deletion
//	@Tags			gestures
//	@Produce		json
//	@Param			id	path		int	true	"Note id"
//	@Success		202	{object}	SwipeResponse
//	@Failure		404	{object}	errResponse
//	@Failure		409	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id}/swipe [post]
func (h *Handler) Swipe(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(w, r)
	if !ok {
		return
	}
	prompt, err := h.svc.RequestSwipeDelete(id)
	if err != nil {
		if errors.Is(err, listview.ErrWrongMode) {
			writeJSON(w, http.StatusConflict, errorBody("swipe is disabled in multi-select"))
			return
		}
		writeError(w, "swipe", err)
		return
	}
	writeJSON(w, http.StatusAccepted, SwipeResponse{Prompt: prompt})
}

// ConfirmSwipe handles POST /api/swipe/confirm.
//
//	@Summary		Confirm the pending swipe delete
//	@Tags			gestures
//	@Produce		json
//	@Success		200	{object}	ConfirmSwipeResponse
//	@Failure		409	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/swipe/confirm [post]
func (h *Handler) ConfirmSwipe(w http.ResponseWriter, r *http.Request) {
	id, err := h.svc.ConfirmSwipeDelete(r.Context())
	if err != nil {
		writeError(w, "confirm swipe", err)
		return
	}
	writeJSON(w, http.StatusOK, ConfirmSwipeResponse{Deleted: id})
}

// CancelSwipe handles POST /api/swipe/cancel.
//
//	@Summary		Cancel the pending swipe delete
//	@Tags			gestures
//	@Produce		json
//	@Success		200	{object}	CancelSwipeResponse
//	@Security		BearerAuth
//	@Router			/swipe/cancel [post]
func (h *Handler) CancelSwipe(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, CancelSwipeResponse{Cancelled: h.svc.CancelSwipeDelete()})
}
