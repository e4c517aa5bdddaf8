package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starford/quicknote/internal/noteservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *noteservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *noteservice.Service) *Handler {
	return &Handler{svc: svc}
}

func decodeSave(w http.ResponseWriter, r *http.Request) (SaveNoteRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req SaveNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return req, false
	}
	return req, true
}

// ListScreen handles GET /api/notes.
//
//	@Summary		Show the list screen
//	@Tags			notes
//	@Produce		json
//	@Success		200	{object}	ListScreenResponse
//	@Security		BearerAuth
//	@Router			/notes [get]
func (h *Handler) ListScreen(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Screen())
}

// GetNote handles GET /api/notes/{id}.
//
//	@Summary		Open a note for editing
//	@Tags			notes
//	@Produce		json
//	@Param			id	path		int	true	"Note id"
//	@Success		200	{object}	NoteDetail
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id} [get]
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(w, r)
	if !ok {
		return
	}
	note, err := h.svc.GetNote(r.Context(), id)
	if err != nil {
		writeError(w, "get note", err)
		return
	}
	w.Header().Set("ETag", `"`+note.ETag+`"`)
	writeJSON(w, http.StatusOK, note)
}

// CreateNote handles POST /api/notes.
//
//	@Summary		Save a new note
//	@Description	Empty text is ignored and answered with 204.
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		SaveNoteRequest	true	"Note text"
//	@Success		201		{object}	NoteDetail
//	@Success		204		"Nothing saved"
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes [post]
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSave(w, r)
	if !ok {
		return
	}
	note, err := h.svc.CreateNote(r.Context(), req.Text)
	if err != nil {
		writeError(w, "create note", err)
		return
	}
	if note == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("ETag", `"`+note.ETag+`"`)
	writeJSON(w, http.StatusCreated, note)
}

// UpdateNote handles PUT /api/notes/{id}.
//
//	@Summary		Save an existing note
//	@Description	Empty text is ignored and answered with 204.
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			id			path		int				true	"Note id"
//	@Param			If-Match	header		string			false	"ETag from GET"
//	@Param			body		body		SaveNoteRequest	true	"Note text"
//	@Success		200			{object}	NoteDetail
//	@Success		204			"Nothing saved"
//	@Failure		404			{object}	errResponse
//	@Failure		409			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id} [put]
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(w, r)
	if !ok {
		return
	}
	req, ok := decodeSave(w, r)
	if !ok {
		return
	}
	ifMatch := strings.Trim(r.Header.Get("If-Match"), `"`)

	note, saved, err := h.svc.UpdateNote(r.Context(), id, req.Text, ifMatch)
	if err != nil {
		writeError(w, "update note", err)
		return
	}
	if !saved {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("ETag", `"`+note.ETag+`"`)
	writeJSON(w, http.StatusOK, note)
}

// DeleteNote handles DELETE /api/notes/{id}.
//
//	@Summary		Delete a note
//	@Tags			notes
//	@Param			id	path	int	true	"Note id"
//	@Success		204	"Note deleted"
//	@Security		BearerAuth
//	@Router			/notes/{id} [delete]
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteNotes(r.Context(), id); err != nil {
		slog.Error("delete note failed", slog.Int64("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
