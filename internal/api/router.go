package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starford/quicknote/internal/noteservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *noteservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Notes.
	r.Get("/notes", h.ListScreen)
	r.Post("/notes", h.CreateNote)
	r.Get("/notes/{id}", h.GetNote)
	r.Put("/notes/{id}", h.UpdateNote)
	r.Delete("/notes/{id}", h.DeleteNote)

	// Gestures.
	r.Post("/notes/{id}/tap", h.Tap)
	r.Post("/notes/{id}/long-press", h.LongPress)
	r.Post("/notes/{id}/swipe", h.Swipe)
	r.Post("/swipe/confirm", h.ConfirmSwipe)
	r.Post("/swipe/cancel", h.CancelSwipe)

	// Selection action bar.
	r.Delete("/selection", h.DismissSelection)
	r.Post("/selection/delete", h.DeleteSelection)
	r.Post("/selection/share", h.ShareSelection)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
