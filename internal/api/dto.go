package api

import "github.com/starford/quicknote/internal/noteservice"

// SaveNoteRequest is the request body for creating or updating a note.
type SaveNoteRequest struct {
	Text string `json:"text" example:"Buy milk"`
}

// NoteDetail is the full note response type (aliased from the domain layer).
type NoteDetail = noteservice.NoteDetail

// ListScreenResponse is the list screen (aliased from the domain layer).
type ListScreenResponse = noteservice.Screen

// GestureResponse is returned by tap, long-press and dismiss.
type GestureResponse struct {
	Effect string             `json:"effect" example:"selection_changed" validate:"required"`
	Open   *int64             `json:"open,omitempty" example:"3"`
	Screen noteservice.Screen `json:"screen" validate:"required"`
}

// SwipeResponse carries the confirmation prompt for a swipe delete.
type SwipeResponse struct {
	Prompt string `json:"prompt" example:"Delete Note ?" validate:"required"`
}

// ConfirmSwipeResponse reports the note removed by a confirmed swipe.
type ConfirmSwipeResponse struct {
	Deleted int64 `json:"deleted" example:"3" validate:"required"`
}

// CancelSwipeResponse reports whether a delete was pending.
type CancelSwipeResponse struct {
	Cancelled bool `json:"cancelled"`
}

// BatchDeleteResponse reports a batch delete of the selection.
type BatchDeleteResponse struct {
	Deleted int    `json:"deleted" example:"2"`
	Message string `json:"message" example:"2 Note(s) Delete successfully !" validate:"required"`
}

// ShareResponse carries the share payload.
type ShareResponse struct {
	Text string `json:"text" validate:"required"`
}
