package apperr

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrShareUnavailable = errors.New("share requires exactly one selected note")
	ErrNoPendingDelete  = errors.New("no pending delete")
)
