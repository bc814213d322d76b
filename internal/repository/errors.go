// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not a party
// to the session they are acting on, while ErrConflict signals that an
// operation cannot proceed because of existing state (e.g. an
// overlapping booking on the mentor's calendar).
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an insert or update cannot be
// performed because of conflicting state, such as booking a slot
// that overlaps an existing session. Handlers should translate
// this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrNotFound is returned when the requested row does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned by user creation when the email is
// already registered. Handlers should translate this into 409.
var ErrEmailExists = errors.New("email already exists")

// ErrInvalidTransition is returned when a status change is not
// allowed from the session's current state for the acting party.
// Handlers should translate this into 409.
var ErrInvalidTransition = errors.New("invalid status transition")
