// Package repository defines error types that are reused across
// multiple repositories. These sentinel values allow handlers to
// distinguish failure scenarios: ErrForbidden maps to HTTP 403,
// ErrRoomNotAvailable and ErrConflict to 409, ErrEmailExists to 409 on
// registration, and ErrFeedbackExists to 409 on duplicate feedback.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own, such as cancelling another user's
// reservation.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update cannot be performed because
// of conflicting state, such as cancelling a reservation that is not
// confirmed or has already started.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned by UserRepo.Create when the email address
// is already registered.
var ErrEmailExists = errors.New("email already exists")

// ErrRoomNotAvailable is returned by ReservationRepo.Create when a
// confirmed reservation already overlaps the requested window. The
// database check is the final arbiter; the client-side evaluator can
// only advise.
var ErrRoomNotAvailable = errors.New("room not available for the requested time slot")

// ErrFeedbackExists is returned when feedback was already submitted
// for a reservation. Feedback is write-once.
var ErrFeedbackExists = errors.New("feedback already submitted")
