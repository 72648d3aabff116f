package handlers

import (
	"VitaClinic/repositories"
	"VitaClinic/scheduling"
	"errors"
)

// statusForError maps engine and repository error kinds onto HTTP status
// codes. Anything unrecognized is a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, scheduling.ErrValidation):
		return 400
	case errors.Is(err, scheduling.ErrInvalidRequest):
		return 409
	case errors.Is(err, scheduling.ErrPolicyViolation):
		return 403
	case errors.Is(err, scheduling.ErrConfiguration):
		return 500
	case errors.Is(err, repositories.ErrSlotNotAvailable):
		return 409
	default:
		return 500
	}
}
