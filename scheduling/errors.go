package scheduling

import "errors"

// Error kinds surfaced by the engine. Callers match with errors.Is and
// translate to user-facing responses; none of these are retryable because
// identical input yields an identical result.
var (
	// ErrValidation marks malformed or out-of-range input. Always a caller bug.
	ErrValidation = errors.New("validation failed")

	// ErrConfiguration marks an unknown enum value, i.e. a deployment or
	// config mismatch rather than a user error.
	ErrConfiguration = errors.New("configuration error")

	// ErrInvalidRequest marks a business-state conflict, e.g. triaging a
	// booking that is already completed or cancelled.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrPolicyViolation marks an action that bypasses a required approval.
	ErrPolicyViolation = errors.New("policy violation")
)
