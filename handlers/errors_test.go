package handlers

import (
	"fmt"
	"testing"

	"VitaClinic/repositories"
	"VitaClinic/scheduling"

	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation error", scheduling.ErrValidation, 400},
		{"wrapped validation error", fmt.Errorf("%w: rating out of range", scheduling.ErrValidation), 400},
		{"invalid request", scheduling.ErrInvalidRequest, 409},
		{"policy violation", fmt.Errorf("%w: slot outside window", scheduling.ErrPolicyViolation), 403},
		{"configuration error", scheduling.ErrConfiguration, 500},
		{"slot already taken", repositories.ErrSlotNotAvailable, 409},
		{"unknown error", fmt.Errorf("database gone"), 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}
