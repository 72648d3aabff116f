package services

import (
	"testing"
	"time"

	"VitaClinic/models"
	"VitaClinic/scheduling"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyVisitOutcome(t *testing.T) {
	occurredAt := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		outcome     string
		wantTotal   int
		wantNoShows int
		wantLate    int
		wantVisitAt bool
	}{
		{"completed advances history", models.BookingCompleted, 3, 0, 0, true},
		{"no-show counts against attendance", models.BookingNoShow, 3, 1, 0, false},
		{"late cancellation always increments the counter", models.BookingCancelledByPatient, 2, 0, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patient := &models.Patient{TotalAppointments: 2}
			require.NoError(t, applyVisitOutcome(patient, tt.outcome, occurredAt))
			assert.Equal(t, tt.wantTotal, patient.TotalAppointments)
			assert.Equal(t, tt.wantNoShows, patient.NoShowCount)
			assert.Equal(t, tt.wantLate, patient.LateCancellationCount)
			if tt.wantVisitAt {
				require.NotNil(t, patient.LastCompletedVisitAt)
				assert.Equal(t, occurredAt, *patient.LastCompletedVisitAt)
			} else {
				assert.Nil(t, patient.LastCompletedVisitAt)
			}
		})
	}
}

func TestApplyVisitOutcomeRejectsUnknownOutcome(t *testing.T) {
	patient := &models.Patient{}
	err := applyVisitOutcome(patient, models.BookingPending, time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, scheduling.ErrInvalidRequest))
	assert.Zero(t, patient.TotalAppointments)
}
