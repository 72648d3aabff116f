package services

import (
	"testing"

	"VitaClinic/config"
	"VitaClinic/models"
	"VitaClinic/scheduling"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSlotKind(t *testing.T) {
	tests := []struct {
		name        string
		slotType    string
		isEmergency bool
		wantErr     bool
	}{
		{"regular booking on a follow-up slot", models.SlotFollowUp, false, false},
		{"regular booking on a first-visit slot", models.SlotFirstVisit, false, false},
		{"regular booking cannot take an emergency slot", models.SlotEmergency, false, true},
		{"regular reschedule cannot land on an emergency slot", models.SlotEmergency, false, true},
		{"emergency booking on an emergency slot", models.SlotEmergency, true, false},
		{"emergency booking cannot take a follow-up slot", models.SlotFollowUp, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkSlotKind(tt.slotType, tt.isEmergency)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, scheduling.ErrPolicyViolation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingWindowDaysFor(t *testing.T) {
	cfg := &config.AppConfig{DefaultBookingWindowDays: 30}

	assert.Equal(t, 45, bookingWindowDaysFor(&models.Doctor{BookingWindowDays: 45}, cfg))
	assert.Equal(t, 30, bookingWindowDaysFor(&models.Doctor{}, cfg),
		"a doctor row without a horizon falls back to the application default")
}
