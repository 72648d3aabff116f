package models

import (
	"testing"
	"time"

	"VitaClinic/scheduling"

	"github.com/stretchr/testify/assert"
)

func TestBookingIsActive(t *testing.T) {
	tests := []struct {
		status string
		active bool
	}{
		{BookingPending, true},
		{BookingConfirmed, true},
		{BookingCompleted, false},
		{BookingCancelledByPatient, false},
		{BookingCancelledByDoctor, false},
		{BookingNoShow, false},
		{BookingRescheduled, false},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			b := Booking{Status: tt.status}
			assert.Equal(t, tt.active, b.IsActive())
			assert.Equal(t, tt.active, b.IsCancellable())
		})
	}
}

func TestSlotRestrictions(t *testing.T) {
	slot := Slot{
		PriorityOnly:      true,
		UrgentOnly:        true,
		MinComplianceTier: scheduling.TierGold,
	}
	restrictions := slot.Restrictions()
	assert.True(t, restrictions.PriorityOnly)
	assert.True(t, restrictions.UrgentOnly)
	assert.Equal(t, scheduling.TierGold, restrictions.MinTier)
}

func TestTriageRequestApproved(t *testing.T) {
	approved := true
	declined := false
	now := time.Now()

	tests := []struct {
		name    string
		request TriageRequest
		want    bool
	}{
		{"auto approved", TriageRequest{AutoApproved: true}, true},
		{"awaiting review", TriageRequest{}, false},
		{"doctor approved", TriageRequest{DoctorApproved: &approved, ReviewedAt: &now}, true},
		{"doctor declined", TriageRequest{DoctorApproved: &declined, ReviewedAt: &now}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.request.Approved())
		})
	}
}
