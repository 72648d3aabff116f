package scheduling

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func freshQuestionnaire() *time.Time {
	at := testNow.AddDate(0, -1, 0)
	return &at
}

func daysAgo(days int) *time.Time {
	at := testNow.AddDate(0, 0, -days)
	return &at
}

func TestComputeBookingWindowBlockedStates(t *testing.T) {
	tests := []struct {
		name       string
		patient    PatientState
		wantReason string
	}{
		{
			name: "active booking blocks",
			patient: PatientState{
				Category:         CategoryStable,
				Tier:             TierGold,
				HasActiveBooking: true,
				QuestionnaireAt:  freshQuestionnaire(),
			},
			wantReason: ReasonActiveBooking,
		},
		{
			name: "missing questionnaire blocks",
			patient: PatientState{
				Category: CategoryStable,
				Tier:     TierGold,
			},
			wantReason: ReasonQuestionnaireMissing,
		},
		{
			name: "seven month old questionnaire blocks",
			patient: PatientState{
				Category:        CategoryStable,
				Tier:            TierGold,
				QuestionnaireAt: daysAgo(7 * 30),
			},
			wantReason: ReasonQuestionnaireExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, err := ComputeBookingWindow(tt.patient, 30, testNow)
			require.NoError(t, err)
			assert.False(t, window.CanBook)
			assert.Equal(t, tt.wantReason, window.Reason)
		})
	}
}

func TestComputeBookingWindowFirstTimePatient(t *testing.T) {
	// A first-time healthy patient can book starting today even though the
	// category interval is a full year.
	patient := PatientState{
		Category:        CategoryHealthy,
		Tier:            TierSilver,
		QuestionnaireAt: freshQuestionnaire(),
	}
	window, err := ComputeBookingWindow(patient, 30, testNow)
	require.NoError(t, err)
	assert.True(t, window.CanBook)
	assert.True(t, window.Earliest.Equal(testNow))
	assert.True(t, window.Latest.Equal(testNow.AddDate(0, 0, 30)))
}

func TestComputeBookingWindowIntervalNotYetElapsed(t *testing.T) {
	// Stable patient seen 10 days ago with a 90 day interval: next visit is
	// due in 80 days, beyond a 30 day horizon, so the window is closed.
	patient := PatientState{
		Category:           CategoryStable,
		Tier:               TierPlatinum,
		LastCompletedVisit: daysAgo(10),
		QuestionnaireAt:    freshQuestionnaire(),
	}
	window, err := ComputeBookingWindow(patient, 30, testNow)
	require.NoError(t, err)
	assert.False(t, window.CanBook)
	assert.Contains(t, window.Reason, "booking window currently closed")
	assert.Contains(t, window.Reason, window.Earliest.Format("2006-01-02"))
}

func TestComputeBookingWindowOverdueVisit(t *testing.T) {
	// Interval already elapsed: earliest clamps to now and the window opens.
	patient := PatientState{
		Category:           CategoryModerate,
		Tier:               TierGold,
		LastCompletedVisit: daysAgo(45),
		QuestionnaireAt:    freshQuestionnaire(),
	}
	window, err := ComputeBookingWindow(patient, 30, testNow)
	require.NoError(t, err)
	assert.True(t, window.CanBook)
	assert.True(t, window.Earliest.Equal(testNow))
}

func TestComputeBookingWindowTierCapsHorizon(t *testing.T) {
	// A probation patient's 14 day tier window shrinks the doctor's 90 day
	// horizon; a platinum patient keeps the doctor's cap.
	probation := PatientState{
		Category:        CategoryStable,
		Tier:            TierProbation,
		QuestionnaireAt: freshQuestionnaire(),
	}
	window, err := ComputeBookingWindow(probation, 90, testNow)
	require.NoError(t, err)
	assert.True(t, window.Latest.Equal(testNow.AddDate(0, 0, 14)))

	platinum := probation
	platinum.Tier = TierPlatinum
	window, err = ComputeBookingWindow(platinum, 60, testNow)
	require.NoError(t, err)
	assert.True(t, window.Latest.Equal(testNow.AddDate(0, 0, 60)))
}

func TestComputeBookingWindowCanBookIffTodayInRange(t *testing.T) {
	// canBook must agree with today being inside [earliest, latest].
	patients := []PatientState{
		{Category: CategoryHealthy, Tier: TierSilver, QuestionnaireAt: freshQuestionnaire()},
		{Category: CategoryCritical, Tier: TierBronze, LastCompletedVisit: daysAgo(3), QuestionnaireAt: freshQuestionnaire()},
		{Category: CategoryStable, Tier: TierPlatinum, LastCompletedVisit: daysAgo(89), QuestionnaireAt: freshQuestionnaire()},
		{Category: CategoryMaintenance, Tier: TierProbation, LastCompletedVisit: daysAgo(200), QuestionnaireAt: freshQuestionnaire()},
	}
	for _, patient := range patients {
		window, err := ComputeBookingWindow(patient, 45, testNow)
		require.NoError(t, err)
		inRange := !testNow.Before(window.Earliest) && !testNow.After(window.Latest)
		if window.CanBook {
			assert.True(t, inRange, "category %s", patient.Category)
		}
		assert.Equal(t, !window.Earliest.After(window.Latest), window.CanBook)
	}
}

func TestComputeBookingWindowInvalidInput(t *testing.T) {
	patient := PatientState{Category: CategoryStable, Tier: TierGold, QuestionnaireAt: freshQuestionnaire()}

	_, err := ComputeBookingWindow(patient, 0, testNow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	patient.Category = "unknown"
	_, err = ComputeBookingWindow(patient, 30, testNow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
}
