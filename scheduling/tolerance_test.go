package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tolerance is counted over a rolling trailing-twelve-month window, not
// over the patient's lifetime.
func TestLateCancelWindowStart(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	start := LateCancelWindowStart(now)
	assert.Equal(t, time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC), start)

	strikeThirteenMonthsAgo := now.AddDate(0, -13, 0)
	assert.True(t, strikeThirteenMonthsAgo.Before(start), "strikes older than the rolling year must age out")

	strikeElevenMonthsAgo := now.AddDate(0, -11, 0)
	assert.False(t, strikeElevenMonthsAgo.Before(start), "strikes inside the rolling year still count")
}

func TestExceedsLateCancelTolerance(t *testing.T) {
	tests := []struct {
		name        string
		tier        ComplianceTier
		recentCount int
		exceeds     bool
	}{
		{"platinum within tolerance", TierPlatinum, 3, false},
		{"platinum beyond tolerance", TierPlatinum, 4, true},
		{"gold within tolerance", TierGold, 2, false},
		{"gold beyond tolerance", TierGold, 3, true},
		{"silver within tolerance", TierSilver, 1, false},
		{"silver beyond tolerance", TierSilver, 2, true},
		{"bronze has no tolerance", TierBronze, 1, true},
		{"probation has no tolerance", TierProbation, 1, true},
		{"no strikes never exceeds", TierProbation, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exceeds, err := ExceedsLateCancelTolerance(tt.tier, tt.recentCount)
			require.NoError(t, err)
			assert.Equal(t, tt.exceeds, exceeds)
		})
	}

	_, err := ExceedsLateCancelTolerance(ComplianceTier("diamond"), 1)
	assert.ErrorIs(t, err, ErrConfiguration)
}
