package scheduling

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredInterval(t *testing.T) {
	tests := []struct {
		category MedicalCategory
		want     int
	}{
		{CategoryCritical, 7},
		{CategoryHighRisk, 14},
		{CategoryModerate, 30},
		{CategoryStable, 90},
		{CategoryMaintenance, 180},
		{CategoryHealthy, 365},
	}
	for _, tt := range tests {
		got, err := RequiredInterval(tt.category)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "category %s", tt.category)
	}
}

func TestRequiredIntervalUnknownCategory(t *testing.T) {
	_, err := RequiredInterval("palliative")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestCategoryWeightUnknownCategory(t *testing.T) {
	_, err := CategoryWeight("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestPolicyForTier(t *testing.T) {
	tests := []struct {
		tier           ComplianceTier
		wantWindow     int
		wantPriority   bool
		wantTolerance  int
	}{
		{TierPlatinum, 90, true, 3},
		{TierGold, 60, true, 2},
		{TierSilver, 45, false, 1},
		{TierBronze, 30, false, 0},
		{TierProbation, 14, false, 0},
	}
	for _, tt := range tests {
		policy, err := PolicyForTier(tt.tier)
		require.NoError(t, err)
		assert.Equal(t, tt.wantWindow, policy.WindowDays, "tier %s", tt.tier)
		assert.Equal(t, tt.wantPriority, policy.PriorityAccess, "tier %s", tt.tier)
		assert.Equal(t, tt.wantTolerance, policy.LateCancelTolerance, "tier %s", tt.tier)
	}

	_, err := PolicyForTier("diamond")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
}
