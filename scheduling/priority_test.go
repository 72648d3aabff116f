package scheduling

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScarcityLevelOf(t *testing.T) {
	tests := []struct {
		available, total int
		want             ScarcityLevel
	}{
		{60, 100, ScarcityNormal},
		{51, 100, ScarcityNormal},
		{50, 100, ScarcityModerate},
		{30, 100, ScarcityModerate},
		{29, 100, ScarcityHigh},
		{10, 100, ScarcityHigh},
		{9, 100, ScarcityCritical},
		{0, 100, ScarcityCritical},
		{0, 0, ScarcityCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScarcityLevelOf(tt.available, tt.total), "%d/%d", tt.available, tt.total)
	}
}

func TestRankForScarcityOverdueCriticalOutranksHealthy(t *testing.T) {
	// Patient A: critical, 10 days overdue against a 7 day interval, last
	// visited 30 days ago. Patient B: healthy, not overdue, seen 5 days
	// ago. A must rank first under any supply ratio.
	lastA := testNow.AddDate(0, 0, -30)
	lastB := testNow.AddDate(0, 0, -5)
	roster := []RosterEntry{
		{PatientID: "b", Category: CategoryHealthy, ComplianceScore: 95, Tier: TierPlatinum, EarliestBookable: testNow, LastVisit: &lastB},
		{PatientID: "a", Category: CategoryCritical, ComplianceScore: 95, Tier: TierPlatinum, EarliestBookable: testNow.AddDate(0, 0, -10), LastVisit: &lastA},
	}

	for _, supply := range [][2]int{{80, 100}, {40, 100}, {20, 100}, {5, 100}} {
		ranking, err := RankForScarcity(roster, supply[0], supply[1], 2, testNow)
		require.NoError(t, err)
		require.Len(t, ranking.Ranked, 2)
		assert.Equal(t, "a", ranking.Ranked[0].PatientID, "supply %d/%d", supply[0], supply[1])
		assert.Greater(t, ranking.Ranked[0].Score, ranking.Ranked[1].Score)
	}
}

func TestRankForScarcityDeterministicOrdering(t *testing.T) {
	// Identical entries except IDs: ordering falls through score and date
	// ties down to the patient ID, so repeated runs never disagree.
	roster := []RosterEntry{
		{PatientID: "charlie", Category: CategoryStable, ComplianceScore: 70, EarliestBookable: testNow},
		{PatientID: "alice", Category: CategoryStable, ComplianceScore: 70, EarliestBookable: testNow},
		{PatientID: "bravo", Category: CategoryStable, ComplianceScore: 70, EarliestBookable: testNow},
	}

	first, err := RankForScarcity(roster, 40, 100, 0, testNow)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := RankForScarcity(roster, 40, 100, 0, testNow)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, "alice", first.Ranked[0].PatientID)
	assert.Equal(t, "bravo", first.Ranked[1].PatientID)
	assert.Equal(t, "charlie", first.Ranked[2].PatientID)
}

func TestRankForScarcityEarlierDateBreaksScoreTie(t *testing.T) {
	roster := []RosterEntry{
		{PatientID: "late", Category: CategoryStable, ComplianceScore: 70, EarliestBookable: testNow.AddDate(0, 0, 1)},
		{PatientID: "early", Category: CategoryStable, ComplianceScore: 70, EarliestBookable: testNow},
	}
	// Same category and compliance, neither overdue, no visit history: the
	// later earliest date would add urgency, so pin both at/after now.
	ranking, err := RankForScarcity(roster, 60, 100, 0, testNow)
	require.NoError(t, err)
	assert.Equal(t, "early", ranking.Ranked[0].PatientID)
}

func TestRankForScarcityHigherScoreNeverRanksLower(t *testing.T) {
	base := []RosterEntry{
		{PatientID: "x", Category: CategoryModerate, ComplianceScore: 50, EarliestBookable: testNow},
		{PatientID: "y", Category: CategoryModerate, ComplianceScore: 50, EarliestBookable: testNow},
	}
	before, err := RankForScarcity(base, 40, 100, 0, testNow)
	require.NoError(t, err)

	boosted := make([]RosterEntry, len(base))
	copy(boosted, base)
	boosted[1].ComplianceScore = 90 // strictly raise y's score
	after, err := RankForScarcity(boosted, 40, 100, 0, testNow)
	require.NoError(t, err)

	rankOf := func(r PriorityRanking, id string) int {
		for i, p := range r.Ranked {
			if p.PatientID == id {
				return i
			}
		}
		return -1
	}
	assert.LessOrEqual(t, rankOf(after, "y"), rankOf(before, "y"))
}

func TestRankForScarcityReservationPlan(t *testing.T) {
	roster := []RosterEntry{
		{PatientID: "crit", Category: CategoryCritical, ComplianceScore: 80, EarliestBookable: testNow},
		{PatientID: "risk", Category: CategoryHighRisk, ComplianceScore: 80, EarliestBookable: testNow},
		{PatientID: "plain", Category: CategoryStable, ComplianceScore: 80, EarliestBookable: testNow},
		{PatientID: "emerg", Category: CategoryStable, ComplianceScore: 80, EarliestBookable: testNow, IsEmergency: true},
	}

	// Plenty of supply: no reservations, everything stays open.
	ranking, err := RankForScarcity(roster, 80, 100, 3, testNow)
	require.NoError(t, err)
	assert.False(t, ranking.Plan.Active)
	assert.Equal(t, 80, ranking.Plan.OpenSlots)

	// High scarcity: 20% critical, 15% high risk, the rest open; the
	// emergency pool is sized externally and stays separate.
	ranking, err = RankForScarcity(roster, 20, 100, 3, testNow)
	require.NoError(t, err)
	assert.Equal(t, ScarcityHigh, ranking.Level)
	assert.True(t, ranking.Plan.Active)
	assert.Equal(t, 4, ranking.Plan.CriticalSlots)
	assert.Equal(t, 3, ranking.Plan.HighRiskSlots)
	assert.Equal(t, 13, ranking.Plan.OpenSlots)
	assert.Equal(t, 3, ranking.Plan.EmergencySlots)

	categories := map[string]string{}
	for _, p := range ranking.Ranked {
		categories[p.PatientID] = p.ReservedCategory
	}
	assert.Equal(t, "critical", categories["crit"])
	assert.Equal(t, "high_risk", categories["risk"])
	assert.Equal(t, "", categories["plain"])
	assert.Equal(t, "emergency", categories["emerg"])
}

func TestRankForScarcityInvalidSupply(t *testing.T) {
	for _, supply := range [][2]int{{-1, 10}, {5, -1}, {11, 10}} {
		_, err := RankForScarcity(nil, supply[0], supply[1], 0, testNow)
		require.Error(t, err, "%v", supply)
		assert.True(t, errors.Is(err, ErrValidation))
	}
}

func TestRankForScarcityUnknownCategory(t *testing.T) {
	roster := []RosterEntry{{PatientID: "x", Category: "unknown", EarliestBookable: testNow}}
	_, err := RankForScarcity(roster, 10, 100, 0, testNow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestCanAccessSlot(t *testing.T) {
	tests := []struct {
		name         string
		category     MedicalCategory
		tier         ComplianceTier
		restrictions SlotRestrictions
		want         bool
	}{
		{name: "unrestricted slot", category: CategoryHealthy, tier: TierProbation, want: true},
		{name: "min tier met", category: CategoryStable, tier: TierGold, restrictions: SlotRestrictions{MinTier: TierSilver}, want: true},
		{name: "min tier not met", category: CategoryStable, tier: TierBronze, restrictions: SlotRestrictions{MinTier: TierSilver}, want: false},
		{name: "priority slot for gold", category: CategoryStable, tier: TierGold, restrictions: SlotRestrictions{PriorityOnly: true}, want: true},
		{name: "priority slot denied to silver", category: CategoryStable, tier: TierSilver, restrictions: SlotRestrictions{PriorityOnly: true}, want: false},
		{name: "urgent slot for critical", category: CategoryCritical, tier: TierProbation, restrictions: SlotRestrictions{UrgentOnly: true}, want: true},
		{name: "urgent slot denied to stable", category: CategoryStable, tier: TierPlatinum, restrictions: SlotRestrictions{UrgentOnly: true}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := CanAccessSlot(tt.category, tt.tier, tt.restrictions)
			assert.Equal(t, tt.want, ok)
			if !ok {
				assert.NotEmpty(t, reason)
			}
		})
	}
}
