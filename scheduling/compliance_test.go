package scheduling

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allRatings(value int) QuestionnaireAnswers {
	return QuestionnaireAnswers{
		MissedAppointmentsRating:   value,
		CancellationNoticeRating:   value,
		ScheduleImportanceRating:   value,
		RescheduleCommitmentRating: value,
		FlexibilityRating:          value,
		ReminderResponseRating:     value,
		TransportReliabilityRating: value,
		HealthPriorityRating:       value,
	}
}

func withCommitments(q QuestionnaireAnswers, count int) QuestionnaireAnswers {
	flags := []*bool{
		&q.Agrees24hCancellation,
		&q.AgreesNoShowPenalty,
		&q.AgreesReschedulePolicy,
		&q.AgreesCommunication,
		&q.AgreesPunctuality,
	}
	for i := 0; i < count; i++ {
		*flags[i] = true
	}
	return q
}

func TestComputeCompliance(t *testing.T) {
	tests := []struct {
		name      string
		answers   QuestionnaireAnswers
		wantScore int
		wantTier  ComplianceTier
	}{
		{
			name:      "perfect answers",
			answers:   withCommitments(allRatings(5), 5),
			wantScore: 100,
			wantTier:  TierPlatinum,
		},
		{
			name:      "worst answers",
			answers:   allRatings(1),
			wantScore: 12,
			wantTier:  TierProbation,
		},
		{
			name:      "good ratings four commitments",
			answers:   withCommitments(allRatings(4), 4),
			wantScore: 80,
			wantTier:  TierGold,
		},
		{
			name:      "middling ratings all commitments",
			answers:   withCommitments(allRatings(3), 5),
			wantScore: 76,
			wantTier:  TierGold,
		},
		{
			name:      "middling ratings no commitments",
			answers:   allRatings(3),
			wantScore: 36,
			wantTier:  TierProbation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeCompliance(tt.answers)
			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantTier, got.Tier)

			// Pure function: identical input, identical output.
			again, err := ComputeCompliance(tt.answers)
			require.NoError(t, err)
			assert.Equal(t, got, again)

			assert.GreaterOrEqual(t, got.Score, 0)
			assert.LessOrEqual(t, got.Score, 100)
		})
	}
}

func TestComputeComplianceValidation(t *testing.T) {
	tests := []struct {
		name    string
		answers QuestionnaireAnswers
	}{
		{name: "missing rating", answers: func() QuestionnaireAnswers {
			q := allRatings(3)
			q.FlexibilityRating = 0
			return q
		}()},
		{name: "rating above scale", answers: func() QuestionnaireAnswers {
			q := allRatings(3)
			q.HealthPriorityRating = 6
			return q
		}()},
		{name: "negative rating", answers: func() QuestionnaireAnswers {
			q := allRatings(3)
			q.MissedAppointmentsRating = -1
			return q
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeCompliance(tt.answers)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
		})
	}
}

func TestTierForScoreBoundaries(t *testing.T) {
	// Lower bounds are closed: the boundary score belongs to the higher tier.
	tests := []struct {
		score int
		want  ComplianceTier
	}{
		{100, TierPlatinum},
		{90, TierPlatinum},
		{89, TierGold},
		{75, TierGold},
		{74, TierSilver},
		{60, TierSilver},
		{59, TierBronze},
		{40, TierBronze},
		{39, TierProbation},
		{0, TierProbation},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierForScore(tt.score), "score %d", tt.score)
	}
}

func TestAdjustScoreForHistory(t *testing.T) {
	tests := []struct {
		name                           string
		base, total, noShows, lateCanc int
		want                           int
	}{
		{name: "no history keeps base", base: 70, want: 70},
		{name: "attendance bonus capped", base: 70, total: 30, want: 90},
		{name: "no show penalty", base: 70, total: 5, noShows: 2, want: 70 - 20 + 6},
		{name: "late cancellations", base: 60, total: 4, lateCanc: 3, want: 60 - 15 + 8},
		{name: "floor at zero", base: 20, total: 4, noShows: 4, want: 0},
		{name: "ceiling at hundred", base: 95, total: 20, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdjustScoreForHistory(tt.base, tt.total, tt.noShows, tt.lateCanc)
			assert.Equal(t, tt.want, got)
		})
	}
}
