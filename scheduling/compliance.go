package scheduling

import (
	"fmt"
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// QuestionnaireAnswers is an immutable snapshot of a patient's compliance
// self-assessment: eight 1-5 ratings and five policy commitments.
type QuestionnaireAnswers struct {
	MissedAppointmentsRating   int `json:"missed_appointments_rating"`
	CancellationNoticeRating   int `json:"cancellation_notice_rating"`
	ScheduleImportanceRating   int `json:"schedule_importance_rating"`
	RescheduleCommitmentRating int `json:"reschedule_commitment_rating"`
	FlexibilityRating          int `json:"flexibility_rating"`
	ReminderResponseRating     int `json:"reminder_response_rating"`
	TransportReliabilityRating int `json:"transport_reliability_rating"`
	HealthPriorityRating       int `json:"health_priority_rating"`

	Agrees24hCancellation  bool `json:"agrees_24h_cancellation"`
	AgreesNoShowPenalty    bool `json:"agrees_no_show_penalty"`
	AgreesReschedulePolicy bool `json:"agrees_reschedule_policy"`
	AgreesCommunication    bool `json:"agrees_communication_preferences"`
	AgreesPunctuality      bool `json:"agrees_punctuality_policy"`
}

// ComplianceResult pairs the 0-100 score with its derived tier.
type ComplianceResult struct {
	Score int            `json:"score"`
	Tier  ComplianceTier `json:"tier"`
}

func (q QuestionnaireAnswers) ratings() []int {
	return []int{
		q.MissedAppointmentsRating,
		q.CancellationNoticeRating,
		q.ScheduleImportanceRating,
		q.RescheduleCommitmentRating,
		q.FlexibilityRating,
		q.ReminderResponseRating,
		q.TransportReliabilityRating,
		q.HealthPriorityRating,
	}
}

func (q QuestionnaireAnswers) commitments() []bool {
	return []bool{
		q.Agrees24hCancellation,
		q.AgreesNoShowPenalty,
		q.AgreesReschedulePolicy,
		q.AgreesCommunication,
		q.AgreesPunctuality,
	}
}

// Validate checks every rating is within the 1-5 scale. A zero value means
// the field was never answered, so there is no partial or default scoring.
func (q QuestionnaireAnswers) Validate() error {
	err := validation.Errors{
		"missed_appointments_rating":   validateRating(q.MissedAppointmentsRating),
		"cancellation_notice_rating":   validateRating(q.CancellationNoticeRating),
		"schedule_importance_rating":   validateRating(q.ScheduleImportanceRating),
		"reschedule_commitment_rating": validateRating(q.RescheduleCommitmentRating),
		"flexibility_rating":           validateRating(q.FlexibilityRating),
		"reminder_response_rating":     validateRating(q.ReminderResponseRating),
		"transport_reliability_rating": validateRating(q.TransportReliabilityRating),
		"health_priority_rating":       validateRating(q.HealthPriorityRating),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func validateRating(rating int) error {
	return validation.Validate(rating,
		validation.Required.Error("rating is required"),
		validation.Min(1), validation.Max(5),
	)
}

// ComputeCompliance scores a questionnaire and derives the tier. Pure:
// callers persist the result on the patient record.
//
// Ratings contribute 60% (mean rating over the 5-point scale) and the five
// commitments 40% (fraction agreed), rounded to the nearest integer.
func ComputeCompliance(q QuestionnaireAnswers) (ComplianceResult, error) {
	if err := q.Validate(); err != nil {
		return ComplianceResult{}, err
	}

	ratingSum := 0
	for _, r := range q.ratings() {
		ratingSum += r
	}
	ratingScore := float64(ratingSum) / (8 * 5) * 100

	agreed := 0
	for _, c := range q.commitments() {
		if c {
			agreed++
		}
	}
	commitmentScore := float64(agreed) / 5 * 100

	score := int(math.Round(ratingScore*0.6 + commitmentScore*0.4))
	return ComplianceResult{Score: score, Tier: TierForScore(score)}, nil
}

// TierForScore maps a 0-100 score to its tier. Boundaries are closed on
// the lower bound: a score of exactly 90 is platinum.
func TierForScore(score int) ComplianceTier {
	switch {
	case score >= 90:
		return TierPlatinum
	case score >= 75:
		return TierGold
	case score >= 60:
		return TierSilver
	case score >= 40:
		return TierBronze
	default:
		return TierProbation
	}
}

// AdjustScoreForHistory folds visit-history events into an existing score:
// no-shows cost 10 points each, late cancellations 5, and attended
// appointments earn back up to 20. The result stays within 0-100.
func AdjustScoreForHistory(baseScore, totalAppointments, noShows, lateCancellations int) int {
	if totalAppointments == 0 {
		return clampScore(baseScore)
	}
	attended := totalAppointments - noShows
	bonus := attended * 2
	if bonus > 20 {
		bonus = 20
	}
	return clampScore(baseScore - noShows*10 - lateCancellations*5 + bonus)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
