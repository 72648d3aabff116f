package scheduling

import (
	"fmt"
	"time"
)

// MedicalCategory determines how often a patient must be seen.
type MedicalCategory string

const (
	CategoryCritical    MedicalCategory = "critical"
	CategoryHighRisk    MedicalCategory = "high_risk"
	CategoryModerate    MedicalCategory = "moderate"
	CategoryStable      MedicalCategory = "stable"
	CategoryMaintenance MedicalCategory = "maintenance"
	CategoryHealthy     MedicalCategory = "healthy"
)

// ComplianceTier is the discrete trust level derived from the compliance
// questionnaire score. It gates booking-window length and priority access.
type ComplianceTier string

const (
	TierPlatinum  ComplianceTier = "platinum"
	TierGold      ComplianceTier = "gold"
	TierSilver    ComplianceTier = "silver"
	TierBronze    ComplianceTier = "bronze"
	TierProbation ComplianceTier = "probation"
)

// UrgencyLevel is the triage verdict for a cancel/reschedule request.
type UrgencyLevel string

const (
	UrgencyEmergency UrgencyLevel = "emergency"
	UrgencyUrgent    UrgencyLevel = "urgent"
	UrgencyModerate  UrgencyLevel = "moderate"
	UrgencyRoutine   UrgencyLevel = "routine"
)

// ScarcityLevel buckets the available/total slot ratio for a window.
type ScarcityLevel string

const (
	ScarcityNormal   ScarcityLevel = "normal"
	ScarcityModerate ScarcityLevel = "moderate"
	ScarcityHigh     ScarcityLevel = "high"
	ScarcityCritical ScarcityLevel = "critical"
)

// RequestType distinguishes cancellation from reschedule triage requests.
type RequestType string

const (
	RequestCancel     RequestType = "cancel"
	RequestReschedule RequestType = "reschedule"
)

// categoryIntervalDays maps a medical category to the required interval
// between visits. Frozen config, not a type hierarchy.
var categoryIntervalDays = map[MedicalCategory]int{
	CategoryCritical:    7,
	CategoryHighRisk:    14,
	CategoryModerate:    30,
	CategoryStable:      90,
	CategoryMaintenance: 180,
	CategoryHealthy:     365,
}

// categoryWeights feed the priority score. Higher means more medically urgent.
var categoryWeights = map[MedicalCategory]float64{
	CategoryCritical:    100,
	CategoryHighRisk:    80,
	CategoryModerate:    60,
	CategoryStable:      40,
	CategoryMaintenance: 20,
	CategoryHealthy:     10,
}

// TierPolicy is the per-tier policy consumed by the booking window
// calculator and the scarcity prioritizer.
type TierPolicy struct {
	WindowDays          int
	PriorityAccess      bool
	LateCancelTolerance int
}

var tierPolicies = map[ComplianceTier]TierPolicy{
	TierPlatinum:  {WindowDays: 90, PriorityAccess: true, LateCancelTolerance: 3},
	TierGold:      {WindowDays: 60, PriorityAccess: true, LateCancelTolerance: 2},
	TierSilver:    {WindowDays: 45, PriorityAccess: false, LateCancelTolerance: 1},
	TierBronze:    {WindowDays: 30, PriorityAccess: false, LateCancelTolerance: 0},
	TierProbation: {WindowDays: 14, PriorityAccess: false, LateCancelTolerance: 0},
}

// tierRank orders tiers for minimum-tier slot restrictions.
var tierRank = map[ComplianceTier]int{
	TierPlatinum:  5,
	TierGold:      4,
	TierSilver:    3,
	TierBronze:    2,
	TierProbation: 1,
}

// PolicyForTier returns the policy row for a compliance tier.
// Unknown tiers fail with ErrConfiguration.
func PolicyForTier(tier ComplianceTier) (TierPolicy, error) {
	policy, ok := tierPolicies[tier]
	if !ok {
		return TierPolicy{}, fmt.Errorf("%w: unknown compliance tier %q", ErrConfiguration, tier)
	}
	return policy, nil
}

// PatientState is the snapshot of a patient the engine computes over.
// Assembled by the caller from persisted records; never mutated here.
type PatientState struct {
	ID                 string
	Category           MedicalCategory
	Tier               ComplianceTier
	LastCompletedVisit *time.Time
	HasActiveBooking   bool
	QuestionnaireAt    *time.Time
}

// BookingWindow is a derived view, recomputed on every request and never
// persisted. Reason is set only when CanBook is false.
type BookingWindow struct {
	Earliest time.Time `json:"earliest_date"`
	Latest   time.Time `json:"latest_date"`
	CanBook  bool      `json:"can_book"`
	Reason   string    `json:"reason,omitempty"`
}
