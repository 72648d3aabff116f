package scheduling

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// RosterEntry is one patient with active booking intent for a scarcity
// window, assembled by the caller from persisted state.
type RosterEntry struct {
	PatientID        string
	Category         MedicalCategory
	ComplianceScore  int
	Tier             ComplianceTier
	EarliestBookable time.Time
	LastVisit        *time.Time
	IsEmergency      bool
}

// RankedPatient is one row of a priority ranking. ReservedCategory is set
// when a reservation plan is active and the patient draws from reserved
// capacity, or "emergency" for emergency-flagged entries.
type RankedPatient struct {
	PatientID        string  `json:"patient_id"`
	Score            float64 `json:"priority_score"`
	ReservedCategory string  `json:"reserved_category,omitempty"`
}

// ReservationPlan splits remaining capacity once supply is scarce.
// Emergency slots are a separately sized pool and never overlap with
// reserved or general capacity.
type ReservationPlan struct {
	Active         bool `json:"active"`
	CriticalSlots  int  `json:"critical_slots"`
	HighRiskSlots  int  `json:"high_risk_slots"`
	OpenSlots      int  `json:"open_slots"`
	EmergencySlots int  `json:"emergency_slots"`
}

// PriorityRanking is a derived view over a roster, recomputed fresh on
// every request and never cached across roster mutations.
type PriorityRanking struct {
	Level  ScarcityLevel   `json:"scarcity_level"`
	Ranked []RankedPatient `json:"ranked"`
	Plan   ReservationPlan `json:"reservation_plan"`
}

// Score weights. Category dominates, then compliance, overdue-ness and
// wait time.
const (
	weightCategory   = 0.40
	weightCompliance = 0.25
	weightUrgency    = 0.20
	weightWaitTime   = 0.15
)

// firstVisitWaitFactor stands in for the wait-time factor of patients with
// no completed visit: moderate priority, matching the scoring the clinic
// previously applied to first appointments.
const firstVisitWaitFactor = 60.0

// ScarcityLevelOf buckets the available/total ratio. A window with no
// slots at all is critical by definition.
func ScarcityLevelOf(available, total int) ScarcityLevel {
	if total <= 0 {
		return ScarcityCritical
	}
	ratio := float64(available) / float64(total)
	switch {
	case ratio > 0.5:
		return ScarcityNormal
	case ratio >= 0.3:
		return ScarcityModerate
	case ratio >= 0.1:
		return ScarcityHigh
	default:
		return ScarcityCritical
	}
}

// RankForScarcity computes a fairness-ordered ranking and a reservation
// plan for the given slot supply. The ordering is a total order: ties
// break by earlier earliest-bookable date, then by patient ID, so
// identical inputs always produce identical output. emergencySlots sizes
// the emergency-only pool and is external configuration, not something
// this engine computes.
func RankForScarcity(roster []RosterEntry, available, total, emergencySlots int, now time.Time) (PriorityRanking, error) {
	if available < 0 || total < 0 || available > total {
		return PriorityRanking{}, fmt.Errorf("%w: slot supply %d/%d is not a valid ratio", ErrValidation, available, total)
	}

	level := ScarcityLevelOf(available, total)
	plan := buildReservationPlan(level, available, emergencySlots)

	ranked := make([]RankedPatient, 0, len(roster))
	for _, entry := range roster {
		score, err := priorityScore(entry, now)
		if err != nil {
			return PriorityRanking{}, err
		}
		ranked = append(ranked, RankedPatient{
			PatientID:        entry.PatientID,
			Score:            score,
			ReservedCategory: reservedCategoryFor(entry, plan),
		})
	}

	index := make(map[string]RosterEntry, len(roster))
	for _, entry := range roster {
		index[entry.PatientID] = entry
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		ei, ej := index[ranked[i].PatientID].EarliestBookable, index[ranked[j].PatientID].EarliestBookable
		if !ei.Equal(ej) {
			return ei.Before(ej)
		}
		return ranked[i].PatientID < ranked[j].PatientID
	})

	return PriorityRanking{Level: level, Ranked: ranked, Plan: plan}, nil
}

// priorityScore combines category weight, compliance, overdue-ness and
// wait time into a single 0-100 weighted score.
func priorityScore(entry RosterEntry, now time.Time) (float64, error) {
	weight, err := CategoryWeight(entry.Category)
	if err != nil {
		return 0, err
	}
	intervalDays, err := RequiredInterval(entry.Category)
	if err != nil {
		return 0, err
	}

	daysOverdue := math.Max(0, now.Sub(entry.EarliestBookable).Hours()/24)
	urgencyFactor := math.Min(100, daysOverdue/float64(intervalDays)*100)

	waitFactor := firstVisitWaitFactor
	if entry.LastVisit != nil {
		daysSince := now.Sub(*entry.LastVisit).Hours() / 24
		waitFactor = math.Min(100, daysSince/365*100)
	}

	return weight*weightCategory +
		float64(entry.ComplianceScore)*weightCompliance +
		urgencyFactor*weightUrgency +
		waitFactor*weightWaitTime, nil
}

// buildReservationPlan activates capacity reservations once supply drops
// to the high or critical bucket: 20% of remaining capacity for critical
// patients, 15% for high-risk, the rest open to all.
func buildReservationPlan(level ScarcityLevel, available, emergencySlots int) ReservationPlan {
	plan := ReservationPlan{EmergencySlots: emergencySlots}
	if level != ScarcityHigh && level != ScarcityCritical {
		plan.OpenSlots = available
		return plan
	}
	plan.Active = true
	plan.CriticalSlots = int(float64(available) * 0.20)
	plan.HighRiskSlots = int(float64(available) * 0.15)
	plan.OpenSlots = available - plan.CriticalSlots - plan.HighRiskSlots
	return plan
}

func reservedCategoryFor(entry RosterEntry, plan ReservationPlan) string {
	if entry.IsEmergency {
		return "emergency"
	}
	if !plan.Active {
		return ""
	}
	switch entry.Category {
	case CategoryCritical, CategoryHighRisk:
		return string(entry.Category)
	default:
		return ""
	}
}
