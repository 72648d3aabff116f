package scheduling

// TriageFields are the raw answers from a cancel/reschedule questionnaire.
// The acknowledgment flags are recorded for audit and never alter the
// verdict; CommitsToNewAppointment only gates whether a reschedule is
// offered instead of a plain cancellation.
type TriageFields struct {
	RequestType    RequestType `json:"request_type"`
	ReasonCategory string      `json:"reason_category"`

	ConditionChanged bool `json:"condition_changed"`
	SymptomsWorsened bool `json:"symptoms_worsened"`
	NewSymptoms      bool `json:"new_symptoms"`

	AcknowledgesImpact      bool `json:"acknowledges_impact"`
	CommitsToNewAppointment bool `json:"commits_to_new_appointment"`
}

// TriageVerdict is the classifier's decision. When AutoApproved is false
// the caller must notify the doctor before any rescheduling action.
type TriageVerdict struct {
	Urgency      UrgencyLevel `json:"urgency"`
	AutoApproved bool         `json:"auto_approved"`
}

// triageRule pairs a predicate with its verdict. Rules are evaluated
// top-down and the first match wins, which keeps the ordering contract
// explicit and testable on its own.
type triageRule struct {
	matches func(TriageFields) bool
	verdict TriageVerdict
}

var triageRules = []triageRule{
	{
		matches: func(f TriageFields) bool { return f.SymptomsWorsened || f.NewSymptoms },
		verdict: TriageVerdict{Urgency: UrgencyUrgent, AutoApproved: false},
	},
	{
		matches: func(f TriageFields) bool { return f.ConditionChanged },
		verdict: TriageVerdict{Urgency: UrgencyModerate, AutoApproved: false},
	},
	{
		matches: func(TriageFields) bool { return true },
		verdict: TriageVerdict{Urgency: UrgencyRoutine, AutoApproved: true},
	},
}

// ClassifyTriage evaluates the decision table over the raw fields. Pure:
// the verdict is always a function of the fields, never hand-set.
func ClassifyTriage(fields TriageFields) TriageVerdict {
	for _, rule := range triageRules {
		if rule.matches(fields) {
			return rule.verdict
		}
	}
	// Unreachable: the last rule always matches.
	return TriageVerdict{Urgency: UrgencyRoutine, AutoApproved: true}
}

// AllowsReschedule reports whether the requester may be offered a
// reschedule rather than only a cancellation.
func AllowsReschedule(fields TriageFields) bool {
	return fields.CommitsToNewAppointment
}
