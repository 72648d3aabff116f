package models

import (
	"time"

	"VitaClinic/scheduling"
)

// Slot statuses.
const (
	SlotAvailable = "available"
	SlotBooked    = "booked"
	SlotBlocked   = "blocked"
	SlotReserved  = "reserved"
)

// Slot types.
const (
	SlotFirstVisit = "first_visit"
	SlotFollowUp   = "follow_up"
	SlotEmergency  = "emergency"
)

// Slot model. Owned by the calendar side of the system; the engine only
// reads supply counts and restriction flags from it.
type Slot struct {
	ID                string                    `gorm:"primaryKey;column:id" json:"id"`
	DoctorID          string                    `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	StartTime         time.Time                 `gorm:"column:start_time;not null;index" json:"start_time"`
	EndTime           time.Time                 `gorm:"column:end_time;not null" json:"end_time"`
	DurationMins      int                       `gorm:"column:duration_mins;default:30" json:"duration_mins"`
	Status            string                    `gorm:"column:status;check:status IN ('available', 'booked', 'blocked', 'reserved');not null;index" json:"status"`
	SlotType          string                    `gorm:"column:slot_type;check:slot_type IN ('first_visit', 'follow_up', 'emergency');not null;index" json:"slot_type"`
	PriorityOnly      bool                      `gorm:"column:priority_only;default:false" json:"priority_only"`
	UrgentOnly        bool                      `gorm:"column:urgent_only;default:false" json:"urgent_only"`
	MinComplianceTier scheduling.ComplianceTier `gorm:"column:min_compliance_tier" json:"min_compliance_tier"`
	RecurrenceGroupID string                    `gorm:"column:recurrence_group_id;index" json:"recurrence_group_id"`
	CreatedAt         time.Time                 `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Doctor            Doctor                    `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Slot) TableName() string {
	return "slot"
}

// Restrictions maps the slot's access flags into engine input.
func (s *Slot) Restrictions() scheduling.SlotRestrictions {
	return scheduling.SlotRestrictions{
		PriorityOnly: s.PriorityOnly,
		UrgentOnly:   s.UrgentOnly,
		MinTier:      s.MinComplianceTier,
	}
}

// Booking statuses.
const (
	BookingPending            = "pending"
	BookingConfirmed          = "confirmed"
	BookingCompleted          = "completed"
	BookingCancelledByPatient = "cancelled_by_patient"
	BookingCancelledByDoctor  = "cancelled_by_doctor"
	BookingNoShow             = "no_show"
	BookingRescheduled        = "rescheduled"
)

// Booking model. Never physically deleted; lifecycle is tracked through
// status transitions. A patient holds at most one booking in
// {pending, confirmed} at any time.
type Booking struct {
	ID                    string     `gorm:"primaryKey;column:id" json:"id"`
	PatientID             string     `gorm:"column:patient_id;not null;index" json:"patient_id"`
	SlotID                string     `gorm:"column:slot_id;not null;uniqueIndex" json:"slot_id"`
	Status                string     `gorm:"column:status;check:status IN ('pending', 'confirmed', 'completed', 'cancelled_by_patient', 'cancelled_by_doctor', 'no_show', 'rescheduled');not null;index" json:"status"`
	Reason                string     `gorm:"column:reason" json:"reason"`
	IsEmergency           bool       `gorm:"column:is_emergency;default:false" json:"is_emergency"`
	UrgencyReason         string     `gorm:"column:urgency_reason" json:"urgency_reason"`
	LinkedTriageRequestID *uint      `gorm:"column:linked_triage_request_id" json:"linked_triage_request_id"`
	RescheduledFromID     *string    `gorm:"column:rescheduled_from_id" json:"rescheduled_from_id"`
	RescheduledToID       *string    `gorm:"column:rescheduled_to_id" json:"rescheduled_to_id"`
	ConfirmedAt           *time.Time `gorm:"column:confirmed_at" json:"confirmed_at"`
	CancelledAt           *time.Time `gorm:"column:cancelled_at" json:"cancelled_at"`
	WasLateCancellation   bool       `gorm:"column:was_late_cancellation;default:false" json:"was_late_cancellation"`
	CreatedAt             time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Patient               Patient    `gorm:"foreignKey:PatientID;references:ID" json:"patient"`
	Slot                  Slot       `gorm:"foreignKey:SlotID;references:ID" json:"slot"`
}

func (Booking) TableName() string {
	return "booking"
}

// IsActive reports whether the booking still occupies the patient's single
// active-booking allowance.
func (b *Booking) IsActive() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}

// IsCancellable reports whether a triage request may target this booking.
func (b *Booking) IsCancellable() bool {
	return b.IsActive()
}

// TriageRequest model. Created once per cancel/reschedule attempt and
// immutable afterwards; a new attempt creates a new request.
type TriageRequest struct {
	ID             uint                   `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	BookingID      string                 `gorm:"column:booking_id;not null;index" json:"booking_id"`
	RequestType    scheduling.RequestType `gorm:"column:request_type;check:request_type IN ('cancel', 'reschedule');not null" json:"request_type"`
	ReasonCategory string                 `gorm:"column:reason_category;not null" json:"reason_category"`
	ReasonDetails  string                 `gorm:"column:reason_details" json:"reason_details"`

	ConditionChanged bool `gorm:"column:condition_changed" json:"condition_changed"`
	SymptomsWorsened bool `gorm:"column:symptoms_worsened" json:"symptoms_worsened"`
	NewSymptoms      bool `gorm:"column:new_symptoms" json:"new_symptoms"`

	AcknowledgesImpact      bool `gorm:"column:acknowledges_impact" json:"acknowledges_impact"`
	CommitsToNewAppointment bool `gorm:"column:commits_to_new_appointment" json:"commits_to_new_appointment"`

	UrgencyVerdict scheduling.UrgencyLevel `gorm:"column:urgency_verdict;check:urgency_verdict IN ('emergency', 'urgent', 'moderate', 'routine');not null" json:"urgency_verdict"`
	AutoApproved   bool                    `gorm:"column:auto_approved" json:"auto_approved"`

	DoctorApproved *bool      `gorm:"column:doctor_approved" json:"doctor_approved"`
	ReviewedAt     *time.Time `gorm:"column:reviewed_at" json:"reviewed_at"`

	SubmittedAt time.Time `gorm:"column:submitted_at;not null" json:"submitted_at"`
	Booking     Booking   `gorm:"foreignKey:BookingID;references:ID" json:"-"`
}

func (TriageRequest) TableName() string {
	return "triage_request"
}

// Fields converts the stored row back into engine input.
func (t *TriageRequest) Fields() scheduling.TriageFields {
	return scheduling.TriageFields{
		RequestType:             t.RequestType,
		ReasonCategory:          t.ReasonCategory,
		ConditionChanged:        t.ConditionChanged,
		SymptomsWorsened:        t.SymptomsWorsened,
		NewSymptoms:             t.NewSymptoms,
		AcknowledgesImpact:      t.AcknowledgesImpact,
		CommitsToNewAppointment: t.CommitsToNewAppointment,
	}
}

// Approved reports whether the request permits acting on the booking:
// either auto-approved at triage time or approved by the doctor since.
func (t *TriageRequest) Approved() bool {
	if t.AutoApproved {
		return true
	}
	return t.DoctorApproved != nil && *t.DoctorApproved
}
