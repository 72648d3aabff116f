package models

import (
	"time"

	"VitaClinic/scheduling"
)

// Doctor model
type Doctor struct {
	ID                string    `gorm:"primaryKey;column:id" json:"id"`
	FirstName         string    `gorm:"column:first_name;not null" json:"first_name"`
	LastName          string    `gorm:"column:last_name;not null;index" json:"last_name"`
	Email             string    `gorm:"column:email;unique;not null" json:"email"`
	Specialisation    string    `gorm:"column:specialisation" json:"specialisation"`
	LicenceNumber     string    `gorm:"column:licence_number" json:"licence_number"`
	SlotDurationMins  int       `gorm:"column:slot_duration_mins;default:30" json:"slot_duration_mins"`
	BookingWindowDays int       `gorm:"column:booking_window_days;default:30" json:"booking_window_days"`
	EmergencyShare    int       `gorm:"column:emergency_share;default:10" json:"emergency_share"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Slots             []Slot    `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Doctor) TableName() string {
	return "doctor"
}

// Patient model. Category drives the required visit interval; the
// compliance score and tier are derived from the latest questionnaire and
// only ever written by the patient service.
type Patient struct {
	ID                    string                     `gorm:"primaryKey;column:id" json:"id"`
	FirstName             string                     `gorm:"column:first_name;not null" json:"first_name"`
	LastName              string                     `gorm:"column:last_name;not null;index" json:"last_name"`
	Email                 string                     `gorm:"column:email;unique;not null;index" json:"email"`
	Phone                 string                     `gorm:"column:phone" json:"phone"`
	DateOfBirth           string                     `gorm:"column:date_of_birth" json:"date_of_birth"`
	Category              scheduling.MedicalCategory `gorm:"column:category;check:category IN ('critical', 'high_risk', 'moderate', 'stable', 'maintenance', 'healthy');not null" json:"category"`
	ComplianceScore       int                        `gorm:"column:compliance_score;default:50" json:"compliance_score"`
	ComplianceTier        scheduling.ComplianceTier  `gorm:"column:compliance_tier;check:compliance_tier IN ('platinum', 'gold', 'silver', 'bronze', 'probation');not null" json:"compliance_tier"`
	LastCompletedVisitAt  *time.Time                 `gorm:"column:last_completed_visit_at" json:"last_completed_visit_at"`
	TotalAppointments     int                        `gorm:"column:total_appointments;default:0" json:"total_appointments"`
	NoShowCount           int                        `gorm:"column:no_show_count;default:0" json:"no_show_count"`
	LateCancellationCount int                        `gorm:"column:late_cancellation_count;default:0" json:"late_cancellation_count"`
	Archived              bool                       `gorm:"column:archived;default:false" json:"archived"`
	CreatedAt             time.Time                  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Questionnaires        []ComplianceQuestionnaire  `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Bookings              []Booking                  `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (Patient) TableName() string {
	return "patient"
}

// ComplianceQuestionnaire model. An immutable snapshot of a patient's
// self-assessment; the most recent one determines the active tier and a
// patient may retake it at most every six months.
type ComplianceQuestionnaire struct {
	ID        uint   `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	PatientID string `gorm:"column:patient_id;not null;index" json:"patient_id"`

	MissedAppointmentsRating   int `gorm:"column:missed_appointments_rating;not null" json:"missed_appointments_rating"`
	CancellationNoticeRating   int `gorm:"column:cancellation_notice_rating;not null" json:"cancellation_notice_rating"`
	ScheduleImportanceRating   int `gorm:"column:schedule_importance_rating;not null" json:"schedule_importance_rating"`
	RescheduleCommitmentRating int `gorm:"column:reschedule_commitment_rating;not null" json:"reschedule_commitment_rating"`
	FlexibilityRating          int `gorm:"column:flexibility_rating;not null" json:"flexibility_rating"`
	ReminderResponseRating     int `gorm:"column:reminder_response_rating;not null" json:"reminder_response_rating"`
	TransportReliabilityRating int `gorm:"column:transport_reliability_rating;not null" json:"transport_reliability_rating"`
	HealthPriorityRating       int `gorm:"column:health_priority_rating;not null" json:"health_priority_rating"`

	Agrees24hCancellation  bool `gorm:"column:agrees_24h_cancellation" json:"agrees_24h_cancellation"`
	AgreesNoShowPenalty    bool `gorm:"column:agrees_no_show_penalty" json:"agrees_no_show_penalty"`
	AgreesReschedulePolicy bool `gorm:"column:agrees_reschedule_policy" json:"agrees_reschedule_policy"`
	AgreesCommunication    bool `gorm:"column:agrees_communication_preferences" json:"agrees_communication_preferences"`
	AgreesPunctuality      bool `gorm:"column:agrees_punctuality_policy" json:"agrees_punctuality_policy"`

	CalculatedScore int       `gorm:"column:calculated_score;not null" json:"calculated_score"`
	SubmittedAt     time.Time `gorm:"column:submitted_at;not null;index" json:"submitted_at"`
	Patient         Patient   `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (ComplianceQuestionnaire) TableName() string {
	return "compliance_questionnaire"
}

// Answers converts the stored row back into engine input.
func (q *ComplianceQuestionnaire) Answers() scheduling.QuestionnaireAnswers {
	return scheduling.QuestionnaireAnswers{
		MissedAppointmentsRating:   q.MissedAppointmentsRating,
		CancellationNoticeRating:   q.CancellationNoticeRating,
		ScheduleImportanceRating:   q.ScheduleImportanceRating,
		RescheduleCommitmentRating: q.RescheduleCommitmentRating,
		FlexibilityRating:          q.FlexibilityRating,
		ReminderResponseRating:     q.ReminderResponseRating,
		TransportReliabilityRating: q.TransportReliabilityRating,
		HealthPriorityRating:       q.HealthPriorityRating,
		Agrees24hCancellation:      q.Agrees24hCancellation,
		AgreesNoShowPenalty:        q.AgreesNoShowPenalty,
		AgreesReschedulePolicy:     q.AgreesReschedulePolicy,
		AgreesCommunication:        q.AgreesCommunication,
		AgreesPunctuality:          q.AgreesPunctuality,
	}
}
