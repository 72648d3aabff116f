package utils

import (
	"VitaClinic/scheduling"
	"log"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidateQuestionnairePayload checks a questionnaire submission before it
// reaches the scoring engine, so callers get field-level errors instead of
// a single opaque failure.
func ValidateQuestionnairePayload(answers scheduling.QuestionnaireAnswers) error {
	err := validation.ValidateStruct(&answers,
		validation.Field(&answers.MissedAppointmentsRating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&answers.CancellationNoticeRating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&answers.ScheduleImportanceRating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&answers.RescheduleCommitmentRating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&answers.FlexibilityRating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&answers.ReminderResponseRating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&answers.TransportReliabilityRating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&answers.HealthPriorityRating, validation.Required, validation.Min(1), validation.Max(5)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateTriagePayload checks a cancel/reschedule submission.
func ValidateTriagePayload(fields scheduling.TriageFields) error {
	err := validation.ValidateStruct(&fields,
		validation.Field(&fields.RequestType, validation.Required,
			validation.In(scheduling.RequestCancel, scheduling.RequestReschedule)),
		validation.Field(&fields.ReasonCategory, validation.Required, validation.Length(1, 100)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}
