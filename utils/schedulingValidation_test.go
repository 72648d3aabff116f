package utils

import (
	"testing"

	"VitaClinic/scheduling"

	"github.com/stretchr/testify/assert"
)

func validAnswers() scheduling.QuestionnaireAnswers {
	return scheduling.QuestionnaireAnswers{
		MissedAppointmentsRating:   4,
		CancellationNoticeRating:   4,
		ScheduleImportanceRating:   4,
		RescheduleCommitmentRating: 4,
		FlexibilityRating:          4,
		ReminderResponseRating:     4,
		TransportReliabilityRating: 4,
		HealthPriorityRating:       4,
		Agrees24hCancellation:      true,
	}
}

func TestValidateQuestionnairePayload(t *testing.T) {
	assert.NoError(t, ValidateQuestionnairePayload(validAnswers()))

	missing := validAnswers()
	missing.FlexibilityRating = 0
	assert.Error(t, ValidateQuestionnairePayload(missing))

	tooHigh := validAnswers()
	tooHigh.HealthPriorityRating = 6
	assert.Error(t, ValidateQuestionnairePayload(tooHigh))
}

func TestValidateTriagePayload(t *testing.T) {
	tests := []struct {
		name    string
		fields  scheduling.TriageFields
		wantErr bool
	}{
		{
			name:   "valid cancel",
			fields: scheduling.TriageFields{RequestType: scheduling.RequestCancel, ReasonCategory: "schedule_conflict"},
		},
		{
			name:   "valid reschedule",
			fields: scheduling.TriageFields{RequestType: scheduling.RequestReschedule, ReasonCategory: "illness"},
		},
		{
			name:    "missing request type",
			fields:  scheduling.TriageFields{ReasonCategory: "illness"},
			wantErr: true,
		},
		{
			name:    "unknown request type",
			fields:  scheduling.TriageFields{RequestType: "postpone", ReasonCategory: "illness"},
			wantErr: true,
		},
		{
			name:    "missing reason category",
			fields:  scheduling.TriageFields{RequestType: scheduling.RequestCancel},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTriagePayload(tt.fields)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
