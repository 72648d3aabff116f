package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTriage(t *testing.T) {
	tests := []struct {
		name   string
		fields TriageFields
		want   TriageVerdict
	}{
		{
			name:   "all flags false is routine and auto approved",
			fields: TriageFields{RequestType: RequestCancel, ReasonCategory: "work"},
			want:   TriageVerdict{Urgency: UrgencyRoutine, AutoApproved: true},
		},
		{
			name:   "worsened symptoms are urgent",
			fields: TriageFields{SymptomsWorsened: true},
			want:   TriageVerdict{Urgency: UrgencyUrgent, AutoApproved: false},
		},
		{
			name:   "new symptoms are urgent",
			fields: TriageFields{NewSymptoms: true},
			want:   TriageVerdict{Urgency: UrgencyUrgent, AutoApproved: false},
		},
		{
			name:   "condition change alone is moderate",
			fields: TriageFields{ConditionChanged: true},
			want:   TriageVerdict{Urgency: UrgencyModerate, AutoApproved: false},
		},
		{
			name: "worsened symptoms outrank condition change",
			fields: TriageFields{
				ConditionChanged: true,
				SymptomsWorsened: true,
			},
			want: TriageVerdict{Urgency: UrgencyUrgent, AutoApproved: false},
		},
		{
			name: "acknowledgment flags never alter the verdict",
			fields: TriageFields{
				SymptomsWorsened:        true,
				AcknowledgesImpact:      true,
				CommitsToNewAppointment: true,
			},
			want: TriageVerdict{Urgency: UrgencyUrgent, AutoApproved: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTriage(tt.fields))
			// Same input, same verdict.
			assert.Equal(t, tt.want, ClassifyTriage(tt.fields))
		})
	}
}

func TestAllowsReschedule(t *testing.T) {
	assert.True(t, AllowsReschedule(TriageFields{CommitsToNewAppointment: true}))
	assert.False(t, AllowsReschedule(TriageFields{AcknowledgesImpact: true}))
}
