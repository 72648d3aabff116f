package scheduling

import (
	"fmt"
	"time"
)

// QuestionnaireMaxAge is how long a compliance questionnaire stays valid.
// Patients retake it at most every 6 months, so an older one is expired.
const QuestionnaireMaxAge = 6 * 30 * 24 * time.Hour

const (
	ReasonActiveBooking        = "existing active booking"
	ReasonQuestionnaireMissing = "compliance questionnaire required"
	ReasonQuestionnaireExpired = "compliance questionnaire expired, please retake it"
)

// ComputeBookingWindow derives the date range in which a patient may book.
// Pure and idempotent: the caller supplies now so results are reproducible,
// and the patient snapshot is never mutated.
//
// Rules, in order: an active booking blocks booking outright; a missing or
// expired questionnaire blocks booking; otherwise earliest is the later of
// now and last visit plus the category's required interval (first-time
// patients start from now regardless of category), and latest is now plus
// the tighter of the doctor's window and the tier's window.
func ComputeBookingWindow(patient PatientState, doctorWindowDays int, now time.Time) (BookingWindow, error) {
	if doctorWindowDays <= 0 {
		return BookingWindow{}, fmt.Errorf("%w: doctor booking window must be positive, got %d", ErrValidation, doctorWindowDays)
	}

	if patient.HasActiveBooking {
		return BookingWindow{CanBook: false, Reason: ReasonActiveBooking}, nil
	}
	if patient.QuestionnaireAt == nil {
		return BookingWindow{CanBook: false, Reason: ReasonQuestionnaireMissing}, nil
	}
	if now.Sub(*patient.QuestionnaireAt) > QuestionnaireMaxAge {
		return BookingWindow{CanBook: false, Reason: ReasonQuestionnaireExpired}, nil
	}

	intervalDays, err := RequiredInterval(patient.Category)
	if err != nil {
		return BookingWindow{}, err
	}
	policy, err := PolicyForTier(patient.Tier)
	if err != nil {
		return BookingWindow{}, err
	}

	earliest := now
	if patient.LastCompletedVisit != nil {
		due := patient.LastCompletedVisit.AddDate(0, 0, intervalDays)
		if due.After(earliest) {
			earliest = due
		}
	}

	windowDays := doctorWindowDays
	if policy.WindowDays < windowDays {
		windowDays = policy.WindowDays
	}
	latest := now.AddDate(0, 0, windowDays)

	window := BookingWindow{Earliest: earliest, Latest: latest}
	if earliest.After(latest) {
		window.Reason = fmt.Sprintf("booking window currently closed, next opens %s", earliest.Format("2006-01-02"))
		return window, nil
	}
	window.CanBook = true
	return window, nil
}
