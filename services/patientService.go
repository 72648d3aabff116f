package services

import (
	"VitaClinic/models"
	"VitaClinic/repositories"
	"VitaClinic/scheduling"
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// QuestionnaireRetakeInterval limits how often a patient may resubmit the
// compliance questionnaire. Shorter than the expiry so a patient can renew
// before their tier lapses.
const QuestionnaireRetakeInterval = 30 * 24 * time.Hour

type PatientService struct {
	patients       *repositories.PatientRepository
	questionnaires *repositories.QuestionnaireRepository
	bookings       *repositories.BookingRepository
}

func NewPatientService(
	patients *repositories.PatientRepository,
	questionnaires *repositories.QuestionnaireRepository,
	bookings *repositories.BookingRepository,
) *PatientService {
	return &PatientService{
		patients:       patients,
		questionnaires: questionnaires,
		bookings:       bookings,
	}
}

func (s *PatientService) Create(ctx context.Context, patient *models.Patient) error {
	if _, err := scheduling.RequiredInterval(patient.Category); err != nil {
		return err
	}
	if patient.ComplianceTier == "" {
		patient.ComplianceTier = scheduling.TierForScore(patient.ComplianceScore)
	}
	return s.patients.Create(ctx, patient)
}

func (s *PatientService) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *PatientService) GetAll(ctx context.Context) ([]models.Patient, error) {
	return s.patients.GetAll(ctx)
}

func (s *PatientService) Update(ctx context.Context, patient *models.Patient) error {
	if _, err := scheduling.RequiredInterval(patient.Category); err != nil {
		return err
	}
	return s.patients.Update(ctx, patient)
}

func (s *PatientService) Archive(ctx context.Context, id string) error {
	return s.patients.Archive(ctx, id)
}

// SubmitQuestionnaire scores a compliance questionnaire, persists it and
// moves the patient onto the resulting tier. The raw score is adjusted by
// the patient's attendance history before the tier is derived.
func (s *PatientService) SubmitQuestionnaire(ctx context.Context, patientID string, answers scheduling.QuestionnaireAnswers, now time.Time) (*models.ComplianceQuestionnaire, error) {
	patient, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, errors.New("patient not found")
	}

	latest, err := s.questionnaires.GetLatestByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if latest != nil && now.Sub(latest.SubmittedAt) < QuestionnaireRetakeInterval {
		next := latest.SubmittedAt.Add(QuestionnaireRetakeInterval)
		return nil, fmt.Errorf("%w: questionnaire already submitted, next retake allowed %s",
			scheduling.ErrInvalidRequest, next.Format("2006-01-02"))
	}

	result, err := scheduling.ComputeCompliance(answers)
	if err != nil {
		return nil, err
	}

	score := scheduling.AdjustScoreForHistory(result.Score,
		patient.TotalAppointments, patient.NoShowCount, patient.LateCancellationCount)
	tier := scheduling.TierForScore(score)

	questionnaire := &models.ComplianceQuestionnaire{
		PatientID:                  patientID,
		MissedAppointmentsRating:   answers.MissedAppointmentsRating,
		CancellationNoticeRating:   answers.CancellationNoticeRating,
		ScheduleImportanceRating:   answers.ScheduleImportanceRating,
		RescheduleCommitmentRating: answers.RescheduleCommitmentRating,
		FlexibilityRating:          answers.FlexibilityRating,
		ReminderResponseRating:     answers.ReminderResponseRating,
		TransportReliabilityRating: answers.TransportReliabilityRating,
		HealthPriorityRating:       answers.HealthPriorityRating,
		Agrees24hCancellation:      answers.Agrees24hCancellation,
		AgreesNoShowPenalty:        answers.AgreesNoShowPenalty,
		AgreesReschedulePolicy:     answers.AgreesReschedulePolicy,
		AgreesCommunication:        answers.AgreesCommunication,
		AgreesPunctuality:          answers.AgreesPunctuality,
		CalculatedScore:            score,
		SubmittedAt:                now,
	}
	if err := s.questionnaires.Create(ctx, questionnaire); err != nil {
		return nil, err
	}

	patient.ComplianceScore = score
	patient.ComplianceTier = tier
	if err := s.patients.Update(ctx, patient); err != nil {
		return nil, err
	}
	return questionnaire, nil
}

// State assembles the engine's snapshot of a patient from persisted records.
func (s *PatientService) State(ctx context.Context, patient *models.Patient) (scheduling.PatientState, error) {
	active, err := s.bookings.GetActiveByPatient(ctx, patient.ID)
	if err != nil {
		return scheduling.PatientState{}, err
	}

	latest, err := s.questionnaires.GetLatestByPatient(ctx, patient.ID)
	if err != nil {
		return scheduling.PatientState{}, err
	}
	var questionnaireAt *time.Time
	if latest != nil {
		submitted := latest.SubmittedAt
		questionnaireAt = &submitted
	}

	return scheduling.PatientState{
		ID:                 patient.ID,
		Category:           patient.Category,
		Tier:               patient.ComplianceTier,
		LastCompletedVisit: patient.LastCompletedVisitAt,
		HasActiveBooking:   active != nil,
		QuestionnaireAt:    questionnaireAt,
	}, nil
}

// BookingWindow computes the patient's current window against the doctor's
// configured horizon.
func (s *PatientService) BookingWindow(ctx context.Context, patient *models.Patient, doctorWindowDays int, now time.Time) (scheduling.BookingWindow, error) {
	state, err := s.State(ctx, patient)
	if err != nil {
		return scheduling.BookingWindow{}, err
	}
	return scheduling.ComputeBookingWindow(state, doctorWindowDays, now)
}

// applyVisitOutcome folds one attendance event into the patient's
// counters. Late cancellations always increment the counter; whether the
// score is recomputed right away is the caller's decision.
func applyVisitOutcome(patient *models.Patient, outcome string, occurredAt time.Time) error {
	switch outcome {
	case models.BookingCompleted:
		patient.TotalAppointments++
		patient.LastCompletedVisitAt = &occurredAt
	case models.BookingNoShow:
		patient.TotalAppointments++
		patient.NoShowCount++
	case models.BookingCancelledByPatient:
		patient.LateCancellationCount++
	default:
		return fmt.Errorf("%w: unsupported visit outcome %q", scheduling.ErrInvalidRequest, outcome)
	}
	return nil
}

// RecordVisitOutcome applies a completed, no-show or late-cancelled visit
// to the patient's counters and recomputes the score from the attendance
// history. Completed visits also advance the last-visit marker.
func (s *PatientService) RecordVisitOutcome(ctx context.Context, patientID, outcome string, occurredAt time.Time) (*models.Patient, error) {
	return s.recordOutcome(ctx, patientID, outcome, occurredAt, true)
}

// RecordLateCancellation increments the patient's late-cancellation
// counter. The counter always moves so future recalculations see the full
// history; recalculate applies the score adjustment immediately, which
// callers request once the tier's rolling-window tolerance is exhausted.
func (s *PatientService) RecordLateCancellation(ctx context.Context, patientID string, recalculate bool, occurredAt time.Time) (*models.Patient, error) {
	return s.recordOutcome(ctx, patientID, models.BookingCancelledByPatient, occurredAt, recalculate)
}

func (s *PatientService) recordOutcome(ctx context.Context, patientID, outcome string, occurredAt time.Time, recalculate bool) (*models.Patient, error) {
	patient, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, errors.New("patient not found")
	}

	if err := applyVisitOutcome(patient, outcome, occurredAt); err != nil {
		return nil, err
	}

	if recalculate {
		latest, err := s.questionnaires.GetLatestByPatient(ctx, patientID)
		if err != nil {
			return nil, err
		}
		if latest != nil {
			result, err := scheduling.ComputeCompliance(latest.Answers())
			if err != nil {
				return nil, err
			}
			patient.ComplianceScore = scheduling.AdjustScoreForHistory(result.Score,
				patient.TotalAppointments, patient.NoShowCount, patient.LateCancellationCount)
			patient.ComplianceTier = scheduling.TierForScore(patient.ComplianceScore)
		}
	}

	if err := s.patients.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}
