package services

import (
	"VitaClinic/config"
	"VitaClinic/models"
	"VitaClinic/repositories"
	"VitaClinic/scheduling"
	"VitaClinic/utils"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/pkg/errors"
)

// LateCancellationCutoff is how close to the slot start a cancellation
// counts as late.
const LateCancellationCutoff = 24 * time.Hour

// minUrgencyReasonLen guards emergency bookings against empty or throwaway
// justifications.
const minUrgencyReasonLen = 10

type BookingService struct {
	bookings *repositories.BookingRepository
	slots    *repositories.SlotRepository
	triage   *repositories.TriageRepository
	doctors  *repositories.DoctorRepository
	patients *PatientService
	config   *config.AppConfig
}

func NewBookingService(
	bookings *repositories.BookingRepository,
	slots *repositories.SlotRepository,
	triage *repositories.TriageRepository,
	doctors *repositories.DoctorRepository,
	patients *PatientService,
	config *config.AppConfig,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		slots:    slots,
		triage:   triage,
		doctors:  doctors,
		patients: patients,
		config:   config,
	}
}

// checkSlotKind keeps emergency capacity and regular capacity apart: only
// emergency bookings may take emergency slots, and emergency bookings may
// take nothing else. Applies on first claim and on every reschedule.
func checkSlotKind(slotType string, isEmergency bool) error {
	if isEmergency {
		if slotType != models.SlotEmergency {
			return fmt.Errorf("%w: emergency bookings may only take emergency slots", scheduling.ErrPolicyViolation)
		}
		return nil
	}
	if slotType == models.SlotEmergency {
		return fmt.Errorf("%w: emergency slots require an emergency booking", scheduling.ErrPolicyViolation)
	}
	return nil
}

func (s *BookingService) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingService) GetByPatient(ctx context.Context, patientID string) ([]models.Booking, error) {
	return s.bookings.GetByPatient(ctx, patientID)
}

func (s *BookingService) GetByDoctor(ctx context.Context, doctorID string, from, to time.Time) ([]models.Booking, error) {
	return s.bookings.GetByDoctor(ctx, doctorID, from, to)
}

// Book places a regular booking. The slot must fall inside the patient's
// booking window, pass the slot's access restrictions and still be
// claimable when the status flips.
func (s *BookingService) Book(ctx context.Context, patientID, slotID, reason string, now time.Time) (*models.Booking, error) {
	patient, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, errors.New("patient not found")
	}

	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, errors.New("slot not found")
	}
	if err := checkSlotKind(slot.SlotType, false); err != nil {
		return nil, err
	}

	doctor, err := s.doctors.GetByID(ctx, slot.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, errors.New("doctor not found")
	}

	window, err := s.patients.BookingWindow(ctx, patient, bookingWindowDaysFor(doctor, s.config), now)
	if err != nil {
		return nil, err
	}
	if !window.CanBook {
		return nil, fmt.Errorf("%w: %s", scheduling.ErrPolicyViolation, window.Reason)
	}
	if slot.StartTime.Before(window.Earliest) || slot.StartTime.After(window.Latest) {
		return nil, fmt.Errorf("%w: slot falls outside the booking window %s to %s",
			scheduling.ErrPolicyViolation,
			window.Earliest.Format("2006-01-02"), window.Latest.Format("2006-01-02"))
	}

	if allowed, why := scheduling.CanAccessSlot(patient.Category, patient.ComplianceTier, slot.Restrictions()); !allowed {
		return nil, fmt.Errorf("%w: %s", scheduling.ErrPolicyViolation, why)
	}

	return s.claim(ctx, patient, slot, reason, false, "", nil, now)
}

// BookEmergency places an emergency booking. It bypasses window and
// frequency checks but requires an emergency slot and a substantive
// urgency reason.
func (s *BookingService) BookEmergency(ctx context.Context, patientID, slotID, urgencyReason string, now time.Time) (*models.Booking, error) {
	if len(urgencyReason) < minUrgencyReasonLen {
		return nil, fmt.Errorf("%w: urgency reason must explain the situation", scheduling.ErrValidation)
	}

	patient, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, errors.New("patient not found")
	}

	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, errors.New("slot not found")
	}
	if err := checkSlotKind(slot.SlotType, true); err != nil {
		return nil, err
	}

	return s.claim(ctx, patient, slot, "", true, urgencyReason, nil, now)
}

// claim flips the slot and writes the booking. The slot update is a
// compare-and-set, so two concurrent claims on the same slot cannot both
// succeed; if the booking insert then fails the slot is released again.
func (s *BookingService) claim(ctx context.Context, patient *models.Patient, slot *models.Slot, reason string, isEmergency bool, urgencyReason string, rescheduledFrom *string, now time.Time) (*models.Booking, error) {
	if err := s.slots.MarkBooked(ctx, slot.ID, slot.DoctorID); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		PatientID:         patient.ID,
		SlotID:            slot.ID,
		Status:            models.BookingConfirmed,
		Reason:            reason,
		IsEmergency:       isEmergency,
		UrgencyReason:     urgencyReason,
		RescheduledFromID: rescheduledFrom,
		ConfirmedAt:       &now,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		if releaseErr := s.slots.Release(ctx, slot.ID, slot.DoctorID); releaseErr != nil {
			log.Printf("Failed to release slot %s after booking error: %v", slot.ID, releaseErr)
		}
		return nil, err
	}
	booking.Slot = *slot
	return booking, nil
}

// SubmitTriage records a cancel or reschedule request against an active
// booking and classifies it. Routine requests are auto-approved and applied
// immediately; anything with a medical signal goes to the doctor for review.
func (s *BookingService) SubmitTriage(ctx context.Context, bookingID string, fields scheduling.TriageFields, details string, now time.Time) (*models.TriageRequest, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, errors.New("booking not found")
	}
	if !booking.IsCancellable() {
		return nil, fmt.Errorf("%w: booking is %s and cannot be triaged", scheduling.ErrInvalidRequest, booking.Status)
	}
	if fields.RequestType != scheduling.RequestCancel && fields.RequestType != scheduling.RequestReschedule {
		return nil, fmt.Errorf("%w: unknown request type %q", scheduling.ErrValidation, fields.RequestType)
	}
	if fields.ReasonCategory == "" {
		return nil, fmt.Errorf("%w: reason category is required", scheduling.ErrValidation)
	}

	verdict := scheduling.ClassifyTriage(fields)

	request := &models.TriageRequest{
		BookingID:               bookingID,
		RequestType:             fields.RequestType,
		ReasonCategory:          fields.ReasonCategory,
		ReasonDetails:           details,
		ConditionChanged:        fields.ConditionChanged,
		SymptomsWorsened:        fields.SymptomsWorsened,
		NewSymptoms:             fields.NewSymptoms,
		AcknowledgesImpact:      fields.AcknowledgesImpact,
		CommitsToNewAppointment: fields.CommitsToNewAppointment,
		UrgencyVerdict:          verdict.Urgency,
		AutoApproved:            verdict.AutoApproved,
		SubmittedAt:             now,
	}
	if err := s.triage.Create(ctx, request); err != nil {
		return nil, err
	}

	if verdict.AutoApproved && fields.RequestType == scheduling.RequestCancel {
		if err := s.applyCancellation(ctx, booking, request, now); err != nil {
			return nil, err
		}
		return request, nil
	}

	if !verdict.AutoApproved {
		s.notifyDoctor(ctx, booking, request)
	}
	return request, nil
}

// ReviewTriage records the doctor's decision and, on approval of a cancel
// request, applies the cancellation.
func (s *BookingService) ReviewTriage(ctx context.Context, requestID uint, approved bool, now time.Time) (*models.TriageRequest, error) {
	request, err := s.triage.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, errors.New("triage request not found")
	}
	if request.AutoApproved {
		return nil, fmt.Errorf("%w: request was auto-approved and needs no review", scheduling.ErrInvalidRequest)
	}

	if err := s.triage.Review(ctx, requestID, approved, now); err != nil {
		return nil, err
	}
	request.DoctorApproved = &approved
	request.ReviewedAt = &now

	if approved && request.RequestType == scheduling.RequestCancel {
		booking, err := s.bookings.GetByID(ctx, request.BookingID)
		if err != nil {
			return nil, err
		}
		if booking != nil && booking.IsActive() {
			if err := s.applyCancellation(ctx, booking, request, now); err != nil {
				return nil, err
			}
		}
	}
	return request, nil
}

// Reschedule moves an active booking to a new slot under an approved
// reschedule request. The old booking is closed as rescheduled and the two
// records link to each other.
func (s *BookingService) Reschedule(ctx context.Context, requestID uint, newSlotID string, now time.Time) (*models.Booking, error) {
	request, err := s.triage.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, errors.New("triage request not found")
	}
	if request.RequestType != scheduling.RequestReschedule {
		return nil, fmt.Errorf("%w: request is not a reschedule", scheduling.ErrInvalidRequest)
	}
	if !request.Approved() {
		return nil, fmt.Errorf("%w: reschedule request has not been approved", scheduling.ErrPolicyViolation)
	}
	if !scheduling.AllowsReschedule(request.Fields()) {
		return nil, fmt.Errorf("%w: patient did not commit to a new appointment", scheduling.ErrPolicyViolation)
	}

	booking, err := s.bookings.GetByID(ctx, request.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, errors.New("booking not found")
	}
	if !booking.IsActive() {
		return nil, fmt.Errorf("%w: booking is %s and cannot be rescheduled", scheduling.ErrInvalidRequest, booking.Status)
	}

	patient, err := s.patients.GetByID(ctx, booking.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, errors.New("patient not found")
	}

	newSlot, err := s.slots.GetByID(ctx, newSlotID)
	if err != nil {
		return nil, err
	}
	if newSlot == nil {
		return nil, errors.New("slot not found")
	}
	if err := checkSlotKind(newSlot.SlotType, booking.IsEmergency); err != nil {
		return nil, err
	}
	if allowed, why := scheduling.CanAccessSlot(patient.Category, patient.ComplianceTier, newSlot.Restrictions()); !allowed {
		return nil, fmt.Errorf("%w: %s", scheduling.ErrPolicyViolation, why)
	}

	late := booking.Slot.StartTime.Sub(now) < LateCancellationCutoff

	// Close the old booking first so the single active-booking check does
	// not reject the replacement.
	booking.Status = models.BookingRescheduled
	booking.CancelledAt = &now
	booking.LinkedTriageRequestID = &request.ID
	booking.WasLateCancellation = late
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}
	if err := s.slots.Release(ctx, booking.SlotID, booking.Slot.DoctorID); err != nil {
		log.Printf("Failed to release slot %s after reschedule: %v", booking.SlotID, err)
	}

	oldID := booking.ID
	replacement, err := s.claim(ctx, patient, newSlot, booking.Reason, booking.IsEmergency, booking.UrgencyReason, &oldID, now)
	if err != nil {
		return nil, err
	}

	booking.RescheduledToID = &replacement.ID
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}

	if late {
		if err := s.recordLateCancellation(ctx, booking.PatientID, now); err != nil {
			return nil, err
		}
	}
	return replacement, nil
}

// Complete marks a booking attended and updates the patient's history.
func (s *BookingService) Complete(ctx context.Context, bookingID string, now time.Time) error {
	return s.closeVisit(ctx, bookingID, models.BookingCompleted, now)
}

// MarkNoShow records a missed booking and applies the score penalty.
func (s *BookingService) MarkNoShow(ctx context.Context, bookingID string, now time.Time) error {
	return s.closeVisit(ctx, bookingID, models.BookingNoShow, now)
}

func (s *BookingService) closeVisit(ctx context.Context, bookingID, status string, now time.Time) error {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		return errors.New("booking not found")
	}
	if !booking.IsActive() {
		return fmt.Errorf("%w: booking is %s", scheduling.ErrInvalidRequest, booking.Status)
	}

	booking.Status = status
	if err := s.bookings.Update(ctx, booking); err != nil {
		return err
	}
	_, err = s.patients.RecordVisitOutcome(ctx, booking.PatientID, status, booking.Slot.StartTime)
	return err
}

// CancelByDoctor cancels without triage or penalty and frees the slot.
func (s *BookingService) CancelByDoctor(ctx context.Context, bookingID, reason string, now time.Time) error {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		return errors.New("booking not found")
	}
	if !booking.IsActive() {
		return fmt.Errorf("%w: booking is %s", scheduling.ErrInvalidRequest, booking.Status)
	}

	booking.Status = models.BookingCancelledByDoctor
	booking.Reason = reason
	booking.CancelledAt = &now
	if err := s.bookings.Update(ctx, booking); err != nil {
		return err
	}
	return s.slots.Release(ctx, booking.SlotID, booking.Slot.DoctorID)
}

// applyCancellation closes the booking, frees the slot and, when the
// cancellation lands inside the late cutoff, records the late
// cancellation against the patient.
func (s *BookingService) applyCancellation(ctx context.Context, booking *models.Booking, request *models.TriageRequest, now time.Time) error {
	late := booking.Slot.StartTime.Sub(now) < LateCancellationCutoff

	booking.Status = models.BookingCancelledByPatient
	booking.CancelledAt = &now
	booking.LinkedTriageRequestID = &request.ID
	booking.WasLateCancellation = late
	if err := s.bookings.Update(ctx, booking); err != nil {
		return err
	}

	if err := s.slots.Release(ctx, booking.SlotID, booking.Slot.DoctorID); err != nil {
		log.Printf("Failed to release slot %s after cancellation: %v", booking.SlotID, err)
	}

	if !late {
		return nil
	}
	return s.recordLateCancellation(ctx, booking.PatientID, now)
}

// recordLateCancellation increments the patient's late-cancellation
// counter. The counter moves on every late cancellation; the score is only
// recomputed immediately once the tier's rolling-year tolerance is
// exhausted. The booking was already marked late, so the rolling count
// includes the current strike.
func (s *BookingService) recordLateCancellation(ctx context.Context, patientID string, now time.Time) error {
	patient, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return err
	}
	if patient == nil {
		return errors.New("patient not found")
	}

	recentLate, err := s.bookings.CountLateCancellationsSince(ctx, patientID, scheduling.LateCancelWindowStart(now))
	if err != nil {
		return err
	}
	exceeds, err := scheduling.ExceedsLateCancelTolerance(patient.ComplianceTier, recentLate)
	if err != nil {
		return err
	}

	_, err = s.patients.RecordLateCancellation(ctx, patientID, exceeds, now)
	return err
}

func (s *BookingService) notifyDoctor(ctx context.Context, booking *models.Booking, request *models.TriageRequest) {
	doctor, err := s.doctors.GetByID(ctx, booking.Slot.DoctorID)
	if err != nil || doctor == nil {
		log.Printf("Failed to load doctor for triage notification: %v", err)
		return
	}
	patientName := booking.Patient.FirstName + " " + booking.Patient.LastName
	if err := utils.SendTriageReviewEmail(doctor.Email, patientName,
		string(request.RequestType), string(request.UrgencyVerdict)); err != nil {
		log.Printf("Failed to send triage review email: %v", err)
	}
}
