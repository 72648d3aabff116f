package services

import (
	"VitaClinic/config"
	"VitaClinic/models"
	"VitaClinic/repositories"
	"VitaClinic/scheduling"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type SlotService struct {
	slots    *repositories.SlotRepository
	doctors  *repositories.DoctorRepository
	patients *PatientService
	config   *config.AppConfig
}

func NewSlotService(
	slots *repositories.SlotRepository,
	doctors *repositories.DoctorRepository,
	patients *PatientService,
	config *config.AppConfig,
) *SlotService {
	return &SlotService{
		slots:    slots,
		doctors:  doctors,
		patients: patients,
		config:   config,
	}
}

func (s *SlotService) Create(ctx context.Context, slot *models.Slot) error {
	if slot.EndTime.Before(slot.StartTime) || slot.EndTime.Equal(slot.StartTime) {
		return fmt.Errorf("%w: slot end must be after start", scheduling.ErrValidation)
	}
	if slot.Status == "" {
		slot.Status = models.SlotAvailable
	}
	return s.slots.Create(ctx, slot)
}

func (s *SlotService) GetByID(ctx context.Context, id string) (*models.Slot, error) {
	return s.slots.GetByID(ctx, id)
}

func (s *SlotService) Block(ctx context.Context, slotID, doctorID string) error {
	return s.slots.Block(ctx, slotID, doctorID)
}

// GenerateRecurring creates daily slot runs over a date range from the
// doctor's configured duration. Weekends are skipped. A shared recurrence
// group ID ties the generated slots together.
func (s *SlotService) GenerateRecurring(ctx context.Context, doctorID string, from, to time.Time, dayStartHour, dayEndHour int, slotType string, now time.Time) ([]models.Slot, error) {
	doctor, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, errors.New("doctor not found")
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end before start", scheduling.ErrValidation)
	}
	if dayStartHour < 0 || dayEndHour > 24 || dayEndHour <= dayStartHour {
		return nil, fmt.Errorf("%w: invalid working hours %d-%d", scheduling.ErrValidation, dayStartHour, dayEndHour)
	}

	duration := time.Duration(doctor.SlotDurationMins) * time.Minute
	groupID := uuid.New().String()

	var slots []models.Slot
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), dayStartHour, 0, 0, 0, day.Location())
		dayEnd := time.Date(day.Year(), day.Month(), day.Day(), dayEndHour, 0, 0, 0, day.Location())
		for start := dayStart; start.Add(duration).Before(dayEnd) || start.Add(duration).Equal(dayEnd); start = start.Add(duration) {
			if start.Before(now) {
				continue
			}
			slots = append(slots, models.Slot{
				ID:                uuid.New().String(),
				DoctorID:          doctorID,
				StartTime:         start,
				EndTime:           start.Add(duration),
				DurationMins:      doctor.SlotDurationMins,
				Status:            models.SlotAvailable,
				SlotType:          slotType,
				RecurrenceGroupID: groupID,
			})
		}
	}
	if len(slots) == 0 {
		return nil, fmt.Errorf("%w: range produced no slots", scheduling.ErrValidation)
	}

	if err := s.slots.CreateBatch(ctx, doctorID, slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// AvailableForPatient lists the doctor's open slots the patient can
// actually take: inside their booking window and passing each slot's
// access restrictions. Emergency slots are excluded here.
func (s *SlotService) AvailableForPatient(ctx context.Context, doctorID, patientID string, now time.Time) ([]models.Slot, scheduling.BookingWindow, error) {
	patient, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, scheduling.BookingWindow{}, err
	}
	if patient == nil {
		return nil, scheduling.BookingWindow{}, errors.New("patient not found")
	}

	doctor, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		return nil, scheduling.BookingWindow{}, err
	}
	if doctor == nil {
		return nil, scheduling.BookingWindow{}, errors.New("doctor not found")
	}

	window, err := s.patients.BookingWindow(ctx, patient, bookingWindowDaysFor(doctor, s.config), now)
	if err != nil {
		return nil, scheduling.BookingWindow{}, err
	}
	if !window.CanBook {
		return nil, window, nil
	}

	candidates, err := s.slots.GetAvailable(ctx, doctorID, window.Earliest, window.Latest)
	if err != nil {
		return nil, scheduling.BookingWindow{}, err
	}

	var eligible []models.Slot
	for _, slot := range candidates {
		if slot.SlotType == models.SlotEmergency {
			continue
		}
		if allowed, _ := scheduling.CanAccessSlot(patient.Category, patient.ComplianceTier, slot.Restrictions()); allowed {
			eligible = append(eligible, slot)
		}
	}
	return eligible, window, nil
}

// ReserveUrgent converts a share of a doctor's open slots into reserved
// capacity for urgent cases and returns how many were set aside.
func (s *SlotService) ReserveUrgent(ctx context.Context, doctorID string, percentage float64, now time.Time) (int, error) {
	if percentage <= 0 || percentage > 1 {
		return 0, fmt.Errorf("%w: reserve percentage must be in (0, 1]", scheduling.ErrValidation)
	}
	return s.slots.ReserveUrgent(ctx, doctorID, percentage, now)
}

// ReleaseUnusedReserved frees reserved slots that are about to start
// unclaimed, returning them to general availability.
func (s *SlotService) ReleaseUnusedReserved(ctx context.Context, doctorID string, hoursBefore int, now time.Time) (int, error) {
	if hoursBefore <= 0 {
		return 0, fmt.Errorf("%w: hours before start must be positive", scheduling.ErrValidation)
	}
	return s.slots.ReleaseUnusedReserved(ctx, doctorID, hoursBefore, now)
}

// Scarcity measures a doctor's supply over the configured lookahead and
// returns the derived scarcity level with the raw counts.
func (s *SlotService) Scarcity(ctx context.Context, doctorID string, now time.Time) (scheduling.ScarcityLevel, int, int, error) {
	to := now.AddDate(0, 0, s.config.ScarcityLookaheadDays)
	available, total, err := s.slots.CountSupply(ctx, doctorID, now, to)
	if err != nil {
		return "", 0, 0, err
	}
	return scheduling.ScarcityLevelOf(available, total), available, total, nil
}

// RankWaitlist prioritizes the doctor's demand against current supply.
// The roster is every unarchived patient whose booking window is open and
// who holds no active booking; the emergency pool is sized from the
// doctor's configured share of available slots.
func (s *SlotService) RankWaitlist(ctx context.Context, doctorID string, now time.Time) (scheduling.PriorityRanking, error) {
	doctor, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		return scheduling.PriorityRanking{}, err
	}
	if doctor == nil {
		return scheduling.PriorityRanking{}, errors.New("doctor not found")
	}

	to := now.AddDate(0, 0, s.config.ScarcityLookaheadDays)
	available, total, err := s.slots.CountSupply(ctx, doctorID, now, to)
	if err != nil {
		return scheduling.PriorityRanking{}, err
	}

	patients, err := s.patients.GetAll(ctx)
	if err != nil {
		return scheduling.PriorityRanking{}, err
	}

	var roster []scheduling.RosterEntry
	for i := range patients {
		patient := &patients[i]
		window, err := s.patients.BookingWindow(ctx, patient, bookingWindowDaysFor(doctor, s.config), now)
		if err != nil {
			return scheduling.PriorityRanking{}, err
		}
		// Blocked outright: active booking or questionnaire issues. Closed
		// windows with a future opening date still count as demand.
		if window.Earliest.IsZero() {
			continue
		}
		roster = append(roster, scheduling.RosterEntry{
			PatientID:        patient.ID,
			Category:         patient.Category,
			ComplianceScore:  patient.ComplianceScore,
			Tier:             patient.ComplianceTier,
			EarliestBookable: window.Earliest,
			LastVisit:        patient.LastCompletedVisitAt,
		})
	}

	share := doctor.EmergencyShare
	if share == 0 {
		share = s.config.EmergencySharePercent
	}
	emergencySlots := available * share / 100
	return scheduling.RankForScarcity(roster, available, total, emergencySlots, now)
}

// bookingWindowDaysFor prefers a doctor's configured horizon over the
// application default. Every path that sizes a patient's booking window
// goes through this so a doctor row without a horizon behaves the same
// everywhere.
func bookingWindowDaysFor(doctor *models.Doctor, cfg *config.AppConfig) int {
	if doctor.BookingWindowDays > 0 {
		return doctor.BookingWindowDays
	}
	return cfg.DefaultBookingWindowDays
}
