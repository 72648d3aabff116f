package repositories

import (
	"VitaClinic/cache"
	"VitaClinic/database"
	"VitaClinic/models"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var activeStatuses = []string{models.BookingPending, models.BookingConfirmed}

type BookingRepository struct {
	cache *cache.Cache
}

func NewBookingRepository(cache *cache.Cache) *BookingRepository {
	return &BookingRepository{cache: cache}
}

// Create inserts a booking under a per-patient lock so the single
// active-booking invariant holds even under concurrent requests.
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return withLock(ctx, fmt.Sprintf("booking_lock:%s", booking.PatientID), func() error {
		var existing models.Booking
		err := database.DB.
			Where("patient_id = ? AND status IN ?", booking.PatientID, activeStatuses).
			First(&existing).Error
		if err == nil {
			return errors.New("patient already has an active booking")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check active bookings: %w", err)
		}

		if booking.ID == "" {
			booking.ID = uuid.New().String()
		}
		if err := database.DB.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := database.DB.Preload("Slot").Preload("Patient").First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

// GetActiveByPatient returns the patient's pending or confirmed booking,
// or nil when they hold none.
func (r *BookingRepository) GetActiveByPatient(ctx context.Context, patientID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := database.DB.Preload("Slot").
		Where("patient_id = ? AND status IN ?", patientID, activeStatuses).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active booking: %w", err)
	}
	return &booking, nil
}

func (r *BookingRepository) GetByPatient(ctx context.Context, patientID string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var bookings []models.Booking
	err := database.DB.Preload("Slot").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get patient bookings: %w", err)
	}
	return bookings, nil
}

// GetByDoctor lists bookings whose slots belong to the doctor within the
// given time range, ordered by slot start.
func (r *BookingRepository) GetByDoctor(ctx context.Context, doctorID string, from, to time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var bookings []models.Booking
	err := database.DB.Preload("Slot").Preload("Patient").
		Joins("JOIN slot ON slot.id = booking.slot_id").
		Where("slot.doctor_id = ? AND slot.start_time >= ? AND slot.start_time <= ?", doctorID, from, to).
		Order("slot.start_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor bookings: %w", err)
	}
	return bookings, nil
}

func (r *BookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	return withLock(ctx, fmt.Sprintf("booking_lock:%s", booking.PatientID), func() error {
		if err := database.DB.Save(booking).Error; err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}
		return nil
	})
}

// CountLateCancellationsSince counts late cancellations in the rolling
// window starting at since. Tier tolerance checks run over the trailing
// 12 months rather than the lifetime counter.
func (r *BookingRepository) CountLateCancellationsSince(ctx context.Context, patientID string, since time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var count int64
	err := database.DB.Model(&models.Booking{}).
		Where("patient_id = ? AND was_late_cancellation = true AND cancelled_at >= ?", patientID, since).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count late cancellations: %w", err)
	}
	return int(count), nil
}
