package repositories

import (
	"VitaClinic/cache"
	"VitaClinic/database"
	"VitaClinic/models"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

const (
	SlotCacheExpiry = time.Hour
)

// ErrSlotNotAvailable is returned when a booking race loses: the slot was
// taken between listing and claiming it.
var ErrSlotNotAvailable = errors.New("slot is not available")

type SlotRepository struct {
	cache *cache.Cache
}

func NewSlotRepository(cache *cache.Cache) *SlotRepository {
	return &SlotRepository{cache: cache}
}

func (r *SlotRepository) Create(ctx context.Context, slot *models.Slot) error {
	return withLock(ctx, fmt.Sprintf("slot_lock:%s", slot.ID), func() error {
		if err := database.DB.Create(slot).Error; err != nil {
			return fmt.Errorf("failed to create slot: %w", err)
		}
		return r.invalidateSupply(ctx, slot.DoctorID)
	})
}

// CreateBatch inserts a generated run of recurring slots in one transaction.
func (r *SlotRepository) CreateBatch(ctx context.Context, doctorID string, slots []models.Slot) error {
	if len(slots) == 0 {
		return nil
	}
	return withLock(ctx, fmt.Sprintf("slot_batch_lock:%s", doctorID), func() error {
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&slots).Error
		})
		if err != nil {
			return fmt.Errorf("failed to create slots: %w", err)
		}
		return r.invalidateSupply(ctx, doctorID)
	})
}

func (r *SlotRepository) GetByID(ctx context.Context, id string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.Slot
	err := database.DB.First(&slot, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}
	return &slot, nil
}

// GetAvailable lists a doctor's open slots inside [from, to], earliest first.
func (r *SlotRepository) GetAvailable(ctx context.Context, doctorID string, from, to time.Time) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slots []models.Slot
	err := database.DB.
		Where("doctor_id = ? AND status = ? AND start_time >= ? AND start_time <= ?",
			doctorID, models.SlotAvailable, from, to).
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get available slots: %w", err)
	}
	return slots, nil
}

// CountSupply returns (available, total) slot counts for a doctor's
// upcoming window. The ratio drives the scarcity level, so short cache
// staleness only affects fairness ordering, never slot uniqueness.
func (r *SlotRepository) CountSupply(ctx context.Context, doctorID string, from, to time.Time) (int, int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	type supply struct {
		Available int
		Total     int
	}
	cacheKey := r.getSupplyCacheKey(doctorID)
	var cached supply
	if hit, err := r.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return cached.Available, cached.Total, nil
	} else if err != nil {
		log.Printf("Failed to get slot supply from cache: %v", err)
	}

	var available, total int64
	err := database.DB.Model(&models.Slot{}).
		Where("doctor_id = ? AND start_time >= ? AND start_time <= ?", doctorID, from, to).
		Count(&total).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count slots: %w", err)
	}
	err = database.DB.Model(&models.Slot{}).
		Where("doctor_id = ? AND status = ? AND start_time >= ? AND start_time <= ?",
			doctorID, models.SlotAvailable, from, to).
		Count(&available).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count available slots: %w", err)
	}
	counted := supply{Available: int(available), Total: int(total)}

	// Short expiry: supply shifts with every booking.
	if err := r.cache.SetJSON(ctx, cacheKey, counted, 30*time.Second); err != nil {
		log.Printf("Failed to set slot supply in cache: %v", err)
	}
	return counted.Available, counted.Total, nil
}

// MarkBooked claims a slot with a compare-and-swap on its status so that
// two concurrent bookings can never both win the same slot.
func (r *SlotRepository) MarkBooked(ctx context.Context, slotID, doctorID string) error {
	return withLock(ctx, fmt.Sprintf("slot_lock:%s", slotID), func() error {
		result := database.DB.Model(&models.Slot{}).
			Where("id = ? AND status IN ?", slotID, []string{models.SlotAvailable, models.SlotReserved}).
			Update("status", models.SlotBooked)
		if result.Error != nil {
			return fmt.Errorf("failed to mark slot booked: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrSlotNotAvailable
		}
		return r.invalidateSupply(ctx, doctorID)
	})
}

// Release returns a previously booked slot to the open pool.
func (r *SlotRepository) Release(ctx context.Context, slotID, doctorID string) error {
	return withLock(ctx, fmt.Sprintf("slot_lock:%s", slotID), func() error {
		err := database.DB.Model(&models.Slot{}).
			Where("id = ?", slotID).
			Update("status", models.SlotAvailable).Error
		if err != nil {
			return fmt.Errorf("failed to release slot: %w", err)
		}
		return r.invalidateSupply(ctx, doctorID)
	})
}

// Block withdraws a slot from booking entirely (doctor break, meeting).
func (r *SlotRepository) Block(ctx context.Context, slotID, doctorID string) error {
	return withLock(ctx, fmt.Sprintf("slot_lock:%s", slotID), func() error {
		err := database.DB.Model(&models.Slot{}).
			Where("id = ? AND status = ?", slotID, models.SlotAvailable).
			Update("status", models.SlotBlocked).Error
		if err != nil {
			return fmt.Errorf("failed to block slot: %w", err)
		}
		return r.invalidateSupply(ctx, doctorID)
	})
}

// ReserveUrgent withdraws a share of the nearest open slots into the
// urgent-only reserve and returns how many were reserved.
func (r *SlotRepository) ReserveUrgent(ctx context.Context, doctorID string, percentage float64, now time.Time) (int, error) {
	var reserved int
	err := withLock(ctx, fmt.Sprintf("slot_batch_lock:%s", doctorID), func() error {
		var slots []models.Slot
		err := database.DB.
			Where("doctor_id = ? AND status = ? AND start_time > ?", doctorID, models.SlotAvailable, now).
			Order("start_time ASC").
			Find(&slots).Error
		if err != nil {
			return fmt.Errorf("failed to list slots for reservation: %w", err)
		}

		toReserve := int(float64(len(slots)) * percentage)
		for _, slot := range slots[:toReserve] {
			err := database.DB.Model(&models.Slot{}).
				Where("id = ?", slot.ID).
				Updates(map[string]interface{}{"status": models.SlotReserved, "urgent_only": true}).Error
			if err != nil {
				return fmt.Errorf("failed to reserve slot: %w", err)
			}
			reserved++
		}
		return r.invalidateSupply(ctx, doctorID)
	})
	return reserved, err
}

// ReleaseUnusedReserved returns reserved slots whose start time is within
// hoursBefore to the open pool, so held capacity is not wasted.
func (r *SlotRepository) ReleaseUnusedReserved(ctx context.Context, doctorID string, hoursBefore int, now time.Time) (int, error) {
	var released int64
	err := withLock(ctx, fmt.Sprintf("slot_batch_lock:%s", doctorID), func() error {
		threshold := now.Add(time.Duration(hoursBefore) * time.Hour)
		result := database.DB.Model(&models.Slot{}).
			Where("doctor_id = ? AND status = ? AND start_time > ? AND start_time <= ?",
				doctorID, models.SlotReserved, now, threshold).
			Updates(map[string]interface{}{"status": models.SlotAvailable, "urgent_only": false})
		if result.Error != nil {
			return fmt.Errorf("failed to release reserved slots: %w", result.Error)
		}
		released = result.RowsAffected
		return r.invalidateSupply(ctx, doctorID)
	})
	return int(released), err
}

func (r *SlotRepository) invalidateSupply(ctx context.Context, doctorID string) error {
	return r.cache.Delete(ctx, r.getSupplyCacheKey(doctorID))
}

func (r *SlotRepository) getSupplyCacheKey(doctorID string) string {
	return fmt.Sprintf("slot_supply_cache:%s", doctorID)
}
