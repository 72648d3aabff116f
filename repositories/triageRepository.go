package repositories

import (
	"VitaClinic/cache"
	"VitaClinic/database"
	"VitaClinic/models"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type TriageRepository struct {
	cache *cache.Cache
}

func NewTriageRepository(cache *cache.Cache) *TriageRepository {
	return &TriageRepository{cache: cache}
}

// Create stores a triage request. Requests are immutable once submitted;
// only the review fields change afterwards.
func (r *TriageRepository) Create(ctx context.Context, request *models.TriageRequest) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := database.DB.Create(request).Error; err != nil {
		return fmt.Errorf("failed to create triage request: %w", err)
	}
	return nil
}

func (r *TriageRepository) GetByID(ctx context.Context, id uint) (*models.TriageRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var request models.TriageRequest
	err := database.DB.First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get triage request: %w", err)
	}
	return &request, nil
}

// Review records a doctor decision on a non auto-approved request.
func (r *TriageRepository) Review(ctx context.Context, id uint, approved bool, now time.Time) error {
	return withLock(ctx, fmt.Sprintf("triage_lock:%d", id), func() error {
		result := database.DB.Model(&models.TriageRequest{}).
			Where("id = ? AND reviewed_at IS NULL", id).
			Updates(map[string]interface{}{
				"doctor_approved": approved,
				"reviewed_at":     now,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to review triage request: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.New("triage request not found or already reviewed")
		}
		return nil
	})
}

// GetPending lists requests awaiting doctor review, oldest first.
func (r *TriageRepository) GetPending(ctx context.Context) ([]models.TriageRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var requests []models.TriageRequest
	err := database.DB.
		Where("auto_approved = false AND reviewed_at IS NULL").
		Order("submitted_at ASC").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get pending triage requests: %w", err)
	}
	return requests, nil
}
