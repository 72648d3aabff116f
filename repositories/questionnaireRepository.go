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
	QuestionnaireCacheExpiry = 24 * time.Hour
)

type QuestionnaireRepository struct {
	cache *cache.Cache
}

func NewQuestionnaireRepository(cache *cache.Cache) *QuestionnaireRepository {
	return &QuestionnaireRepository{cache: cache}
}

// Create stores a new questionnaire snapshot. Rows are immutable once
// written; a retake creates a new row and becomes the active one.
func (r *QuestionnaireRepository) Create(ctx context.Context, questionnaire *models.ComplianceQuestionnaire) error {
	return withLock(ctx, fmt.Sprintf("questionnaire_lock:%s", questionnaire.PatientID), func() error {
		if err := database.DB.Create(questionnaire).Error; err != nil {
			return fmt.Errorf("failed to create questionnaire: %w", err)
		}
		return r.cache.Delete(ctx, r.getLatestCacheKey(questionnaire.PatientID))
	})
}

// GetLatestByPatient returns the patient's most recent questionnaire, or
// nil when none has ever been submitted.
func (r *QuestionnaireRepository) GetLatestByPatient(ctx context.Context, patientID string) (*models.ComplianceQuestionnaire, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getLatestCacheKey(patientID)
	var cached models.ComplianceQuestionnaire
	if hit, err := r.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	} else if err != nil {
		log.Printf("Failed to get questionnaire from cache: %v", err)
	}

	var questionnaire models.ComplianceQuestionnaire
	err := database.DB.Where("patient_id = ?", patientID).
		Order("submitted_at DESC").
		First(&questionnaire).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get questionnaire: %w", err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, questionnaire, QuestionnaireCacheExpiry); err != nil {
		log.Printf("Failed to set questionnaire in cache: %v", err)
	}
	return &questionnaire, nil
}

func (r *QuestionnaireRepository) getLatestCacheKey(patientID string) string {
	return fmt.Sprintf("questionnaire_cache:%s", patientID)
}
