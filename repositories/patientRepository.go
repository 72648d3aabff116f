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

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PatientCacheExpiry = 7 * 24 * time.Hour
)

type PatientRepository struct {
	cache *cache.Cache
}

func NewPatientRepository(cache *cache.Cache) *PatientRepository {
	return &PatientRepository{cache: cache}
}

func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	return withLock(ctx, fmt.Sprintf("patient_lock:%s", patient.Email), func() error {
		var existing models.Patient
		if err := database.DB.Where("email = ?", patient.Email).First(&existing).Error; err == nil {
			return errors.New("patient with the same email already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for existing patient: %w", err)
		}

		if patient.ID == "" {
			patient.ID = uuid.New().String()
		}
		if err := database.DB.Create(patient).Error; err != nil {
			return fmt.Errorf("failed to create patient: %w", err)
		}
		return r.invalidate(ctx, patient.ID)
	})
}

func (r *PatientRepository) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getPatientCacheKey(id)
	var cached models.Patient
	if hit, err := r.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	} else if err != nil {
		log.Printf("Failed to get patient from cache: %v", err)
	}

	var patient models.Patient
	err := database.DB.First(&patient, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, patient, PatientCacheExpiry); err != nil {
		log.Printf("Failed to set patient in cache: %v", err)
	}
	return &patient, nil
}

func (r *PatientRepository) GetAll(ctx context.Context) ([]models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "patients_cache"
	var cached []models.Patient
	if hit, err := r.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	} else if err != nil {
		log.Printf("Failed to get patients from cache: %v", err)
	}

	var patients []models.Patient
	err := database.DB.Where("archived = false").Order("created_at DESC").Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all patients: %w", err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, patients, PatientCacheExpiry); err != nil {
		log.Printf("Failed to set patients in cache: %v", err)
	}
	return patients, nil
}

func (r *PatientRepository) Update(ctx context.Context, patient *models.Patient) error {
	return withLock(ctx, fmt.Sprintf("patient_lock:%s", patient.ID), func() error {
		if err := database.DB.Save(patient).Error; err != nil {
			return fmt.Errorf("failed to update patient: %w", err)
		}
		return r.invalidate(ctx, patient.ID)
	})
}

// Archive marks a patient record as archived on account closure.
// Patient rows are never physically deleted.
func (r *PatientRepository) Archive(ctx context.Context, id string) error {
	return withLock(ctx, fmt.Sprintf("patient_lock:%s", id), func() error {
		err := database.DB.Model(&models.Patient{}).Where("id = ?", id).Update("archived", true).Error
		if err != nil {
			return fmt.Errorf("failed to archive patient: %w", err)
		}
		return r.invalidate(ctx, id)
	})
}

func (r *PatientRepository) invalidate(ctx context.Context, id string) error {
	if err := r.cache.Delete(ctx, r.getPatientCacheKey(id)); err != nil {
		return fmt.Errorf("failed to delete patient cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, "patients_cache")
}

func (r *PatientRepository) getPatientCacheKey(id string) string {
	return fmt.Sprintf("patient_cache:%s", id)
}
