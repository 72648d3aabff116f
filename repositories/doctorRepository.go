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
	DoctorCacheExpiry = 7 * 24 * time.Hour
)

type DoctorRepository struct {
	cache *cache.Cache
}

func NewDoctorRepository(cache *cache.Cache) *DoctorRepository {
	return &DoctorRepository{cache: cache}
}

func (r *DoctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	return withLock(ctx, fmt.Sprintf("doctor_lock:%s", doctor.Email), func() error {
		var existing models.Doctor
		if err := database.DB.Where("email = ?", doctor.Email).First(&existing).Error; err == nil {
			return errors.New("doctor with the same email already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for existing doctor: %w", err)
		}

		if doctor.ID == "" {
			doctor.ID = uuid.New().String()
		}
		if err := database.DB.Create(doctor).Error; err != nil {
			return fmt.Errorf("failed to create doctor: %w", err)
		}
		return r.cache.Delete(ctx, r.getDoctorCacheKey(doctor.ID))
	})
}

func (r *DoctorRepository) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getDoctorCacheKey(id)
	var cached models.Doctor
	if hit, err := r.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	} else if err != nil {
		log.Printf("Failed to get doctor from cache: %v", err)
	}

	var doctor models.Doctor
	err := database.DB.First(&doctor, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, doctor, DoctorCacheExpiry); err != nil {
		log.Printf("Failed to set doctor in cache: %v", err)
	}
	return &doctor, nil
}

func (r *DoctorRepository) GetAll(ctx context.Context) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doctors []models.Doctor
	err := database.DB.Order("created_at DESC").Find(&doctors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all doctors: %w", err)
	}
	return doctors, nil
}

func (r *DoctorRepository) Update(ctx context.Context, doctor *models.Doctor) error {
	return withLock(ctx, fmt.Sprintf("doctor_lock:%s", doctor.ID), func() error {
		if err := database.DB.Save(doctor).Error; err != nil {
			return fmt.Errorf("failed to update doctor: %w", err)
		}
		return r.cache.Delete(ctx, r.getDoctorCacheKey(doctor.ID))
	})
}

func (r *DoctorRepository) getDoctorCacheKey(id string) string {
	return fmt.Sprintf("doctor_cache:%s", id)
}
