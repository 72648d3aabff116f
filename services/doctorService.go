package services

import (
	"VitaClinic/models"
	"VitaClinic/repositories"
	"VitaClinic/scheduling"
	"context"
	"fmt"
)

type DoctorService struct {
	repository *repositories.DoctorRepository
}

func NewDoctorService(repository *repositories.DoctorRepository) *DoctorService {
	return &DoctorService{repository: repository}
}

func (s *DoctorService) Create(ctx context.Context, doctor *models.Doctor) error {
	if err := validateDoctorConfig(doctor); err != nil {
		return err
	}
	return s.repository.Create(ctx, doctor)
}

func (s *DoctorService) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *DoctorService) GetAll(ctx context.Context) ([]models.Doctor, error) {
	return s.repository.GetAll(ctx)
}

func (s *DoctorService) Update(ctx context.Context, doctor *models.Doctor) error {
	if err := validateDoctorConfig(doctor); err != nil {
		return err
	}
	return s.repository.Update(ctx, doctor)
}

func validateDoctorConfig(doctor *models.Doctor) error {
	if doctor.BookingWindowDays <= 0 {
		return fmt.Errorf("%w: booking window must be positive", scheduling.ErrValidation)
	}
	if doctor.SlotDurationMins <= 0 {
		return fmt.Errorf("%w: slot duration must be positive", scheduling.ErrValidation)
	}
	if doctor.EmergencyShare < 0 || doctor.EmergencyShare > 100 {
		return fmt.Errorf("%w: emergency share must be a percentage", scheduling.ErrValidation)
	}
	return nil
}
