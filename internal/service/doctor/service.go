package doctor

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/telemedix/telemed-api/internal/model"
	"github.com/telemedix/telemed-api/internal/repository"
	apperrors "github.com/telemedix/telemed-api/pkg/errors"
)

type Service struct {
	repo repository.DoctorRepository
}

func NewService(repo repository.DoctorRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	doctor := &model.Doctor{
		ID:             uuid.New(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Specialization: req.Specialization,
		PhoneNumber:    req.PhoneNumber,
		Schedule:       req.Schedule,
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, apperrors.Store(err)
	}
	return doctor, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateDoctorRequest) error {
	doctor := &model.Doctor{
		ID:             id,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Specialization: req.Specialization,
		PhoneNumber:    req.PhoneNumber,
		Schedule:       req.Schedule,
	}

	err := s.repo.Update(ctx, doctor)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound("doctor")
	}
	if err != nil {
		return apperrors.Store(err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound("doctor")
	}
	if err != nil {
		return apperrors.Store(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]*model.DoctorListing, error) {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return doctors, nil
}
