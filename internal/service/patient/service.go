package patient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/telemedix/telemed-api/internal/model"
	"github.com/telemedix/telemed-api/internal/repository"
	"github.com/telemedix/telemed-api/internal/session"
	apperrors "github.com/telemedix/telemed-api/pkg/errors"
)

type Service struct {
	repo     repository.PatientRepository
	sessions session.Store
}

func NewService(repo repository.PatientRepository, sessions session.Store) *Service {
	return &Service{repo: repo, sessions: sessions}
}

func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*model.PatientProfile, error) {
	profile, err := s.repo.GetProfile(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("profile")
	}
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return profile, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, req *model.UpdateProfileRequest) error {
	err := s.repo.UpdateProfile(ctx, id, req)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound("profile")
	}
	if err != nil {
		return apperrors.Store(err)
	}
	return nil
}

// Delete removes the patient row, which cascades to owned appointments, and
// invalidates the calling session.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, token string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Store(err)
	}
	if err := s.sessions.Destroy(ctx, token); err != nil {
		return apperrors.Store(fmt.Errorf("failed to destroy session: %w", err))
	}
	return nil
}

// Search runs the admin roster query with the optional filters.
func (s *Service) Search(ctx context.Context, filter model.PatientSearchFilter) ([]*model.PatientListing, error) {
	patients, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return patients, nil
}
