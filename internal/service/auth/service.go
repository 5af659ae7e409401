package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/telemedix/telemed-api/internal/model"
	"github.com/telemedix/telemed-api/internal/repository"
	"github.com/telemedix/telemed-api/internal/session"
	apperrors "github.com/telemedix/telemed-api/pkg/errors"
	"github.com/telemedix/telemed-api/pkg/metrics"
	"github.com/telemedix/telemed-api/pkg/security"
)

type Service struct {
	patientRepo repository.PatientRepository
	adminRepo   repository.AdminRepository
	sessions    session.Store
	hasher      security.PasswordHasher
	metrics     *metrics.Metrics
}

func NewService(patientRepo repository.PatientRepository, adminRepo repository.AdminRepository,
	sessions session.Store, hasher security.PasswordHasher, m *metrics.Metrics) *Service {
	return &Service{
		patientRepo: patientRepo,
		adminRepo:   adminRepo,
		sessions:    sessions,
		hasher:      hasher,
		metrics:     m,
	}
}

// RegisterPatient hashes the password and inserts the patient row.
func (s *Service) RegisterPatient(ctx context.Context, req *model.RegisterPatientRequest) (*model.Patient, error) {
	existing, err := s.patientRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Store(err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("email already registered")
	}

	start := time.Now()
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Validation("invalid password", err)
	}
	s.metrics.HashingDuration.Observe(time.Since(start).Seconds())

	patient := &model.Patient{
		ID:           uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		PhoneNumber:  req.PhoneNumber,
		DateOfBirth:  req.DateOfBirth,
		Gender:       req.Gender,
		Address:      req.Address,
	}

	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, apperrors.Store(err)
	}
	return patient, nil
}

// LoginPatient verifies credentials and issues a session token. A password
// mismatch is a normal rejection, never an internal error.
func (s *Service) LoginPatient(ctx context.Context, req *model.LoginRequest) (string, *model.Patient, error) {
	patient, err := s.patientRepo.GetByEmail(ctx, req.Email)
	if errors.Is(err, sql.ErrNoRows) {
		s.metrics.LoginsTotal.WithLabelValues("patient", "failure").Inc()
		return "", nil, apperrors.Unauthenticated("invalid email or password")
	}
	if err != nil {
		return "", nil, apperrors.Store(err)
	}

	if err := s.hasher.Compare(patient.PasswordHash, req.Password); err != nil {
		s.metrics.LoginsTotal.WithLabelValues("patient", "failure").Inc()
		return "", nil, apperrors.Unauthenticated("invalid email or password")
	}

	token, err := s.sessions.Create(ctx, session.Identity{
		SubjectID: patient.ID,
		Kind:      session.SubjectPatient,
	})
	if err != nil {
		return "", nil, apperrors.Store(fmt.Errorf("failed to create session: %w", err))
	}

	s.metrics.LoginsTotal.WithLabelValues("patient", "success").Inc()
	s.metrics.SessionsActive.Inc()
	return token, patient, nil
}

// LoginAdmin verifies admin credentials and issues an admin session. The
// role stored on the session is advisory only; the authorization gate
// re-fetches it per request.
func (s *Service) LoginAdmin(ctx context.Context, req *model.AdminLoginRequest) (string, *model.Admin, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, req.Username)
	if errors.Is(err, sql.ErrNoRows) {
		s.metrics.LoginsTotal.WithLabelValues("admin", "failure").Inc()
		return "", nil, apperrors.Unauthenticated("invalid username or password")
	}
	if err != nil {
		return "", nil, apperrors.Store(err)
	}

	if err := s.hasher.Compare(admin.PasswordHash, req.Password); err != nil {
		s.metrics.LoginsTotal.WithLabelValues("admin", "failure").Inc()
		return "", nil, apperrors.Unauthenticated("invalid username or password")
	}

	token, err := s.sessions.Create(ctx, session.Identity{
		SubjectID: admin.ID,
		Kind:      session.SubjectAdmin,
		Role:      admin.Role,
	})
	if err != nil {
		return "", nil, apperrors.Store(fmt.Errorf("failed to create session: %w", err))
	}

	s.metrics.LoginsTotal.WithLabelValues("admin", "success").Inc()
	s.metrics.SessionsActive.Inc()
	return token, admin, nil
}

// Logout destroys the session. Destroying an absent session is not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Destroy(ctx, token); err != nil {
		return apperrors.Store(fmt.Errorf("failed to destroy session: %w", err))
	}
	s.metrics.SessionsActive.Dec()
	return nil
}
