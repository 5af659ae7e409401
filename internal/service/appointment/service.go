package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/telemedix/telemed-api/internal/model"
	"github.com/telemedix/telemed-api/internal/repository"
	apperrors "github.com/telemedix/telemed-api/pkg/errors"
)

// Postgres foreign key violation, surfaced when a booking references a
// doctor that does not exist.
const fkViolation = "23503"

type Service struct {
	repo repository.AppointmentRepository
}

func NewService(repo repository.AppointmentRepository) *Service {
	return &Service{repo: repo}
}

// Book creates an appointment for the owning patient. Every appointment
// starts in the pending state.
func (s *Service) Book(ctx context.Context, patientID uuid.UUID, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	appointment := &model.Appointment{
		ID:              uuid.New(),
		PatientID:       patientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Status:          model.AppointmentStatusPending,
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == fkViolation {
			return nil, apperrors.Validation("unknown doctor", err)
		}
		return nil, apperrors.Store(err)
	}
	return appointment, nil
}

// List returns the caller's appointments with the doctor name joined in,
// scoped strictly to the session identity.
func (s *Service) List(ctx context.Context, patientID uuid.UUID) ([]*model.AppointmentListing, error) {
	appointments, err := s.repo.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return appointments, nil
}

// Reschedule moves a non-cancelled appointment owned by patientID to a new
// date and time. Zero rows affected means the row does not exist, belongs to
// another patient, or is already cancelled; all three look identical to the
// caller.
func (s *Service) Reschedule(ctx context.Context, id, patientID uuid.UUID, req *model.RescheduleAppointmentRequest) error {
	rows, err := s.repo.Reschedule(ctx, id, patientID, req.AppointmentDate, req.AppointmentTime)
	if err != nil {
		return apperrors.Store(err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment")
	}
	return nil
}

// Cancel transitions an appointment owned by patientID to cancelled.
// Cancelled is terminal and cancelling again is a no-op.
func (s *Service) Cancel(ctx context.Context, id, patientID uuid.UUID) error {
	rows, err := s.repo.Cancel(ctx, id, patientID)
	if err != nil {
		return apperrors.Store(err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment")
	}
	return nil
}

// Confirm moves a pending appointment to confirmed. Admin-gated; the
// update predicate only matches pending rows.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) error {
	rows, err := s.repo.Confirm(ctx, id)
	if err != nil {
		return apperrors.Store(err)
	}
	if rows == 0 {
		return apperrors.NotFound("pending appointment")
	}
	return nil
}
