package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/telemedix/telemed-api/internal/model"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	GetByEmail(ctx context.Context, email string) (*model.Patient, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*model.PatientProfile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req *model.UpdateProfileRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, filter model.PatientSearchFilter) ([]*model.PatientListing, error)
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	Update(ctx context.Context, doctor *model.Doctor) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.DoctorListing, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AppointmentListing, error)
	// Reschedule updates date and time for a non-cancelled appointment owned
	// by patientID, returning the number of rows affected.
	Reschedule(ctx context.Context, id, patientID uuid.UUID, date, timeOfDay string) (int64, error)
	// Cancel marks an appointment owned by patientID cancelled, returning
	// the number of rows affected.
	Cancel(ctx context.Context, id, patientID uuid.UUID) (int64, error)
	// Confirm moves a pending appointment to confirmed, returning the number
	// of rows affected.
	Confirm(ctx context.Context, id uuid.UUID) (int64, error)
}

type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*model.Admin, error)
	// GetRole fetches the current role by admin id. The authorization gate
	// calls this on every admin request so a revoked role takes effect on
	// the next request.
	GetRole(ctx context.Context, id uuid.UUID) (model.AdminRole, error)
}
