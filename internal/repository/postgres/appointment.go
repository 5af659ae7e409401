package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/telemedix/telemed-api/internal/model"
	"github.com/telemedix/telemed-api/internal/repository"
)

type appointmentRepository struct {
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (id, patient_id, doctor_id, appointment_date,
			appointment_time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.AppointmentDate,
		appointment.AppointmentTime,
		appointment.Status,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AppointmentListing, error) {
	query := `
		SELECT a.id, d.first_name AS doctor_name, a.appointment_date,
			   a.appointment_time, a.status
		FROM appointments a
		JOIN doctors d ON a.doctor_id = d.id
		WHERE a.patient_id = $1
		ORDER BY a.appointment_date, a.appointment_time
	`
	appointments := []*model.AppointmentListing{}
	if err := r.db.SelectContext(ctx, &appointments, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// Mutations below filter on both appointment id and patient_id so a patient
// can never touch another patient's row, even with a guessed id.

func (r *appointmentRepository) Reschedule(ctx context.Context, id, patientID uuid.UUID, date, timeOfDay string) (int64, error) {
	query := `
		UPDATE appointments
		SET appointment_date = $1, appointment_time = $2, updated_at = $3
		WHERE id = $4 AND patient_id = $5 AND status <> $6
	`
	result, err := r.db.ExecContext(ctx, query,
		date, timeOfDay, time.Now(), id, patientID, model.AppointmentStatusCancelled)
	if err != nil {
		return 0, fmt.Errorf("failed to reschedule appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

func (r *appointmentRepository) Cancel(ctx context.Context, id, patientID uuid.UUID) (int64, error) {
	// Status update, not a delete: appointment history is retained and
	// cancelling an already-cancelled row stays a no-op.
	query := `
		UPDATE appointments
		SET status = $1, updated_at = $2
		WHERE id = $3 AND patient_id = $4
	`
	result, err := r.db.ExecContext(ctx, query,
		model.AppointmentStatusCancelled, time.Now(), id, patientID)
	if err != nil {
		return 0, fmt.Errorf("failed to cancel appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

func (r *appointmentRepository) Confirm(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `
		UPDATE appointments
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
	`
	result, err := r.db.ExecContext(ctx, query,
		model.AppointmentStatusConfirmed, time.Now(), id, model.AppointmentStatusPending)
	if err != nil {
		return 0, fmt.Errorf("failed to confirm appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}
