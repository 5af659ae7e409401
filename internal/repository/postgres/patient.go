package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/telemedix/telemed-api/internal/model"
	"github.com/telemedix/telemed-api/internal/repository"
)

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (id, first_name, last_name, email, password_hash,
			phone_number, date_of_birth, gender, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.FirstName,
		patient.LastName,
		patient.Email,
		patient.PasswordHash,
		patient.PhoneNumber,
		patient.DateOfBirth,
		patient.Gender,
		patient.Address,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) GetByEmail(ctx context.Context, email string) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE email = $1`
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient by email: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) GetProfile(ctx context.Context, id uuid.UUID) (*model.PatientProfile, error) {
	query := `
		SELECT first_name, last_name, phone_number, date_of_birth, gender, address
		FROM patients
		WHERE id = $1
	`
	var profile model.PatientProfile
	err := r.db.GetContext(ctx, &profile, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient profile: %w", err)
	}
	return &profile, nil
}

func (r *patientRepository) UpdateProfile(ctx context.Context, id uuid.UUID, req *model.UpdateProfileRequest) error {
	query := `
		UPDATE patients
		SET first_name = $1, last_name = $2, phone_number = $3,
			date_of_birth = $4, gender = $5, address = $6, updated_at = $7
		WHERE id = $8
	`
	result, err := r.db.ExecContext(ctx, query,
		req.FirstName,
		req.LastName,
		req.PhoneNumber,
		req.DateOfBirth,
		req.Gender,
		req.Address,
		time.Now(),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Appointments cascade via their patient_id foreign key.
	query := `DELETE FROM patients WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Search(ctx context.Context, filter model.PatientSearchFilter) ([]*model.PatientListing, error) {
	query, args := buildPatientSearch(filter)

	patients := []*model.PatientListing{}
	if err := r.db.SelectContext(ctx, &patients, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return patients, nil
}

// buildPatientSearch composes the roster query from an always-true base and
// the optional filters, each contributing its own bound parameters. User
// input is never concatenated into the query text.
func buildPatientSearch(filter model.PatientSearchFilter) (string, []interface{}) {
	query := `
		SELECT id, first_name, last_name, email, phone_number, gender
		FROM patients
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query += fmt.Sprintf(" AND (first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)",
			argCount, argCount+1, argCount+2)
		args = append(args, term, term, term)
		argCount += 3
	}

	if filter.Gender != "" {
		query += fmt.Sprintf(" AND gender = $%d", argCount)
		args = append(args, filter.Gender)
		argCount++
	}

	query += " ORDER BY last_name, first_name"
	return query, args
}
