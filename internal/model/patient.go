package model

import (
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

type Patient struct {
	ID           uuid.UUID `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	PhoneNumber  string    `db:"phone_number" json:"phone_number"`
	DateOfBirth  string    `db:"date_of_birth" json:"date_of_birth"`
	Gender       Gender    `db:"gender" json:"gender"`
	Address      string    `db:"address" json:"address"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type RegisterPatientRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	DateOfBirth string `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	Gender      Gender `json:"gender" binding:"required,gender"`
	Address     string `json:"address" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	DateOfBirth string `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	Gender      Gender `json:"gender" binding:"required,gender"`
	Address     string `json:"address" binding:"required"`
}

// PatientProfile is the patient-facing view of their own record.
type PatientProfile struct {
	FirstName   string `db:"first_name" json:"first_name"`
	LastName    string `db:"last_name" json:"last_name"`
	PhoneNumber string `db:"phone_number" json:"phone_number"`
	DateOfBirth string `db:"date_of_birth" json:"date_of_birth"`
	Gender      Gender `db:"gender" json:"gender"`
	Address     string `db:"address" json:"address"`
}

// PatientListing is the row shape returned by the admin roster search.
type PatientListing struct {
	ID          uuid.UUID `db:"id" json:"id"`
	FirstName   string    `db:"first_name" json:"first_name"`
	LastName    string    `db:"last_name" json:"last_name"`
	Email       string    `db:"email" json:"email"`
	PhoneNumber string    `db:"phone_number" json:"phone_number"`
	Gender      Gender    `db:"gender" json:"gender"`
}

// PatientSearchFilter holds the optional admin roster filters. Zero values
// mean the corresponding predicate is omitted.
type PatientSearchFilter struct {
	Search string `form:"search"`
	Gender Gender `form:"gender"`
}
