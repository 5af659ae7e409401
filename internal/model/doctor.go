package model

import (
	"time"

	"github.com/google/uuid"
)

type Doctor struct {
	ID             uuid.UUID `db:"id" json:"id"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	Email          string    `db:"email" json:"email"`
	Specialization string    `db:"specialization" json:"specialization"`
	PhoneNumber    string    `db:"phone_number" json:"phone_number"`
	Schedule       string    `db:"schedule" json:"schedule"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

type CreateDoctorRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Specialization string `json:"specialization" binding:"required"`
	PhoneNumber    string `json:"phone_number" binding:"required"`
	Schedule       string `json:"schedule"`
}

type UpdateDoctorRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Specialization string `json:"specialization" binding:"required"`
	PhoneNumber    string `json:"phone_number" binding:"required"`
	Schedule       string `json:"schedule"`
}

// DoctorListing is the public view of a doctor, without contact internals.
type DoctorListing struct {
	ID             uuid.UUID `db:"id" json:"id"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	Email          string    `db:"email" json:"email"`
	Specialization string    `db:"specialization" json:"specialization"`
	Schedule       string    `db:"schedule" json:"schedule"`
}
