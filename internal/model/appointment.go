package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID              uuid.UUID         `db:"id" json:"id"`
	PatientID       uuid.UUID         `db:"patient_id" json:"patient_id"`
	DoctorID        uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	AppointmentDate string            `db:"appointment_date" json:"appointment_date"`
	AppointmentTime string            `db:"appointment_time" json:"appointment_time"`
	Status          AppointmentStatus `db:"status" json:"status"`
	CreatedAt       time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time         `db:"updated_at" json:"updated_at"`
}

type CreateAppointmentRequest struct {
	DoctorID        uuid.UUID `json:"doctor_id" binding:"required"`
	AppointmentDate string    `json:"appointment_date" binding:"required,datetime=2006-01-02"`
	AppointmentTime string    `json:"appointment_time" binding:"required,datetime=15:04"`
}

type RescheduleAppointmentRequest struct {
	AppointmentDate string `json:"appointment_date" binding:"required,datetime=2006-01-02"`
	AppointmentTime string `json:"appointment_time" binding:"required,datetime=15:04"`
}

// AppointmentListing joins the doctor name onto an appointment row for the
// patient-facing listing.
type AppointmentListing struct {
	ID              uuid.UUID         `db:"id" json:"id"`
	DoctorName      string            `db:"doctor_name" json:"doctor_name"`
	AppointmentDate string            `db:"appointment_date" json:"appointment_date"`
	AppointmentTime string            `db:"appointment_time" json:"appointment_time"`
	Status          AppointmentStatus `db:"status" json:"status"`
}
