package appointment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telemedix/telemed-api/internal/model"
	apperrors "github.com/telemedix/telemed-api/pkg/errors"
)

// fakeAppointmentRepo mimics the store's row semantics: mutations match on
// id plus patient_id and report rows affected.
type fakeAppointmentRepo struct {
	doctors      map[uuid.UUID]bool
	appointments map[uuid.UUID]*model.Appointment
}

func newFakeRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		doctors:      make(map[uuid.UUID]bool),
		appointments: make(map[uuid.UUID]*model.Appointment),
	}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appointment *model.Appointment) error {
	if !f.doctors[appointment.DoctorID] {
		return &pq.Error{Code: "23503", Message: "foreign key violation"}
	}
	stored := *appointment
	f.appointments[appointment.ID] = &stored
	return nil
}

func (f *fakeAppointmentRepo) ListForPatient(_ context.Context, patientID uuid.UUID) ([]*model.AppointmentListing, error) {
	listings := []*model.AppointmentListing{}
	for _, a := range f.appointments {
		if a.PatientID == patientID {
			listings = append(listings, &model.AppointmentListing{
				ID:              a.ID,
				AppointmentDate: a.AppointmentDate,
				AppointmentTime: a.AppointmentTime,
				Status:          a.Status,
			})
		}
	}
	return listings, nil
}

func (f *fakeAppointmentRepo) Reschedule(_ context.Context, id, patientID uuid.UUID, date, timeOfDay string) (int64, error) {
	a, ok := f.appointments[id]
	if !ok || a.PatientID != patientID || a.Status == model.AppointmentStatusCancelled {
		return 0, nil
	}
	a.AppointmentDate = date
	a.AppointmentTime = timeOfDay
	return 1, nil
}

func (f *fakeAppointmentRepo) Cancel(_ context.Context, id, patientID uuid.UUID) (int64, error) {
	a, ok := f.appointments[id]
	if !ok || a.PatientID != patientID {
		return 0, nil
	}
	a.Status = model.AppointmentStatusCancelled
	return 1, nil
}

func (f *fakeAppointmentRepo) Confirm(_ context.Context, id uuid.UUID) (int64, error) {
	a, ok := f.appointments[id]
	if !ok || a.Status != model.AppointmentStatusPending {
		return 0, nil
	}
	a.Status = model.AppointmentStatusConfirmed
	return 1, nil
}

func setup(t *testing.T) (*Service, *fakeAppointmentRepo, uuid.UUID) {
	t.Helper()
	repo := newFakeRepo()
	doctorID := uuid.New()
	repo.doctors[doctorID] = true
	return NewService(repo), repo, doctorID
}

func TestBookStartsPending(t *testing.T) {
	svc, repo, doctorID := setup(t)
	patientID := uuid.New()

	appointment, err := svc.Book(context.Background(), patientID, &model.CreateAppointmentRequest{
		DoctorID:        doctorID,
		AppointmentDate: "2026-09-15",
		AppointmentTime: "10:30",
	})
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusPending, appointment.Status)
	assert.Equal(t, patientID, appointment.PatientID)
	assert.NotEqual(t, uuid.Nil, appointment.ID)
	assert.Equal(t, model.AppointmentStatusPending, repo.appointments[appointment.ID].Status)
}

func TestBookUnknownDoctor(t *testing.T) {
	svc, _, _ := setup(t)

	_, err := svc.Book(context.Background(), uuid.New(), &model.CreateAppointmentRequest{
		DoctorID:        uuid.New(),
		AppointmentDate: "2026-09-15",
		AppointmentTime: "10:30",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrValidation, apperrors.Code(err))
}

func TestCancelByOtherPatientHasNoEffect(t *testing.T) {
	svc, repo, doctorID := setup(t)
	owner := uuid.New()
	intruder := uuid.New()

	appointment, err := svc.Book(context.Background(), owner, &model.CreateAppointmentRequest{
		DoctorID:        doctorID,
		AppointmentDate: "2026-09-15",
		AppointmentTime: "10:30",
	})
	require.NoError(t, err)

	err = svc.Cancel(context.Background(), appointment.ID, intruder)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.Code(err))

	// Owner's row is untouched.
	assert.Equal(t, model.AppointmentStatusPending, repo.appointments[appointment.ID].Status)
}

func TestRescheduleByOtherPatientHasNoEffect(t *testing.T) {
	svc, repo, doctorID := setup(t)
	owner := uuid.New()

	appointment, err := svc.Book(context.Background(), owner, &model.CreateAppointmentRequest{
		DoctorID:        doctorID,
		AppointmentDate: "2026-09-15",
		AppointmentTime: "10:30",
	})
	require.NoError(t, err)

	err = svc.Reschedule(context.Background(), appointment.ID, uuid.New(), &model.RescheduleAppointmentRequest{
		AppointmentDate: "2026-09-20",
		AppointmentTime: "14:00",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.Code(err))
	assert.Equal(t, "2026-09-15", repo.appointments[appointment.ID].AppointmentDate)
}

func TestCancelIsTerminalAndIdempotent(t *testing.T) {
	svc, repo, doctorID := setup(t)
	owner := uuid.New()

	appointment, err := svc.Book(context.Background(), owner, &model.CreateAppointmentRequest{
		DoctorID:        doctorID,
		AppointmentDate: "2026-09-15",
		AppointmentTime: "10:30",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), appointment.ID, owner))
	assert.Equal(t, model.AppointmentStatusCancelled, repo.appointments[appointment.ID].Status)

	// Second cancel matches the row again and stays a no-op.
	assert.NoError(t, svc.Cancel(context.Background(), appointment.ID, owner))
	assert.Equal(t, model.AppointmentStatusCancelled, repo.appointments[appointment.ID].Status)

	// No transition out of cancelled: reschedule is rejected.
	err = svc.Reschedule(context.Background(), appointment.ID, owner, &model.RescheduleAppointmentRequest{
		AppointmentDate: "2026-09-20",
		AppointmentTime: "14:00",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.Code(err))
}

func TestRescheduleKeepsStatus(t *testing.T) {
	svc, repo, doctorID := setup(t)
	owner := uuid.New()

	appointment, err := svc.Book(context.Background(), owner, &model.CreateAppointmentRequest{
		DoctorID:        doctorID,
		AppointmentDate: "2026-09-15",
		AppointmentTime: "10:30",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Reschedule(context.Background(), appointment.ID, owner, &model.RescheduleAppointmentRequest{
		AppointmentDate: "2026-09-20",
		AppointmentTime: "14:00",
	}))

	stored := repo.appointments[appointment.ID]
	assert.Equal(t, "2026-09-20", stored.AppointmentDate)
	assert.Equal(t, "14:00", stored.AppointmentTime)
	assert.Equal(t, model.AppointmentStatusPending, stored.Status)
}

func TestConfirmPendingOnly(t *testing.T) {
	svc, repo, doctorID := setup(t)
	owner := uuid.New()

	appointment, err := svc.Book(context.Background(), owner, &model.CreateAppointmentRequest{
		DoctorID:        doctorID,
		AppointmentDate: "2026-09-15",
		AppointmentTime: "10:30",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Confirm(context.Background(), appointment.ID))
	assert.Equal(t, model.AppointmentStatusConfirmed, repo.appointments[appointment.ID].Status)

	// Confirming a non-pending appointment finds no row.
	err = svc.Confirm(context.Background(), appointment.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.Code(err))
}

func TestListScopedToPatient(t *testing.T) {
	svc, _, doctorID := setup(t)
	alice := uuid.New()
	bob := uuid.New()

	_, err := svc.Book(context.Background(), alice, &model.CreateAppointmentRequest{
		DoctorID:        doctorID,
		AppointmentDate: "2026-09-15",
		AppointmentTime: "10:30",
	})
	require.NoError(t, err)

	listings, err := svc.List(context.Background(), bob)
	require.NoError(t, err)
	assert.Empty(t, listings)

	listings, err = svc.List(context.Background(), alice)
	require.NoError(t, err)
	assert.Len(t, listings, 1)
}
