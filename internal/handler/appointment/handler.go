package appointment

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/telemedix/telemed-api/internal/middleware"
	"github.com/telemedix/telemed-api/internal/model"
	"github.com/telemedix/telemed-api/internal/service/appointment"
	"github.com/telemedix/telemed-api/pkg/errors"
	"github.com/telemedix/telemed-api/pkg/httputil"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextPatientID).(uuid.UUID)

	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	appointment, err := h.service.Book(c.Request.Context(), patientID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, appointment)
}

func (h *Handler) List(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextPatientID).(uuid.UUID)

	appointments, err := h.service.List(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) Reschedule(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextPatientID).(uuid.UUID)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.Validation("invalid appointment ID", err))
		return
	}

	var req model.RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	if err := h.service.Reschedule(c.Request.Context(), id, patientID, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"message": "appointment updated successfully"})
}

// Cancel backs DELETE on an appointment. The row is kept and its status set
// to cancelled.
func (h *Handler) Cancel(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextPatientID).(uuid.UUID)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.Validation("invalid appointment ID", err))
		return
	}

	if err := h.service.Cancel(c.Request.Context(), id, patientID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"message": "appointment cancelled successfully"})
}

// Confirm is admin-gated; it moves a pending appointment to confirmed.
func (h *Handler) Confirm(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.Validation("invalid appointment ID", err))
		return
	}

	if err := h.service.Confirm(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"message": "appointment confirmed successfully"})
}
