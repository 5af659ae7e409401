package patient

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/telemedix/telemed-api/internal/middleware"
	"github.com/telemedix/telemed-api/internal/model"
	"github.com/telemedix/telemed-api/internal/service/patient"
	"github.com/telemedix/telemed-api/pkg/errors"
	"github.com/telemedix/telemed-api/pkg/httputil"
)

type Handler struct {
	service *patient.Service
}

func NewHandler(service *patient.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetProfile(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextPatientID).(uuid.UUID)

	profile, err := h.service.GetProfile(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, profile)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextPatientID).(uuid.UUID)

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	if err := h.service.UpdateProfile(c.Request.Context(), patientID, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"message": "profile updated successfully"})
}

func (h *Handler) Delete(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextPatientID).(uuid.UUID)
	token := middleware.TokenFromRequest(c)

	if err := h.service.Delete(c.Request.Context(), patientID, token); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	httputil.RespondWithSuccess(c, gin.H{"message": "patient deleted successfully"})
}

// Search backs the admin roster listing with optional substring and gender
// filters.
func (h *Handler) Search(c *gin.Context) {
	var filter model.PatientSearchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	patients, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, patients)
}
