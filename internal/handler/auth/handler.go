package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/telemedix/telemed-api/internal/middleware"
	"github.com/telemedix/telemed-api/internal/model"
	"github.com/telemedix/telemed-api/internal/service/auth"
	"github.com/telemedix/telemed-api/pkg/errors"
	"github.com/telemedix/telemed-api/pkg/httputil"
)

// Session cookies live until browser close when the store has no TTL; the
// store remains the source of truth either way.
const cookieMaxAge = 0

type Handler struct {
	service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	patient, err := h.service.RegisterPatient(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, gin.H{
		"message":    "patient registered successfully",
		"patient_id": patient.ID,
	})
}

func (h *Handler) PatientLogin(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	token, patient, err := h.service.LoginPatient(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	httputil.RespondWithSuccess(c, gin.H{
		"token":      token,
		"patient_id": patient.ID,
	})
}

func (h *Handler) AdminLogin(c *gin.Context) {
	var req model.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}

	token, admin, err := h.service.LoginAdmin(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	httputil.RespondWithSuccess(c, gin.H{
		"token":    token,
		"admin_id": admin.ID,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	token := middleware.TokenFromRequest(c)
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	httputil.RespondWithSuccess(c, gin.H{"message": "logged out successfully"})
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.SessionCookie, token, cookieMaxAge, "/", "", false, true)
}
