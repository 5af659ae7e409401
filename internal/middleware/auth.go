package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/telemedix/telemed-api/internal/repository"
	"github.com/telemedix/telemed-api/internal/session"
	"github.com/telemedix/telemed-api/pkg/errors"
	"github.com/telemedix/telemed-api/pkg/httputil"
)

const (
	// SessionCookie is the cookie the login handlers set; the Authorization
	// header takes precedence when both are present.
	SessionCookie = "telemed_session"

	ContextPatientID = "patientID"
	ContextAdminID   = "adminID"
	ContextAdminRole = "adminRole"
)

type AuthMiddleware struct {
	sessions  session.Store
	adminRepo repository.AdminRepository
}

func NewAuthMiddleware(sessions session.Store, adminRepo repository.AdminRepository) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:  sessions,
		adminRepo: adminRepo,
	}
}

// RequirePatient rejects the request unless the session resolves to a
// patient identity. It runs to completion before any handler touches
// patient data.
func (m *AuthMiddleware) RequirePatient() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := m.resolve(c)
		if err != nil {
			httputil.RespondWithError(c, errors.Unauthenticated("please log in"))
			c.Abort()
			return
		}

		if identity.Kind != session.SubjectPatient {
			httputil.RespondWithError(c, errors.Unauthenticated("please log in"))
			c.Abort()
			return
		}

		c.Set(ContextPatientID, identity.SubjectID)
		c.Next()
	}
}

// RequireAdmin rejects the request unless the session resolves to an admin
// whose role is SuperAdmin or Moderator. The role is re-fetched from storage
// on every call, so a role revoked mid-session takes effect on the next
// request.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := m.resolve(c)
		if err != nil {
			httputil.RespondWithError(c, errors.Unauthenticated("please log in"))
			c.Abort()
			return
		}

		if identity.Kind != session.SubjectAdmin {
			httputil.RespondWithError(c, errors.Forbidden("admin only"))
			c.Abort()
			return
		}

		role, err := m.adminRepo.GetRole(c.Request.Context(), identity.SubjectID)
		if err != nil {
			httputil.RespondWithError(c, errors.Forbidden("admin role not found"))
			c.Abort()
			return
		}

		if !role.Recognized() {
			httputil.RespondWithError(c, errors.Forbidden("admin only"))
			c.Abort()
			return
		}

		c.Set(ContextAdminID, identity.SubjectID)
		c.Set(ContextAdminRole, role)
		c.Next()
	}
}

func (m *AuthMiddleware) resolve(c *gin.Context) (*session.Identity, error) {
	token := tokenFromRequest(c)
	if token == "" {
		return nil, session.ErrNotFound
	}
	return m.sessions.Resolve(c.Request.Context(), token)
}

func tokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	cookie, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie
}

// TokenFromRequest extracts the session token for handlers that manage the
// session itself (logout, self-delete).
func TokenFromRequest(c *gin.Context) string {
	return tokenFromRequest(c)
}
