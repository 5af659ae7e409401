package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telemedix/telemed-api/internal/model"
	"github.com/telemedix/telemed-api/internal/session"
)

type fakeAdminRepo struct {
	roles map[uuid.UUID]model.AdminRole
}

func (f *fakeAdminRepo) GetByUsername(_ context.Context, _ string) (*model.Admin, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeAdminRepo) GetRole(_ context.Context, id uuid.UUID) (model.AdminRole, error) {
	role, ok := f.roles[id]
	if !ok {
		return "", sql.ErrNoRows
	}
	return role, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, session.Store, *fakeAdminRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := session.NewMemoryStore(0)
	t.Cleanup(func() { sessions.Close() })
	admins := &fakeAdminRepo{roles: make(map[uuid.UUID]model.AdminRole)}

	auth := NewAuthMiddleware(sessions, admins)

	engine := gin.New()
	engine.GET("/patient-only", auth.RequirePatient(), func(c *gin.Context) {
		id := c.MustGet(ContextPatientID).(uuid.UUID)
		c.JSON(http.StatusOK, gin.H{"patient_id": id})
	})
	engine.GET("/admin-only", auth.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return engine, sessions, admins
}

func doRequest(engine *gin.Engine, token string, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRequirePatientWithoutSession(t *testing.T) {
	engine, _, _ := newTestRouter(t)

	w := doRequest(engine, "", "/patient-only")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequirePatientWithPatientSession(t *testing.T) {
	engine, sessions, _ := newTestRouter(t)

	token, err := sessions.Create(context.Background(), session.Identity{
		SubjectID: uuid.New(),
		Kind:      session.SubjectPatient,
	})
	require.NoError(t, err)

	w := doRequest(engine, token, "/patient-only")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePatientRejectsAdminSession(t *testing.T) {
	engine, sessions, admins := newTestRouter(t)

	adminID := uuid.New()
	admins.roles[adminID] = model.AdminRoleSuperAdmin
	token, err := sessions.Create(context.Background(), session.Identity{
		SubjectID: adminID,
		Kind:      session.SubjectAdmin,
		Role:      model.AdminRoleSuperAdmin,
	})
	require.NoError(t, err)

	w := doRequest(engine, token, "/patient-only")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequirePatientWithDestroyedSession(t *testing.T) {
	engine, sessions, _ := newTestRouter(t)
	ctx := context.Background()

	token, err := sessions.Create(ctx, session.Identity{
		SubjectID: uuid.New(),
		Kind:      session.SubjectPatient,
	})
	require.NoError(t, err)
	require.NoError(t, sessions.Destroy(ctx, token))

	w := doRequest(engine, token, "/patient-only")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminWithoutSession(t *testing.T) {
	engine, _, _ := newTestRouter(t)

	w := doRequest(engine, "", "/admin-only")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminRejectsPatientSession(t *testing.T) {
	engine, sessions, _ := newTestRouter(t)

	token, err := sessions.Create(context.Background(), session.Identity{
		SubjectID: uuid.New(),
		Kind:      session.SubjectPatient,
	})
	require.NoError(t, err)

	w := doRequest(engine, token, "/admin-only")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminAcceptsRecognizedRoles(t *testing.T) {
	for _, role := range []model.AdminRole{model.AdminRoleSuperAdmin, model.AdminRoleModerator} {
		engine, sessions, admins := newTestRouter(t)

		adminID := uuid.New()
		admins.roles[adminID] = role
		token, err := sessions.Create(context.Background(), session.Identity{
			SubjectID: adminID,
			Kind:      session.SubjectAdmin,
			Role:      role,
		})
		require.NoError(t, err)

		w := doRequest(engine, token, "/admin-only")
		assert.Equal(t, http.StatusOK, w.Code, "role %s", role)
	}
}

func TestRequireAdminRejectsUnrecognizedRole(t *testing.T) {
	engine, sessions, admins := newTestRouter(t)

	adminID := uuid.New()
	admins.roles[adminID] = "Viewer"
	token, err := sessions.Create(context.Background(), session.Identity{
		SubjectID: adminID,
		Kind:      session.SubjectAdmin,
	})
	require.NoError(t, err)

	w := doRequest(engine, token, "/admin-only")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminRejectsMissingRoleRow(t *testing.T) {
	engine, sessions, _ := newTestRouter(t)

	token, err := sessions.Create(context.Background(), session.Identity{
		SubjectID: uuid.New(),
		Kind:      session.SubjectAdmin,
		Role:      model.AdminRoleSuperAdmin,
	})
	require.NoError(t, err)

	w := doRequest(engine, token, "/admin-only")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// The role is re-fetched from storage on every request, so a revocation
// takes effect on the next call even though the session still carries the
// old role.
func TestRequireAdminReflectsRoleRevocation(t *testing.T) {
	engine, sessions, admins := newTestRouter(t)

	adminID := uuid.New()
	admins.roles[adminID] = model.AdminRoleSuperAdmin
	token, err := sessions.Create(context.Background(), session.Identity{
		SubjectID: adminID,
		Kind:      session.SubjectAdmin,
		Role:      model.AdminRoleSuperAdmin,
	})
	require.NoError(t, err)

	w := doRequest(engine, token, "/admin-only")
	require.Equal(t, http.StatusOK, w.Code)

	admins.roles[adminID] = "Revoked"
	w = doRequest(engine, token, "/admin-only")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTokenFromCookie(t *testing.T) {
	engine, sessions, _ := newTestRouter(t)

	token, err := sessions.Create(context.Background(), session.Identity{
		SubjectID: uuid.New(),
		Kind:      session.SubjectPatient,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/patient-only", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMalformedAuthorizationHeader(t *testing.T) {
	engine, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/patient-only", nil)
	req.Header.Set("Authorization", "not-a-bearer-token")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
