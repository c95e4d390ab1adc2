package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogem/crm-web/config"
	"github.com/blogem/crm-web/controllers"
	"github.com/blogem/crm-web/repositories"
	"github.com/blogem/crm-web/repositories/mocks"
	"github.com/blogem/crm-web/services"
)

func testRouter(t *testing.T) http.Handler {
	repos := &repositories.Repositories{
		AuditLog:   mocks.NewMockAuditLogRepository(t),
		Comment:    mocks.NewMockCommentRepository(t),
		RequestLog: mocks.NewMockRequestLogRepository(t),
	}
	cfg := &config.Config{Session: config.Session{CookieName: "crm_session", Lifetime: 3600}}
	ctrl := controllers.NewControllers(services.NewServices(repos, services.Options{}), nil, "")
	r, err := setupRouter(cfg, ctrl, repos)
	require.NoError(t, err)
	return r
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "healthy", "service": "crm-web"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestProtectedRoutesRequireLogin(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/entities/ticket/42/timeline", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/entities/ticket/42/timeline", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginWithoutProvider(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
