package config

import (
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("CRM_API_BASE_URL", "http://crm.local")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.Server.UseHTTPS)
	assert.Equal(t, log.InfoLevel, cfg.Server.Level())
	assert.Equal(t, "crm_web.db", cfg.Database.Path)
	assert.Equal(t, "http://crm.local", cfg.CRMAPI.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.CRMAPI.Timeout)
	assert.Equal(t, "role", cfg.OIDC.RoleClaim)
	assert.Equal(t, "crm_session", cfg.Session.CookieName)
	assert.Equal(t, int64(3600), cfg.Session.Lifetime)
	assert.Equal(t, 50, cfg.Timeline.AuditPageLimit)
	assert.False(t, cfg.Timeline.PollingEnabled, "polling must default to off")
	assert.Equal(t, 30*time.Second, cfg.Timeline.PollInterval)
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("CRM_API_BASE_URL", "https://crm.example.com")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("AUDIT_PAGE_LIMIT", "20")
	t.Setenv("TIMELINE_POLLING_ENABLED", "true")
	t.Setenv("TIMELINE_POLL_INTERVAL", "1m")
	t.Setenv("OIDC_ROLE_CLAIM", "https://crm.example.com/roles")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, log.DebugLevel, cfg.Server.Level())
	assert.Equal(t, 20, cfg.Timeline.AuditPageLimit)
	assert.True(t, cfg.Timeline.PollingEnabled)
	assert.Equal(t, time.Minute, cfg.Timeline.PollInterval)
	assert.Equal(t, "https://crm.example.com/roles", cfg.OIDC.RoleClaim)
}

func TestParse_RequiresBaseURL(t *testing.T) {
	t.Setenv("CRM_API_BASE_URL", "")

	_, err := Parse()
	assert.Error(t, err)
}

func TestParse_RejectsNonPositivePageLimit(t *testing.T) {
	t.Setenv("CRM_API_BASE_URL", "http://crm.local")
	t.Setenv("AUDIT_PAGE_LIMIT", "0")

	_, err := Parse()
	assert.ErrorContains(t, err, "AUDIT_PAGE_LIMIT")
}

func TestServerLevel_Invalid(t *testing.T) {
	assert.Equal(t, log.InfoLevel, Server{LogLevel: "loud"}.Level())
}
