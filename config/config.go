package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Server struct {
	Port     string `env:"PORT" envDefault:"8080"`
	UseHTTPS bool   `env:"USE_HTTPS" envDefault:"false"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type Database struct {
	Path string `env:"DATABASE_PATH" envDefault:"crm_web.db"`
}

type CRMAPI struct {
	BaseURL    string        `env:"CRM_API_BASE_URL,required,notEmpty"`
	Timeout    time.Duration `env:"CRM_API_TIMEOUT" envDefault:"15s"`
	AuthCookie string        `env:"CRM_AUTH_COOKIE"`
}

type OIDC struct {
	Domain       string `env:"OIDC_DOMAIN"`
	ClientID     string `env:"OIDC_CLIENT_ID"`
	ClientSecret string `env:"OIDC_CLIENT_SECRET"`
	CallbackURL  string `env:"OIDC_CALLBACK_URL"`
	RoleClaim    string `env:"OIDC_ROLE_CLAIM" envDefault:"role"`
}

type Session struct {
	CookieName string `env:"SESSION_COOKIE" envDefault:"crm_session"`
	Lifetime   int64  `env:"SESSION_LIFETIME" envDefault:"3600"`
}

type Timeline struct {
	AuditPageLimit int           `env:"AUDIT_PAGE_LIMIT" envDefault:"50"`
	PollingEnabled bool          `env:"TIMELINE_POLLING_ENABLED" envDefault:"false"`
	PollInterval   time.Duration `env:"TIMELINE_POLL_INTERVAL" envDefault:"30s"`
}

type Config struct {
	Server   Server
	Database Database
	CRMAPI   CRMAPI
	OIDC     OIDC
	Session  Session
	Timeline Timeline
}

// Load reads an optional .env file and then parses the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file loaded")
	}
	return Parse()
}

// Parse builds the configuration from the process environment only
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.Timeline.AuditPageLimit <= 0 {
		return nil, fmt.Errorf("AUDIT_PAGE_LIMIT must be positive, got %d", cfg.Timeline.AuditPageLimit)
	}
	return cfg, nil
}

// Level returns the configured logrus level, falling back to info
func (s Server) Level() log.Level {
	level, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
