package services

import (
	"time"

	"github.com/blogem/crm-web/repositories"
)

// Options tunes the services from configuration
type Options struct {
	AuditPageLimit int
	PollingEnabled bool
	PollInterval   time.Duration
}

// Services holds all service instances
type Services struct {
	Timeline TimelineService
	Activity ActivityService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, opts Options) *Services {
	return &Services{
		Timeline: NewTimelineService(repos.AuditLog, repos.Comment, opts.AuditPageLimit, NewPoller(opts.PollingEnabled, opts.PollInterval)),
		Activity: NewActivityService(repos.RequestLog),
	}
}
