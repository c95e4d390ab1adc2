package services

import (
	"fmt"

	"github.com/blogem/crm-web/access"
	"github.com/blogem/crm-web/models"
	"github.com/blogem/crm-web/repositories"
)

// ActivityService exposes the local request journal
type ActivityService interface {
	RecentActivity(user *models.User, limit int) ([]models.RequestLogEntry, error)
}

// activityService implements ActivityService interface
type activityService struct {
	requestLogRepo repositories.RequestLogRepository
}

// NewActivityService creates a new activity service
func NewActivityService(requestLogRepo repositories.RequestLogRepository) ActivityService {
	return &activityService{requestLogRepo: requestLogRepo}
}

// RecentActivity returns the newest journal entries, administrators only
func (s *activityService) RecentActivity(user *models.User, limit int) ([]models.RequestLogEntry, error) {
	if !access.CanViewActivityJournal(user.RoleOrNone()) {
		return nil, models.ErrAccessDenied
	}

	entries, err := s.requestLogRepo.ListRecent(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent activity: %w", err)
	}
	return entries, nil
}
