package services

import (
	"context"
	"errors"

	"github.com/blogem/crm-web/models"
	"github.com/blogem/crm-web/repositories"
)

// TimelineService opens entity timelines for a session user
type TimelineService interface {
	New(ctx context.Context, user *models.User, entityType models.EntityType, entityID string) *Timeline
	Open(ctx context.Context, user *models.User, entityType models.EntityType, entityID string, page int) (*Timeline, error)
	Watch(ctx context.Context, timeline *Timeline, onUpdate func(TimelineSnapshot))
	Poller() *Poller
}

// timelineService implements TimelineService interface
type timelineService struct {
	auditRepo   repositories.AuditLogRepository
	commentRepo repositories.CommentRepository
	pageLimit   int
	poller      *Poller
}

// NewTimelineService creates a new timeline service
func NewTimelineService(auditRepo repositories.AuditLogRepository, commentRepo repositories.CommentRepository, pageLimit int, poller *Poller) TimelineService {
	if pageLimit <= 0 {
		pageLimit = DefaultAuditPageLimit
	}
	if poller == nil {
		poller = NewPoller(false, 0)
	}
	return &timelineService{
		auditRepo:   auditRepo,
		commentRepo: commentRepo,
		pageLimit:   pageLimit,
		poller:      poller,
	}
}

// New builds a gated timeline without loading anything
func (s *timelineService) New(ctx context.Context, user *models.User, entityType models.EntityType, entityID string) *Timeline {
	history := NewAuditHistory(ctx, s.auditRepo, user, entityType, entityID, AuditHistoryOptions{
		Limit: s.pageLimit,
	})
	return NewTimeline(history, s.commentRepo)
}

// Open builds the timeline and loads the requested page. The returned
// timeline is usable even when an error is returned; its snapshot carries
// the access-denied or error state.
func (s *timelineService) Open(ctx context.Context, user *models.User, entityType models.EntityType, entityID string, page int) (*Timeline, error) {
	timeline := s.New(ctx, user, entityType, entityID)

	if !timeline.Audit().HasAccess() {
		return timeline, models.ErrAccessDenied
	}
	return timeline, timeline.Load(ctx, page)
}

// Watch re-fetches the timeline on every poll tick and reports each result.
// It returns immediately while polling is disabled or the view is denied,
// and stops once the backend denies access.
func (s *timelineService) Watch(ctx context.Context, timeline *Timeline, onUpdate func(TimelineSnapshot)) {
	if !timeline.Audit().HasAccess() {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.poller.Poll(ctx, func(ctx context.Context) {
		err := timeline.Reload(ctx)
		onUpdate(timeline.Snapshot())
		if errors.Is(err, models.ErrAccessDenied) {
			cancel()
		}
	})
}

// Poller returns the configured poller
func (s *timelineService) Poller() *Poller {
	return s.poller
}
