package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/blogem/crm-web/access"
	"github.com/blogem/crm-web/models"
	"github.com/blogem/crm-web/repositories"
)

const commentFetchWarning = "Comments could not be loaded. The activity timeline below is still up to date."

// TimelineSnapshot is everything a renderer needs for one entity view
type TimelineSnapshot struct {
	EntityType        models.EntityType     `json:"entityType"`
	EntityID          string                `json:"entityId"`
	State             ViewState             `json:"state"`
	HasAccess         bool                  `json:"hasAccess"`
	Items             []models.TimelineItem `json:"items"`
	Pagination        models.Pagination     `json:"pagination"`
	Error             string                `json:"error,omitempty"`
	CommentWarning    string                `json:"commentWarning,omitempty"`
	CommentsSupported bool                  `json:"commentsSupported"`
}

// Timeline merges an entity's audit history with its comment thread
type Timeline struct {
	audit      *AuditHistory
	comments   repositories.CommentRepository
	entityType models.EntityType
	entityID   string

	mu             sync.Mutex
	latestComments uint64
	commentList    []models.Comment
	commentWarning string
}

// NewTimeline wraps an AuditHistory with the comment thread of the same entity
func NewTimeline(audit *AuditHistory, comments repositories.CommentRepository) *Timeline {
	return &Timeline{
		audit:      audit,
		comments:   comments,
		entityType: audit.entityType,
		entityID:   audit.entityID,
	}
}

// Audit returns the underlying audit history
func (t *Timeline) Audit() *AuditHistory {
	return t.audit
}

// Load fetches audit page n and the comments concurrently. Only the audit
// failure is returned; a comment failure shows up as a warning. A denied
// view makes no requests.
func (t *Timeline) Load(ctx context.Context, page int) error {
	if !t.audit.HasAccess() {
		return models.ErrAccessDenied
	}

	var g errgroup.Group
	g.Go(func() error {
		return t.audit.Fetch(ctx, page)
	})
	g.Go(func() error {
		_ = t.FetchComments(ctx)
		return nil
	})
	return g.Wait()
}

// Refresh reloads both sources from the first page
func (t *Timeline) Refresh(ctx context.Context) error {
	return t.Load(ctx, 1)
}

// Reload re-fetches both sources keeping the current audit page
func (t *Timeline) Reload(ctx context.Context) error {
	return t.Load(ctx, t.audit.currentPage())
}

// FetchComments loads the comment thread. Entities without comment support
// get an empty list and no request is made, as do denied views.
func (t *Timeline) FetchComments(ctx context.Context) error {
	if !t.audit.HasAccess() {
		return models.ErrAccessDenied
	}
	if !access.SupportsComments(t.entityType) {
		t.mu.Lock()
		t.commentList = nil
		t.commentWarning = ""
		t.mu.Unlock()
		return nil
	}

	t.mu.Lock()
	t.latestComments++
	requestID := t.latestComments
	t.mu.Unlock()

	comments, err := t.comments.ListForTicket(ctx, t.entityID)

	t.mu.Lock()
	defer t.mu.Unlock()

	if requestID != t.latestComments {
		return nil
	}
	if err != nil {
		t.commentList = nil
		t.commentWarning = commentFetchWarning
		log.WithFields(log.Fields{
			"entity_type": t.entityType,
			"entity_id":   t.entityID,
		}).WithError(err).Warn("Failed to fetch comments")
		return err
	}

	t.commentList = comments
	t.commentWarning = ""
	return nil
}

// AddComment posts a comment and then refetches both sources, since the
// backend may audit the comment itself. The draft is the caller's to keep
// when an error is returned.
func (t *Timeline) AddComment(ctx context.Context, text string, internal bool) (*models.Comment, error) {
	if !t.audit.HasAccess() {
		return nil, models.ErrAccessDenied
	}
	if !access.SupportsComments(t.entityType) {
		return nil, models.ErrCommentsNotSupported
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, models.ErrEmptyComment
	}

	created, err := t.comments.Create(ctx, t.entityID, models.CommentInput{
		Comment:    trimmed,
		IsInternal: internal,
	})
	if err != nil {
		log.WithFields(log.Fields{
			"entity_type": t.entityType,
			"entity_id":   t.entityID,
		}).WithError(err).Warn("Failed to add comment")
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	var g errgroup.Group
	g.Go(func() error {
		return t.FetchComments(ctx)
	})
	g.Go(func() error {
		return t.audit.Reload(ctx)
	})
	if err := g.Wait(); err != nil {
		log.WithField("entity_id", t.entityID).WithError(err).Debug("Refetch after comment left the timeline degraded")
	}

	return created, nil
}

// Items merges the current audit page and comments, newest first
func (t *Timeline) Items() []models.TimelineItem {
	audit := t.audit.Snapshot()

	t.mu.Lock()
	comments := slices.Clone(t.commentList)
	t.mu.Unlock()

	return models.MergeTimeline(audit.Entries, comments)
}

// Snapshot returns a render-ready copy of the timeline state
func (t *Timeline) Snapshot() TimelineSnapshot {
	audit := t.audit.Snapshot()

	t.mu.Lock()
	comments := slices.Clone(t.commentList)
	warning := t.commentWarning
	t.mu.Unlock()

	snap := TimelineSnapshot{
		EntityType:        t.entityType,
		EntityID:          t.entityID,
		State:             audit.State,
		HasAccess:         audit.HasAccess,
		Pagination:        audit.Pagination,
		Error:             audit.Error,
		CommentWarning:    warning,
		CommentsSupported: access.SupportsComments(t.entityType),
		Items:             []models.TimelineItem{},
	}

	if audit.State == ViewStateLoaded {
		snap.Items = models.MergeTimeline(audit.Entries, comments)
	}
	return snap
}
