package services

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/blogem/crm-web/access"
	"github.com/blogem/crm-web/models"
	"github.com/blogem/crm-web/repositories"
)

// DefaultAuditPageLimit is the page size used when none is configured
const DefaultAuditPageLimit = 50

const auditFetchErrorMessage = "Failed to load audit history. Please try again."

// ViewState is the lifecycle state of an entity view
type ViewState string

const (
	ViewStateIdle         ViewState = "idle"
	ViewStateLoading      ViewState = "loading"
	ViewStateLoaded       ViewState = "loaded"
	ViewStateAccessDenied ViewState = "access_denied"
	ViewStateError        ViewState = "error"
)

// AuditHistoryOptions configures an AuditHistory
type AuditHistoryOptions struct {
	Limit     int
	Filters   map[string]string
	AutoFetch bool
}

// AuditHistorySnapshot is a point-in-time copy of an AuditHistory
type AuditHistorySnapshot struct {
	State      ViewState
	HasAccess  bool
	Entries    []models.AuditLogEntry
	Pagination models.Pagination
	Error      string
}

// AuditHistory is the access-gated, paginated audit log of one entity as
// seen by one user. Every fetch takes a request id; a response whose id is
// no longer the latest is dropped.
type AuditHistory struct {
	repo       repositories.AuditLogRepository
	entityType models.EntityType
	entityID   string
	limit      int
	filters    map[string]string

	mu         sync.Mutex
	latest     uint64
	state      ViewState
	hasAccess  bool
	entries    []models.AuditLogEntry
	pagination models.Pagination
	errMsg     string
}

// NewAuditHistory evaluates the access gate for user and, when allowed and
// opts.AutoFetch is set, loads the first page.
func NewAuditHistory(ctx context.Context, repo repositories.AuditLogRepository, user *models.User, entityType models.EntityType, entityID string, opts AuditHistoryOptions) *AuditHistory {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultAuditPageLimit
	}

	h := &AuditHistory{
		repo:       repo,
		entityType: entityType,
		entityID:   entityID,
		limit:      limit,
		filters:    maps.Clone(opts.Filters),
		state:      ViewStateIdle,
		hasAccess:  access.CanViewAuditHistory(user.RoleOrNone(), entityType),
		pagination: models.Pagination{CurrentPage: 1, Limit: limit},
	}

	if !h.hasAccess {
		h.state = ViewStateAccessDenied
		log.WithFields(log.Fields{
			"entity_type": entityType,
			"entity_id":   entityID,
			"role":        user.RoleOrNone(),
		}).Debug("Audit history access denied by role")
		return h
	}

	if opts.AutoFetch {
		_ = h.Fetch(ctx, 1)
	}
	return h
}

// Fetch loads one page. A 403 from the backend revokes access for the
// lifetime of this view; any other failure clears the entries.
func (h *AuditHistory) Fetch(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}

	h.mu.Lock()
	if !h.hasAccess {
		h.mu.Unlock()
		return models.ErrAccessDenied
	}
	h.latest++
	requestID := h.latest
	h.state = ViewStateLoading
	query := models.AuditQuery{Limit: h.limit, Page: page, Filters: h.filters}
	h.mu.Unlock()

	result, err := h.repo.ListForEntity(ctx, h.entityType, h.entityID, query)

	h.mu.Lock()
	defer h.mu.Unlock()

	fields := log.Fields{
		"entity_type": h.entityType,
		"entity_id":   h.entityID,
		"page":        page,
		"request":     requestID,
	}

	if requestID != h.latest {
		log.WithFields(fields).Debug("Discarding superseded audit history response")
		return nil
	}

	switch {
	case errors.Is(err, models.ErrForbidden):
		h.hasAccess = false
		h.entries = nil
		h.errMsg = ""
		h.state = ViewStateAccessDenied
		log.WithFields(fields).Debug("Audit history access denied by backend")
		return fmt.Errorf("%w: backend refused audit history", models.ErrAccessDenied)

	case err != nil:
		h.entries = nil
		h.errMsg = auditFetchErrorMessage
		h.state = ViewStateError
		h.pagination = models.Pagination{CurrentPage: page, Limit: h.limit}
		log.WithFields(fields).WithError(err).Warn("Failed to fetch audit history")
		return err
	}

	limit := result.Limit
	if limit <= 0 {
		limit = h.limit
	}
	h.entries = result.Entries
	h.pagination = models.Pagination{
		Total:       result.Total,
		Pages:       result.Pages,
		CurrentPage: page,
		Limit:       limit,
	}
	h.errMsg = ""
	h.state = ViewStateLoaded
	return nil
}

// Refresh reloads from the first page
func (h *AuditHistory) Refresh(ctx context.Context) error {
	return h.Fetch(ctx, 1)
}

// Reload re-fetches the current page
func (h *AuditHistory) Reload(ctx context.Context) error {
	return h.Fetch(ctx, h.currentPage())
}

// GoToPage fetches page n, clamped to the known page range
func (h *AuditHistory) GoToPage(ctx context.Context, n int) error {
	h.mu.Lock()
	pages := h.pagination.Pages
	h.mu.Unlock()

	if pages > 0 && n > pages {
		n = pages
	}
	return h.Fetch(ctx, n)
}

// NextPage fetches the following page if there is one
func (h *AuditHistory) NextPage(ctx context.Context) error {
	h.mu.Lock()
	p := h.pagination
	h.mu.Unlock()

	if !p.HasNext() {
		return nil
	}
	return h.Fetch(ctx, p.NextPage())
}

// PrevPage fetches the preceding page if there is one
func (h *AuditHistory) PrevPage(ctx context.Context) error {
	h.mu.Lock()
	p := h.pagination
	h.mu.Unlock()

	if !p.HasPrev() {
		return nil
	}
	return h.Fetch(ctx, p.PrevPage())
}

// HasAccess reports whether the current user may see this history
func (h *AuditHistory) HasAccess() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hasAccess
}

// Snapshot returns a copy of the current state
func (h *AuditHistory) Snapshot() AuditHistorySnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	return AuditHistorySnapshot{
		State:      h.state,
		HasAccess:  h.hasAccess,
		Entries:    slices.Clone(h.entries),
		Pagination: h.pagination,
		Error:      h.errMsg,
	}
}

func (h *AuditHistory) currentPage() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pagination.CurrentPage
}
