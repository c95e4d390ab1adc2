package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/blogem/crm-web/models"
	"github.com/blogem/crm-web/services"
	"github.com/blogem/crm-web/userctx"
)

// TimelineController serves the merged audit and comment timeline of an entity
type TimelineController struct {
	services *services.Services
}

// NewTimelineController creates a new timeline controller
func NewTimelineController(services *services.Services) *TimelineController {
	return &TimelineController{
		services: services,
	}
}

type timelinePage struct {
	Layout
	Timeline      services.TimelineSnapshot
	SelfURL       string
	CommentURL    string
	Draft         string
	DraftInternal bool
	ComposeError  string
}

// Open handles GET /entities/open?type=&id= from the dashboard form
func (c *TimelineController) Open(w http.ResponseWriter, r *http.Request) {
	entityType := models.ParseEntityType(r.URL.Query().Get("type"))
	entityID := strings.TrimSpace(r.URL.Query().Get("id"))
	if entityType == "" || entityID == "" {
		renderError(w, r, http.StatusBadRequest, "Missing record", "Choose a record type and enter its ID.")
		return
	}

	http.Redirect(w, r, timelineURL(entityType, entityID), http.StatusSeeOther)
}

// Show handles GET /entities/{entityType}/{entityID}/timeline
func (c *TimelineController) Show(w http.ResponseWriter, r *http.Request) {
	entityType, entityID := entityParams(r)
	user := userctx.GetUser(r.Context())

	timeline, err := c.services.Timeline.Open(r.Context(), user, entityType, entityID, pageParam(r))
	snap := timeline.Snapshot()

	c.render(w, r, statusFor(err, snap), timelinePage{Timeline: snap})
}

// JSON handles GET /api/entities/{entityType}/{entityID}/timeline
func (c *TimelineController) JSON(w http.ResponseWriter, r *http.Request) {
	entityType, entityID := entityParams(r)
	user := userctx.GetUser(r.Context())

	timeline, err := c.services.Timeline.Open(r.Context(), user, entityType, entityID, pageParam(r))
	snap := timeline.Snapshot()

	writeJSON(w, statusFor(err, snap), snap)
}

// AddComment handles POST /entities/{entityType}/{entityID}/comments
func (c *TimelineController) AddComment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	entityType, entityID := entityParams(r)
	user := userctx.GetUser(r.Context())
	draft := r.FormValue("comment")
	internal := isChecked(r.FormValue("is_internal"))

	timeline := c.services.Timeline.New(r.Context(), user, entityType, entityID)
	if !timeline.Audit().HasAccess() {
		c.render(w, r, http.StatusForbidden, timelinePage{Timeline: timeline.Snapshot()})
		return
	}

	_, err := timeline.AddComment(r.Context(), draft, internal)
	if err == nil {
		http.Redirect(w, r, timelineURL(entityType, entityID), http.StatusSeeOther)
		return
	}

	status := http.StatusBadGateway
	composeError := "Failed to add comment. Please try again."
	switch {
	case errors.Is(err, models.ErrEmptyComment):
		status = http.StatusBadRequest
		composeError = "Comment cannot be empty."
	case errors.Is(err, models.ErrCommentsNotSupported):
		status = http.StatusBadRequest
		composeError = "Comments are only available on tickets."
	case errors.Is(err, models.ErrForbidden):
		status = http.StatusForbidden
		composeError = "You are not allowed to comment on this " + entityType.Label() + "."
	}

	// The page still shows the current timeline under the compose error
	_ = timeline.Load(r.Context(), 1)

	page := timelinePage{
		Timeline:      timeline.Snapshot(),
		Draft:         draft,
		DraftInternal: internal,
		ComposeError:  composeError,
	}
	if !page.Timeline.CommentsSupported {
		page.Flash = &models.FlashMessage{Type: "error", Message: composeError}
	}
	c.render(w, r, status, page)
}

func (c *TimelineController) render(w http.ResponseWriter, r *http.Request, status int, page timelinePage) {
	snap := page.Timeline
	flash := page.Flash

	page.Layout = newLayout(r, snap.EntityType.Label()+" #"+snap.EntityID, "timeline")
	page.Flash = flash
	page.SelfURL = timelineURL(snap.EntityType, snap.EntityID)
	page.CommentURL = commentsURL(snap.EntityType, snap.EntityID)
	if snap.HasAccess && snap.State == services.ViewStateLoaded {
		page.RefreshSeconds = c.services.Timeline.Poller().RefreshSeconds()
	}

	log.WithFields(log.Fields{
		"entity_type": snap.EntityType,
		"entity_id":   snap.EntityID,
		"state":       snap.State,
		"request_id":  userctx.GetRequestID(r.Context()),
	}).Debug("Rendering timeline")

	renderTemplateWithStatus(w, status, "timeline", "timeline.html", page)
}

// statusFor maps the view state to an HTTP status
func statusFor(err error, snap services.TimelineSnapshot) int {
	switch {
	case errors.Is(err, models.ErrAccessDenied) || !snap.HasAccess:
		return http.StatusForbidden
	case snap.State == services.ViewStateError:
		return http.StatusBadGateway
	}
	return http.StatusOK
}

func entityParams(r *http.Request) (models.EntityType, string) {
	return models.ParseEntityType(chi.URLParam(r, "entityType")), chi.URLParam(r, "entityID")
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func isChecked(v string) bool {
	switch strings.ToLower(v) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}

func timelineURL(entityType models.EntityType, entityID string) string {
	return "/entities/" + url.PathEscape(entityType.String()) + "/" + url.PathEscape(entityID) + "/timeline"
}

func commentsURL(entityType models.EntityType, entityID string) string {
	return "/entities/" + url.PathEscape(entityType.String()) + "/" + url.PathEscape(entityID) + "/comments"
}
