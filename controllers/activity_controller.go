package controllers

import (
	"errors"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/blogem/crm-web/models"
	"github.com/blogem/crm-web/services"
	"github.com/blogem/crm-web/userctx"
)

const defaultActivityLimit = 100

// ActivityController shows the local request journal to administrators
type ActivityController struct {
	services *services.Services
}

// NewActivityController creates a new activity controller
func NewActivityController(services *services.Services) *ActivityController {
	return &ActivityController{
		services: services,
	}
}

// Index handles GET /activity
func (c *ActivityController) Index(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 1000 {
		limit = defaultActivityLimit
	}

	entries, err := c.services.Activity.RecentActivity(userctx.GetUser(r.Context()), limit)
	if errors.Is(err, models.ErrAccessDenied) {
		renderError(w, r, http.StatusForbidden, "Access restricted", "Only administrators can view recent activity.")
		return
	}
	if err != nil {
		log.WithError(err).Error("Failed to load request journal")
		renderError(w, r, http.StatusInternalServerError, "Something went wrong", "Recent activity could not be loaded.")
		return
	}

	templateData := struct {
		Layout
		Entries []models.RequestLogEntry
	}{
		Layout:  newLayout(r, "Recent activity", "activity"),
		Entries: entries,
	}

	renderTemplate(w, "activity", "activity.html", templateData)
}
